/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package validator

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// VariableUsage is a variable referenced in an argument value along with the type expected at the
// position. Type is nil if unknown.
type VariableUsage struct {
	Node ast.Variable
	Type graphql.Type
}

// ValidationContext carries the state of a validation run. Rules use it to look up definitions and
// to report errors.
type ValidationContext struct {
	schema   *graphql.Schema
	document ast.Document
	rules    *rules
	errs     graphql.Errors

	operations []*ast.OperationDefinition
	fragments  map[string]*ast.FragmentDefinition

	// Facts recorded while walking each definition
	current         ast.Definition
	variableUsages  map[ast.Definition][]VariableUsage
	fragmentSpreads map[ast.Definition][]*ast.FragmentSpread

	// Caches for comparing overlapping fields
	collectedFields map[*ast.Selection]*CollectedFields
	fragmentPairs   *FragmentPairSet
}

func newValidationContext(schema *graphql.Schema, document ast.Document, rules *rules) *ValidationContext {
	ctx := &ValidationContext{
		schema:          schema,
		document:        document,
		rules:           rules,
		fragments:       map[string]*ast.FragmentDefinition{},
		variableUsages:  map[ast.Definition][]VariableUsage{},
		fragmentSpreads: map[ast.Definition][]*ast.FragmentSpread{},
		collectedFields: map[*ast.Selection]*CollectedFields{},
		fragmentPairs:   newFragmentPairSet(),
	}

	for _, definition := range document.Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			ctx.operations = append(ctx.operations, definition)
		case *ast.FragmentDefinition:
			// Keep the first one; UniqueFragmentNames reports the others.
			name := definition.Name.Value()
			if _, exists := ctx.fragments[name]; !exists {
				ctx.fragments[name] = definition
			}
		}
	}

	return ctx
}

// Schema returns the schema being validated against.
func (ctx *ValidationContext) Schema() *graphql.Schema {
	return ctx.schema
}

// Document returns the document being validated.
func (ctx *ValidationContext) Document() ast.Document {
	return ctx.document
}

// Operations returns the operation definitions in the document.
func (ctx *ValidationContext) Operations() []*ast.OperationDefinition {
	return ctx.operations
}

// Fragment finds the fragment definition with the given name. Returns nil if not found.
func (ctx *ValidationContext) Fragment(name string) *ast.FragmentDefinition {
	return ctx.fragments[name]
}

// ReportError appends a validation error. args are passed to graphql.NewError.
func (ctx *ValidationContext) ReportError(message string, args ...interface{}) {
	ctx.errs.Emplace(message, append(args, graphql.ErrKindValidation)...)
}

// Errors returns errors reported so far.
func (ctx *ValidationContext) Errors() graphql.Errors {
	return ctx.errs
}

// VariableUsages returns variables used directly in the definition. Only available in
// DocumentRule.
func (ctx *ValidationContext) VariableUsages(definition ast.Definition) []VariableUsage {
	return ctx.variableUsages[definition]
}

// FragmentSpreads returns the fragment spreads directly contained in the definition. Only available
// in DocumentRule.
func (ctx *ValidationContext) FragmentSpreads(definition ast.Definition) []*ast.FragmentSpread {
	return ctx.fragmentSpreads[definition]
}

// RecursivelyReferencedFragments returns the fragments spread by the operation, directly or
// through other fragments. Unknown fragments are ignored.
func (ctx *ValidationContext) RecursivelyReferencedFragments(operation *ast.OperationDefinition) []*ast.FragmentDefinition {
	var (
		fragments []*ast.FragmentDefinition
		visited   = map[string]bool{}
		pending   = []ast.Definition{operation}
	)

	for len(pending) > 0 {
		definition := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for _, spread := range ctx.fragmentSpreads[definition] {
			name := spread.Name.Value()
			if visited[name] {
				continue
			}
			visited[name] = true
			if fragment := ctx.Fragment(name); fragment != nil {
				fragments = append(fragments, fragment)
				pending = append(pending, fragment)
			}
		}
	}

	return fragments
}

// RecursiveVariableUsages returns variables used by the operation, directly or in referenced
// fragments.
func (ctx *ValidationContext) RecursiveVariableUsages(operation *ast.OperationDefinition) []VariableUsage {
	usages := append([]VariableUsage(nil), ctx.variableUsages[operation]...)
	for _, fragment := range ctx.RecursivelyReferencedFragments(operation) {
		usages = append(usages, ctx.variableUsages[fragment]...)
	}
	return usages
}
