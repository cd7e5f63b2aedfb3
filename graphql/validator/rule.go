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

// OperationRule is run on each operation definition before its selections are walked.
type OperationRule interface {
	CheckOperation(ctx *ValidationContext, operation *ast.OperationDefinition)
}

// FragmentRule is run on each fragment definition before its selections are walked.
type FragmentRule interface {
	CheckFragment(ctx *ValidationContext, fragment *ast.FragmentDefinition)
}

// SelectionSetRule is run on each non-empty selection set before its selections are walked.
// parentType is nil if unknown.
type SelectionSetRule interface {
	CheckSelectionSet(ctx *ValidationContext, parentType graphql.Type, selectionSet ast.SelectionSet)
}

// FieldInfo describes a field selection being validated.
type FieldInfo struct {
	parentType graphql.Type
	def        *graphql.Field
	node       *ast.Field
}

// ParentType returns the type that the field is selected on; nil if unknown.
func (info *FieldInfo) ParentType() graphql.Type {
	return info.parentType
}

// Def returns the field definition; nil if the field is not defined on the parent type.
func (info *FieldInfo) Def() *graphql.Field {
	return info.def
}

// Type returns the type of the field; nil if unknown.
func (info *FieldInfo) Type() graphql.Type {
	if info.def != nil {
		return info.def.Type()
	}
	return nil
}

// Node returns the field selection node.
func (info *FieldInfo) Node() *ast.Field {
	return info.node
}

// Name returns the field name.
func (info *FieldInfo) Name() string {
	return info.node.Name.Value()
}

// FieldRule is run on each field selection.
type FieldRule interface {
	CheckField(ctx *ValidationContext, field *FieldInfo)
}

// InlineFragmentRule is run on each inline fragment. typeCondition is nil if the named type is
// unknown, or is parentType if the fragment has no type condition.
type InlineFragmentRule interface {
	CheckInlineFragment(
		ctx *ValidationContext,
		parentType graphql.Type,
		typeCondition graphql.Type,
		fragment *ast.InlineFragment)
}

// FragmentSpreadRule is run on each fragment spread. fragment is nil if the spread names an
// unknown fragment.
type FragmentSpreadRule interface {
	CheckFragmentSpread(
		ctx *ValidationContext,
		parentType graphql.Type,
		fragment *ast.FragmentDefinition,
		spread *ast.FragmentSpread)
}

// DirectiveRule is run on each directive. def is nil if the directive is unknown.
type DirectiveRule interface {
	CheckDirective(
		ctx *ValidationContext,
		def *graphql.Directive,
		directive *ast.Directive,
		location graphql.DirectiveLocation)
}

// ValueRule is run on each argument value and each variable default value with the expected type.
// expectedType is nil if unknown.
type ValueRule interface {
	CheckValue(ctx *ValidationContext, expectedType graphql.Type, value ast.Value)
}

// DocumentRule is run after all definitions are walked. It usually checks operations against the
// facts collected from the whole document, such as variable usages in fragments.
type DocumentRule interface {
	CheckDocument(ctx *ValidationContext)
}

type rules struct {
	operationRules      []OperationRule
	fragmentRules       []FragmentRule
	selectionSetRules   []SelectionSetRule
	fieldRules          []FieldRule
	inlineFragmentRules []InlineFragmentRule
	fragmentSpreadRules []FragmentSpreadRule
	directiveRules      []DirectiveRule
	valueRules          []ValueRule
	documentRules       []DocumentRule
}

// buildRules sorts rules by the interfaces they implement. It panics if a rule implements none.
func buildRules(rs ...interface{}) *rules {
	result := &rules{}
	for _, rule := range rs {
		matched := false
		if r, ok := rule.(OperationRule); ok {
			result.operationRules = append(result.operationRules, r)
			matched = true
		}
		if r, ok := rule.(FragmentRule); ok {
			result.fragmentRules = append(result.fragmentRules, r)
			matched = true
		}
		if r, ok := rule.(SelectionSetRule); ok {
			result.selectionSetRules = append(result.selectionSetRules, r)
			matched = true
		}
		if r, ok := rule.(FieldRule); ok {
			result.fieldRules = append(result.fieldRules, r)
			matched = true
		}
		if r, ok := rule.(InlineFragmentRule); ok {
			result.inlineFragmentRules = append(result.inlineFragmentRules, r)
			matched = true
		}
		if r, ok := rule.(FragmentSpreadRule); ok {
			result.fragmentSpreadRules = append(result.fragmentSpreadRules, r)
			matched = true
		}
		if r, ok := rule.(DirectiveRule); ok {
			result.directiveRules = append(result.directiveRules, r)
			matched = true
		}
		if r, ok := rule.(ValueRule); ok {
			result.valueRules = append(result.valueRules, r)
			matched = true
		}
		if r, ok := rule.(DocumentRule); ok {
			result.documentRules = append(result.documentRules, r)
			matched = true
		}
		if !matched {
			panic("validator: rule implements no rule interface")
		}
	}
	return result
}
