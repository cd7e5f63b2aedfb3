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

// CollectedFields contains the fields of a selection set grouped by response key, including the
// fields in inline fragments, and the names of the fragments it spreads.
type CollectedFields struct {
	// ResponseKeys in the order they first appear
	ResponseKeys []string

	// Fields maps each response key to the fields that produce it.
	Fields map[string][]*FieldInfo

	// FragmentNames lists each spread fragment once.
	FragmentNames []string
}

var emptyCollectedFields = &CollectedFields{}

// CollectFields returns the fields and fragment names of selectionSet, whose type is parentType.
// Results are cached for the validation run, so the same selection set always gives the same
// *CollectedFields.
func (ctx *ValidationContext) CollectFields(parentType graphql.Type, selectionSet ast.SelectionSet) *CollectedFields {
	if len(selectionSet) == 0 {
		return emptyCollectedFields
	}

	// A slice cannot be a map key; use the address of its first element.
	key := &selectionSet[0]
	if collected, exists := ctx.collectedFields[key]; exists {
		return collected
	}

	collected := &CollectedFields{
		Fields: map[string][]*FieldInfo{},
	}
	ctx.collectedFields[key] = collected
	ctx.collectFields(collected, map[string]bool{}, parentType, selectionSet)
	return collected
}

// CollectFragmentFields returns the fields and nested fragment names of the fragment definition.
func (ctx *ValidationContext) CollectFragmentFields(fragment *ast.FragmentDefinition) *CollectedFields {
	var parentType graphql.Type
	if t := ctx.schema.TypeFromName(fragment.TypeCondition.Name.Value()); t != nil {
		parentType = t
	}
	return ctx.CollectFields(parentType, fragment.SelectionSet)
}

func (ctx *ValidationContext) collectFields(
	collected *CollectedFields,
	spreads map[string]bool,
	parentType graphql.Type,
	selectionSet ast.SelectionSet) {

	for _, selection := range selectionSet {
		switch selection := selection.(type) {
		case *ast.Field:
			responseKey := selection.ResponseKey()
			if _, exists := collected.Fields[responseKey]; !exists {
				collected.ResponseKeys = append(collected.ResponseKeys, responseKey)
			}
			collected.Fields[responseKey] = append(collected.Fields[responseKey], &FieldInfo{
				parentType: parentType,
				def:        fieldDefinition(ctx.schema, parentType, selection.Name.Value()),
				node:       selection,
			})

		case *ast.InlineFragment:
			typeCondition := parentType
			if selection.HasTypeCondition() {
				typeCondition = nil
				if t := ctx.schema.TypeFromName(selection.TypeCondition.Name.Value()); t != nil {
					typeCondition = t
				}
			}
			ctx.collectFields(collected, spreads, typeCondition, selection.SelectionSet)

		case *ast.FragmentSpread:
			name := selection.Name.Value()
			if !spreads[name] {
				spreads[name] = true
				collected.FragmentNames = append(collected.FragmentNames, name)
			}
		}
	}
}

// FragmentPairSet records the pairs of fragments whose fields have been compared with each other.
type FragmentPairSet struct {
	data map[string]map[string]bool
}

func newFragmentPairSet() *FragmentPairSet {
	return &FragmentPairSet{
		data: map[string]map[string]bool{},
	}
}

// FragmentPairs returns the fragment pairs compared so far in the validation run.
func (ctx *ValidationContext) FragmentPairs() *FragmentPairSet {
	return ctx.fragmentPairs
}

func (pairs *FragmentPairSet) add(a string, b string, areMutuallyExclusive bool) {
	m := pairs.data[a]
	if m == nil {
		m = map[string]bool{}
		pairs.data[a] = m
	}
	m[b] = areMutuallyExclusive
}

// Add records that fragments a and b have been compared.
func (pairs *FragmentPairSet) Add(a string, b string, areMutuallyExclusive bool) {
	pairs.add(a, b, areMutuallyExclusive)
	pairs.add(b, a, areMutuallyExclusive)
}

// Has returns true if a and b have been compared. A comparison made without mutual exclusivity
// covers one made with it, but not the other way round.
func (pairs *FragmentPairSet) Has(a string, b string, areMutuallyExclusive bool) bool {
	result, exists := pairs.data[a][b]
	if !exists {
		return false
	}
	if !areMutuallyExclusive {
		return !result
	}
	return true
}
