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

package rules

import (
	"fmt"
	"reflect"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/validator"
)

// OverlappingFieldsCanBeMerged implements the "Field Selection Merging" validation rule. Fields
// that share a response key must select the same field with the same arguments, so the executor
// can merge them into one.
//
// Reference: https://spec.graphql.org/June2018/#sec-Field-Selection-Merging
type OverlappingFieldsCanBeMerged struct{}

type fieldConflict struct {
	reason  conflictReason
	fields1 []*ast.Field
	fields2 []*ast.Field
}

// CheckSelectionSet implements validator.SelectionSetRule.
func (rule OverlappingFieldsCanBeMerged) CheckSelectionSet(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	selectionSet ast.SelectionSet) {

	for _, conflict := range findConflictsWithinSelectionSet(ctx, parentType, selectionSet) {
		locations := make([]graphql.ErrorLocation, 0, len(conflict.fields1)+len(conflict.fields2))
		for _, field := range conflict.fields1 {
			locations = append(locations, graphql.ErrorLocationOfASTNode(field))
		}
		for _, field := range conflict.fields2 {
			locations = append(locations, graphql.ErrorLocationOfASTNode(field))
		}
		ctx.ReportError(fieldsConflictMessage(&conflict.reason), locations)
	}
}

// The comparisons below visit as few pairs as possible:
//
//  - Fields collected from one selection set are compared with each other only here, "within" the
//    set. Everything else compares fields "between" two sets.
//  - The collected fields are compared with each spread fragment, and the spread fragments are
//    compared with each other.
//  - Two overlapping fields that both have selection sets have their sub-selections compared
//    "between" each other the same way.

func findConflictsWithinSelectionSet(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	selectionSet ast.SelectionSet) []*fieldConflict {

	collected := ctx.CollectFields(parentType, selectionSet)

	result := collectConflictsWithin(ctx, collected)

	comparedFragments := map[string]bool{}
	for i, fragmentName := range collected.FragmentNames {
		result = append(result, collectConflictsBetweenFieldsAndFragment(
			ctx, comparedFragments, false, collected, fragmentName)...)

		for _, otherFragmentName := range collected.FragmentNames[i+1:] {
			result = append(result, collectConflictsBetweenFragments(
				ctx, false, fragmentName, otherFragmentName)...)
		}
	}

	return result
}

func collectConflictsWithin(ctx *validator.ValidationContext, collected *validator.CollectedFields) []*fieldConflict {
	var conflicts []*fieldConflict
	for _, responseKey := range collected.ResponseKeys {
		fields := collected.Fields[responseKey]
		for i, field := range fields {
			for _, otherField := range fields[i+1:] {
				// Fields within one collection are never mutually exclusive.
				if conflict := findConflict(ctx, false, responseKey, field, otherField); conflict != nil {
					conflicts = append(conflicts, conflict)
				}
			}
		}
	}
	return conflicts
}

func collectConflictsBetween(
	ctx *validator.ValidationContext,
	parentFieldsAreMutuallyExclusive bool,
	collected1 *validator.CollectedFields,
	collected2 *validator.CollectedFields) []*fieldConflict {

	var conflicts []*fieldConflict
	for _, responseKey := range collected1.ResponseKeys {
		fields2, exists := collected2.Fields[responseKey]
		if !exists {
			continue
		}
		for _, field1 := range collected1.Fields[responseKey] {
			for _, field2 := range fields2 {
				conflict := findConflict(ctx, parentFieldsAreMutuallyExclusive, responseKey, field1, field2)
				if conflict != nil {
					conflicts = append(conflicts, conflict)
				}
			}
		}
	}
	return conflicts
}

func collectConflictsBetweenFieldsAndFragment(
	ctx *validator.ValidationContext,
	comparedFragments map[string]bool,
	areMutuallyExclusive bool,
	collected *validator.CollectedFields,
	fragmentName string) []*fieldConflict {

	if comparedFragments[fragmentName] {
		return nil
	}
	comparedFragments[fragmentName] = true

	fragment := ctx.Fragment(fragmentName)
	if fragment == nil {
		return nil
	}

	fragmentFields := ctx.CollectFragmentFields(fragment)

	// A fragment's fields are not compared with themselves.
	if fragmentFields == collected {
		return nil
	}

	result := collectConflictsBetween(ctx, areMutuallyExclusive, collected, fragmentFields)

	for _, nestedFragmentName := range fragmentFields.FragmentNames {
		result = append(result, collectConflictsBetweenFieldsAndFragment(
			ctx, comparedFragments, areMutuallyExclusive, collected, nestedFragmentName)...)
	}

	return result
}

func collectConflictsBetweenFragments(
	ctx *validator.ValidationContext,
	areMutuallyExclusive bool,
	fragmentName1 string,
	fragmentName2 string) []*fieldConflict {

	if fragmentName1 == fragmentName2 {
		return nil
	}

	pairs := ctx.FragmentPairs()
	if pairs.Has(fragmentName1, fragmentName2, areMutuallyExclusive) {
		return nil
	}
	pairs.Add(fragmentName1, fragmentName2, areMutuallyExclusive)

	fragment1, fragment2 := ctx.Fragment(fragmentName1), ctx.Fragment(fragmentName2)
	if fragment1 == nil || fragment2 == nil {
		return nil
	}

	collected1 := ctx.CollectFragmentFields(fragment1)
	collected2 := ctx.CollectFragmentFields(fragment2)

	result := collectConflictsBetween(ctx, areMutuallyExclusive, collected1, collected2)

	for _, fragmentName := range collected2.FragmentNames {
		result = append(result, collectConflictsBetweenFragments(
			ctx, areMutuallyExclusive, fragmentName1, fragmentName)...)
	}
	for _, fragmentName := range collected1.FragmentNames {
		result = append(result, collectConflictsBetweenFragments(
			ctx, areMutuallyExclusive, fragmentName, fragmentName2)...)
	}

	return result
}

func findConflictsBetweenSubSelectionSets(
	ctx *validator.ValidationContext,
	areMutuallyExclusive bool,
	parentType1 graphql.Type,
	selectionSet1 ast.SelectionSet,
	parentType2 graphql.Type,
	selectionSet2 ast.SelectionSet) []*fieldConflict {

	collected1 := ctx.CollectFields(parentType1, selectionSet1)
	collected2 := ctx.CollectFields(parentType2, selectionSet2)

	result := collectConflictsBetween(ctx, areMutuallyExclusive, collected1, collected2)

	comparedFragments := map[string]bool{}
	for _, fragmentName := range collected2.FragmentNames {
		result = append(result, collectConflictsBetweenFieldsAndFragment(
			ctx, comparedFragments, areMutuallyExclusive, collected1, fragmentName)...)
	}

	comparedFragments = map[string]bool{}
	for _, fragmentName := range collected1.FragmentNames {
		result = append(result, collectConflictsBetweenFieldsAndFragment(
			ctx, comparedFragments, areMutuallyExclusive, collected2, fragmentName)...)
	}

	for _, fragmentName1 := range collected1.FragmentNames {
		for _, fragmentName2 := range collected2.FragmentNames {
			result = append(result, collectConflictsBetweenFragments(
				ctx, areMutuallyExclusive, fragmentName1, fragmentName2)...)
		}
	}

	return result
}

// findConflict compares two fields of the same response key, including their sub-fields.
func findConflict(
	ctx *validator.ValidationContext,
	parentFieldsAreMutuallyExclusive bool,
	responseKey string,
	field1 *validator.FieldInfo,
	field2 *validator.FieldInfo) *fieldConflict {

	var (
		parentType1 = field1.ParentType()
		parentType2 = field2.ParentType()
		node1       = field1.Node()
		node2       = field2.Node()
	)

	// Fields on two different object types never apply to the same value, so they may diverge.
	areMutuallyExclusive := parentFieldsAreMutuallyExclusive ||
		(parentType1 != parentType2 &&
			graphql.IsCompositeType(parentType1) &&
			graphql.IsCompositeType(parentType2))

	if !areMutuallyExclusive {
		if name1, name2 := node1.Name.Value(), node2.Name.Value(); name1 != name2 {
			return newFieldConflict(responseKey,
				fmt.Sprintf("%s and %s are different fields", name1, name2), node1, node2)
		}

		if !sameArguments(node1.Arguments, node2.Arguments) {
			return newFieldConflict(responseKey, "they have differing arguments", node1, node2)
		}
	}

	type1, type2 := field1.Type(), field2.Type()
	if type1 != nil && type2 != nil && doTypesConflict(type1, type2) {
		return newFieldConflict(responseKey,
			fmt.Sprintf("they return conflicting types %s and %s", type1, type2), node1, node2)
	}

	if len(node1.SelectionSet) > 0 && len(node2.SelectionSet) > 0 {
		var subType1, subType2 graphql.Type
		if t := graphql.NamedTypeOf(type1); t != nil {
			subType1 = t
		}
		if t := graphql.NamedTypeOf(type2); t != nil {
			subType2 = t
		}
		conflicts := findConflictsBetweenSubSelectionSets(
			ctx, areMutuallyExclusive, subType1, node1.SelectionSet, subType2, node2.SelectionSet)
		return subfieldConflicts(conflicts, responseKey, node1, node2)
	}

	return nil
}

func newFieldConflict(responseKey string, message string, node1 *ast.Field, node2 *ast.Field) *fieldConflict {
	return &fieldConflict{
		reason: conflictReason{
			responseKey: responseKey,
			message:     message,
		},
		fields1: []*ast.Field{node1},
		fields2: []*ast.Field{node2},
	}
}

// subfieldConflicts merges the conflicts found between sub-fields into one conflict of the parents.
func subfieldConflicts(conflicts []*fieldConflict, responseKey string, node1 *ast.Field, node2 *ast.Field) *fieldConflict {
	if len(conflicts) == 0 {
		return nil
	}

	result := &fieldConflict{
		reason: conflictReason{
			responseKey: responseKey,
			subReasons:  make([]*conflictReason, 0, len(conflicts)),
		},
		fields1: []*ast.Field{node1},
		fields2: []*ast.Field{node2},
	}
	for _, conflict := range conflicts {
		result.reason.subReasons = append(result.reason.subReasons, &conflict.reason)
		result.fields1 = append(result.fields1, conflict.fields1...)
		result.fields2 = append(result.fields2, conflict.fields2...)
	}
	return result
}

func sameArguments(arguments1 ast.Arguments, arguments2 ast.Arguments) bool {
	if len(arguments1) != len(arguments2) {
		return false
	}

	for _, argument1 := range arguments1 {
		var argument2 *ast.Argument
		for _, arg := range arguments2 {
			if arg.Name.Value() == argument1.Name.Value() {
				argument2 = arg
				break
			}
		}
		if argument2 == nil || !sameValue(argument1.Value, argument2.Value) {
			return false
		}
	}

	return true
}

// sameValue compares two values as written in the document. Variables are equal when they have the
// same name.
func sameValue(value1 ast.Value, value2 ast.Value) bool {
	switch value1 := value1.(type) {
	case ast.Variable:
		value2, ok := value2.(ast.Variable)
		return ok && value1.Name.Value() == value2.Name.Value()

	case ast.ListValue:
		value2, ok := value2.(ast.ListValue)
		if !ok || len(value1.Values) != len(value2.Values) {
			return false
		}
		for i := range value1.Values {
			if !sameValue(value1.Values[i], value2.Values[i]) {
				return false
			}
		}
		return true

	case ast.ObjectValue:
		value2, ok := value2.(ast.ObjectValue)
		if !ok || len(value1.Fields) != len(value2.Fields) {
			return false
		}
		for _, field1 := range value1.Fields {
			matched := false
			for _, field2 := range value2.Fields {
				if field1.Name.Value() == field2.Name.Value() {
					matched = sameValue(field1.Value, field2.Value)
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	}

	return reflect.TypeOf(value1) == reflect.TypeOf(value2) &&
		reflect.DeepEqual(value1.Interface(), value2.Interface())
}

// doTypesConflict returns true if no value could be of both types. Object types never conflict here;
// their fields are compared separately. List and NonNull wrappers must match.
func doTypesConflict(type1 graphql.Type, type2 graphql.Type) bool {
	switch type1 := type1.(type) {
	case *graphql.List:
		if type2, ok := type2.(*graphql.List); ok {
			return doTypesConflict(type1.ElementType(), type2.ElementType())
		}
		return true

	case *graphql.NonNull:
		if type2, ok := type2.(*graphql.NonNull); ok {
			return doTypesConflict(type1.InnerType(), type2.InnerType())
		}
		return true
	}

	if _, ok := type2.(graphql.WrappingType); ok {
		return true
	}

	if graphql.IsLeafType(type1) || graphql.IsLeafType(type2) {
		return type1 != type2
	}

	return false
}
