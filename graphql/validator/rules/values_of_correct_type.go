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
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/validator"
	"github.com/botobag/routes/internal/util"
)

// ValuesOfCorrectType implements the "Values of Correct Type" and the "Input Object Field
// Uniqueness" validation rules. Variables are checked by VariablesInAllowedPosition instead.
//
// See https://spec.graphql.org/June2018/#sec-Values-of-Correct-Type.
type ValuesOfCorrectType struct{}

// CheckValue implements validator.ValueRule.
func (rule ValuesOfCorrectType) CheckValue(ctx *validator.ValidationContext, expectedType graphql.Type, value ast.Value) {
	if expectedType == nil {
		return
	}
	checkValue(ctx, expectedType, value)
}

func printValue(value ast.Value) string {
	switch value := value.(type) {
	case ast.IntValue:
		return value.String()
	case ast.FloatValue:
		return value.String()
	case ast.EnumValue:
		return value.Value()
	case ast.Variable:
		return "$" + value.Name.Value()
	}
	return graphql.Inspect(value.Interface())
}

func checkValue(ctx *validator.ValidationContext, expectedType graphql.Type, value ast.Value) {
	if _, ok := value.(ast.Variable); ok {
		return
	}

	if nonNull, ok := expectedType.(*graphql.NonNull); ok {
		if _, isNull := value.(ast.NullValue); isNull {
			ctx.ReportError(badValueMessage(expectedType.String(), "null", ""), graphql.ErrorLocationOfASTNode(value))
			return
		}
		checkValue(ctx, nonNull.InnerType(), value)
		return
	}

	if _, isNull := value.(ast.NullValue); isNull {
		return
	}

	switch t := expectedType.(type) {
	case *graphql.List:
		if list, ok := value.(ast.ListValue); ok {
			for _, item := range list.Values {
				checkValue(ctx, t.ElementType(), item)
			}
			return
		}
		checkValue(ctx, t.ElementType(), value)

	case *graphql.InputObject:
		object, ok := value.(ast.ObjectValue)
		if !ok {
			ctx.ReportError(badValueMessage(t.Name(), printValue(value), ""), graphql.ErrorLocationOfASTNode(value))
			return
		}

		seen := map[string]*ast.ObjectField{}
		for _, field := range object.Fields {
			name := field.Name.Value()
			if first, exists := seen[name]; exists {
				ctx.ReportError(duplicateInputFieldMessage(name), []graphql.ErrorLocation{
					graphql.ErrorLocationOfASTNode(first.Name),
					graphql.ErrorLocationOfASTNode(field.Name),
				})
				continue
			}
			seen[name] = field

			fieldDef := t.Field(name)
			if fieldDef == nil {
				fieldNames := make([]string, len(t.Fields()))
				for i, f := range t.Fields() {
					fieldNames[i] = f.Name()
				}
				ctx.ReportError(unknownFieldMessage(t.Name(), name, util.SuggestionList(name, fieldNames)),
					graphql.ErrorLocationOfASTNode(field))
				continue
			}
			checkValue(ctx, fieldDef.Type(), field.Value)
		}

		for _, fieldDef := range t.Fields() {
			if _, given := seen[fieldDef.Name()]; !given && graphql.IsNonNullType(fieldDef.Type()) && !fieldDef.HasDefaultValue() {
				ctx.ReportError(requiredFieldMessage(t.Name(), fieldDef.Name(), fieldDef.Type().String()),
					graphql.ErrorLocationOfASTNode(value))
			}
		}

	case *graphql.Scalar:
		if containsVariable(value) {
			return
		}
		if _, err := t.CoerceArgumentValue(value); err != nil {
			ctx.ReportError(badValueMessage(t.Name(), printValue(value), reasonOf(err)), graphql.ErrorLocationOfASTNode(value))
		}

	case *graphql.Enum:
		if _, err := t.CoerceArgumentValue(value); err != nil {
			ctx.ReportError(badValueMessage(t.Name(), printValue(value), enumReason(t, value)), graphql.ErrorLocationOfASTNode(value))
		}
	}
}

// containsVariable returns true if a variable appears anywhere in value.
func containsVariable(value ast.Value) bool {
	switch value := value.(type) {
	case ast.Variable:
		return true
	case ast.ListValue:
		for _, item := range value.Values {
			if containsVariable(item) {
				return true
			}
		}
	case ast.ObjectValue:
		for _, field := range value.Fields {
			if containsVariable(field.Value) {
				return true
			}
		}
	}
	return false
}

func reasonOf(err error) string {
	if e, ok := err.(*graphql.Error); ok {
		return e.Message
	}
	return err.Error()
}

func enumReason(enum *graphql.Enum, value ast.Value) string {
	var input string
	switch value := value.(type) {
	case ast.EnumValue:
		input = value.Value()
	case ast.StringValue:
		input = value.Value()
	default:
		return ""
	}

	names := make([]string, len(enum.Values()))
	for i, v := range enum.Values() {
		names[i] = v.Name()
	}
	if suggestions := util.SuggestionList(input, names); len(suggestions) > 0 {
		return "Did you mean the enum value " + util.OrList(suggestions, false) + "?"
	}
	return ""
}
