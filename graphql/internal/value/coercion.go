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

package value

import (
	"fmt"
	"reflect"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// CoerceValue coerces a Go value given in input variables (as decoded from JSON) into the internal
// value of type t.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Values
func CoerceValue(value interface{}, t graphql.Type) (interface{}, error) {
	return coerceValue(value, t, nil)
}

// pathString formats the location of a nested input value, such as " at value.list[1]".
func pathString(path []interface{}) string {
	if len(path) == 0 {
		return ""
	}
	s := " at value"
	for _, key := range path {
		switch key := key.(type) {
		case string:
			s += "." + key
		case int:
			s += fmt.Sprintf("[%d]", key)
		}
	}
	return s
}

func appendPath(path []interface{}, key interface{}) []interface{} {
	next := make([]interface{}, len(path), len(path)+1)
	copy(next, path)
	return append(next, key)
}

// messageOf returns the message of a graphql.Error or the error string of other errors.
func messageOf(err error) string {
	if e, ok := err.(*graphql.Error); ok {
		return e.Message
	}
	return err.Error()
}

func coerceValue(value interface{}, t graphql.Type, path []interface{}) (interface{}, error) {
	if nonNull, ok := t.(*graphql.NonNull); ok {
		if value == nil {
			return nil, graphql.NewCoercionError("Expected non-nullable type %s not to be null%s.", t, pathString(path))
		}
		return coerceValue(value, nonNull.InnerType(), path)
	}

	if value == nil {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.Scalar:
		result, err := t.CoerceVariableValue(value)
		if err != nil {
			return nil, graphql.NewError(fmt.Sprintf("Expected type %s%s; %s", t.Name(), pathString(path), messageOf(err)),
				err, graphql.ErrKindCoercion)
		}
		return result, nil

	case *graphql.Enum:
		result, err := t.CoerceVariableValue(value)
		if err != nil {
			return nil, graphql.NewError(fmt.Sprintf("Expected type %s%s; %s", t.Name(), pathString(path), messageOf(err)),
				err, graphql.ErrKindCoercion)
		}
		return result, nil

	case *graphql.List:
		v := reflect.ValueOf(value)
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			result := make([]interface{}, v.Len())
			for i := 0; i < v.Len(); i++ {
				item, err := coerceValue(v.Index(i).Interface(), t.ElementType(), appendPath(path, i))
				if err != nil {
					return nil, err
				}
				result[i] = item
			}
			return result, nil
		}
		// A single item is accepted as a list of one.
		item, err := coerceValue(value, t.ElementType(), path)
		if err != nil {
			return nil, err
		}
		return []interface{}{item}, nil

	case *graphql.InputObject:
		fields, ok := value.(map[string]interface{})
		if !ok {
			return nil, graphql.NewCoercionError("Expected type %s to be an object%s.", t.Name(), pathString(path))
		}

		result := make(map[string]interface{}, len(fields))
		for _, field := range t.Fields() {
			fieldValue, exists := fields[field.Name()]
			if !exists {
				if field.HasDefaultValue() {
					result[field.Name()] = field.DefaultValue()
				} else if graphql.IsNonNullType(field.Type()) {
					return nil, graphql.NewCoercionError(`Field "%s" of required type %s was not provided%s.`,
						field.Name(), field.Type(), pathString(path))
				}
				continue
			}

			coerced, err := coerceValue(fieldValue, field.Type(), appendPath(path, field.Name()))
			if err != nil {
				return nil, err
			}
			result[field.Name()] = coerced
		}

		for name := range fields {
			if t.Field(name) == nil {
				return nil, graphql.NewCoercionError(`Field "%s" is not defined by type %s%s.`, name, t.Name(), pathString(path))
			}
		}

		return result, nil
	}

	return nil, graphql.NewCoercionError("Unexpected input type %s%s.", t, pathString(path))
}

// CoerceFromAST produces an internal value of type t from a literal in the document. Variables in
// the literal are substituted with their (already coerced) values.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Values
func CoerceFromAST(node ast.Value, t graphql.Type, variables graphql.VariableValues) (interface{}, error) {
	if node == nil {
		return nil, graphql.NewCoercionError("No value given for %s.", t)
	}

	if variable, ok := node.(ast.Variable); ok {
		value, exists := variables.Lookup(variable.Name.Value())
		if !exists {
			return nil, graphql.NewCoercionError(`Variable "$%s" is not provided.`, variable.Name.Value())
		}
		if value == nil && graphql.IsNonNullType(t) {
			return nil, graphql.NewCoercionError(`Variable "$%s" of non-null type %s must not be null.`,
				variable.Name.Value(), t)
		}
		return value, nil
	}

	if nonNull, ok := t.(*graphql.NonNull); ok {
		if _, isNull := node.(ast.NullValue); isNull {
			return nil, graphql.NewCoercionError("Expected non-nullable type %s not to be null.", t)
		}
		return CoerceFromAST(node, nonNull.InnerType(), variables)
	}

	if _, isNull := node.(ast.NullValue); isNull {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.Scalar:
		return t.CoerceArgumentValue(node)

	case *graphql.Enum:
		return t.CoerceArgumentValue(node)

	case *graphql.List:
		list, ok := node.(ast.ListValue)
		if !ok {
			item, err := CoerceFromAST(node, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}

		result := make([]interface{}, len(list.Values))
		for i, itemNode := range list.Values {
			// A missing variable in a list item is treated as null.
			if variable, ok := itemNode.(ast.Variable); ok {
				if _, exists := variables.Lookup(variable.Name.Value()); !exists {
					if graphql.IsNonNullType(t.ElementType()) {
						return nil, graphql.NewCoercionError(`Variable "$%s" is not provided.`, variable.Name.Value())
					}
					continue
				}
			}
			item, err := CoerceFromAST(itemNode, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			result[i] = item
		}
		return result, nil

	case *graphql.InputObject:
		object, ok := node.(ast.ObjectValue)
		if !ok {
			return nil, graphql.NewCoercionError("Expected type %s to be an object.", t.Name())
		}

		fieldNodes := make(map[string]*ast.ObjectField, len(object.Fields))
		for _, fieldNode := range object.Fields {
			name := fieldNode.Name.Value()
			if t.Field(name) == nil {
				return nil, graphql.NewCoercionError(`Field "%s" is not defined by type %s.`, name, t.Name())
			}
			fieldNodes[name] = fieldNode
		}

		result := make(map[string]interface{}, len(object.Fields))
		for _, field := range t.Fields() {
			fieldNode, exists := fieldNodes[field.Name()]
			if exists {
				if variable, ok := fieldNode.Value.(ast.Variable); ok {
					if _, provided := variables.Lookup(variable.Name.Value()); !provided {
						exists = false
					}
				}
			}

			if !exists {
				if field.HasDefaultValue() {
					result[field.Name()] = field.DefaultValue()
				} else if graphql.IsNonNullType(field.Type()) {
					return nil, graphql.NewCoercionError(`Field "%s" of required type %s was not provided.`,
						field.Name(), field.Type())
				}
				continue
			}

			value, err := CoerceFromAST(fieldNode.Value, field.Type(), variables)
			if err != nil {
				return nil, err
			}
			result[field.Name()] = value
		}
		return result, nil
	}

	return nil, graphql.NewCoercionError("Unexpected input type %s.", t)
}
