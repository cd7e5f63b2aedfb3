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

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// VariableValues coerces the raw inputs for the variables defined by an operation. All errors are
// collected instead of stopping at the first one.
//
// Reference: https://spec.graphql.org/June2018/#CoerceVariableValues()
func VariableValues(
	schema *graphql.Schema,
	definitions []*ast.VariableDefinition,
	inputs map[string]interface{}) (graphql.VariableValues, graphql.Errors) {

	var errs graphql.Errors
	if len(definitions) == 0 {
		return graphql.NoVariableValues(), errs
	}

	coercedValues := make(map[string]interface{}, len(definitions))
	for _, definition := range definitions {
		name := definition.Variable.Name.Value()
		location := graphql.ErrorLocationOfASTNode(definition)

		varType := schema.TypeFromAST(definition.Type)
		if varType == nil || !graphql.IsInputType(varType) {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used as an input type.`,
				name, definition.Type.String()), location, graphql.ErrKindCoercion)
			continue
		}

		input, hasValue := inputs[name]
		if !hasValue {
			if definition.DefaultValue != nil {
				value, err := CoerceFromAST(definition.DefaultValue, varType, graphql.NoVariableValues())
				if err != nil {
					errs.Emplace(fmt.Sprintf(`Variable "$%s" has invalid default value: %s`, name, messageOf(err)),
						location, err, graphql.ErrKindCoercion)
					continue
				}
				coercedValues[name] = value
			} else if graphql.IsNonNullType(varType) {
				errs.Emplace(fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`, name, varType),
					location, graphql.ErrKindCoercion)
			}
			continue
		}

		if input == nil && graphql.IsNonNullType(varType) {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`, name, varType),
				location, graphql.ErrKindCoercion)
			continue
		}

		value, err := CoerceValue(input, varType)
		if err != nil {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" got invalid value %s; %s`, name, graphql.Inspect(input), messageOf(err)),
				location, err, graphql.ErrKindCoercion)
			continue
		}
		coercedValues[name] = value
	}

	return graphql.NewVariableValues(coercedValues), errs
}
