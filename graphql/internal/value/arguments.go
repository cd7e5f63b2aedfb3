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

// ArgumentValues prepares the argument values of a field or a directive from the argument
// definitions and the argument nodes in the document. node is used for locating errors.
//
// Reference: https://spec.graphql.org/June2018/#CoerceArgumentValues()
func ArgumentValues(
	argDefs []graphql.Argument,
	argNodes ast.Arguments,
	node ast.Node,
	variables graphql.VariableValues) (graphql.ArgumentValues, error) {

	if len(argDefs) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	argNodeMap := make(map[string]*ast.Argument, len(argNodes))
	for _, argNode := range argNodes {
		argNodeMap[argNode.Name.Value()] = argNode
	}

	coercedValues := make(map[string]interface{}, len(argDefs))
	for i := range argDefs {
		argDef := &argDefs[i]
		name := argDef.Name()
		argType := argDef.Type()
		argNode := argNodeMap[name]

		hasValue := argNode != nil
		if hasValue {
			if variable, ok := argNode.Value.(ast.Variable); ok {
				_, hasValue = variables.Lookup(variable.Name.Value())
			}
		}

		if !hasValue {
			if argDef.HasDefaultValue() {
				coercedValues[name] = argDef.DefaultValue()
			} else if graphql.IsNonNullType(argType) {
				if argNode == nil {
					return graphql.NoArgumentValues(), graphql.NewError(
						fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, name, argType),
						[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(node)}, graphql.ErrKindCoercion)
				}
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%s" was provided the variable "$%s" which was not provided a runtime value.`,
						name, argType, argNode.Value.(ast.Variable).Name.Value()),
					[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(argNode.Value)}, graphql.ErrKindCoercion)
			}
			continue
		}

		value, err := CoerceFromAST(argNode.Value, argType, variables)
		if err != nil {
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" has invalid value %s; %s`, name, printLiteral(argNode.Value), messageOf(err)),
				[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(argNode.Value)}, err, graphql.ErrKindCoercion)
		}
		coercedValues[name] = value
	}

	return graphql.NewArgumentValues(coercedValues), nil
}

// printLiteral formats a literal for error messages.
func printLiteral(node ast.Value) string {
	switch node := node.(type) {
	case ast.Variable:
		return "$" + node.Name.Value()
	case ast.EnumValue:
		return node.Value()
	case ast.IntValue:
		return node.String()
	case ast.FloatValue:
		return node.String()
	}
	return graphql.Inspect(node.Interface())
}

// DirectiveValues returns the argument values of the directive if it is applied in directives. The
// second value reports whether the directive is present.
func DirectiveValues(
	directive *graphql.Directive,
	directives ast.Directives,
	variables graphql.VariableValues) (graphql.ArgumentValues, bool, error) {

	for _, node := range directives {
		if node.Name.Value() == directive.Name() {
			args, err := ArgumentValues(directive.Args(), node.Arguments, node, variables)
			return args, true, err
		}
	}
	return graphql.NoArgumentValues(), false, nil
}
