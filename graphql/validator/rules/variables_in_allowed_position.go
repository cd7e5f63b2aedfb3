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
)

// VariablesInAllowedPosition implements the "All Variable Usages are Allowed" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-All-Variable-Usages-are-Allowed.
type VariablesInAllowedPosition struct{}

// CheckDocument implements validator.DocumentRule.
func (rule VariablesInAllowedPosition) CheckDocument(ctx *validator.ValidationContext) {
	schema := ctx.Schema()
	for _, operation := range ctx.Operations() {
		definitions := map[string]*ast.VariableDefinition{}
		for _, definition := range operation.VariableDefinitions {
			definitions[definition.Variable.Name.Value()] = definition
		}

		for _, usage := range ctx.RecursiveVariableUsages(operation) {
			name := usage.Node.Name.Value()
			definition := definitions[name]
			if definition == nil || usage.Type == nil {
				continue
			}

			varType := schema.TypeFromAST(definition.Type)
			if varType == nil {
				continue
			}

			if !allowedVariableUsage(varType, definition.DefaultValue, usage.Type) {
				ctx.ReportError(badVarPosMessage(name, varType.String(), usage.Type.String()),
					[]graphql.ErrorLocation{
						graphql.ErrorLocationOfASTNode(definition),
						graphql.ErrorLocationOfASTNode(usage.Node),
					})
			}
		}
	}
}

// allowedVariableUsage returns true if a variable of varType can be used where locationType is
// expected. A nullable variable with a non-null default value may flow into a non-null position.
func allowedVariableUsage(varType graphql.Type, defaultValue ast.Value, locationType graphql.Type) bool {
	if nonNullLocation, ok := locationType.(*graphql.NonNull); ok && !graphql.IsNonNullType(varType) {
		_, nullDefault := defaultValue.(ast.NullValue)
		if defaultValue == nil || nullDefault {
			return false
		}
		return graphql.IsTypeSubTypeOf(varType, nonNullLocation.InnerType())
	}
	return graphql.IsTypeSubTypeOf(varType, locationType)
}
