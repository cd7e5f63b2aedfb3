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

// VariablesAreInputTypes implements the "Variables Are Input Types" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Variables-Are-Input-Types.
type VariablesAreInputTypes struct{}

// CheckOperation implements validator.OperationRule.
func (rule VariablesAreInputTypes) CheckOperation(ctx *validator.ValidationContext, operation *ast.OperationDefinition) {
	for _, definition := range operation.VariableDefinitions {
		// Unknown types are reported by KnownTypeNames.
		t := ctx.Schema().TypeFromAST(definition.Type)
		if t != nil && !graphql.IsInputType(t) {
			ctx.ReportError(nonInputTypeOnVarMessage(definition.Variable.Name.Value(), definition.Type.String()),
				graphql.ErrorLocationOfASTNode(definition.Type))
		}
	}
}
