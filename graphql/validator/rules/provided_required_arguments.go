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

// ProvidedRequiredArguments implements the "Required Arguments" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Required-Arguments.
type ProvidedRequiredArguments struct{}

// missingArguments returns the required arguments in argDefs that are not given in args.
func missingArguments(argDefs []graphql.Argument, args ast.Arguments) []*graphql.Argument {
	var missing []*graphql.Argument
	for i := range argDefs {
		argDef := &argDefs[i]
		if !graphql.IsRequiredArgument(argDef) {
			continue
		}

		provided := false
		for _, arg := range args {
			if arg.Name.Value() == argDef.Name() {
				provided = true
				break
			}
		}
		if !provided {
			missing = append(missing, argDef)
		}
	}
	return missing
}

// CheckField implements validator.FieldRule.
func (rule ProvidedRequiredArguments) CheckField(ctx *validator.ValidationContext, field *validator.FieldInfo) {
	def := field.Def()
	if def == nil {
		return
	}

	for _, argDef := range missingArguments(def.Args(), field.Node().Arguments) {
		ctx.ReportError(missingFieldArgMessage(field.Name(), argDef.Name(), argDef.Type().String()),
			graphql.ErrorLocationOfASTNode(field.Node()))
	}
}

// CheckDirective implements validator.DirectiveRule.
func (rule ProvidedRequiredArguments) CheckDirective(
	ctx *validator.ValidationContext,
	def *graphql.Directive,
	directive *ast.Directive,
	location graphql.DirectiveLocation) {

	if def == nil {
		return
	}

	for _, argDef := range missingArguments(def.Args(), directive.Arguments) {
		ctx.ReportError(missingDirectiveArgMessage(def.Name(), argDef.Name(), argDef.Type().String()),
			graphql.ErrorLocationOfASTNode(directive))
	}
}
