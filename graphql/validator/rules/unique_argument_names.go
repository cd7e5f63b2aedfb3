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

// UniqueArgumentNames implements the "Argument Uniqueness" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Argument-Uniqueness.
type UniqueArgumentNames struct{}

func checkUniqueArguments(ctx *validator.ValidationContext, args ast.Arguments) {
	seen := make(map[string]*ast.Argument, len(args))
	for _, arg := range args {
		name := arg.Name.Value()
		if first, exists := seen[name]; exists {
			ctx.ReportError(duplicateArgMessage(name), []graphql.ErrorLocation{
				graphql.ErrorLocationOfASTNode(first.Name),
				graphql.ErrorLocationOfASTNode(arg.Name),
			})
			continue
		}
		seen[name] = arg
	}
}

// CheckField implements validator.FieldRule.
func (rule UniqueArgumentNames) CheckField(ctx *validator.ValidationContext, field *validator.FieldInfo) {
	checkUniqueArguments(ctx, field.Node().Arguments)
}

// CheckDirective implements validator.DirectiveRule.
func (rule UniqueArgumentNames) CheckDirective(
	ctx *validator.ValidationContext,
	def *graphql.Directive,
	directive *ast.Directive,
	location graphql.DirectiveLocation) {

	checkUniqueArguments(ctx, directive.Arguments)
}
