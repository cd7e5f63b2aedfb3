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

// KnownArgumentNames implements the "Argument Names" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Argument-Names.
type KnownArgumentNames struct{}

func argumentNames(argDefs []graphql.Argument) []string {
	names := make([]string, len(argDefs))
	for i := range argDefs {
		names[i] = argDefs[i].Name()
	}
	return names
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// CheckField implements validator.FieldRule.
func (rule KnownArgumentNames) CheckField(ctx *validator.ValidationContext, field *validator.FieldInfo) {
	def := field.Def()
	if def == nil {
		return
	}

	knownNames := argumentNames(def.Args())
	for _, arg := range field.Node().Arguments {
		name := arg.Name.Value()
		if !containsString(knownNames, name) {
			ctx.ReportError(
				unknownArgMessage(name, field.Name(), field.ParentType().String(), util.SuggestionList(name, knownNames)),
				graphql.ErrorLocationOfASTNode(arg),
			)
		}
	}
}

// CheckDirective implements validator.DirectiveRule.
func (rule KnownArgumentNames) CheckDirective(
	ctx *validator.ValidationContext,
	def *graphql.Directive,
	directive *ast.Directive,
	location graphql.DirectiveLocation) {

	if def == nil {
		return
	}

	knownNames := argumentNames(def.Args())
	for _, arg := range directive.Arguments {
		name := arg.Name.Value()
		if !containsString(knownNames, name) {
			ctx.ReportError(
				unknownDirectiveArgMessage(name, def.Name(), util.SuggestionList(name, knownNames)),
				graphql.ErrorLocationOfASTNode(arg),
			)
		}
	}
}
