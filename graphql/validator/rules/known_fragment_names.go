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

// KnownFragmentNames implements the "Fragment spread target defined" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Fragment-spread-target-defined.
type KnownFragmentNames struct{}

// CheckFragmentSpread implements validator.FragmentSpreadRule.
func (rule KnownFragmentNames) CheckFragmentSpread(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	fragment *ast.FragmentDefinition,
	spread *ast.FragmentSpread) {

	if fragment == nil {
		ctx.ReportError(unknownFragmentMessage(spread.Name.Value()), graphql.ErrorLocationOfASTNode(spread.Name))
	}
}
