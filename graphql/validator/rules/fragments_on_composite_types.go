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

// FragmentsOnCompositeTypes implements the "Fragments On Composite Types" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Fragments-On-Composite-Types.
type FragmentsOnCompositeTypes struct{}

// CheckFragment implements validator.FragmentRule.
func (rule FragmentsOnCompositeTypes) CheckFragment(ctx *validator.ValidationContext, fragment *ast.FragmentDefinition) {
	t := ctx.Schema().TypeFromName(fragment.TypeCondition.Name.Value())
	if t != nil && !graphql.IsCompositeType(t) {
		ctx.ReportError(fragmentOnNonCompositeMessage(fragment.Name.Value(), fragment.TypeCondition.String()),
			graphql.ErrorLocationOfASTNode(fragment.TypeCondition))
	}
}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule FragmentsOnCompositeTypes) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) {

	if fragment.HasTypeCondition() && typeCondition != nil && !graphql.IsCompositeType(typeCondition) {
		ctx.ReportError(inlineFragmentOnNonCompositeMessage(fragment.TypeCondition.String()),
			graphql.ErrorLocationOfASTNode(fragment.TypeCondition))
	}
}
