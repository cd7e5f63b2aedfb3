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

// PossibleFragmentSpreads implements the "Fragment spread is possible" validation rule. Without
// interfaces and unions, a spread is possible only when its type condition is the parent type.
//
// See https://spec.graphql.org/June2018/#sec-Fragment-spread-is-possible.
type PossibleFragmentSpreads struct{}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule PossibleFragmentSpreads) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) {

	if parentType == nil || typeCondition == nil || !graphql.IsCompositeType(typeCondition) {
		return
	}
	if parentType != typeCondition {
		ctx.ReportError(typeIncompatibleAnonSpreadMessage(parentType.String(), typeCondition.String()),
			graphql.ErrorLocationOfASTNode(fragment))
	}
}

// CheckFragmentSpread implements validator.FragmentSpreadRule.
func (rule PossibleFragmentSpreads) CheckFragmentSpread(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	fragment *ast.FragmentDefinition,
	spread *ast.FragmentSpread) {

	if parentType == nil || fragment == nil {
		return
	}

	fragmentType := ctx.Schema().TypeFromName(fragment.TypeCondition.Name.Value())
	if fragmentType == nil || !graphql.IsCompositeType(fragmentType) {
		return
	}

	if parentType != graphql.Type(fragmentType) {
		ctx.ReportError(typeIncompatibleSpreadMessage(spread.Name.Value(), parentType.String(), fragmentType.String()),
			graphql.ErrorLocationOfASTNode(spread))
	}
}
