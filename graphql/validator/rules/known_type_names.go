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

// KnownTypeNames checks that the types named in variable definitions and type conditions are
// defined by the schema.
//
// See https://spec.graphql.org/June2018/#sec-Fragment-Spread-Type-Existence.
type KnownTypeNames struct{}

func namedTypeOfAST(t ast.Type) ast.NamedType {
	for {
		switch node := t.(type) {
		case ast.NamedType:
			return node
		case ast.ListType:
			t = node.ItemType
		case ast.NonNullType:
			t = node.Type
		default:
			return ast.NamedType{}
		}
	}
}

func checkKnownType(ctx *validator.ValidationContext, namedType ast.NamedType) {
	name := namedType.Name.Value()
	if ctx.Schema().TypeFromName(name) != nil {
		return
	}

	types := ctx.Schema().Types()
	typeNames := make([]string, 0, len(types))
	for _, t := range types {
		if !graphql.IsIntrospectionType(t) {
			typeNames = append(typeNames, t.Name())
		}
	}
	ctx.ReportError(unknownTypeMessage(name, util.SuggestionList(name, typeNames)),
		graphql.ErrorLocationOfASTNode(namedType))
}

// CheckOperation implements validator.OperationRule.
func (rule KnownTypeNames) CheckOperation(ctx *validator.ValidationContext, operation *ast.OperationDefinition) {
	for _, definition := range operation.VariableDefinitions {
		checkKnownType(ctx, namedTypeOfAST(definition.Type))
	}
}

// CheckFragment implements validator.FragmentRule.
func (rule KnownTypeNames) CheckFragment(ctx *validator.ValidationContext, fragment *ast.FragmentDefinition) {
	checkKnownType(ctx, fragment.TypeCondition)
}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule KnownTypeNames) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) {

	if fragment.HasTypeCondition() {
		checkKnownType(ctx, fragment.TypeCondition)
	}
}
