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

// NoUnusedFragments implements the "Fragments must be used" validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Fragments-Must-Be-Used.
type NoUnusedFragments struct{}

// CheckDocument implements validator.DocumentRule.
func (rule NoUnusedFragments) CheckDocument(ctx *validator.ValidationContext) {
	used := map[*ast.FragmentDefinition]bool{}
	for _, operation := range ctx.Operations() {
		for _, fragment := range ctx.RecursivelyReferencedFragments(operation) {
			used[fragment] = true
		}
	}

	for _, definition := range ctx.Document().Definitions {
		if fragment, ok := definition.(*ast.FragmentDefinition); ok && !used[fragment] {
			// Duplicates are reported by UniqueFragmentNames.
			if ctx.Fragment(fragment.Name.Value()) == fragment {
				ctx.ReportError(unusedFragmentMessage(fragment.Name.Value()), graphql.ErrorLocationOfASTNode(fragment))
			}
		}
	}
}
