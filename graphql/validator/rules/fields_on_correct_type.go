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
	"github.com/botobag/routes/graphql/validator"
	"github.com/botobag/routes/internal/util"
)

// FieldsOnCorrectType implements the "Field Selections on Objects, Interfaces, and Unions Types"
// validation rule.
//
// See https://spec.graphql.org/June2018/#sec-Field-Selections-on-Objects-Interfaces-and-Unions-Types.
type FieldsOnCorrectType struct{}

// CheckField implements validator.FieldRule.
func (rule FieldsOnCorrectType) CheckField(ctx *validator.ValidationContext, field *validator.FieldInfo) {
	parentType := field.ParentType()
	if parentType == nil || field.Def() != nil {
		return
	}

	// Leaf types have no fields; ScalarLeafs reports selections on them.
	object, ok := parentType.(*graphql.Object)
	if !ok {
		return
	}

	fieldName := field.Name()
	ctx.ReportError(
		undefinedFieldMessage(fieldName, object.Name(), util.SuggestionList(fieldName, object.Fields().SortedNames())),
		graphql.ErrorLocationOfASTNode(field.Node()),
	)
}
