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

package validator

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// Validate checks the document against the schema with the standard rules. It returns all errors
// found; an empty Errors means the document is valid.
//
// Reference: https://spec.graphql.org/June2018/#sec-Validation
func Validate(schema *graphql.Schema, document ast.Document) graphql.Errors {
	return validate(schema, document, StandardRules())
}

// ValidateWithRules runs the given rules on the document. Each rule must implement at least one of
// the rule interfaces in this package. No validation is done if no rules are given.
func ValidateWithRules(schema *graphql.Schema, document ast.Document, rs ...interface{}) graphql.Errors {
	if len(rs) == 0 {
		return graphql.NoErrors()
	}
	return validate(schema, document, buildRules(rs...))
}

func validate(schema *graphql.Schema, document ast.Document, rules *rules) graphql.Errors {
	ctx := newValidationContext(schema, document, rules)
	walk(ctx)
	for _, rule := range rules.documentRules {
		rule.CheckDocument(ctx)
	}
	return ctx.errs
}
