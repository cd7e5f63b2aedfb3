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

// SupportedOperationTypes rejects subscriptions and operations whose root type is not defined by
// the schema (e.g., a mutation against a schema without Mutation).
type SupportedOperationTypes struct{}

// CheckOperation implements validator.OperationRule.
func (rule SupportedOperationTypes) CheckOperation(ctx *validator.ValidationContext, operation *ast.OperationDefinition) {
	operationType := operation.OperationType()
	if operationType == ast.OperationTypeSubscription {
		ctx.ReportError(subscriptionNotSupportedMessage(), graphql.ErrorLocationOfASTNode(operation))
		return
	}

	if ctx.Schema().RootType(operationType) == nil {
		ctx.ReportError("Schema is not configured for "+string(operationType)+"s.",
			graphql.ErrorLocationOfASTNode(operation))
	}
}
