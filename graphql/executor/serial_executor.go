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

package executor

import (
	"context"

	"github.com/botobag/routes/graphql"
)

// serialExecutor executes root fields one after another in the order in which they appear in the
// selection set. It is used for mutations [0].
//
// [0]: https://spec.graphql.org/June2018/#sec-Mutation
type serialExecutor struct {
	common
}

// Run implements executor.
func (e serialExecutor) Run(c context.Context, ctx *ExecutionContext) *ExecutionResult {
	nodes, err := e.rootFields(ctx)
	if err != nil {
		return &ExecutionResult{
			Errors: graphql.ErrorsOf(err),
		}
	}

	var (
		errs graphql.Errors
		data = &ResultNode{}
	)

	object, err := e.executeFields(c, ctx, ctx.Operation().RootType(), ctx.RootValue(), nodes, graphql.ResponsePath{}, &errs)
	if err == nil {
		data.Kind = ResultKindObject
		data.Value = object
	}

	return &ExecutionResult{
		Data:   data,
		Errors: errs,
	}
}
