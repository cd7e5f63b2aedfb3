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

	"golang.org/x/sync/errgroup"

	"github.com/botobag/routes/graphql"
)

// parallelExecutor resolves root fields of a query on separate goroutines. Fields below the root
// are executed on the goroutine of their root field. Errors are reported in the order of root fields
// so the result doesn't depend on scheduling.
type parallelExecutor struct {
	common

	// Maximum number of root fields being resolved at the same time; No limit if it's not positive.
	maxConcurrency int
}

// Run implements executor.
func (e parallelExecutor) Run(c context.Context, ctx *ExecutionContext) *ExecutionResult {
	nodes, err := e.rootFields(ctx)
	if err != nil {
		return &ExecutionResult{
			Errors: graphql.ErrorsOf(err),
		}
	}

	var (
		rootType   = ctx.Operation().RootType()
		rootValue  = ctx.RootValue()
		object     = &ObjectResultValue{ExecutionNodes: nodes, FieldValues: make([]ResultNode, len(nodes))}
		fieldErrs  = make([]graphql.Errors, len(nodes))
		propagated = make([]bool, len(nodes))
	)

	if len(nodes) == 1 {
		// Don't bother spawning goroutine for a single field.
		propagated[0] = e.executeField(c, ctx, rootType, rootValue, nodes[0], graphql.ResponsePath{},
			&fieldErrs[0], &object.FieldValues[0]) != nil
	} else {
		var g errgroup.Group
		if e.maxConcurrency > 0 {
			g.SetLimit(e.maxConcurrency)
		}

		for i := range nodes {
			i := i
			g.Go(func() error {
				propagated[i] = e.executeField(c, ctx, rootType, rootValue, nodes[i], graphql.ResponsePath{},
					&fieldErrs[i], &object.FieldValues[i]) != nil
				return nil
			})
		}

		// Field errors are collected in fieldErrs; Go never returns error.
		_ = g.Wait()
	}

	var (
		errs graphql.Errors
		data = &ResultNode{
			Kind:  ResultKindObject,
			Value: object,
		}
	)

	for i := range nodes {
		errs.AppendErrors(fieldErrs[i])
		if propagated[i] {
			data = &ResultNode{}
		}
	}

	return &ExecutionResult{
		Data:   data,
		Errors: errs,
	}
}
