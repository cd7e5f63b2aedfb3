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

package handler

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/executor"
)

// ErrorPresenter presents an error to a http.ResponseWriter.
type ErrorPresenter interface {
	// Write sends the given error to w.
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// Errors by DefaultRequestBuilder.Build

// ErrEmptyQuery describes an error when an empty query is not allowed.
type ErrEmptyQuery struct {
	Request *http.Request
}

// Error implements Go's error interface.
func (err ErrEmptyQuery) Error() string {
	return "Must provide query string."
}

// ErrParseQuery describes an invalid GraphQL query document that failed parsing.
type ErrParseQuery struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Err           error
}

// Error implements Go's error interface.
func (err *ErrParseQuery) Error() string {
	return "invalid query: " + err.Err.Error()
}

// Unwrap returns the syntax error.
func (err *ErrParseQuery) Unwrap() error {
	return err.Err
}

// ErrPrepare indicates a failure in prepare a PreparedOperation for execution for a query.
type ErrPrepare struct {
	Request       *http.Request
	ParsedRequest *HTTPRequest
	Document      ast.Document
	Errs          graphql.Errors
}

// Error implements Go's error interface.
func (err *ErrPrepare) Error() string {
	var buf strings.Builder
	buf.WriteString("cannot prepare executable operation for query because of following error(s):")
	for _, e := range err.Errs.Errors {
		buf.WriteString("\n\t")
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// DefaultErrorPresenter implements an ErrorPresenter which is default used by HTTP handler when no
// error presenter is provided. Errors are presented as a GraphQL response that contains only
// "errors" so clients can handle them uniformly.
type DefaultErrorPresenter struct {
	// ResultPresenter is used to present the errors in an ExecutionResult.
	ResultPresenter ResultPresenter
}

// Write implements ErrorPresenter.
func (presenter DefaultErrorPresenter) Write(w http.ResponseWriter, r *http.Request, err error) {
	var errs graphql.Errors

	var (
		parseQueryErr *ErrParseQuery
		prepareErr    *ErrPrepare
	)
	switch {
	case errors.As(err, &prepareErr):
		errs = prepareErr.Errs

	case errors.As(err, &parseQueryErr):
		// Syntax errors carry locations in the query.
		errs.Append(parseQueryErr.Err)

	default:
		errs.Emplace(err.Error())
	}

	presenter.ResultPresenter.Write(w, r, nil, &executor.ExecutionResult{
		Errors: errs,
	})
}
