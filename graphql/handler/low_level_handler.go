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
	"context"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/executor"
)

// LLHandler creates a handler that is suit for serving GraphQL queries against a schema in a
// long-running process. It is useful as a low-level building block for building GraphQL services
// such as GraphQL web services.
type LLHandler struct {
	// Schema served by this handler
	schema *graphql.Schema

	// Cache for the prepared operations; nil when caching is disabled.
	cache OperationCache

	// Middlewares to be applied before executing a Request
	middlewares []RequestMiddleware
}

// LLConfig contains configuration to set up a LLHandler.
type LLConfig struct {
	// Schema to be working on
	Schema *graphql.Schema

	// OperationCache caches executor.PreparedOperation created from a query to save parsing efforts.
	// If not given, a LRUOperationCache with OperationCacheSize entries is created.
	OperationCache OperationCache

	// OperationCacheSize specifies the size of the default operation cache. It is ignored when
	// OperationCache is given. Default to 512.
	OperationCacheSize uint

	// Middlewares to be applied before executing a Request
	Middlewares []RequestMiddleware
}

// ErrMissingSchema is returned when creating a handler without schema.
var ErrMissingSchema = errors.New("handler: must specify a schema")

// NewLLHandler creates a LLHandler from given configuration.
func NewLLHandler(config *LLConfig) (*LLHandler, error) {
	// schema is required.
	schema := config.Schema
	if schema == nil {
		return nil, ErrMissingSchema
	}

	cache := config.OperationCache
	if cache == nil {
		size := config.OperationCacheSize
		if size == 0 {
			size = 512
		}

		var err error
		cache, err = NewLRUOperationCache(size)
		if err != nil {
			return nil, err
		}
	} else if _, isNop := cache.(NopOperationCache); isNop {
		cache = nil
	}

	return &LLHandler{
		schema:      schema,
		cache:       cache,
		middlewares: config.Middlewares,
	}, nil
}

// Schema returns handler.schema.
func (handler *LLHandler) Schema() *graphql.Schema {
	return handler.schema
}

// OperationCache returns handler.cache.
func (handler *LLHandler) OperationCache() OperationCache {
	return handler.cache
}

// Request contains parameter required by Serve.
type Request struct {
	// Context for executing the operation
	Ctx context.Context

	// The HTTP request from which this request was built; nil if the request didn't come from HTTP.
	HTTPRequest *http.Request

	// Operation to be executed
	Operation *executor.PreparedOperation

	// Params for executing the operation
	Params *executor.ExecuteParams
}

// RequestMiddleware applies changes on Request before its operation gets executed. It can be used
// to modify ExecuteParams in Request such as setting root values and/or supplied app-specific
// context.
type RequestMiddleware interface {
	// Apply modifies request. next specifies the next action to do after applying the middleware.
	Apply(request *Request, next *RequestMiddlewareNext)
}

// RequestMiddlewareFunc is an adapter to allow the use of ordinary functions as RequestMiddleware.
type RequestMiddlewareFunc func(request *Request, next *RequestMiddlewareNext)

// Apply implements RequestMiddleware by calling f(request, next).
func (f RequestMiddlewareFunc) Apply(request *Request, next *RequestMiddlewareNext) {
	f(request, next)
}

// RequestMiddlewareNext is provided to a RequestMiddleware to specify the next action to do.
type RequestMiddlewareNext struct {
	middlewares []RequestMiddleware

	// The index of middleware to be applied when Next is called.
	nextIndex int

	// The result after applying middlewares
	result interface{} /* Should be either *Request or *executor.ExecutionResult */
}

// Next continues applying the next middleware in the chain.
func (next *RequestMiddlewareNext) Next(request *Request) {
	switch next.result.(type) {
	case *Request:
		panic("calling Next multiple times is not allowed")
	case *executor.ExecutionResult:
		panic("cannot call Next after one of NextError or NextResult is called")
	case nil:
		/* Apply next middleware or return */
	default:
		panic(fmt.Errorf("unexpected result type: %T", next.result))
	}

	middlewares := next.middlewares
	if next.nextIndex >= len(middlewares) {
		// All middlewares has been applied.
		next.result = request
		return
	}

	// Take the next middleware to be applied.
	nextMiddleware := middlewares[next.nextIndex]
	next.nextIndex++
	nextMiddleware.Apply(request, next)

	if next.result == nil {
		panic(fmt.Errorf(`"%T" must end with one of Next, NextError or NextResult on return`,
			nextMiddleware))
	}
}

// NextError stops applying rest middlewares in the chain and sends an ExecutionResult that includes
// given error.
func (next *RequestMiddlewareNext) NextError(err error) {
	next.NextResult(&executor.ExecutionResult{
		Errors: graphql.ErrorsOf(err),
	})
}

// NextResult stops applying rest middlewares in the chain and sends the result.
func (next *RequestMiddlewareNext) NextResult(result *executor.ExecutionResult) {
	switch next.result.(type) {
	case *Request:
		panic("calling NextError or NextResult is not allowed on returning from Next")

	case *executor.ExecutionResult:
		panic("calling NextError or NextResult multiple times is not allowed")

	case nil:
		next.result = result

	default:
		panic(fmt.Errorf("unexpected result type: %T", next.result))
	}
}

// Serve executes the operation with given context and parameters after applying middlewares. The
// given request object must not be nil.
func (handler *LLHandler) Serve(request *Request) *executor.ExecutionResult {
	middlewares := handler.middlewares
	if len(middlewares) > 0 {
		next := RequestMiddlewareNext{
			middlewares: middlewares,
		}
		// Call Next to apply the middleware chain.
		next.Next(request)

		switch result := next.result.(type) {
		case *Request:
			request = result

		case *executor.ExecutionResult:
			return result

		default:
			panic(fmt.Errorf("unexpected result type: %T", next.result))
		}
	}

	return request.Operation.Execute(request.Ctx, *request.Params)
}

// AppContext returns a RequestMiddleware that supplies the given value as application context to
// every resolver.
func AppContext(appContext interface{}) RequestMiddleware {
	return RequestMiddlewareFunc(func(request *Request, next *RequestMiddlewareNext) {
		request.Params.AppContext = appContext
		next.Next(request)
	})
}

// ForbidMutationOverGET returns a RequestMiddleware that rejects mutation operations sent with GET
// requests. Mutations have side effects and GET is expected to be safe.
func ForbidMutationOverGET() RequestMiddleware {
	return RequestMiddlewareFunc(func(request *Request, next *RequestMiddlewareNext) {
		if request.HTTPRequest != nil &&
			request.HTTPRequest.Method == http.MethodGet &&
			request.Operation.RootType() == request.Operation.Schema().Mutation() {
			next.NextError(graphql.NewError(
				fmt.Sprintf("Can only perform a %s operation from a POST request.", request.Operation.Type()),
				[]graphql.ErrorLocation{graphql.ErrorLocationOfASTNode(request.Operation.Definition())}))
			return
		}
		next.Next(request)
	})
}
