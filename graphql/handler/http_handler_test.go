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

package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/executor"
	"github.com/botobag/routes/graphql/handler"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type countingCache struct {
	handler.OperationCache
	hits int
}

func (cache *countingCache) Get(key string) (*executor.PreparedOperation, bool) {
	operation, ok := cache.OperationCache.Get(key)
	if ok {
		cache.hits++
	}
	return operation, ok
}

var _ = Describe("HTTP Handler", func() {
	var (
		schema *graphql.Schema
		echoed []string
	)

	BeforeEach(func() {
		echoed = nil

		schema = graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"hello": {
						Type: graphql.String(),
						Args: graphql.ArgumentConfigMap{
							"name": {
								Type:         graphql.String(),
								DefaultValue: "world",
							},
						},
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							return "Hello, " + info.Args().Get("name").(string), nil
						}),
					},
					"appContext": {
						Type: graphql.String(),
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							return info.AppContext(), nil
						}),
					},
					"failure": {
						Type: graphql.String(),
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							return nil, graphql.NewError("failed")
						}),
					},
				},
			}),
			Mutation: graphql.MustNewObject(&graphql.ObjectConfig{
				Name: "Mutation",
				Fields: graphql.Fields{
					"echo": {
						Type: graphql.String(),
						Args: graphql.ArgumentConfigMap{
							"value": {
								Type: graphql.MustNewNonNullOf(graphql.String()),
							},
						},
						Resolver: graphql.FieldResolverFunc(func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
							value := info.Args().Get("value").(string)
							echoed = append(echoed, value)
							return value, nil
						}),
					},
				},
			}),
		})
	})

	serve := func(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	postJSON := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	It("requires a schema", func() {
		_, err := handler.New(nil)
		Expect(err).Should(MatchError(handler.ErrMissingSchema))
	})

	It("serves POST request with JSON body", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{
			"query": "query Greet($name: String) { hello(name: $name) }",
			"operationName": "Greet",
			"variables": {"name": "Alice"}
		}`))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).Should(Equal("application/json"))
		Expect(w.Body.String()).Should(MatchJSON(`{"data": {"hello": "Hello, Alice"}}`))
	})

	It("serves GET request with query string", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		r := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape("{ hello }"), nil)
		w := serve(h, r)
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{"data": {"hello": "Hello, world"}}`))
	})

	It("serves POST request with application/graphql body", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{ hello(name: "Bob") }`))
		r.Header.Set("Content-Type", "application/graphql")
		w := serve(h, r)
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{"data": {"hello": "Hello, Bob"}}`))
	})

	It("serves POST request with form body", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		form := url.Values{}
		form.Set("query", `mutation { echo(value: "form") }`)
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := serve(h, r)
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{"data": {"echo": "form"}}`))
		Expect(echoed).Should(Equal([]string{"form"}))
	})

	It("responds 400 with errors for syntax error", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ hello"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Syntax Error: Expected Name, found <EOF>",
				"locations": [{"line": 1, "column": 8}]
			}]
		}`))
	})

	It("responds 400 with errors for validation error", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ unknown }"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Cannot query field \"unknown\" on type \"Query\".",
				"locations": [{"line": 1, "column": 3}]
			}]
		}`))
	})

	It("responds 400 when execution raised errors", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ hello failure }"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "failed",
				"locations": [{"line": 1, "column": 9}],
				"path": ["failure"]
			}],
			"data": {"hello": "Hello, world", "failure": null}
		}`))
	})

	It("responds 400 for malformed body", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		var logs bytes.Buffer
		r := postJSON(`{"query": nul`)
		r = r.WithContext(zerolog.New(&logs).WithContext(r.Context()))

		w := serve(h, r)
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{"errors": [{"message": "request body is invalid JSON"}]}`))

		// The decoder diagnostics only go to the request log.
		Expect(logs.String()).Should(ContainSubstring(`"message":"rejected GraphQL request"`))
		Expect(logs.String()).Should(ContainSubstring(`"detail":`))
	})

	It("responds 400 for missing query", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{"errors": [{"message": "Must provide query string."}]}`))
	})

	It("limits body size", func() {
		h, err := handler.New(schema, handler.MaxBodySize(8))
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ hello }"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(ContainSubstring("request body is too large"))
	})

	It("rejects mutation over GET", func() {
		h, err := handler.New(schema)
		Expect(err).ShouldNot(HaveOccurred())

		r := httptest.NewRequest(http.MethodGet, "/graphql?query="+url.QueryEscape(`mutation { echo(value: "x") }`), nil)
		w := serve(h, r)
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{
			"errors": [{
				"message": "Can only perform a mutation operation from a POST request.",
				"locations": [{"line": 1, "column": 1}]
			}]
		}`))
		Expect(echoed).Should(BeEmpty())
	})

	It("supplies app context through middleware", func() {
		h, err := handler.New(schema, handler.Middlewares(handler.AppContext("injected")))
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ appContext }"}`))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(w.Body.String()).Should(MatchJSON(`{"data": {"appContext": "injected"}}`))
	})

	It("can short-circuit request in middleware", func() {
		h, err := handler.New(schema, handler.Middlewares(
			handler.RequestMiddlewareFunc(func(request *handler.Request, next *handler.RequestMiddlewareNext) {
				next.NextError(graphql.NewError("denied"))
			})))
		Expect(err).ShouldNot(HaveOccurred())

		w := serve(h, postJSON(`{"query": "{ hello }"}`))
		Expect(w.Code).Should(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).Should(MatchJSON(`{"errors": [{"message": "denied"}]}`))
	})

	It("reuses prepared operations", func() {
		lru, err := handler.NewLRUOperationCache(4)
		Expect(err).ShouldNot(HaveOccurred())
		cache := &countingCache{OperationCache: lru}

		h, err := handler.New(schema, handler.OverrideOperationCache(cache))
		Expect(err).ShouldNot(HaveOccurred())

		for i := 0; i < 3; i++ {
			w := serve(h, postJSON(`{"query": "{ hello }"}`))
			Expect(w.Code).Should(Equal(http.StatusOK))
		}
		Expect(cache.hits).Should(Equal(2))
		Expect(lru.Len()).Should(Equal(1))

		// Same query with another operation name is another entry.
		w := serve(h, postJSON(`{"query": "query A { hello } query B { hello }", "operationName": "A"}`))
		Expect(w.Code).Should(Equal(http.StatusOK))
		w = serve(h, postJSON(`{"query": "query A { hello } query B { hello }", "operationName": "B"}`))
		Expect(w.Code).Should(Equal(http.StatusOK))
		Expect(lru.Len()).Should(Equal(3))
	})
})
