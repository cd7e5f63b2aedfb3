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

package graphql_test

import (
	"github.com/cockroachdb/errors"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/parser"
	"github.com/botobag/routes/graphql/token"
	"github.com/botobag/routes/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func pathOf(keys ...interface{}) graphql.ResponsePath {
	var path graphql.ResponsePath
	for _, key := range keys {
		switch key := key.(type) {
		case string:
			path.AppendFieldName(key)
		case int:
			path.AppendIndex(key)
		}
	}
	return path
}

var _ = Describe("Error", func() {
	It("builds error from arguments", func() {
		err := graphql.NewError("Route was not found.",
			graphql.ErrorLocation{Line: 1, Column: 3},
			pathOf("route"),
			graphql.ErrorExtensions{"code": "NOT_FOUND"},
			graphql.Op("schema.getRoute"),
			graphql.ErrKindExecution,
		)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Route was not found."),
			testutil.LocationEqual(1, 3),
			testutil.PathEqual("route"),
			testutil.ExtensionsHaveKeyWithValue("code", "NOT_FOUND"),
			testutil.KindIs(graphql.ErrKindExecution),
		))
	})

	It("rejects unknown argument types", func() {
		err := graphql.NewError("message", 42)
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(Equal("unknown type int, value 42 in error call"))
		_, isGraphQLError := err.(*graphql.Error)
		Expect(isGraphQLError).Should(BeFalse())
	})

	It("inherits fields from the wrapped error", func() {
		inner := graphql.NewError("inner",
			graphql.ErrorLocation{Line: 2, Column: 5},
			pathOf("createRoute", 0, "id"),
			graphql.ErrorExtensions{"code": "BAD_INPUT"},
			graphql.ErrKindCoercion,
		)
		outer := graphql.WrapError(inner, "outer")
		Expect(outer).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("outer"),
			testutil.LocationEqual(2, 5),
			testutil.PathEqual("createRoute", 0, "id"),
			testutil.ExtensionsHaveKeyWithValue("code", "BAD_INPUT"),
			testutil.KindIs(graphql.ErrKindCoercion),
		))
	})

	It("pulls locations from syntax errors", func() {
		_, err := parser.Parse(token.NewSource("{ route(", ""))
		Expect(err).Should(HaveOccurred())

		wrapped := graphql.WrapErrorf(err, "cannot parse %s", "query")
		Expect(wrapped).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("cannot parse query"),
			testutil.LocationEqual(1, 9),
			testutil.KindIs(graphql.ErrKindSyntax),
		))
	})

	It("unwraps to the underlying error", func() {
		sentinel := errors.New("route not found")
		err := graphql.NewError("Route not found.", errors.Wrap(sentinel, "get route"))
		Expect(errors.Is(err, sentinel)).Should(BeTrue())

		var gqlErr *graphql.Error
		Expect(errors.As(graphql.WrapError(err, "outer"), &gqlErr)).Should(BeTrue())
		Expect(gqlErr.Message).Should(Equal("outer"))
	})

	It("prints readable message", func() {
		err := graphql.NewError("Route was not found.",
			graphql.Op("schema.getRoute"),
			graphql.ErrKindExecution,
			errors.New("store failure"),
		)
		Expect(err.Error()).Should(Equal("schema.getRoute: Route was not found.: execution error: store failure"))

		located := graphql.NewError("Bad field.", graphql.ErrorLocation{Line: 1, Column: 2}, pathOf("a", 1, "b"))
		Expect(located.Error()).Should(Equal("Bad field. at [{Line:1 Column:2}] for response field in the path a[1].b"))
	})

	It("serializes to JSON in response format", func() {
		err := graphql.NewError("Route was not found.",
			graphql.ErrorLocation{Line: 1, Column: 3},
			pathOf("routes", 1),
			graphql.ErrorExtensions{"code": "NOT_FOUND"},
			graphql.ErrKindExecution,
		)
		Expect(err).Should(testutil.SerializeToJSONAs(map[string]interface{}{
			"message": "Route was not found.",
			"locations": []interface{}{
				map[string]interface{}{"line": 1, "column": 3},
			},
			"path":       []interface{}{"routes", 1},
			"extensions": map[string]interface{}{"code": "NOT_FOUND"},
		}))
	})

	It("omits empty fields from JSON", func() {
		Expect(graphql.NewError("Something went wrong.")).Should(testutil.SerializeToJSONAs(
			map[string]interface{}{
				"message": "Something went wrong.",
			}))
	})
})

var _ = Describe("Errors", func() {
	It("starts with no errors", func() {
		Expect(graphql.NoErrors().HaveOccurred()).Should(BeFalse())
	})

	It("wraps plain errors when appending", func() {
		var errs graphql.Errors
		errs.Append(errors.New("plain"), graphql.NewError("graphql"))
		errs.Emplace("emplaced", graphql.ErrKindValidation)
		Expect(errs.HaveOccurred()).Should(BeTrue())
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(testutil.MessageEqual("plain")),
			testutil.MatchGraphQLError(testutil.MessageEqual("graphql")),
			testutil.MatchGraphQLError(
				testutil.MessageEqual("emplaced"),
				testutil.KindIs(graphql.ErrKindValidation),
			),
		))
		Expect(errs.Error()).Should(ContainSubstring("\ngraphql\nemplaced: validation error"))
	})

	It("builds from message and arguments", func() {
		errs := graphql.ErrorsOf("Must provide an operation.", graphql.ErrKindValidation)
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual("Must provide an operation."),
				testutil.KindIs(graphql.ErrKindValidation),
			),
		))

		var all graphql.Errors
		all.AppendErrors(errs, graphql.ErrorsOf(graphql.NewError("another")))
		Expect(all.Errors).Should(HaveLen(2))
	})
})

var _ = Describe("ResponsePath", func() {
	It("prints keys", func() {
		Expect(pathOf("routes", 0, "userId").String()).Should(Equal("routes[0].userId"))
		Expect(pathOf().Empty()).Should(BeTrue())
	})

	It("clones keys", func() {
		path := pathOf("route")
		clone := path.Clone()
		clone.AppendFieldName("id")
		Expect(path.Keys()).Should(Equal([]interface{}{"route"}))
		Expect(clone.Keys()).Should(Equal([]interface{}{"route", "id"}))
	})
})
