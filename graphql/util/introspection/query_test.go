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

package introspection_test

import (
	"strings"

	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/parser"
	"github.com/botobag/routes/graphql/token"
	"github.com/botobag/routes/graphql/util/introspection"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Query", func() {
	parse := func(query string) ast.Document {
		document, err := parser.Parse(token.NewSource(query, "IntrospectionQuery"))
		Expect(err).ShouldNot(HaveOccurred())
		return document
	}

	It("builds a valid document", func() {
		document := parse(introspection.Query())
		Expect(document.Definitions).Should(HaveLen(4))
	})

	It("requests descriptions by default", func() {
		Expect(introspection.Query()).Should(ContainSubstring("description"))
		Expect(introspection.Query(introspection.OmitDescriptions())).ShouldNot(ContainSubstring("description"))
	})

	It("nests ofType to the requested depth", func() {
		Expect(strings.Count(introspection.Query(), "ofType")).Should(Equal(introspection.DefaultTypeRefDepth))

		query := introspection.Query(introspection.TypeRefDepth(2))
		Expect(strings.Count(query, "ofType")).Should(Equal(2))
		parse(query)
	})
})
