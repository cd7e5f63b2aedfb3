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
	"sort"

	"github.com/botobag/routes/graphql"

	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func sortedCopy(s []string) []string {
	sorted := append([]string(nil), s...)
	sort.Strings(sorted)
	return sorted
}

type stringer struct{}

func (stringer) String() string { return "<stringer>" }

var _ = DescribeTable("Inspect",
	func(value interface{}, expected string) {
		Expect(graphql.Inspect(value)).Should(Equal(expected))
	},
	Entry("nil", nil, "null"),
	Entry("string", "route", `"route"`),
	Entry("integer", 42, "42"),
	Entry("boolean", true, "true"),
	Entry("nil pointer", (*int)(nil), "null"),
	Entry("stringer", stringer{}, "<stringer>"),
	Entry("list", []interface{}{1, "a", nil}, `[1, "a", null]`),
	Entry("map with sorted keys", map[string]interface{}{"b": 2, "a": "x"}, `{a: "x", b: 2}`),
	Entry("deep list", []interface{}{[]interface{}{[]interface{}{[]interface{}{1}}}}, "[[[[Array]]]]"),
)
