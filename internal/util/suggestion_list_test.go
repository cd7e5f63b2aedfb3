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

package util_test

import (
	"github.com/botobag/routes/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SuggestionList", func() {
	It("returns results when input is empty", func() {
		Expect(util.SuggestionList("", []string{"a"})).Should(Equal([]string{"a"}))
	})

	It("returns empty array when there are no options", func() {
		Expect(util.SuggestionList("input", []string{""})).Should(BeEmpty())
		Expect(util.SuggestionList("input", nil)).Should(BeEmpty())
	})

	It("returns options sorted based on similarity", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ab", "abc"})).Should(Equal([]string{"abc", "ab"}))
	})

	It("considers case changes as a single edit", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ABC"})).Should(Equal([]string{"ABC"}))
	})

	It("suggests close field names", func() {
		Expect(util.SuggestionList("rout", []string{"route", "__schema", "__type"})).Should(Equal([]string{"route"}))
	})
})

var _ = Describe("OrList", func() {
	It("prints a single item", func() {
		Expect(util.OrList([]string{"A"}, false)).Should(Equal("A"))
	})

	It("prints two items without comma", func() {
		Expect(util.OrList([]string{"A", "B"}, true)).Should(Equal(`"A" or "B"`))
	})

	It("prints more items with commas and limits the length", func() {
		Expect(util.OrList([]string{"A", "B", "C"}, false)).Should(Equal("A, B, or C"))
		Expect(util.OrList([]string{"A", "B", "C", "D", "E", "F"}, false)).Should(Equal("A, B, C, D, or E"))
	})

	It("builds a hint from suggestions", func() {
		Expect(util.DidYouMean(nil)).Should(BeEmpty())
		Expect(util.DidYouMean([]string{"route"})).Should(Equal(` Did you mean "route"?`))
	})
})
