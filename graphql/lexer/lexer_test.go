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

package lexer_test

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/lexer"
	"github.com/botobag/routes/graphql/token"
	"github.com/botobag/routes/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

func lexOne(str string) (*token.Token, error) {
	return lexer.New(token.NewSource(str, "")).Advance()
}

func expectSyntaxError(text string, message string, line uint, column uint) {
	_, err := lexOne(text)
	Expect(err).Should(testutil.MatchGraphQLError(
		testutil.MessageEqual("Syntax Error: "+message),
		testutil.LocationEqual(line, column),
		testutil.KindIs(graphql.ErrKindSyntax),
	))
}

// MatchToken matches every field of a token.
func MatchToken(kind token.Kind, line uint, column uint, length uint, value string) types.GomegaMatcher {
	return PointTo(MatchAllFields(Fields{
		"Kind": Equal(kind),
		"Location": Equal(token.SourceLocation{
			Line:   line,
			Column: column,
		}),
		"Length": Equal(length),
		"Value":  Equal(value),
	}))
}

var _ = Describe("Lexer", func() {
	It("disallows uncommon control characters", func() {
		expectSyntaxError("\u0007", `Cannot contain the invalid character "\u0007".`, 1, 1)
	})

	It("accepts BOM header", func() {
		Expect(lexOne("\uFEFF foo")).Should(MatchToken(token.KindName, 1, 5, 3, "foo"))
	})

	It("records line and column", func() {
		Expect(lexOne("\n \r\n \r  foo\n")).Should(MatchToken(token.KindName, 4, 3, 3, "foo"))
	})

	It("skips whitespace and comments", func() {
		Expect(lexOne("\n\n    foo\n\n\n")).Should(MatchToken(token.KindName, 3, 5, 3, "foo"))
		Expect(lexOne("\n    #comment\n    foo#comment\n")).Should(MatchToken(token.KindName, 3, 5, 3, "foo"))
		Expect(lexOne(",,,foo,,,")).Should(MatchToken(token.KindName, 1, 4, 3, "foo"))
	})

	It("lexes names", func() {
		Expect(lexOne("_route_2")).Should(MatchToken(token.KindName, 1, 1, 8, "_route_2"))
	})

	It("lexes strings", func() {
		Expect(lexOne(`"simple"`)).Should(MatchToken(token.KindString, 1, 1, 8, "simple"))
		Expect(lexOne(`" white space "`)).Should(MatchToken(token.KindString, 1, 1, 15, " white space "))
		Expect(lexOne(`"quote \""`)).Should(MatchToken(token.KindString, 1, 1, 10, `quote "`))
		Expect(lexOne(`"escaped \n\r\b\t\f"`)).Should(MatchToken(token.KindString, 1, 1, 20, "escaped \n\r\b\t\f"))
		Expect(lexOne(`"slashes \\ \/"`)).Should(MatchToken(token.KindString, 1, 1, 15, `slashes \ /`))
		Expect(lexOne(`"unicode \u1234\u5678\u90AB\uCDEF"`)).Should(
			MatchToken(token.KindString, 1, 1, 34, "unicode \u1234\u5678\u90AB\uCDEF"))
	})

	It("lex reports useful string errors", func() {
		expectSyntaxError(`"`, "Unterminated string.", 1, 2)
		expectSyntaxError(`"no end quote`, "Unterminated string.", 1, 14)
		expectSyntaxError(`'single quotes'`,
			`Unexpected single quote character ('), did you mean to use a double quote (")?`, 1, 1)
		expectSyntaxError("\"contains unescaped \u0007 control char\"",
			`Invalid character within String: "\u0007".`, 1, 21)
		expectSyntaxError("\"multi\nline\"", "Unterminated string.", 1, 7)
		expectSyntaxError(`"bad \z esc"`, `Invalid character escape sequence: \z.`, 1, 6)
		expectSyntaxError(`"bad \u1 esc"`, `Invalid character escape sequence: \u1 es.`, 1, 6)
		expectSyntaxError(`"bad \uXXXF esc"`, `Invalid character escape sequence: \uXXXF.`, 1, 6)
	})

	It("lexes block strings", func() {
		Expect(lexOne(`"""simple"""`)).Should(MatchToken(token.KindBlockString, 1, 1, 12, "simple"))
		Expect(lexOne(`"""  white space  """`)).Should(MatchToken(token.KindBlockString, 1, 1, 21, "  white space  "))
		Expect(lexOne(`"""contains " quote"""`)).Should(MatchToken(token.KindBlockString, 1, 1, 22, `contains " quote`))
		Expect(lexOne(`"""contains \""" triplequote"""`)).Should(
			MatchToken(token.KindBlockString, 1, 1, 31, `contains """ triplequote`))
		Expect(lexOne(`"""unescaped \n\r\b\t\f\u1234"""`)).Should(
			MatchToken(token.KindBlockString, 1, 1, 32, `unescaped \n\r\b\t\f\u1234`))

		source := "\"\"\"\n\n        spans\n          multiple\n            lines\n\n        \"\"\""
		Expect(lexOne(source)).Should(
			MatchToken(token.KindBlockString, 1, 1, uint(len(source)), "spans\n  multiple\n    lines"))
	})

	It("lex reports useful block string errors", func() {
		expectSyntaxError(`"""`, "Unterminated string.", 1, 4)
		expectSyntaxError(`"""no end quote`, "Unterminated string.", 1, 16)
		expectSyntaxError("\"\"\"contains unescaped \u0007 control char\"\"\"",
			`Invalid character within String: "\u0007".`, 1, 23)
	})

	It("lexes numbers", func() {
		Expect(lexOne("4")).Should(MatchToken(token.KindInt, 1, 1, 1, "4"))
		Expect(lexOne("4.123")).Should(MatchToken(token.KindFloat, 1, 1, 5, "4.123"))
		Expect(lexOne("-4")).Should(MatchToken(token.KindInt, 1, 1, 2, "-4"))
		Expect(lexOne("9")).Should(MatchToken(token.KindInt, 1, 1, 1, "9"))
		Expect(lexOne("0")).Should(MatchToken(token.KindInt, 1, 1, 1, "0"))
		Expect(lexOne("-4.123")).Should(MatchToken(token.KindFloat, 1, 1, 6, "-4.123"))
		Expect(lexOne("0.123")).Should(MatchToken(token.KindFloat, 1, 1, 5, "0.123"))
		Expect(lexOne("123e4")).Should(MatchToken(token.KindFloat, 1, 1, 5, "123e4"))
		Expect(lexOne("123E4")).Should(MatchToken(token.KindFloat, 1, 1, 5, "123E4"))
		Expect(lexOne("123e-4")).Should(MatchToken(token.KindFloat, 1, 1, 6, "123e-4"))
		Expect(lexOne("-1.123e+4")).Should(MatchToken(token.KindFloat, 1, 1, 9, "-1.123e+4"))
	})

	It("lex reports useful number errors", func() {
		expectSyntaxError("00", `Invalid number, unexpected digit after 0: "0".`, 1, 2)
		expectSyntaxError("+1", `Cannot parse the unexpected character "+".`, 1, 1)
		expectSyntaxError("1.", `Invalid number, expected digit after decimal point ('.') but got: <EOF>.`, 1, 3)
		expectSyntaxError("1.e1", `Invalid number, expected digit after decimal point ('.') but got: "e".`, 1, 3)
		expectSyntaxError(".123", `Cannot parse the unexpected character ".".`, 1, 1)
		expectSyntaxError("1.A", `Invalid number, expected digit after decimal point ('.') but got: "A".`, 1, 3)
		expectSyntaxError("-A", `Invalid number, expected digit after '-' but got: "A".`, 1, 2)
		expectSyntaxError("1.0e", `Invalid number, expected digit after exponent but got: <EOF>.`, 1, 5)
		expectSyntaxError("1.0eA", `Invalid number, expected digit after exponent but got: "A".`, 1, 5)
		expectSyntaxError("1.23.4", `Invalid number, expected digit but got: ".".`, 1, 5)
		expectSyntaxError("0xF1", `Invalid number, expected digit but got: "x".`, 1, 2)
	})

	It("lexes punctuation", func() {
		for text, kind := range map[string]token.Kind{
			"!": token.KindBang,
			"$": token.KindDollar,
			"&": token.KindAmp,
			"(": token.KindLeftParen,
			")": token.KindRightParen,
			":": token.KindColon,
			"=": token.KindEquals,
			"@": token.KindAt,
			"[": token.KindLeftBracket,
			"]": token.KindRightBracket,
			"{": token.KindLeftBrace,
			"|": token.KindPipe,
			"}": token.KindRightBrace,
		} {
			Expect(lexOne(text)).Should(MatchToken(kind, 1, 1, 1, ""), "lexing %s", text)
		}
		Expect(lexOne("...")).Should(MatchToken(token.KindSpread, 1, 1, 3, ""))
	})

	It("lex reports useful unknown character error", func() {
		expectSyntaxError("..", `Cannot parse the unexpected character ".".`, 1, 1)
		expectSyntaxError("?", `Cannot parse the unexpected character "?".`, 1, 1)
		expectSyntaxError("\u203B", `Cannot parse the unexpected character "\u203B".`, 1, 1)
		expectSyntaxError("\u200b", `Cannot parse the unexpected character "\u200B".`, 1, 1)
	})

	It("keeps returning EOF at the end", func() {
		l := lexer.New(token.NewSource("{ route }", ""))
		var kinds []token.Kind
		for i := 0; i < 5; i++ {
			tok, err := l.Advance()
			Expect(err).ShouldNot(HaveOccurred())
			kinds = append(kinds, tok.Kind)
		}
		Expect(kinds).Should(Equal([]token.Kind{
			token.KindLeftBrace,
			token.KindName,
			token.KindRightBrace,
			token.KindEOF,
			token.KindEOF,
		}))
		Expect(l.Token().Location).Should(Equal(token.SourceLocation{Line: 1, Column: 10}))
	})

	It("describes tokens", func() {
		tok, err := lexOne("route")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Description()).Should(Equal(`Name "route"`))

		tok, err = lexOne("{")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Description()).Should(Equal(`"{"`))

		tok, err = lexOne("")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Description()).Should(Equal("<EOF>"))
	})
})

var _ = Describe("BlockStringValue", func() {
	It("removes uniform indentation from a string", func() {
		Expect(lexer.BlockStringValue("\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n")).Should(
			Equal("Hello,\n  World!\n\nYours,\n  GraphQL."))
	})

	It("removes empty leading and trailing lines", func() {
		Expect(lexer.BlockStringValue("\n\n    Hello,\n      World!\n\n  \n")).Should(Equal("Hello,\n  World!"))
	})

	It("retains indentation from first line", func() {
		Expect(lexer.BlockStringValue("    Hello,\n      World!\n\n    Yours,\n      GraphQL.")).Should(
			Equal("    Hello,\n  World!\n\nYours,\n  GraphQL."))
	})

	It("does not alter trailing spaces", func() {
		Expect(lexer.BlockStringValue("\n    Hello,     \n      World!   \n")).Should(Equal("Hello,     \n  World!   "))
	})
})
