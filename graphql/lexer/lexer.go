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

package lexer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/token"
)

// Lexer is a stateful stream generator: every time it is advanced, it returns the next
// non-ignored token in the Source. Once the lexer reaches the end, it keeps returning the same
// EOF token.
type Lexer struct {
	source *token.Source

	// The currently focused non-ignored token
	token *token.Token

	// Current offset into the source body; Moved by only consume() and consumeIgnored().
	bytePos uint

	// This caches the value of source.Body().Size().
	bodySize uint

	// Cursor for incremental location computation; lineStart is the byte offset where line begins.
	line      uint
	lineStart uint
	scanned   uint
}

// New initializes a Lexer for given Source object.
func New(source *token.Source) *Lexer {
	return &Lexer{
		source: source,
		token: &token.Token{
			Kind: token.KindSOF,
		},
		bodySize: source.Body().Size(),
		line:     1,
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns current token.
func (lexer *Lexer) Token() *token.Token {
	return lexer.token
}

// Advance the token stream to the next non-ignored token.
func (lexer *Lexer) Advance() (*token.Token, error) {
	if lexer.token.Kind == token.KindEOF {
		return lexer.token, nil
	}
	next, err := lexer.lexToken()
	if err != nil {
		return nil, err
	}
	lexer.token = next
	return next, nil
}

// locationAt returns the SourceLocation of the given byte position. Positions are mostly
// requested in increasing order so the line cursor is advanced incrementally.
func (lexer *Lexer) locationAt(pos uint) token.SourceLocation {
	if pos < lexer.scanned {
		return lexer.source.LocationOf(pos)
	}

	body := lexer.source.Body()
	for i := lexer.scanned; i < pos && i < lexer.bodySize; i++ {
		switch body[i] {
		case '\r':
			if i+1 < lexer.bodySize && body[i+1] == '\n' {
				continue
			}
			lexer.line++
			lexer.lineStart = i + 1
		case '\n':
			lexer.line++
			lexer.lineStart = i + 1
		}
	}
	lexer.scanned = pos

	return token.SourceLocation{
		Line:   lexer.line,
		Column: pos - lexer.lineStart + 1,
	}
}

func (lexer *Lexer) peek() byte {
	return lexer.source.Body().At(lexer.bytePos)
}

func (lexer *Lexer) peekAt(offset uint) byte {
	return lexer.source.Body().At(lexer.bytePos + offset)
}

func (lexer *Lexer) consume() byte {
	b := lexer.source.Body().At(lexer.bytePos)
	if lexer.bytePos < lexer.bodySize {
		lexer.bytePos++
	}
	return b
}

// consumeIgnored skips whitespaces, line terminators, commas, comments and the unicode BOM.
//
// Reference: https://spec.graphql.org/June2018/#sec-Source-Text.Ignored-Tokens
func (lexer *Lexer) consumeIgnored() {
	body := lexer.source.Body()

	if lexer.bytePos == 0 && bytes.HasPrefix(body, []byte("\xEF\xBB\xBF")) {
		lexer.bytePos = 3
	}

	for lexer.bytePos < lexer.bodySize {
		switch body[lexer.bytePos] {
		case '\t', ' ', ',', '\n', '\r':
			lexer.bytePos++

		case '#':
			// Comment runs until a line terminator.
			for lexer.bytePos < lexer.bodySize {
				c := body[lexer.bytePos]
				if c == '\n' || c == '\r' {
					break
				}
				lexer.bytePos++
			}

		default:
			return
		}
	}
}

func (lexer *Lexer) consumeDigits() byte {
	for {
		char := lexer.peek()
		if char < '0' || char > '9' {
			return char
		}
		lexer.consume()
	}
}

func (lexer *Lexer) charAtPosToStr(bytePos uint) string {
	if bytePos >= lexer.bodySize {
		return "<EOF>"
	}

	r := []rune(string(lexer.source.Body()[bytePos:minPos(bytePos+4, lexer.bodySize)]))[0]
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

func minPos(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}

func (lexer *Lexer) syntaxError(bytePos uint, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.locationAt(bytePos), fmt.Sprintf(format, args...))
}

func (lexer *Lexer) unexpectedCharacterError(bytePos uint) error {
	char := lexer.source.Body().At(bytePos)
	switch {
	case char < 0x20 && char != '\t' && char != '\n' && char != '\r':
		return lexer.syntaxError(bytePos, "Cannot contain the invalid character %s.",
			lexer.charAtPosToStr(bytePos))
	case char == '\'':
		return lexer.syntaxError(bytePos,
			`Unexpected single quote character ('), did you mean to use a double quote (")?`)
	}
	return lexer.syntaxError(bytePos, "Cannot parse the unexpected character %s.",
		lexer.charAtPosToStr(bytePos))
}

func (lexer *Lexer) makeToken(kind token.Kind, startPos uint, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: lexer.locationAt(startPos),
		Length:   lexer.bytePos - startPos,
		Value:    value,
	}
}

var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

// lexToken skips over ignored tokens until it finds the next lexable token, then lexes
// punctuators immediately or calls the appropriate helper function for more complicated tokens.
func (lexer *Lexer) lexToken() (*token.Token, error) {
	lexer.consumeIgnored()

	startPos := lexer.bytePos
	if startPos >= lexer.bodySize {
		return lexer.makeToken(token.KindEOF, startPos, ""), nil
	}

	char := lexer.peek()
	if kind, ok := punctuators[char]; ok {
		lexer.consume()
		return lexer.makeToken(kind, startPos, ""), nil
	}

	switch {
	case char == '.':
		if lexer.peekAt(1) != '.' || lexer.peekAt(2) != '.' {
			return nil, lexer.unexpectedCharacterError(startPos)
		}
		lexer.bytePos += 3
		return lexer.makeToken(token.KindSpread, startPos, ""), nil

	case isNameStart(char):
		return lexer.lexName(), nil

	case char == '-' || (char >= '0' && char <= '9'):
		return lexer.lexNumber()

	case char == '"':
		if lexer.peekAt(1) == '"' && lexer.peekAt(2) == '"' {
			return lexer.lexBlockString()
		}
		return lexer.lexString()
	}

	return nil, lexer.unexpectedCharacterError(startPos)
}

func isNameStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

// lexName lexes a Name token from source.
//
//	Name ::
//		/[_A-Za-z][_0-9A-Za-z]*/
func (lexer *Lexer) lexName() *token.Token {
	startPos := lexer.bytePos
	lexer.consume()
	for {
		char := lexer.peek()
		if !isNameStart(char) && (char < '0' || char > '9') {
			break
		}
		lexer.consume()
	}
	return lexer.makeToken(token.KindName, startPos,
		string(lexer.source.Body()[startPos:lexer.bytePos]))
}

// lexNumber reads a number token from the source file, either a float or an int depending on
// whether a decimal point or an exponent appears.
//
// Reference: https://spec.graphql.org/June2018/#sec-Int-Value
func (lexer *Lexer) lexNumber() (*token.Token, error) {
	startPos := lexer.bytePos
	kind := token.KindInt

	char := lexer.consume()
	if char == '-' {
		char = lexer.consume()
		if char < '0' || char > '9' {
			return nil, lexer.syntaxError(lexer.bytePos-1,
				"Invalid number, expected digit after '-' but got: %s.",
				lexer.charAtPosToStr(lexer.bytePos-1))
		}
	}

	if char == '0' {
		if next := lexer.peek(); next >= '0' && next <= '9' {
			return nil, lexer.syntaxError(lexer.bytePos,
				"Invalid number, unexpected digit after 0: %s.", lexer.charAtPosToStr(lexer.bytePos))
		}
	} else {
		lexer.consumeDigits()
	}

	if lexer.peek() == '.' {
		kind = token.KindFloat
		lexer.consume()
		if err := lexer.expectDigits("decimal point ('.')"); err != nil {
			return nil, err
		}
	}

	if char := lexer.peek(); char == 'e' || char == 'E' {
		kind = token.KindFloat
		lexer.consume()
		if char := lexer.peek(); char == '+' || char == '-' {
			lexer.consume()
		}
		if err := lexer.expectDigits("exponent"); err != nil {
			return nil, err
		}
	}

	// A number must not be directly followed by a name start or a dot.
	if char := lexer.peek(); char == '.' || isNameStart(char) {
		return nil, lexer.syntaxError(lexer.bytePos, "Invalid number, expected digit but got: %s.",
			lexer.charAtPosToStr(lexer.bytePos))
	}

	return lexer.makeToken(kind, startPos, string(lexer.source.Body()[startPos:lexer.bytePos])), nil
}

func (lexer *Lexer) expectDigits(after string) error {
	if char := lexer.peek(); char < '0' || char > '9' {
		return lexer.syntaxError(lexer.bytePos, "Invalid number, expected digit after %s but got: %s.",
			after, lexer.charAtPosToStr(lexer.bytePos))
	}
	lexer.consumeDigits()
	return nil
}

// lexString reads a string token from the source file.
//
// Reference: https://spec.graphql.org/June2018/#sec-String-Value
func (lexer *Lexer) lexString() (*token.Token, error) {
	startPos := lexer.bytePos
	// Opening quote.
	lexer.consume()

	var value strings.Builder
	for lexer.bytePos < lexer.bodySize {
		char := lexer.peek()
		if char == '\n' || char == '\r' {
			break
		}

		if char == '"' {
			lexer.consume()
			return lexer.makeToken(token.KindString, startPos, value.String()), nil
		}

		if char < 0x20 && char != '\t' {
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid character within String: %s.",
				lexer.charAtPosToStr(lexer.bytePos))
		}

		lexer.consume()
		if char != '\\' {
			value.WriteByte(char)
			continue
		}

		escapePos := lexer.bytePos - 1
		switch escaped := lexer.consume(); escaped {
		case '"', '\\', '/':
			value.WriteByte(escaped)
		case 'b':
			value.WriteByte('\b')
		case 'f':
			value.WriteByte('\f')
		case 'n':
			value.WriteByte('\n')
		case 'r':
			value.WriteByte('\r')
		case 't':
			value.WriteByte('\t')
		case 'u':
			if lexer.bodySize-lexer.bytePos >= 4 {
				body := lexer.source.Body()
				code := uniCharCode(body[lexer.bytePos], body[lexer.bytePos+1],
					body[lexer.bytePos+2], body[lexer.bytePos+3])
				if code >= 0 {
					lexer.bytePos += 4
					value.WriteRune(code)
					break
				}
			}
			end := minPos(lexer.bytePos+4, lexer.bodySize)
			return nil, lexer.syntaxError(escapePos, "Invalid character escape sequence: \\u%s.",
				string(lexer.source.Body()[lexer.bytePos:end]))
		default:
			return nil, lexer.syntaxError(escapePos, "Invalid character escape sequence: \\%c.", escaped)
		}
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}

// uniCharCode converts four hexadecimal chars to the rune they represent. Returns a negative
// number if any char was invalid.
func uniCharCode(a, b, c, d byte) rune {
	return char2hex(a)<<12 | char2hex(b)<<8 | char2hex(c)<<4 | char2hex(d)
}

func char2hex(a byte) rune {
	switch {
	case a >= '0' && a <= '9':
		return rune(a - '0')
	case a >= 'A' && a <= 'F':
		return rune(a-'A') + 10
	case a >= 'a' && a <= 'f':
		return rune(a-'a') + 10
	}
	return -1
}

// lexBlockString reads a block string token from the source file.
func (lexer *Lexer) lexBlockString() (*token.Token, error) {
	startPos := lexer.bytePos
	// Opening triple-quote.
	lexer.bytePos += 3

	var raw strings.Builder
	for lexer.bytePos < lexer.bodySize {
		char := lexer.peek()
		switch {
		case char == '"' && lexer.peekAt(1) == '"' && lexer.peekAt(2) == '"':
			lexer.bytePos += 3
			return lexer.makeToken(token.KindBlockString, startPos, BlockStringValue(raw.String())), nil

		case char == '\\' && lexer.peekAt(1) == '"' && lexer.peekAt(2) == '"' && lexer.peekAt(3) == '"':
			lexer.bytePos += 4
			raw.WriteString(`"""`)

		case char < 0x20 && char != '\t' && char != '\n' && char != '\r':
			return nil, lexer.syntaxError(lexer.bytePos, "Invalid character within String: %s.",
				lexer.charAtPosToStr(lexer.bytePos))

		default:
			raw.WriteByte(lexer.consume())
		}
	}

	return nil, lexer.syntaxError(lexer.bytePos, "Unterminated string.")
}
