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

package token

// SourceLocation is the 1-based line and column of a position in a Source. Column counts bytes.
type SourceLocation struct {
	Line   uint
	Column uint
}

// NoSourceLocation is the zero SourceLocation. It doesn't exist in any source.
var NoSourceLocation = SourceLocation{}

// IsValid return true if the SourceLocation points into a source.
func (location SourceLocation) IsValid() bool {
	return location.Line > 0
}

// SourceBody contains contents of a GraphQL document in a byte sequence.
type SourceBody []byte

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body size in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// Source represent a GraphQL source text.
type Source struct {
	body SourceBody
	name string
}

// NewSource creates a Source for the given body. The name defaults to "GraphQL request" when
// empty.
func NewSource(body string, name string) *Source {
	if len(name) == 0 {
		name = "GraphQL request"
	}
	return &Source{
		body: SourceBody(body),
		name: name,
	}
}

// Body returns the source text.
func (source *Source) Body() SourceBody {
	return source.body
}

// Name identifies the source in error messages.
func (source *Source) Name() string {
	return source.name
}

// LocationOf computes the SourceLocation of the byte at pos.
func (source *Source) LocationOf(pos uint) SourceLocation {
	var (
		body          = source.body
		line     uint = 1
		column   uint = 1
		bodySize      = body.Size()
	)
	if pos > bodySize {
		pos = bodySize
	}

	for i := uint(0); i < pos; i++ {
		switch body[i] {
		case '\r':
			// "\r\n" counts as a single line terminator.
			if i+1 < bodySize && body[i+1] == '\n' {
				continue
			}
			line++
			column = 1
		case '\n':
			line++
			column = 1
		default:
			column++
		}
	}

	return SourceLocation{
		Line:   line,
		Column: column,
	}
}
