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

package graphql

// NonNull is a wrapping type which enforces that values are never null. A field with a NonNull type
// raises a field error when its resolver yields null, and the null propagates to the parent.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-System.Non-Null
type NonNull struct {
	innerType Type
	notation  string
}

var _ WrappingType = (*NonNull)(nil)

// NewNonNullOf returns a NonNull wrapping innerType. innerType must not be nil nor a NonNull.
func NewNonNullOf(innerType Type) (*NonNull, error) {
	if innerType == nil {
		return nil, NewError("Must provide an non-nil inner type for NonNull.")
	}
	if _, ok := innerType.(*NonNull); ok {
		return nil, NewError("Expected a nullable type for NonNull but got an NonNull.")
	}
	return &NonNull{
		innerType: innerType,
		notation:  innerType.String() + "!",
	}, nil
}

// MustNewNonNullOf is a convenience function equivalent to NewNonNullOf but panics on failure.
func MustNewNonNullOf(innerType Type) *NonNull {
	nonNull, err := NewNonNullOf(innerType)
	if err != nil {
		panic(err)
	}
	return nonNull
}

func (*NonNull) graphqlType()         {}
func (*NonNull) graphqlWrappingType() {}

// InnerType returns the nullable type being wrapped.
func (n *NonNull) InnerType() Type {
	return n.innerType
}

// UnwrappedType implements WrappingType.
func (n *NonNull) UnwrappedType() Type {
	return n.innerType
}

// String implements fmt.Stringer.
func (n *NonNull) String() string {
	return n.notation
}
