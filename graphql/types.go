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

import (
	"fmt"
)

// Type interfaces provided by a GraphQL type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Types
type Type interface {
	// String representation when printing the type
	fmt.Stringer

	// graphqlType is a special mark to indicate a Type. It makes sure that only a set of objects can
	// be assigned to Type.
	graphqlType()
}

// TypeWithName is implemented by the named types.
type TypeWithName interface {
	Type

	// Name of the defining type
	Name() string
}

// TypeWithDescription is implemented by the types that provide description.
type TypeWithDescription interface {
	// Description provides documentation for the type.
	Description() string
}

// LeafType can represent a leaf value where execution of the GraphQL hierarchical queries
// terminates. Only Scalar and Enum are leaf types.
type LeafType interface {
	TypeWithName
	TypeWithDescription

	// CoerceResultValue coerces the given value to be returned as result of field with the type.
	CoerceResultValue(value interface{}) (interface{}, error)

	graphqlLeafType()
}

// WrappingType is a type that wraps another type: List and NonNull.
type WrappingType interface {
	Type

	// UnwrappedType returns the type that is wrapped by this type.
	UnwrappedType() Type

	graphqlWrappingType()
}

// Deprecation contains information about deprecation for a field or an enum value.
type Deprecation struct {
	// Reason provides a description of why the subject is deprecated.
	Reason string
}

// Defined returns true if the deprecation is active.
func (d *Deprecation) Defined() bool {
	return d != nil
}

// DefaultDeprecationReason is used when a field is deprecated without giving a reason.
const DefaultDeprecationReason = "No longer supported"

// NamedTypeOf unwraps all List and NonNull wrappers and returns the underlying named type.
func NamedTypeOf(t Type) TypeWithName {
	for {
		switch ttype := t.(type) {
		case WrappingType:
			t = ttype.UnwrappedType()
		case TypeWithName:
			return ttype
		default:
			return nil
		}
	}
}

// NullableTypeOf strips a NonNull wrapper if t has one.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull.InnerType()
	}
	return t
}

// IsNonNullType returns true if t is a NonNull.
func IsNonNullType(t Type) bool {
	_, ok := t.(*NonNull)
	return ok
}

// IsLeafType returns true if the named type of t is a Scalar or an Enum.
func IsLeafType(t Type) bool {
	_, ok := t.(LeafType)
	return ok
}

// IsCompositeType returns true for object types.
func IsCompositeType(t Type) bool {
	_, ok := t.(*Object)
	return ok
}

// IsInputType returns true if t can be used as the type of an argument or a variable.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-and-Output-Types
func IsInputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	}
	return false
}

// IsOutputType returns true if t can be used as the type of a field.
func IsOutputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Enum, *Object:
		return true
	}
	return false
}

// IsEqualType returns true if both types are the same reference.
func IsEqualType(a, b Type) bool {
	switch a := a.(type) {
	case *NonNull:
		if b, ok := b.(*NonNull); ok {
			return IsEqualType(a.InnerType(), b.InnerType())
		}
		return false
	case *List:
		if b, ok := b.(*List); ok {
			return IsEqualType(a.ElementType(), b.ElementType())
		}
		return false
	}
	return a == b
}

// IsTypeSubTypeOf returns true if a value of maybeSubType can be used where superType is expected.
// Used for checking variable usages against argument types.
func IsTypeSubTypeOf(maybeSubType, superType Type) bool {
	if IsEqualType(maybeSubType, superType) {
		return true
	}

	if superNonNull, ok := superType.(*NonNull); ok {
		if subNonNull, ok := maybeSubType.(*NonNull); ok {
			return IsTypeSubTypeOf(subNonNull.InnerType(), superNonNull.InnerType())
		}
		return false
	}

	if subNonNull, ok := maybeSubType.(*NonNull); ok {
		return IsTypeSubTypeOf(subNonNull.InnerType(), superType)
	}

	if superList, ok := superType.(*List); ok {
		if subList, ok := maybeSubType.(*List); ok {
			return IsTypeSubTypeOf(subList.ElementType(), superList.ElementType())
		}
		return false
	}

	return false
}
