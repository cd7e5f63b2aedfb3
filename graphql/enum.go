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
	"sort"

	"github.com/botobag/routes/graphql/ast"
)

// EnumValueConfig provides definition for a value in an Enum.
type EnumValueConfig struct {
	// Value is the internal value represented by the enum value. The value's name is used if it is
	// nil.
	Value interface{}

	// Description of the enum value
	Description string

	// Deprecation is non-nil when the value is tagged as deprecated.
	Deprecation *Deprecation
}

// EnumValueConfigMap maps value names to their definitions.
type EnumValueConfigMap map[string]EnumValueConfig

// EnumConfig provides specification to define an Enum type.
type EnumConfig struct {
	// Name of the defining Enum
	Name string

	// Description for the Enum type
	Description string

	// Values to be defined in the Enum
	Values EnumValueConfigMap
}

// EnumValue provides definition for a value in enum.
type EnumValue struct {
	name        string
	description string
	value       interface{}
	deprecation *Deprecation
}

// Name of the enum value
func (value *EnumValue) Name() string {
	return value.name
}

// Description of the enum value
func (value *EnumValue) Description() string {
	return value.description
}

// Value returns the internal value.
func (value *EnumValue) Value() interface{} {
	return value.value
}

// IsDeprecated returns true if the value is deprecated.
func (value *EnumValue) IsDeprecated() bool {
	return value.deprecation.Defined()
}

// Deprecation returns the deprecation info, or nil.
func (value *EnumValue) Deprecation() *Deprecation {
	return value.deprecation
}

// Enum Type Definition
//
// Some leaf values of requests and input values are Enums. GraphQL serializes Enum values as
// strings, however internally Enums can be represented by any kind of type, often integers.
//
// Reference: https://spec.graphql.org/June2018/#sec-Enums
type Enum struct {
	name        string
	description string

	// Values sorted by name
	values []*EnumValue

	nameIndex map[string]*EnumValue
}

var _ LeafType = (*Enum)(nil)

// NewEnum defines an Enum type from an EnumConfig.
func NewEnum(config *EnumConfig) (*Enum, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Enum.")
	}
	if len(config.Values) == 0 {
		return nil, NewError(config.Name + " values must be an object with value names as keys.")
	}

	e := &Enum{
		name:        config.Name,
		description: config.Description,
		values:      make([]*EnumValue, 0, len(config.Values)),
		nameIndex:   make(map[string]*EnumValue, len(config.Values)),
	}

	for name, valueConfig := range config.Values {
		switch name {
		case "true", "false", "null":
			return nil, NewError(config.Name + "." + name + " is not an allowed enum value name.")
		}

		value := &EnumValue{
			name:        name,
			description: valueConfig.Description,
			value:       valueConfig.Value,
			deprecation: valueConfig.Deprecation,
		}
		if value.value == nil {
			value.value = name
		}
		e.values = append(e.values, value)
		e.nameIndex[name] = value
	}

	sort.Slice(e.values, func(i, j int) bool {
		return e.values[i].name < e.values[j].name
	})

	return e, nil
}

// MustNewEnum is a convenience function equivalent to NewEnum but panics on failure.
func MustNewEnum(config *EnumConfig) *Enum {
	e, err := NewEnum(config)
	if err != nil {
		panic(err)
	}
	return e
}

func (*Enum) graphqlType()     {}
func (*Enum) graphqlLeafType() {}

// Name implements TypeWithName.
func (e *Enum) Name() string {
	return e.name
}

// Description implements TypeWithDescription.
func (e *Enum) Description() string {
	return e.description
}

// String implements fmt.Stringer.
func (e *Enum) String() string {
	return e.name
}

// Values returns all enum values sorted by name.
func (e *Enum) Values() []*EnumValue {
	return e.values
}

// Value finds the enum value with the given name. Returns nil if not found.
func (e *Enum) Value(name string) *EnumValue {
	return e.nameIndex[name]
}

// CoerceResultValue maps an internal value to the name of the matching enum value.
func (e *Enum) CoerceResultValue(value interface{}) (interface{}, error) {
	for _, enumValue := range e.values {
		if enumValue.value == value {
			return enumValue.name, nil
		}
	}
	return nil, NewCoercionError(`Enum "%s" cannot represent value: %s`, e.name, Inspect(value))
}

// CoerceVariableValue maps an enum name given in variables to its internal value.
func (e *Enum) CoerceVariableValue(value interface{}) (interface{}, error) {
	if name, ok := value.(string); ok {
		if enumValue := e.Value(name); enumValue != nil {
			return enumValue.value, nil
		}
		return nil, NewCoercionError(`Value "%s" does not exist in "%s" enum.`, name, e.name)
	}
	return nil, NewCoercionError(`Enum "%s" cannot represent non-string value: %s.`, e.name, Inspect(value))
}

// CoerceArgumentValue maps an enum literal to its internal value.
func (e *Enum) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if literal, ok := value.(ast.EnumValue); ok {
		if enumValue := e.Value(literal.Value()); enumValue != nil {
			return enumValue.value, nil
		}
		return nil, NewCoercionError(`Value "%s" does not exist in "%s" enum.`, literal.Value(), e.name)
	}
	return nil, NewCoercionError(`Enum "%s" cannot represent non-enum value: %s.`, e.name, Inspect(value.Interface()))
}
