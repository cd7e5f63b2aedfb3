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
	"github.com/botobag/routes/graphql/ast"
)

// ScalarResultCoercer coerces a resolved value into the value represented in the Scalar type for
// the response.
//
// Reference: https://spec.graphql.org/June2018/#sec-Scalars
type ScalarResultCoercer interface {
	CoerceResultValue(value interface{}) (interface{}, error)
}

// CoerceScalarResultFunc is an adapter to allow the use of ordinary functions as
// ScalarResultCoercer.
type CoerceScalarResultFunc func(value interface{}) (interface{}, error)

// CoerceResultValue calls f(value).
func (f CoerceScalarResultFunc) CoerceResultValue(value interface{}) (interface{}, error) {
	return f(value)
}

var _ ScalarResultCoercer = (CoerceScalarResultFunc)(nil)

// ScalarInputCoercer coerces input values in the GraphQL requests into a value represented in the
// Scalar type.
type ScalarInputCoercer interface {
	// CoerceVariableValue coerces a scalar value in input query variables.
	//
	// Reference: https://spec.graphql.org/June2018/#CoerceVariableValues()
	CoerceVariableValue(value interface{}) (interface{}, error)

	// CoerceArgumentValue coerces a scalar literal in field or directive arguments.
	//
	// Reference: https://spec.graphql.org/June2018/#CoerceArgumentValues()
	CoerceArgumentValue(value ast.Value) (interface{}, error)
}

// ScalarInputCoercerFuncs is an adapter to create a ScalarInputCoercer from function values.
type ScalarInputCoercerFuncs struct {
	CoerceVariableValueFunc func(value interface{}) (interface{}, error)
	CoerceArgumentValueFunc func(value ast.Value) (interface{}, error)
}

// CoerceVariableValue calls f.CoerceVariableValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceVariableValue(value interface{}) (interface{}, error) {
	return f.CoerceVariableValueFunc(value)
}

// CoerceArgumentValue calls f.CoerceArgumentValueFunc(value).
func (f ScalarInputCoercerFuncs) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	return f.CoerceArgumentValueFunc(value)
}

var _ ScalarInputCoercer = ScalarInputCoercerFuncs{}

// ScalarConfig provides specification to define a Scalar type.
type ScalarConfig struct {
	// Name of the defining Scalar
	Name string

	// Description for the Scalar type
	Description string

	// ResultCoercer serializes an internal value for the response.
	ResultCoercer ScalarResultCoercer

	// InputCoercer parses values from variables and literals.
	InputCoercer ScalarInputCoercer
}

// Scalar Type Definition
//
// The leaf values of any request and input values to arguments are Scalars (or Enums) and are
// defined with a name and a series of functions used to parse input from AST or variables and to
// ensure validity.
//
// Reference: https://spec.graphql.org/June2018/#sec-Scalars
type Scalar struct {
	name          string
	description   string
	resultCoercer ScalarResultCoercer
	inputCoercer  ScalarInputCoercer
}

var _ LeafType = (*Scalar)(nil)

// NewScalar defines a Scalar type from a ScalarConfig.
func NewScalar(config *ScalarConfig) (*Scalar, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Scalar.")
	}
	if config.ResultCoercer == nil {
		return nil, NewError(config.Name + ` must provide ResultCoercer. If this custom Scalar is also ` +
			`used as an input type, ensure InputCoercer is also provided.`)
	}
	return &Scalar{
		name:          config.Name,
		description:   config.Description,
		resultCoercer: config.ResultCoercer,
		inputCoercer:  config.InputCoercer,
	}, nil
}

// MustNewScalar is a convenience function equivalent to NewScalar but panics on failure.
func MustNewScalar(config *ScalarConfig) *Scalar {
	s, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return s
}

func (*Scalar) graphqlType()     {}
func (*Scalar) graphqlLeafType() {}

// Name implements TypeWithName.
func (s *Scalar) Name() string {
	return s.name
}

// Description implements TypeWithDescription.
func (s *Scalar) Description() string {
	return s.description
}

// String implements fmt.Stringer.
func (s *Scalar) String() string {
	return s.name
}

// CoerceResultValue implements LeafType.
func (s *Scalar) CoerceResultValue(value interface{}) (interface{}, error) {
	return s.resultCoercer.CoerceResultValue(value)
}

// CoerceVariableValue coerces a value from input variables.
func (s *Scalar) CoerceVariableValue(value interface{}) (interface{}, error) {
	if s.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as an input type", s.name)
	}
	return s.inputCoercer.CoerceVariableValue(value)
}

// CoerceArgumentValue coerces a literal value in arguments.
func (s *Scalar) CoerceArgumentValue(value ast.Value) (interface{}, error) {
	if s.inputCoercer == nil {
		return nil, NewCoercionError("%s cannot be used as an input type", s.name)
	}
	return s.inputCoercer.CoerceArgumentValue(value)
}
