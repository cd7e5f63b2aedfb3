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
	"math"
	"strconv"

	"github.com/botobag/routes/graphql/ast"
)

// The Go type of values produced by input coercion of each built-in scalar:
//
//	+--------------+---------+
//	| GraphQL Type | Go Type |
//	+--------------+---------+
//	| Int          | int     |
//	| Float        | float64 |
//	| String       | string  |
//	| Boolean      | bool    |
//	| ID           | string  |
//	+--------------+---------+

// toInt64 converts integral Go values to int64. Floats are accepted if they have no fraction.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return toInt64(float64(v))
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, !math.IsInf(v, 0) && !math.IsNaN(v)
	}
	if i, ok := toInt64(value); ok {
		return float64(i), true
	}
	return 0, false
}

//===----------------------------------------------------------------------------------------====//
// Int
//===----------------------------------------------------------------------------------------====//

func coerceInt(value interface{}) (interface{}, error) {
	i, ok := toInt64(value)
	if !ok {
		return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value))
	}
	if i > math.MaxInt32 || i < math.MinInt32 {
		return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s", Inspect(value))
	}
	return int(i), nil
}

var intType = MustNewScalar(&ScalarConfig{
	Name: "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values. " +
		"Int can represent values between -(2^31) and 2^31 - 1.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case bool:
			if v {
				return 1, nil
			}
			return 0, nil
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return coerceInt(n)
			}
		}
		return coerceInt(value)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceInt,
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if value, ok := value.(ast.IntValue); ok {
				if i, err := value.Int64Value(); err == nil && i <= math.MaxInt32 && i >= math.MinInt32 {
					return int(i), nil
				}
				return nil, NewCoercionError("Int cannot represent non 32-bit signed integer value: %s", value.String())
			}
			return nil, NewCoercionError("Int cannot represent non-integer value: %s", Inspect(value.Interface()))
		},
	},
})

// Int returns the GraphQL built-in Int type.
func Int() *Scalar {
	return intType
}

//===----------------------------------------------------------------------------------------====//
// Float
//===----------------------------------------------------------------------------------------====//

func coerceFloat(value interface{}) (interface{}, error) {
	f, ok := toFloat64(value)
	if !ok {
		return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value))
	}
	return f, nil
}

var floatType = MustNewScalar(&ScalarConfig{
	Name: "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional values as " +
		"specified by [IEEE 754](https://en.wikipedia.org/wiki/IEEE_floating_point).",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case bool:
			if v {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return n, nil
			}
		}
		return coerceFloat(value)
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceFloat,
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			switch value := value.(type) {
			case ast.FloatValue:
				return value.FloatValue()
			case ast.IntValue:
				return strconv.ParseFloat(value.String(), 64)
			}
			return nil, NewCoercionError("Float cannot represent non numeric value: %s", Inspect(value.Interface()))
		},
	},
})

// Float returns the GraphQL built-in Float type.
func Float() *Scalar {
	return floatType
}

//===----------------------------------------------------------------------------------------====//
// String
//===----------------------------------------------------------------------------------------====//

var stringType = MustNewScalar(&ScalarConfig{
	Name: "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character " +
		"sequences. The String type is most often used by GraphQL to represent free-form " +
		"human-readable text.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		switch v := value.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case bool:
			return strconv.FormatBool(v), nil
		case interface{ String() string }:
			return v.String(), nil
		}
		if i, ok := toInt64(value); ok {
			return strconv.FormatInt(i, 10), nil
		}
		if f, ok := toFloat64(value); ok {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
		return nil, NewCoercionError("String cannot represent value: %s", Inspect(value))
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			if s, ok := value.(string); ok {
				return s, nil
			}
			return nil, NewCoercionError("String cannot represent a non string value: %s", Inspect(value))
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if s, ok := value.(ast.StringValue); ok {
				return s.Value(), nil
			}
			return nil, NewCoercionError("String cannot represent a non string value: %s", Inspect(value.Interface()))
		},
	},
})

// String returns the GraphQL built-in String type.
func String() *Scalar {
	return stringType
}

//===----------------------------------------------------------------------------------------====//
// Boolean
//===----------------------------------------------------------------------------------------====//

var booleanType = MustNewScalar(&ScalarConfig{
	Name:        "Boolean",
	Description: "The `Boolean` scalar type represents `true` or `false`.",
	ResultCoercer: CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
		if b, ok := value.(bool); ok {
			return b, nil
		}
		if f, ok := toFloat64(value); ok {
			return f != 0, nil
		}
		return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", Inspect(value))
	}),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
			if b, ok := value.(bool); ok {
				return b, nil
			}
			return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", Inspect(value))
		},
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			if b, ok := value.(ast.BooleanValue); ok {
				return b.Value(), nil
			}
			return nil, NewCoercionError("Boolean cannot represent a non boolean value: %s", Inspect(value.Interface()))
		},
	},
})

// Boolean returns the GraphQL built-in Boolean type.
func Boolean() *Scalar {
	return booleanType
}

//===----------------------------------------------------------------------------------------====//
// ID
//===----------------------------------------------------------------------------------------====//

func coerceID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case interface{ String() string }:
		return v.String(), nil
	}
	if i, ok := toInt64(value); ok {
		return strconv.FormatInt(i, 10), nil
	}
	return nil, NewCoercionError("ID cannot represent value: %s", Inspect(value))
}

var idType = MustNewScalar(&ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an " +
		"object or as key for a cache. The ID type appears in a JSON response as a String; however, " +
		"it is not intended to be human-readable. When expected as an input type, any string (such " +
		"as `\"4\"`) or integer (such as `4`) input value will be accepted as an ID.",
	ResultCoercer: CoerceScalarResultFunc(coerceID),
	InputCoercer: ScalarInputCoercerFuncs{
		CoerceVariableValueFunc: coerceID,
		CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
			switch value := value.(type) {
			case ast.StringValue:
				return value.Value(), nil
			case ast.IntValue:
				return value.String(), nil
			}
			return nil, NewCoercionError("ID cannot represent value: %s", Inspect(value.Interface()))
		},
	},
})

// ID returns the GraphQL built-in ID type.
func ID() *Scalar {
	return idType
}

// IsSpecifiedScalarType returns true if t is one of the built-in scalars.
func IsSpecifiedScalarType(t Type) bool {
	switch t {
	case intType, floatType, stringType, booleanType, idType:
		return true
	}
	return false
}
