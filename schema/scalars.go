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

package schema

import (
	"github.com/google/uuid"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

func parseUUID(s string) (interface{}, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, graphql.NewError("Uuid cannot represent an invalid UUID string: "+graphql.Inspect(s), graphql.ErrKindCoercion, err)
	}
	return id, nil
}

// newUUIDScalar defines the Uuid scalar. Values are written in the canonical textual form and read
// into uuid.UUID.
func newUUIDScalar() (*graphql.Scalar, error) {
	return graphql.NewScalar(&graphql.ScalarConfig{
		Name:        "Uuid",
		Description: "A UUID is a unique 128-bit number, stored as 16 octets and written as its RFC 4122 textual form.",
		ResultCoercer: graphql.CoerceScalarResultFunc(func(value interface{}) (interface{}, error) {
			switch value := value.(type) {
			case uuid.UUID:
				return value.String(), nil
			case *uuid.UUID:
				if value != nil {
					return value.String(), nil
				}
			case string:
				id, err := parseUUID(value)
				if err != nil {
					return nil, err
				}
				return id.(uuid.UUID).String(), nil
			}
			return nil, graphql.NewDefaultResultCoercionError("Uuid", value)
		}),
		InputCoercer: graphql.ScalarInputCoercerFuncs{
			CoerceVariableValueFunc: func(value interface{}) (interface{}, error) {
				if s, ok := value.(string); ok {
					return parseUUID(s)
				}
				return nil, graphql.NewCoercionError("Uuid cannot represent a non string value: %s", graphql.Inspect(value))
			},
			CoerceArgumentValueFunc: func(value ast.Value) (interface{}, error) {
				if s, ok := value.(ast.StringValue); ok {
					return parseUUID(s.Value())
				}
				return nil, graphql.NewCoercionError("Uuid cannot represent a non string value: %s", graphql.Inspect(value.Interface()))
			},
		},
	})
}
