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

// SchemaConfig contains configuration to define a Schema.
type SchemaConfig struct {
	// Query is the root type of query operations. Required.
	Query *Object

	// Mutation is the root type of mutation operations.
	Mutation *Object

	// Types lists named types that are not reachable from the root types but should be included in
	// the schema.
	Types []Type

	// Directives to be used in the schema; StandardDirectives if empty.
	Directives DirectiveList
}

// Schema Definition
//
// A Schema is created by supplying the root types of each type of operation, query and mutation
// (optional). A schema definition is then supplied to the validator and executor.
//
// Reference: https://spec.graphql.org/June2018/#sec-Schema
type Schema struct {
	query      *Object
	mutation   *Object
	typeMap    map[string]TypeWithName
	typeNames  []string
	directives DirectiveList
}

// NewSchema creates a Schema from config. All types reachable from the root types are collected and
// their definitions are checked.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	if config.Query == nil {
		return nil, NewError("Schema query must be Object Type but got: nil.")
	}

	schema := &Schema{
		query:      config.Query,
		mutation:   config.Mutation,
		typeMap:    map[string]TypeWithName{},
		directives: config.Directives,
	}

	if len(schema.directives) == 0 {
		schema.directives = StandardDirectives()
	}

	roots := []Type{config.Query}
	if config.Mutation != nil {
		roots = append(roots, config.Mutation)
	}
	roots = append(roots, config.Types...)
	roots = append(roots, introspectionSchemaType())

	for _, directive := range schema.directives {
		for _, arg := range directive.Args() {
			roots = append(roots, arg.Type())
		}
	}

	for _, t := range roots {
		if err := schema.addType(t); err != nil {
			return nil, err
		}
	}

	schema.typeNames = make([]string, 0, len(schema.typeMap))
	for name := range schema.typeMap {
		schema.typeNames = append(schema.typeNames, name)
	}
	sort.Strings(schema.typeNames)

	return schema, nil
}

// MustNewSchema is a convenience function equivalent to NewSchema but panics on failure.
func MustNewSchema(config *SchemaConfig) *Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

// addType walks t and the types it references and adds them to the type map.
func (schema *Schema) addType(t Type) error {
	if t == nil {
		return nil
	}

	namedType := NamedTypeOf(t)
	if namedType == nil {
		return nil
	}

	name := namedType.Name()
	if existing, exists := schema.typeMap[name]; exists {
		if existing != namedType {
			return NewError(`Schema must contain unique named types but contains multiple types named "` +
				name + `".`)
		}
		return nil
	}
	schema.typeMap[name] = namedType

	switch namedType := namedType.(type) {
	case *Object:
		if err := namedType.FieldsError(); err != nil {
			return err
		}
		for _, field := range namedType.Fields() {
			for _, arg := range field.Args() {
				if err := schema.addType(arg.Type()); err != nil {
					return err
				}
			}
			if err := schema.addType(field.Type()); err != nil {
				return err
			}
		}

	case *InputObject:
		if err := namedType.FieldsError(); err != nil {
			return err
		}
		for _, field := range namedType.Fields() {
			if err := schema.addType(field.Type()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Query returns the root type of query operations.
func (schema *Schema) Query() *Object {
	return schema.query
}

// Mutation returns the root type of mutation operations; nil if not supported.
func (schema *Schema) Mutation() *Object {
	return schema.mutation
}

// RootType returns the root type for the given operation type; nil if not supported.
func (schema *Schema) RootType(operationType ast.OperationType) *Object {
	switch operationType {
	case ast.OperationTypeQuery:
		return schema.query
	case ast.OperationTypeMutation:
		return schema.mutation
	}
	return nil
}

// TypeFromName finds the named type in the schema. Returns nil if not found.
func (schema *Schema) TypeFromName(name string) TypeWithName {
	return schema.typeMap[name]
}

// Types returns all named types in the schema sorted by name.
func (schema *Schema) Types() []TypeWithName {
	types := make([]TypeWithName, len(schema.typeNames))
	for i, name := range schema.typeNames {
		types[i] = schema.typeMap[name]
	}
	return types
}

// Directives returns the directives supported by the schema.
func (schema *Schema) Directives() DirectiveList {
	return schema.directives
}

// TypeFromAST resolves a type reference in a document. Returns nil if the named type is not in the
// schema.
func (schema *Schema) TypeFromAST(t ast.Type) Type {
	switch t := t.(type) {
	case ast.NamedType:
		if namedType := schema.TypeFromName(t.Name.Value()); namedType != nil {
			return namedType
		}
		return nil

	case ast.ListType:
		elementType := schema.TypeFromAST(t.ItemType)
		if elementType == nil {
			return nil
		}
		return MustNewListOf(elementType)

	case ast.NonNullType:
		innerType := schema.TypeFromAST(t.Type)
		if innerType == nil {
			return nil
		}
		nonNull, err := NewNonNullOf(innerType)
		if err != nil {
			return nil
		}
		return nonNull
	}
	return nil
}
