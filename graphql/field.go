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
	"context"
	"sort"
)

// FieldResolver resolves the value of a field.
type FieldResolver interface {
	// Resolve the value for the field from source. The returned value must be assignable to the
	// field's type. A returned error becomes a field error in the response.
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

var _ FieldResolver = (FieldResolverFunc)(nil)

// Fields maps field names to their definitions.
type Fields map[string]FieldConfig

// FieldConfig provides definition of a field when defining an object.
type FieldConfig struct {
	// Description of the field
	Description string

	// Type of the field; must be an output type.
	Type Type

	// Args maps argument names to their definitions.
	Args ArgumentConfigMap

	// Resolver resolves the field value. The default field resolver of the executor is used if nil.
	Resolver FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation *Deprecation
}

// Field is a field defined in an object type.
//
// Reference: https://spec.graphql.org/June2018/#FieldsDefinition
type Field struct {
	name        string
	description string
	ttype       Type
	args        []Argument
	resolver    FieldResolver
	deprecation *Deprecation
}

func newField(parentName string, name string, config *FieldConfig) (*Field, error) {
	if config.Type == nil {
		return nil, NewError(parentName + "." + name + " field type must be an output type but got: nil.")
	}
	if !IsOutputType(config.Type) {
		return nil, NewError(parentName + "." + name + " field type must be an output type but got: " +
			config.Type.String() + ".")
	}

	args, err := buildArguments(parentName+"."+name, config.Args)
	if err != nil {
		return nil, err
	}

	return &Field{
		name:        name,
		description: config.Description,
		ttype:       config.Type,
		args:        args,
		resolver:    config.Resolver,
		deprecation: config.Deprecation,
	}, nil
}

// Name of the field
func (f *Field) Name() string {
	return f.name
}

// Description of the field
func (f *Field) Description() string {
	return f.description
}

// Type of the field
func (f *Field) Type() Type {
	return f.ttype
}

// Args returns the arguments sorted by name.
func (f *Field) Args() []Argument {
	return f.args
}

// Arg finds the argument with the given name. Returns nil if not found.
func (f *Field) Arg(name string) *Argument {
	for i := range f.args {
		if f.args[i].name == name {
			return &f.args[i]
		}
	}
	return nil
}

// Resolver returns the resolver; nil means the executor's default resolver.
func (f *Field) Resolver() FieldResolver {
	return f.resolver
}

// Deprecation returns the deprecation info, or nil.
func (f *Field) Deprecation() *Deprecation {
	return f.deprecation
}

// FieldMap maps field names to the defined fields.
type FieldMap map[string]*Field

// SortedNames returns field names in alphabetical order.
func (fieldMap FieldMap) SortedNames() []string {
	names := make([]string, 0, len(fieldMap))
	for name := range fieldMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ArgumentConfigMap maps argument names to their definitions.
type ArgumentConfigMap map[string]ArgumentConfig

// ArgumentConfig provides definition for an argument of a field or a directive.
type ArgumentConfig struct {
	// Description of the argument
	Description string

	// Type of the argument; must be an input type.
	Type Type

	// DefaultValue is used when the argument is not given. Leave it nil for no default value; use
	// NilArgumentDefaultValue to specify null as default.
	DefaultValue interface{}
}

type nilArgumentDefaultValue struct{}

// NilArgumentDefaultValue sets an argument's default value to null.
var NilArgumentDefaultValue = nilArgumentDefaultValue{}

// Argument is an argument of a field or a directive.
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

func buildArguments(owner string, configs ArgumentConfigMap) ([]Argument, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	args := make([]Argument, 0, len(configs))
	for name, config := range configs {
		if config.Type == nil || !IsInputType(config.Type) {
			return nil, NewError(owner + "(" + name + ":) argument type must be an input type.")
		}
		args = append(args, Argument{
			name:         name,
			description:  config.Description,
			ttype:        config.Type,
			defaultValue: config.DefaultValue,
		})
	}

	sort.Slice(args, func(i, j int) bool {
		return args[i].name < args[j].name
	})

	return args, nil
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument has a default value.
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue returns the default value; nil if it is null or there is no default.
func (arg *Argument) DefaultValue() interface{} {
	if arg.defaultValue == NilArgumentDefaultValue {
		return nil
	}
	return arg.defaultValue
}

// IsRequiredArgument returns true if the argument must be given in a request: it is non-null and
// has no default value.
func IsRequiredArgument(arg *Argument) bool {
	return IsNonNullType(arg.Type()) && !arg.HasDefaultValue()
}
