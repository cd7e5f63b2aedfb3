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
	"strconv"
	"strings"
	"sync"
)

// TypeKind enumerates the kinds of types reported by introspection.
type TypeKind string

// Enumeration of TypeKind
const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

// KindOf returns the introspection kind of t.
func KindOf(t Type) TypeKind {
	switch t.(type) {
	case *Scalar:
		return TypeKindScalar
	case *Object:
		return TypeKindObject
	case *Enum:
		return TypeKindEnum
	case *InputObject:
		return TypeKindInputObject
	case *List:
		return TypeKindList
	case *NonNull:
		return TypeKindNonNull
	}
	return ""
}

// inputValue is implemented by *Argument and *InputField.
type inputValue interface {
	Name() string
	Description() string
	Type() Type
	HasDefaultValue() bool
	DefaultValue() interface{}
}

var (
	_ inputValue = (*Argument)(nil)
	_ inputValue = (*InputField)(nil)
)

// introspection holds the meta types and meta fields. They reference each other so they are built
// in a function instead of package-level initializers.
type introspection struct {
	schemaType            *Object
	typeType              *Object
	fieldType             *Object
	inputValueType        *Object
	enumValueType         *Object
	directiveType         *Object
	typeKindType          *Enum
	directiveLocationType *Enum

	schemaMetaField   *Field
	typeMetaField     *Field
	typeNameMetaField *Field
}

var (
	introspectionOnce sync.Once
	introspectionData *introspection
)

func getIntrospection() *introspection {
	introspectionOnce.Do(func() {
		introspectionData = buildIntrospection()
	})
	return introspectionData
}

func introspectionSchemaType() *Object {
	return getIntrospection().schemaType
}

// SchemaMetaFieldDef returns the definition of "__schema" field available on the query root.
func SchemaMetaFieldDef() *Field {
	return getIntrospection().schemaMetaField
}

// TypeMetaFieldDef returns the definition of "__type" field available on the query root.
func TypeMetaFieldDef() *Field {
	return getIntrospection().typeMetaField
}

// TypeNameMetaFieldDef returns the definition of "__typename" field available on every object.
func TypeNameMetaFieldDef() *Field {
	return getIntrospection().typeNameMetaField
}

// IsIntrospectionType returns true if t is one of the introspection meta types.
func IsIntrospectionType(t Type) bool {
	named := NamedTypeOf(t)
	return named != nil && strings.HasPrefix(named.Name(), "__")
}

func resolveWith(f func(source interface{}, info ResolveInfo) (interface{}, error)) FieldResolver {
	return FieldResolverFunc(func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
		return f(source, info)
	})
}

func includeDeprecated(info ResolveInfo) bool {
	include, _ := info.Args().Get("includeDeprecated").(bool)
	return include
}

func buildIntrospection() *introspection {
	i := &introspection{}

	nonNullString := MustNewNonNullOf(String())
	nonNullBoolean := MustNewNonNullOf(Boolean())

	i.typeKindType = MustNewEnum(&EnumConfig{
		Name:        "__TypeKind",
		Description: "An enum describing what kind of type a given `__Type` is.",
		Values: EnumValueConfigMap{
			"SCALAR":       {Value: TypeKindScalar, Description: "Indicates this type is a scalar."},
			"OBJECT":       {Value: TypeKindObject, Description: "Indicates this type is an object. `fields` and `interfaces` are valid fields."},
			"INTERFACE":    {Value: TypeKindInterface, Description: "Indicates this type is an interface. `fields` and `possibleTypes` are valid fields."},
			"UNION":        {Value: TypeKindUnion, Description: "Indicates this type is a union. `possibleTypes` is a valid field."},
			"ENUM":         {Value: TypeKindEnum, Description: "Indicates this type is an enum. `enumValues` is a valid field."},
			"INPUT_OBJECT": {Value: TypeKindInputObject, Description: "Indicates this type is an input object. `inputFields` is a valid field."},
			"LIST":         {Value: TypeKindList, Description: "Indicates this type is a list. `ofType` is a valid field."},
			"NON_NULL":     {Value: TypeKindNonNull, Description: "Indicates this type is a non-null. `ofType` is a valid field."},
		},
	})

	locations := EnumValueConfigMap{}
	for _, location := range []DirectiveLocation{
		DirectiveLocationQuery,
		DirectiveLocationMutation,
		DirectiveLocationSubscription,
		DirectiveLocationField,
		DirectiveLocationFragmentDefinition,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
		DirectiveLocationFieldDefinition,
		DirectiveLocationEnumValue,
	} {
		locations[string(location)] = EnumValueConfig{Value: location}
	}
	i.directiveLocationType = MustNewEnum(&EnumConfig{
		Name: "__DirectiveLocation",
		Description: "A Directive can be adjacent to many parts of the GraphQL language, a " +
			"__DirectiveLocation describes one such possible adjacencies.",
		Values: locations,
	})

	i.typeType = MustNewObject(&ObjectConfig{
		Name: "__Type",
		Description: "The fundamental unit of any GraphQL Schema is the type. There are many kinds of " +
			"types in GraphQL as represented by the `__TypeKind` enum.",
		FieldsThunk: func() Fields {
			nonNullType := MustNewNonNullOf(i.typeType)
			includeDeprecatedArgs := ArgumentConfigMap{
				"includeDeprecated": {
					Type:         Boolean(),
					DefaultValue: false,
				},
			}
			return Fields{
				"kind": {
					Type: MustNewNonNullOf(i.typeKindType),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return KindOf(source.(Type)), nil
					}),
				},
				"name": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if t, ok := source.(TypeWithName); ok {
							return t.Name(), nil
						}
						return nil, nil
					}),
				},
				"description": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if t, ok := source.(TypeWithDescription); ok && len(t.Description()) > 0 {
							return t.Description(), nil
						}
						return nil, nil
					}),
				},
				"fields": {
					Type: MustNewListOf(MustNewNonNullOf(i.fieldType)),
					Args: includeDeprecatedArgs,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						object, ok := source.(*Object)
						if !ok {
							return nil, nil
						}
						fieldMap := object.Fields()
						fields := make([]*Field, 0, len(fieldMap))
						for _, name := range fieldMap.SortedNames() {
							field := fieldMap[name]
							if field.Deprecation().Defined() && !includeDeprecated(info) {
								continue
							}
							fields = append(fields, field)
						}
						return fields, nil
					}),
				},
				"interfaces": {
					Type: MustNewListOf(nonNullType),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if _, ok := source.(*Object); ok {
							return []Type{}, nil
						}
						return nil, nil
					}),
				},
				"possibleTypes": {
					Type: MustNewListOf(nonNullType),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nil, nil
					}),
				},
				"enumValues": {
					Type: MustNewListOf(MustNewNonNullOf(i.enumValueType)),
					Args: includeDeprecatedArgs,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						enum, ok := source.(*Enum)
						if !ok {
							return nil, nil
						}
						values := make([]*EnumValue, 0, len(enum.Values()))
						for _, value := range enum.Values() {
							if value.IsDeprecated() && !includeDeprecated(info) {
								continue
							}
							values = append(values, value)
						}
						return values, nil
					}),
				},
				"inputFields": {
					Type: MustNewListOf(MustNewNonNullOf(i.inputValueType)),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						object, ok := source.(*InputObject)
						if !ok {
							return nil, nil
						}
						fields := make([]inputValue, len(object.Fields()))
						for idx, field := range object.Fields() {
							fields[idx] = field
						}
						return fields, nil
					}),
				},
				"ofType": {
					Type: i.typeType,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if t, ok := source.(WrappingType); ok {
							return t.UnwrappedType(), nil
						}
						return nil, nil
					}),
				},
			}
		},
	})

	i.fieldType = MustNewObject(&ObjectConfig{
		Name: "__Field",
		Description: "Object and Interface types are described by a list of Fields, each of which has " +
			"a name, potentially a list of arguments, and a return type.",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: nonNullString,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Field).Name(), nil
					}),
				},
				"description": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nonEmptyOrNil(source.(*Field).Description()), nil
					}),
				},
				"args": {
					Type: MustNewNonNullOf(MustNewListOf(MustNewNonNullOf(i.inputValueType))),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return argumentsAsInputValues(source.(*Field).Args()), nil
					}),
				},
				"type": {
					Type: MustNewNonNullOf(i.typeType),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Field).Type(), nil
					}),
				},
				"isDeprecated": {
					Type: nonNullBoolean,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Field).Deprecation().Defined(), nil
					}),
				},
				"deprecationReason": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if deprecation := source.(*Field).Deprecation(); deprecation.Defined() {
							return deprecation.Reason, nil
						}
						return nil, nil
					}),
				},
			}
		},
	})

	i.inputValueType = MustNewObject(&ObjectConfig{
		Name: "__InputValue",
		Description: "Arguments provided to Fields or Directives and the input fields of an " +
			"InputObject are represented as Input Values which describe their type and optionally a " +
			"default value.",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: nonNullString,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(inputValue).Name(), nil
					}),
				},
				"description": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nonEmptyOrNil(source.(inputValue).Description()), nil
					}),
				},
				"type": {
					Type: MustNewNonNullOf(i.typeType),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(inputValue).Type(), nil
					}),
				},
				"defaultValue": {
					Type:        String(),
					Description: "A GraphQL-formatted string representing the default value for this input value.",
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						value := source.(inputValue)
						if !value.HasDefaultValue() {
							return nil, nil
						}
						return PrintValueLiteral(value.DefaultValue(), value.Type()), nil
					}),
				},
			}
		},
	})

	i.enumValueType = MustNewObject(&ObjectConfig{
		Name: "__EnumValue",
		Description: "One possible value for a given Enum. Enum values are unique values, not a " +
			"placeholder for a string or numeric value. However an Enum value is returned in a JSON " +
			"response as a string.",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: nonNullString,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*EnumValue).Name(), nil
					}),
				},
				"description": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nonEmptyOrNil(source.(*EnumValue).Description()), nil
					}),
				},
				"isDeprecated": {
					Type: nonNullBoolean,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*EnumValue).IsDeprecated(), nil
					}),
				},
				"deprecationReason": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if deprecation := source.(*EnumValue).Deprecation(); deprecation.Defined() {
							return deprecation.Reason, nil
						}
						return nil, nil
					}),
				},
			}
		},
	})

	i.directiveType = MustNewObject(&ObjectConfig{
		Name: "__Directive",
		Description: "A Directive provides a way to describe alternate runtime execution and type " +
			"validation behavior in a GraphQL document.",
		FieldsThunk: func() Fields {
			return Fields{
				"name": {
					Type: nonNullString,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Directive).Name(), nil
					}),
				},
				"description": {
					Type: String(),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nonEmptyOrNil(source.(*Directive).Description()), nil
					}),
				},
				"locations": {
					Type: MustNewNonNullOf(MustNewListOf(MustNewNonNullOf(i.directiveLocationType))),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Directive).Locations(), nil
					}),
				},
				"args": {
					Type: MustNewNonNullOf(MustNewListOf(MustNewNonNullOf(i.inputValueType))),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return argumentsAsInputValues(source.(*Directive).Args()), nil
					}),
				},
			}
		},
	})

	i.schemaType = MustNewObject(&ObjectConfig{
		Name: "__Schema",
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all " +
			"available types and directives on the server, as well as the entry points for query, " +
			"mutation, and subscription operations.",
		FieldsThunk: func() Fields {
			nonNullType := MustNewNonNullOf(i.typeType)
			return Fields{
				"types": {
					Description: "A list of all types supported by this server.",
					Type:        MustNewNonNullOf(MustNewListOf(nonNullType)),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Schema).Types(), nil
					}),
				},
				"queryType": {
					Description: "The type that query operations will be rooted at.",
					Type:        nonNullType,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return source.(*Schema).Query(), nil
					}),
				},
				"mutationType": {
					Description: "If this server supports mutation, the type that mutation operations will be rooted at.",
					Type:        i.typeType,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						if mutation := source.(*Schema).Mutation(); mutation != nil {
							return mutation, nil
						}
						return nil, nil
					}),
				},
				"subscriptionType": {
					Description: "If this server support subscription, the type that subscription operations will be rooted at.",
					Type:        i.typeType,
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return nil, nil
					}),
				},
				"directives": {
					Description: "A list of all directives supported by this server.",
					Type:        MustNewNonNullOf(MustNewListOf(MustNewNonNullOf(i.directiveType))),
					Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
						return []*Directive(source.(*Schema).Directives()), nil
					}),
				},
			}
		},
	})

	var err error
	i.schemaMetaField, err = newField("Query", "__schema", &FieldConfig{
		Description: "Access the current type schema of this server.",
		Type:        MustNewNonNullOf(i.schemaType),
		Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
			return info.Schema(), nil
		}),
	})
	if err != nil {
		panic(err)
	}

	i.typeMetaField, err = newField("Query", "__type", &FieldConfig{
		Description: "Request the type information of a single type.",
		Type:        i.typeType,
		Args: ArgumentConfigMap{
			"name": {
				Type: nonNullString,
			},
		},
		Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
			name, _ := info.Args().Get("name").(string)
			if t := info.Schema().TypeFromName(name); t != nil {
				return t, nil
			}
			return nil, nil
		}),
	})
	if err != nil {
		panic(err)
	}

	i.typeNameMetaField, err = newField("Object", "__typename", &FieldConfig{
		Description: "The name of the current Object type at runtime.",
		Type:        nonNullString,
		Resolver: resolveWith(func(source interface{}, info ResolveInfo) (interface{}, error) {
			return info.Object().Name(), nil
		}),
	})
	if err != nil {
		panic(err)
	}

	return i
}

func nonEmptyOrNil(s string) interface{} {
	if len(s) == 0 {
		return nil
	}
	return s
}

func argumentsAsInputValues(args []Argument) []inputValue {
	values := make([]inputValue, len(args))
	for i := range args {
		values[i] = &args[i]
	}
	return values
}

// PrintValueLiteral formats an internal value of the given input type as a GraphQL literal. It is
// used to report default values.
func PrintValueLiteral(value interface{}, t Type) string {
	if value == nil {
		return "null"
	}

	switch t := t.(type) {
	case *NonNull:
		return PrintValueLiteral(value, t.InnerType())

	case *List:
		if items, ok := value.([]interface{}); ok {
			printed := make([]string, len(items))
			for i, item := range items {
				printed[i] = PrintValueLiteral(item, t.ElementType())
			}
			return "[" + strings.Join(printed, ", ") + "]"
		}
		return PrintValueLiteral(value, t.ElementType())

	case *InputObject:
		fields, ok := value.(map[string]interface{})
		if !ok {
			return Inspect(value)
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		printed := make([]string, 0, len(names))
		for _, name := range names {
			if field := t.Field(name); field != nil {
				printed = append(printed, name+": "+PrintValueLiteral(fields[name], field.Type()))
			}
		}
		return "{" + strings.Join(printed, ", ") + "}"

	case *Enum:
		if name, err := t.CoerceResultValue(value); err == nil {
			return name.(string)
		}

	case *Scalar:
		serialized, err := t.CoerceResultValue(value)
		if err != nil {
			return Inspect(value)
		}
		switch serialized := serialized.(type) {
		case string:
			return strconv.Quote(serialized)
		case bool:
			return strconv.FormatBool(serialized)
		case int:
			return strconv.Itoa(serialized)
		case float64:
			return strconv.FormatFloat(serialized, 'g', -1, 64)
		}
	}

	return Inspect(value)
}
