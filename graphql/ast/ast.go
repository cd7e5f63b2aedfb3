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

package ast

import (
	"strconv"
	"strings"

	"github.com/botobag/routes/graphql/token"
)

// Node represents a node in an AST tree from parsing GraphQL language.
type Node interface {
	// Location of the first token of the node
	Location() token.SourceLocation
}

// Name represents a name.
//
// Reference: https://spec.graphql.org/June2018/#sec-Names
type Name struct {
	// Token is the lexical token that contains the name; nil if the name is absent (e.g., an
	// anonymous operation).
	Token *token.Token
}

// Value returns the name in string. Empty for an absent name.
func (node Name) Value() string {
	if node.Token == nil {
		return ""
	}
	return node.Token.Value
}

// IsNil returns true if the name is absent.
func (node Name) IsNil() bool {
	return node.Token == nil
}

// Location implements Node.
func (node Name) Location() token.SourceLocation {
	if node.Token == nil {
		return token.NoSourceLocation
	}
	return node.Token.Location
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

// Document represents a GraphQL executable document.
//
// Reference: https://spec.graphql.org/June2018/#Document
type Document struct {
	Definitions []Definition
}

// Definition represents an ExecutableDefinition: either an operation or a fragment.
type Definition interface {
	Node

	// GetSelectionSet specifies the sets of fields to fetch.
	GetSelectionSet() SelectionSet

	definitionNode()
}

// OperationType specifies the type of operation model.
type OperationType string

// Enumeration of OperationType
const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// OperationDefinition represents a GraphQL operation.
//
// Reference: https://spec.graphql.org/June2018/#OperationDefinition
type OperationDefinition struct {
	// Type is the Name token that contains operation type; nil for the query shorthand "{ ... }".
	Type *token.Token

	Name                Name
	VariableDefinitions []*VariableDefinition
	Directives          Directives
	SelectionSet        SelectionSet

	// Opening brace of the selection set; used as location for the query shorthand.
	Brace *token.Token
}

// Location implements Node.
func (definition *OperationDefinition) Location() token.SourceLocation {
	if definition.Type != nil {
		return definition.Type.Location
	}
	return definition.Brace.Location
}

// GetSelectionSet implements Definition.
func (definition *OperationDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

func (*OperationDefinition) definitionNode() {}

// IsQueryShorthand returns true for the short form "{ field }" which is implicitly a query.
func (definition *OperationDefinition) IsQueryShorthand() bool {
	return definition.Type == nil
}

// OperationType returns the type of operation.
func (definition *OperationDefinition) OperationType() OperationType {
	if definition.IsQueryShorthand() {
		return OperationTypeQuery
	}
	return OperationType(definition.Type.Value)
}

// FragmentDefinition represents a named fragment.
//
// Reference: https://spec.graphql.org/June2018/#FragmentDefinition
type FragmentDefinition struct {
	// The "fragment" keyword
	Keyword *token.Token

	Name          Name
	TypeCondition NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// Location implements Node.
func (definition *FragmentDefinition) Location() token.SourceLocation {
	return definition.Keyword.Location
}

// GetSelectionSet implements Definition.
func (definition *FragmentDefinition) GetSelectionSet() SelectionSet {
	return definition.SelectionSet
}

func (*FragmentDefinition) definitionNode() {}

//===----------------------------------------------------------------------------------------====//
// Selections
//===----------------------------------------------------------------------------------------====//

// SelectionSet specifies the information to be fetched.
type SelectionSet []Selection

// Selection is one of Field, FragmentSpread or InlineFragment.
type Selection interface {
	Node

	// GetDirectives returns directives applied to the selection.
	GetDirectives() Directives

	selectionNode()
}

// Field represents a field selection.
//
// Reference: https://spec.graphql.org/June2018/#Field
type Field struct {
	Alias        Name
	Name         Name
	Arguments    Arguments
	Directives   Directives
	SelectionSet SelectionSet
}

// Location implements Node.
func (node *Field) Location() token.SourceLocation {
	if !node.Alias.IsNil() {
		return node.Alias.Location()
	}
	return node.Name.Location()
}

// GetDirectives implements Selection.
func (node *Field) GetDirectives() Directives {
	return node.Directives
}

func (*Field) selectionNode() {}

// ResponseKey is the alias if given; otherwise the field name.
func (node *Field) ResponseKey() string {
	if !node.Alias.IsNil() {
		return node.Alias.Value()
	}
	return node.Name.Value()
}

// FragmentSpread represents "...Name".
type FragmentSpread struct {
	Spread     *token.Token
	Name       Name
	Directives Directives
}

// Location implements Node.
func (node *FragmentSpread) Location() token.SourceLocation {
	return node.Spread.Location
}

// GetDirectives implements Selection.
func (node *FragmentSpread) GetDirectives() Directives {
	return node.Directives
}

func (*FragmentSpread) selectionNode() {}

// InlineFragment represents "... on Type { }" or "... { }".
type InlineFragment struct {
	Spread *token.Token

	// TypeCondition is absent when TypeCondition.Name.IsNil().
	TypeCondition NamedType
	Directives    Directives
	SelectionSet  SelectionSet
}

// Location implements Node.
func (node *InlineFragment) Location() token.SourceLocation {
	return node.Spread.Location
}

// GetDirectives implements Selection.
func (node *InlineFragment) GetDirectives() Directives {
	return node.Directives
}

// HasTypeCondition returns true if the fragment has a type condition.
func (node *InlineFragment) HasTypeCondition() bool {
	return !node.TypeCondition.Name.IsNil()
}

func (*InlineFragment) selectionNode() {}

// Arguments is a list of Argument.
type Arguments []*Argument

// Argument represents "name: value".
type Argument struct {
	Name  Name
	Value Value
}

// Location implements Node.
func (node *Argument) Location() token.SourceLocation {
	return node.Name.Location()
}

// Directives is a list of Directive.
type Directives []*Directive

// Directive represents "@name(args)".
type Directive struct {
	At        *token.Token
	Name      Name
	Arguments Arguments
}

// Location implements Node.
func (node *Directive) Location() token.SourceLocation {
	return node.At.Location
}

//===----------------------------------------------------------------------------------------====//
// Values
//===----------------------------------------------------------------------------------------====//

// Value represents an input value in GraphQL document.
//
// Reference: https://spec.graphql.org/June2018/#Value
type Value interface {
	Node

	// Interface returns the Go value of a constant literal. Variables yield nil.
	Interface() interface{}

	valueNode()
}

// IntValue represents an integer literal.
type IntValue struct {
	Token *token.Token
}

// Location implements Node.
func (value IntValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value. It returns an int64, or a float64 if the literal overflows.
func (value IntValue) Interface() interface{} {
	if v, err := value.Int64Value(); err == nil {
		return v
	}
	f, _ := strconv.ParseFloat(value.Token.Value, 64)
	return f
}

// Int64Value parses the literal as int64.
func (value IntValue) Int64Value() (int64, error) {
	return strconv.ParseInt(value.Token.Value, 10, 64)
}

// String returns the literal text.
func (value IntValue) String() string { return value.Token.Value }

func (IntValue) valueNode() {}

// FloatValue represents a floating point literal.
type FloatValue struct {
	Token *token.Token
}

// Location implements Node.
func (value FloatValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value.
func (value FloatValue) Interface() interface{} {
	f, _ := value.FloatValue()
	return f
}

// FloatValue parses the literal as float64.
func (value FloatValue) FloatValue() (float64, error) {
	return strconv.ParseFloat(value.Token.Value, 64)
}

// String returns the literal text.
func (value FloatValue) String() string { return value.Token.Value }

func (FloatValue) valueNode() {}

// StringValue represents a string or block string literal.
type StringValue struct {
	Token *token.Token
}

// Location implements Node.
func (value StringValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value.
func (value StringValue) Interface() interface{} { return value.Token.Value }

// Value returns the interpreted string.
func (value StringValue) Value() string { return value.Token.Value }

func (StringValue) valueNode() {}

// BooleanValue represents true or false.
type BooleanValue struct {
	Token *token.Token
}

// Location implements Node.
func (value BooleanValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value.
func (value BooleanValue) Interface() interface{} { return value.Value() }

// Value returns the boolean.
func (value BooleanValue) Value() bool { return value.Token.Value == "true" }

func (BooleanValue) valueNode() {}

// NullValue represents null.
type NullValue struct {
	Token *token.Token
}

// Location implements Node.
func (value NullValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value.
func (value NullValue) Interface() interface{} { return nil }

func (NullValue) valueNode() {}

// EnumValue represents an enum literal.
type EnumValue struct {
	Token *token.Token
}

// Location implements Node.
func (value EnumValue) Location() token.SourceLocation { return value.Token.Location }

// Interface implements Value.
func (value EnumValue) Interface() interface{} { return value.Token.Value }

// Value returns the enum name.
func (value EnumValue) Value() string { return value.Token.Value }

func (EnumValue) valueNode() {}

// ListValue represents "[ values ]".
type ListValue struct {
	Bracket *token.Token
	Values  []Value
}

// Location implements Node.
func (value ListValue) Location() token.SourceLocation { return value.Bracket.Location }

// Interface implements Value.
func (value ListValue) Interface() interface{} {
	result := make([]interface{}, len(value.Values))
	for i, v := range value.Values {
		result[i] = v.Interface()
	}
	return result
}

func (ListValue) valueNode() {}

// ObjectValue represents "{ name: value }".
type ObjectValue struct {
	Brace  *token.Token
	Fields []*ObjectField
}

// Location implements Node.
func (value ObjectValue) Location() token.SourceLocation { return value.Brace.Location }

// Interface implements Value.
func (value ObjectValue) Interface() interface{} {
	result := make(map[string]interface{}, len(value.Fields))
	for _, field := range value.Fields {
		result[field.Name.Value()] = field.Value.Interface()
	}
	return result
}

func (ObjectValue) valueNode() {}

// ObjectField is an entry in ObjectValue.
type ObjectField struct {
	Name  Name
	Value Value
}

// Location implements Node.
func (field *ObjectField) Location() token.SourceLocation { return field.Name.Location() }

// Variable represents "$name".
type Variable struct {
	Dollar *token.Token
	Name   Name
}

// Location implements Node.
func (value Variable) Location() token.SourceLocation { return value.Dollar.Location }

// Interface implements Value.
func (value Variable) Interface() interface{} { return nil }

func (Variable) valueNode() {}

// VariableDefinition represents "$name: Type = default".
type VariableDefinition struct {
	Variable     Variable
	Type         Type
	DefaultValue Value
}

// Location implements Node.
func (definition *VariableDefinition) Location() token.SourceLocation {
	return definition.Variable.Location()
}

//===----------------------------------------------------------------------------------------====//
// Type references
//===----------------------------------------------------------------------------------------====//

// Type is a type reference in a variable definition.
type Type interface {
	Node

	// String prints the type in GraphQL syntax, e.g. "[Int!]".
	String() string

	typeNode()
}

// NamedType references a type by name.
type NamedType struct {
	Name Name
}

// Location implements Node.
func (t NamedType) Location() token.SourceLocation { return t.Name.Location() }

func (t NamedType) String() string { return t.Name.Value() }

func (NamedType) typeNode() {}

// ListType represents "[Type]".
type ListType struct {
	Bracket  *token.Token
	ItemType Type
}

// Location implements Node.
func (t ListType) Location() token.SourceLocation { return t.Bracket.Location }

func (t ListType) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(t.ItemType.String())
	b.WriteByte(']')
	return b.String()
}

func (ListType) typeNode() {}

// NonNullType represents "Type!". Its Type is never a NonNullType.
type NonNullType struct {
	Type Type
}

// Location implements Node.
func (t NonNullType) Location() token.SourceLocation { return t.Type.Location() }

func (t NonNullType) String() string { return t.Type.String() + "!" }

func (NonNullType) typeNode() {}
