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
	jsoniter "github.com/json-iterator/go"

	"github.com/botobag/routes/graphql/ast"
)

// An ArgumentValues contains argument values given to a field. It is immutable after it is created.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	values: map[string]interface{}{},
}

// NoArgumentValues represents an empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues from given values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns argument value for the given name. The second value (ok) is true if the argument
// exists.
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns argument value for the given name. It returns nil if no such argument was found.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// Len returns the number of arguments.
func (args ArgumentValues) Len() int {
	return len(args.values)
}

// MarshalJSON serializes the argument values into a JSON object.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(args.values)
}

// VariableValues contains coerced values for variables defined by the operation. It is immutable
// after it is created.
//
// Reference: https://spec.graphql.org/June2018/#sec-Language.Variables
type VariableValues struct {
	values map[string]interface{}
}

var noVariableValues = VariableValues{
	values: map[string]interface{}{},
}

// NoVariableValues represents an empty variable value set.
func NoVariableValues() VariableValues {
	return noVariableValues
}

// NewVariableValues creates a VariableValues from given values.
func NewVariableValues(values map[string]interface{}) VariableValues {
	if len(values) == 0 {
		return noVariableValues
	}
	return VariableValues{values}
}

// Lookup returns variable value for the given name. The second value (ok) is true if the variable
// exists.
func (vars VariableValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = vars.values[name]
	return
}

// Get returns variable value for the given name. It returns nil if no such variable was found.
func (vars VariableValues) Get(name string) interface{} {
	return vars.values[name]
}

// MarshalJSON serializes the variable values into a JSON object.
func (vars VariableValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(vars.values)
}

// ResolveInfo exposes information about the current execution state to a FieldResolver.
type ResolveInfo interface {
	// Schema of the executing operation
	Schema() *Schema

	// Operation being executed
	Operation() *ast.OperationDefinition

	// Object is the parent type of the field being resolved.
	Object() *Object

	// Field being resolved
	Field() *Field

	// FieldDefinitions contains the AST nodes of the field. More than one node is given when the
	// same response key is selected multiple times (e.g., through fragments).
	FieldDefinitions() []*ast.Field

	// Path to the field in the response
	Path() ResponsePath

	// Args contains the coerced argument values of the field.
	Args() ArgumentValues

	// RootValue given to the execution
	RootValue() interface{}

	// AppContext is an application-specific value given to the execution. It is usually used to
	// carry per-request state such as data stores.
	AppContext() interface{}

	// VariableValues of the operation
	VariableValues() VariableValues
}
