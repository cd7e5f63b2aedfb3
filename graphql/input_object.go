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
	"sync"
)

// InputFieldConfig provides definition of a field in an input object.
type InputFieldConfig struct {
	// Description of the input field
	Description string

	// Type of the input field; must be an input type.
	Type Type

	// DefaultValue is used when the field is not given. Leave it nil for no default value; use
	// NilInputFieldDefaultValue to specify null as default.
	DefaultValue interface{}
}

// InputFields maps input field names to their definitions.
type InputFields map[string]InputFieldConfig

type nilInputFieldDefaultValue struct{}

// NilInputFieldDefaultValue sets an input field's default value to null.
var NilInputFieldDefaultValue = nilInputFieldDefaultValue{}

// InputField is a field in an input object.
type InputField struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
}

// Name of the input field
func (f *InputField) Name() string {
	return f.name
}

// Description of the input field
func (f *InputField) Description() string {
	return f.description
}

// Type of the input field
func (f *InputField) Type() Type {
	return f.ttype
}

// HasDefaultValue returns true if the field has a default value.
func (f *InputField) HasDefaultValue() bool {
	return f.defaultValue != nil
}

// DefaultValue returns the default value; nil if it is null or there is no default.
func (f *InputField) DefaultValue() interface{} {
	if f.defaultValue == NilInputFieldDefaultValue {
		return nil
	}
	return f.defaultValue
}

// InputObjectConfig provides specification to define an InputObject type.
type InputObjectConfig struct {
	// Name of the defining InputObject
	Name string

	// Description for the InputObject type
	Description string

	// Fields in the input object
	Fields InputFields

	// FieldsThunk returns the fields on the first request.
	FieldsThunk func() InputFields
}

// InputObject Type Definition
//
// An input object defines a structured collection of fields which may be supplied to a field
// argument. Values are coerced into map[string]interface{}.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Objects
type InputObject struct {
	name        string
	description string

	fieldsThunk func() InputFields
	fieldsOnce  sync.Once
	fields      []*InputField
	fieldsErr   error
}

var _ TypeWithName = (*InputObject)(nil)

// NewInputObject defines an InputObject type from an InputObjectConfig.
func NewInputObject(config *InputObjectConfig) (*InputObject, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for InputObject.")
	}

	o := &InputObject{
		name:        config.Name,
		description: config.Description,
		fieldsThunk: config.FieldsThunk,
	}
	if o.fieldsThunk == nil {
		fields := config.Fields
		o.fieldsThunk = func() InputFields { return fields }
	}

	return o, nil
}

// MustNewInputObject is a convenience function equivalent to NewInputObject but panics on failure.
func MustNewInputObject(config *InputObjectConfig) *InputObject {
	o, err := NewInputObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

func (*InputObject) graphqlType() {}

// Name implements TypeWithName.
func (o *InputObject) Name() string {
	return o.name
}

// Description implements TypeWithDescription.
func (o *InputObject) Description() string {
	return o.description
}

// String implements fmt.Stringer.
func (o *InputObject) String() string {
	return o.name
}

func (o *InputObject) buildFields() {
	o.fieldsOnce.Do(func() {
		configs := o.fieldsThunk()
		if len(configs) == 0 {
			o.fieldsErr = NewError(o.name + " fields must be an object with field names as keys.")
			return
		}
		fields := make([]*InputField, 0, len(configs))
		for name, config := range configs {
			if config.Type == nil || !IsInputType(config.Type) {
				o.fieldsErr = NewError(o.name + "." + name + " field type must be an input type.")
				return
			}
			fields = append(fields, &InputField{
				name:         name,
				description:  config.Description,
				ttype:        config.Type,
				defaultValue: config.DefaultValue,
			})
		}
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].name < fields[j].name
		})
		o.fields = fields
	})
}

// Fields returns the input fields sorted by name.
func (o *InputObject) Fields() []*InputField {
	o.buildFields()
	return o.fields
}

// Field finds the input field with the given name. Returns nil if not found.
func (o *InputObject) Field(name string) *InputField {
	for _, field := range o.Fields() {
		if field.name == name {
			return field
		}
	}
	return nil
}

// FieldsError returns the error found when building the fields.
func (o *InputObject) FieldsError() error {
	o.buildFields()
	return o.fieldsErr
}
