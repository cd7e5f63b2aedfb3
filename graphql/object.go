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
	"sync"
)

// ObjectConfig provides specification to define an Object type.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Fields in the object. Use FieldsThunk instead when fields refer to types that are not yet
	// created, such as the object itself.
	Fields Fields

	// FieldsThunk returns the fields on the first request.
	FieldsThunk func() Fields
}

// Object Type Definition
//
// Almost all of the GraphQL types you define will be object types. Object types have a name, but
// most importantly describe their fields.
//
// Reference: https://spec.graphql.org/June2018/#sec-Objects
type Object struct {
	name        string
	description string

	fieldsThunk func() Fields
	fieldsOnce  sync.Once
	fields      FieldMap
	fieldsErr   error
}

var _ TypeWithName = (*Object)(nil)

// NewObject defines an Object type from an ObjectConfig.
func NewObject(config *ObjectConfig) (*Object, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Must provide name for Object.")
	}

	o := &Object{
		name:        config.Name,
		description: config.Description,
		fieldsThunk: config.FieldsThunk,
	}
	if o.fieldsThunk == nil {
		fields := config.Fields
		o.fieldsThunk = func() Fields { return fields }
	}

	return o, nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure.
func MustNewObject(config *ObjectConfig) *Object {
	o, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

func (*Object) graphqlType() {}

// Name implements TypeWithName.
func (o *Object) Name() string {
	return o.name
}

// Description implements TypeWithDescription.
func (o *Object) Description() string {
	return o.description
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	return o.name
}

func (o *Object) buildFields() {
	o.fieldsOnce.Do(func() {
		configs := o.fieldsThunk()
		if len(configs) == 0 {
			o.fieldsErr = NewError(o.name + " fields must be an object with field names as keys.")
			return
		}
		fields := make(FieldMap, len(configs))
		for name, config := range configs {
			field, err := newField(o.name, name, &config)
			if err != nil {
				o.fieldsErr = err
				return
			}
			fields[name] = field
		}
		o.fields = fields
	})
}

// Fields returns the fields of the object. It is empty if the field definitions are invalid; NewSchema
// reports such error.
func (o *Object) Fields() FieldMap {
	o.buildFields()
	return o.fields
}

// FieldsError returns the error found when building the fields.
func (o *Object) FieldsError() error {
	o.buildFields()
	return o.fieldsErr
}
