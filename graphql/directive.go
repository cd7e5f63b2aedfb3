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

// DirectiveLocation specifies a valid location for a directive to be used.
//
// Reference: https://spec.graphql.org/June2018/#DirectiveLocation
type DirectiveLocation string

// Executable directive locations
const (
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
)

// Type system directive locations
const (
	DirectiveLocationFieldDefinition DirectiveLocation = "FIELD_DEFINITION"
	DirectiveLocationEnumValue       DirectiveLocation = "ENUM_VALUE"
)

// DirectiveConfig provides specification to define a Directive.
type DirectiveConfig struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        ArgumentConfigMap
}

// Directive is used to annotate various parts of a GraphQL document as an indicator that they
// should be evaluated differently by a validator, executor, or client tool.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-System.Directives
type Directive struct {
	name        string
	description string
	locations   []DirectiveLocation
	args        []Argument
}

// NewDirective defines a Directive from a DirectiveConfig.
func NewDirective(config *DirectiveConfig) (*Directive, error) {
	if len(config.Name) == 0 {
		return nil, NewError("Directive must be named.")
	}
	if len(config.Locations) == 0 {
		return nil, NewError("Must provide locations for directive.")
	}

	args, err := buildArguments("@"+config.Name, config.Args)
	if err != nil {
		return nil, err
	}

	return &Directive{
		name:        config.Name,
		description: config.Description,
		locations:   config.Locations,
		args:        args,
	}, nil
}

// MustNewDirective is a convenience function equivalent to NewDirective but panics on failure.
func MustNewDirective(config *DirectiveConfig) *Directive {
	d, err := NewDirective(config)
	if err != nil {
		panic(err)
	}
	return d
}

// Name of the directive
func (d *Directive) Name() string {
	return d.name
}

// Description of the directive
func (d *Directive) Description() string {
	return d.description
}

// Locations where the directive can be placed
func (d *Directive) Locations() []DirectiveLocation {
	return d.locations
}

// Args returns the arguments sorted by name.
func (d *Directive) Args() []Argument {
	return d.args
}

// Arg finds the argument with the given name. Returns nil if not found.
func (d *Directive) Arg(name string) *Argument {
	for i := range d.args {
		if d.args[i].name == name {
			return &d.args[i]
		}
	}
	return nil
}

// HasLocation returns true if the directive can be used at the location.
func (d *Directive) HasLocation(location DirectiveLocation) bool {
	for _, l := range d.locations {
		if l == location {
			return true
		}
	}
	return false
}

// DirectiveList is a list of directives.
type DirectiveList []*Directive

// Lookup finds the directive with the given name. Returns nil if not found.
func (list DirectiveList) Lookup(name string) *Directive {
	for _, d := range list {
		if d.name == name {
			return d
		}
	}
	return nil
}

var skipDirective = MustNewDirective(&DirectiveConfig{
	Name:        "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: ArgumentConfigMap{
		"if": {
			Description: "Skipped when true.",
			Type:        MustNewNonNullOf(Boolean()),
		},
	},
})

// SkipDirective returns the built-in @skip directive.
func SkipDirective() *Directive {
	return skipDirective
}

var includeDirective = MustNewDirective(&DirectiveConfig{
	Name:        "include",
	Description: "Directs the executor to include this field or fragment only when the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: ArgumentConfigMap{
		"if": {
			Description: "Included when true.",
			Type:        MustNewNonNullOf(Boolean()),
		},
	},
})

// IncludeDirective returns the built-in @include directive.
func IncludeDirective() *Directive {
	return includeDirective
}

var deprecatedDirective = MustNewDirective(&DirectiveConfig{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Locations: []DirectiveLocation{
		DirectiveLocationFieldDefinition,
		DirectiveLocationEnumValue,
	},
	Args: ArgumentConfigMap{
		"reason": {
			Description: "Explains why this element was deprecated, usually also including a " +
				"suggestion for how to access supported similar data. Formatted using " +
				"the Markdown syntax (as specified by [CommonMark](https://commonmark.org/).",
			Type:         String(),
			DefaultValue: DefaultDeprecationReason,
		},
	},
})

// DeprecatedDirective returns the built-in @deprecated directive.
func DeprecatedDirective() *Directive {
	return deprecatedDirective
}

// StandardDirectives returns the directives defined by GraphQL.
func StandardDirectives() DirectiveList {
	return DirectiveList{
		skipDirective,
		includeDirective,
		deprecatedDirective,
	}
}
