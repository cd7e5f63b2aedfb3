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

// Package introspection builds the documents that GraphQL tools send to discover a schema.
package introspection

import (
	"strings"
	"text/template"
)

// DefaultTypeRefDepth is the number of nested ofType levels requested for each type reference.
// It covers types such as [[Route!]!]!.
const DefaultTypeRefDepth = 7

type queryOptions struct {
	OmitDescriptions bool
	TypeRefDepth     int
}

// QueryOption provides an option to Query.
type QueryOption func(options *queryOptions)

// OmitDescriptions leaves descriptions out of the query.
func OmitDescriptions() QueryOption {
	return func(options *queryOptions) {
		options.OmitDescriptions = true
	}
}

// TypeRefDepth sets how many ofType levels are requested for each type reference.
func TypeRefDepth(depth int) QueryOption {
	return func(options *queryOptions) {
		if depth > 0 {
			options.TypeRefDepth = depth
		}
	}
}

var queryTemplate = template.Must(template.New("IntrospectionQuery").Funcs(template.FuncMap{
	"levels": func(n int) []struct{} {
		return make([]struct{}, n)
	},
}).Parse(`{{define "description"}}{{if not .OmitDescriptions}}description{{end}}{{end}}
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types { ...FullType }
    directives {
      name
      {{template "description" .}}
      locations
      args { ...InputValue }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  {{template "description" .}}
  fields(includeDeprecated: true) {
    name
    {{template "description" .}}
    args { ...InputValue }
    type { ...TypeRef }
    isDeprecated
    deprecationReason
  }
  inputFields { ...InputValue }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) {
    name
    {{template "description" .}}
    isDeprecated
    deprecationReason
  }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  {{template "description" .}}
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  {{range levels .TypeRefDepth}}ofType { kind name {{end}}{{range levels .TypeRefDepth}}}{{end}}
}
`))

// Query returns the introspection query document.
func Query(opts ...QueryOption) string {
	options := queryOptions{
		TypeRefDepth: DefaultTypeRefDepth,
	}
	for _, opt := range opts {
		opt(&options)
	}

	var b strings.Builder
	if err := queryTemplate.Execute(&b, &options); err != nil {
		panic("introspection: " + err.Error())
	}
	return b.String()
}
