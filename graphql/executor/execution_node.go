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

package executor

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// ExecutionNode contains information about a field to be executed. The nodes form a tree that
// mirrors the shape of the response. A node is built from the fields in the selection set that share
// the same response key (e.g., "a" in "{ a, ...Frag }" and "fragment Frag on T { a }").
type ExecutionNode struct {
	// The parent node; nil for root node.
	Parent *ExecutionNode

	// The field definitions in the document that were merged into this node. All of them have the
	// same response key.
	Definitions []*ast.Field

	// The definition of the field in the schema
	Field *graphql.Field

	// The argument values given to the field. It is computed when the node is built.
	Args graphql.ArgumentValues

	// Error occurred when computing Args; it is reported when the field is executed.
	ArgsErr error

	// Nodes for the fields in the selection set of this field. They are built on demand when the
	// field is completed as an Object value.
	Children []*ExecutionNode

	// True if Children has been built
	childrenBuilt bool
}

// IsRoot returns true if this is the root node in the execution tree.
func (node *ExecutionNode) IsRoot() bool {
	return node.Parent == nil
}

// ResponseKey returns the key in the response to which the result of this node is written.
func (node *ExecutionNode) ResponseKey() string {
	return node.Definitions[0].ResponseKey()
}

// Locations returns locations of the field definitions in the document for reporting errors.
func (node *ExecutionNode) Locations() []graphql.ErrorLocation {
	locations := make([]graphql.ErrorLocation, len(node.Definitions))
	for i, definition := range node.Definitions {
		locations[i] = graphql.ErrorLocationOfASTNode(definition)
	}
	return locations
}
