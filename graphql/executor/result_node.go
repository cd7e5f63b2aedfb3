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

// ResultKind specifies which kind of value is held in the ResultNode. More specifically, it
// describes the type of ResultNode.Value.
type ResultKind uint8

// Enumeration of ResultKind
const (
	// ResultNode was resolved to a nil value (either because the field resolve to a nil value
	// or because an error occurred.) The Value contains an nil interface.
	ResultKindNil ResultKind = iota

	// ResultNode was resolved to a List value. The value contains will be an []ResultNode.
	ResultKindList

	// ResultNode was resolved to an Object value. The value contains contains an ObjectResultValue.
	ResultKindObject

	// ResultNode was resolved to a Scalar or Enum value. The value contains contains value that has
	// went through type's result coercion.
	ResultKindLeaf
)

// A ResultNode holds a field value. Result data from an execution of a GraphQL Operation [0] is
// made up of ResultNode's formed in a tree structure. ResultNode can be serialized to the response
// format [1].
//
// [0]: https://spec.graphql.org/June2018/#sec-Executing-Operations
// [1]: https://spec.graphql.org/June2018/#sec-Data
type ResultNode struct {
	// Kind describes kind of Value
	Kind ResultKind

	// The result value; This could be in a various format based on Kind.
	Value interface{}
}

// ObjectResultValue stores result from executing an Object field.
type ObjectResultValue struct {
	// The ExecutionNode's of Select Set that resolved FieldValues
	ExecutionNodes []*ExecutionNode

	// An array of ResultNode's each of which stores the result from executing the corresponding
	// ExecutionNode in ExecutionNode.
	FieldValues []ResultNode
}

// IsNil returns true if the node holds nil value (either because the field resolve to a nil value
// or because an error occurred.)
func (node *ResultNode) IsNil() bool {
	return node.Kind == ResultKindNil
}

// IsList returns true if the node holds result for a List field.
func (node *ResultNode) IsList() bool {
	return node.Kind == ResultKindList
}

// IsObject returns true if the node holds result for an Object field.
func (node *ResultNode) IsObject() bool {
	return node.Kind == ResultKindObject
}

// IsLeaf returns true if the node holds result for a Scalar or a Enum field.
func (node *ResultNode) IsLeaf() bool {
	return node.Kind == ResultKindLeaf
}

// ListValue returns a value that is held by this node for a List field. It would panic if this is
// not a resolved List result (i.e., IsList returns false).
func (node *ResultNode) ListValue() []ResultNode {
	return node.Value.([]ResultNode)
}

// ObjectValue returns a value that is held by this node for a Object field. It would panic if this
// is not a resolved Object result (i.e., IsObject returns false).
func (node *ResultNode) ObjectValue() *ObjectResultValue {
	return node.Value.(*ObjectResultValue)
}

// Get returns the result of the field with the given response key in an Object result. It returns
// nil if node is not an Object result or it doesn't contain the field.
func (node *ResultNode) Get(responseKey string) *ResultNode {
	if node == nil || !node.IsObject() {
		return nil
	}
	object := node.ObjectValue()
	for i, executionNode := range object.ExecutionNodes {
		if executionNode.ResponseKey() == responseKey {
			return &object.FieldValues[i]
		}
	}
	return nil
}

// Interface converts the result tree into a value made up of map[string]interface{},
// []interface{} and leaf values. Field order of objects is not preserved.
func (node *ResultNode) Interface() interface{} {
	switch node.Kind {
	case ResultKindList:
		nodes := node.ListValue()
		values := make([]interface{}, len(nodes))
		for i := range nodes {
			values[i] = nodes[i].Interface()
		}
		return values

	case ResultKindObject:
		object := node.ObjectValue()
		values := make(map[string]interface{}, len(object.ExecutionNodes))
		for i, executionNode := range object.ExecutionNodes {
			values[executionNode.ResponseKey()] = object.FieldValues[i].Interface()
		}
		return values

	case ResultKindLeaf:
		return node.Value
	}

	return nil
}
