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
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/botobag/routes/graphql"
)

// ExecutionResult contains result from running an Executor.
type ExecutionResult struct {
	// Data is nil when errors were raised before execution started (e.g., invalid variable values). A
	// ResultNode with ResultKindNil is given when a null propagated to the root.
	Data   *ResultNode
	Errors graphql.Errors
}

// MarshalJSON implements json.Marshaler interface for ExecutionResult.
func (result *ExecutionResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := result.MarshalJSONTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONTo writes the JSON encoding of result to the given writer.
func (result *ExecutionResult) MarshalJSONTo(w io.Writer) error {
	stream := jsoniter.NewStream(jsoniter.ConfigCompatibleWithStandardLibrary, w, 512)

	stream.WriteObjectStart()

	// Specification [0] suggests placing the "errors" first in response to make it clear.
	//
	// [0]: See the note for https://spec.graphql.org/June2018/#sec-Response-Format.
	if result.Errors.HaveOccurred() {
		stream.WriteObjectField("errors")
		stream.WriteVal(result.Errors.Errors)
		if result.Data != nil {
			stream.WriteMore()
		}
	}

	if result.Data != nil {
		stream.WriteObjectField("data")
		writeResultNode(stream, result.Data)
	}

	stream.WriteObjectEnd()

	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

// MarshalJSON implements json.Marshaler interface for ResultNode.
func (node *ResultNode) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	writeResultNode(stream, node)
	if stream.Error != nil {
		return nil, stream.Error
	}

	// Copy the buffer out since stream is returned to the pool.
	return append([]byte(nil), stream.Buffer()...), nil
}

func writeResultNode(stream *jsoniter.Stream, node *ResultNode) {
	switch node.Kind {
	case ResultKindNil:
		stream.WriteNil()

	case ResultKindList:
		nodes := node.ListValue()
		if len(nodes) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i := range nodes {
			if i > 0 {
				stream.WriteMore()
			}
			writeResultNode(stream, &nodes[i])
		}
		stream.WriteArrayEnd()

	case ResultKindObject:
		object := node.ObjectValue()
		if len(object.FieldValues) == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		for i, executionNode := range object.ExecutionNodes {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(executionNode.ResponseKey())
			writeResultNode(stream, &object.FieldValues[i])
		}
		stream.WriteObjectEnd()

	case ResultKindLeaf:
		stream.WriteVal(node.Value)
	}
}
