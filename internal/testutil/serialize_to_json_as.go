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

package testutil

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// roundTrip encodes value into JSON and decodes the result into a new value of type t.
func roundTrip(value interface{}, t reflect.Type) (interface{}, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %T into JSON: %s", value, err)
	}
	decoded := reflect.New(t)
	if err := json.Unmarshal(data, decoded.Interface()); err != nil {
		return nil, fmt.Errorf("cannot decode %s into %s: %s", data, t, err)
	}
	return decoded.Elem().Interface(), nil
}

type serializeToJSONAsMatcher struct {
	expected interface{}
	equal    types.GomegaMatcher
}

// SerializeToJSONAs succeeds if actual and expected encode to the same JSON value. Both sides are
// decoded into the type of expected before comparison so that numbers and maps compare equally.
//
//	Expect(err).Should(SerializeToJSONAs(map[string]interface{}{
//		"message": "Route not found.",
//	}))
func SerializeToJSONAs(expected interface{}) types.GomegaMatcher {
	return &serializeToJSONAsMatcher{
		expected: expected,
	}
}

// Match implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) Match(actual interface{}) (bool, error) {
	t := reflect.TypeOf(matcher.expected)

	expected, err := roundTrip(matcher.expected, t)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs: expected: %s", err)
	}
	decoded, err := roundTrip(actual, t)
	if err != nil {
		return false, fmt.Errorf("SerializeToJSONAs: actual: %s", err)
	}

	matcher.equal = gomega.Equal(expected)
	return matcher.equal.Match(decoded)
}

// FailureMessage implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) FailureMessage(actual interface{}) string {
	decoded, _ := roundTrip(actual, reflect.TypeOf(matcher.expected))
	return "JSON form differs:\n" + matcher.equal.FailureMessage(decoded)
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (matcher *serializeToJSONAsMatcher) NegatedFailureMessage(actual interface{}) string {
	decoded, _ := roundTrip(actual, reflect.TypeOf(matcher.expected))
	return "JSON form should differ:\n" + matcher.equal.NegatedFailureMessage(decoded)
}
