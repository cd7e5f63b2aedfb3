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
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"github.com/botobag/routes/graphql/ast"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

// Op describes an operation, usually as the package and method, such as "parser.Parse".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindCoercion                  // Failed to coerce input or result values for desired GraphQL type.
	ErrKindSyntax                    // Represent a syntax error in the GraphQL source.
	ErrKindValidation                // Represent an error found when validating a document.
	ErrKindExecution                 // Represent an error occurred when executing an operation.
	ErrKindInternal                  // Internal error
)

var errKindNames = [...]string{
	ErrKindOther:      "other error",
	ErrKindCoercion:   "coercion error",
	ErrKindSyntax:     "syntax error",
	ErrKindValidation: "validation error",
	ErrKindExecution:  "execution error",
	ErrKindInternal:   "internal error",
}

func (k ErrKind) String() string {
	if int(k) < len(errKindNames) {
		return errKindNames[k]
	}
	return "unknown error kind"
}

// ErrorExtensions provides an additional entry to a GraphQL error with key "extensions". Useful
// for attaching machine-readable data such as an error code.
type ErrorExtensions map[string]interface{}

// ErrorLocation points out the beginning of an associated syntax element. Both fields start from 1.
type ErrorLocation struct {
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. NewError retrieves locations from
// an underlying error implementing this interface if none were given.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorWithASTNodes implements ErrorWithLocations by querying location from ast.Node's.
type ErrorWithASTNodes struct {
	Nodes []ast.Node
}

var _ ErrorWithLocations = ErrorWithASTNodes{}

// ErrorLocationOfASTNode formats location of an AST node into an ErrorLocation.
func ErrorLocationOfASTNode(node ast.Node) ErrorLocation {
	location := node.Location()
	return ErrorLocation{
		Line:   location.Line,
		Column: location.Column,
	}
}

// Locations implements ErrorWithLocations.
func (err ErrorWithASTNodes) Locations() []ErrorLocation {
	if len(err.Nodes) == 0 {
		return nil
	}
	locations := make([]ErrorLocation, 0, len(err.Nodes))
	for _, node := range err.Nodes {
		if node.Location().IsValid() {
			locations = append(locations, ErrorLocationOfASTNode(node))
		}
	}
	return locations
}

// ResponsePath is a list of keys where each key is either a string (a response key) or an int (an
// index into a list). It locates a field in the result that experienced an error.
type ResponsePath struct {
	keys []interface{}
}

// Empty returns true if the path doesn't contain any key.
func (path ResponsePath) Empty() bool {
	return len(path.keys) == 0
}

// Keys returns the keys in the path.
func (path ResponsePath) Keys() []interface{} {
	return path.keys
}

// AppendFieldName adds a field name to the end of current path.
func (path *ResponsePath) AppendFieldName(name string) {
	path.keys = append(path.keys, name)
}

// AppendIndex adds a list index to the end of current path.
func (path *ResponsePath) AppendIndex(index int) {
	path.keys = append(path.keys, index)
}

// Clone makes a deep copy of the path.
func (path ResponsePath) Clone() ResponsePath {
	if len(path.keys) == 0 {
		return ResponsePath{}
	}
	keys := make([]interface{}, len(path.keys))
	copy(keys, path.keys)
	return ResponsePath{keys}
}

// String serializes a ResponsePath to a readable form like "a.b[0].c".
func (path ResponsePath) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(key)
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// responsePathEncoder implements jsoniter.ValEncoder to encode ResponsePath to JSON.
type responsePathEncoder struct{}

var _ jsoniter.ValEncoder = responsePathEncoder{}

// IsEmpty implements jsoniter.ValEncoder.
func (responsePathEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*ResponsePath)(ptr).Empty()
}

// Encode implements jsoniter.ValEncoder.
func (responsePathEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*ResponsePath)(ptr)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		if i > 0 {
			stream.WriteMore()
		}
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = errors.Newf("unsupported type %T of key in response path", key)
			return
		}
	}
	stream.WriteArrayEnd()
}

// MarshalJSON serializes path keys to JSON.
func (path *ResponsePath) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(path)
}

// ErrorWithPath indicates an error that contains a response path.
type ErrorWithPath interface {
	Path() ResponsePath
}

// ErrorWithExtensions indicates an error that carries extensions data.
type ErrorWithExtensions interface {
	Extensions() ErrorExtensions
}

// An Error describes an error found during parse, validate or execute phases of performing a
// GraphQL operation. It can be serialized to JSON for including in the response.
//
// An Error can wrap another error value. Locations, path and extensions not given to NewError are
// pulled from the wrapped error.
//
// Reference: https://spec.graphql.org/June2018/#sec-Errors
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Locations within the source GraphQL document which correspond to this error.
	Locations []ErrorLocation

	// Path of the response field which experienced the error. Only included for errors during
	// execution.
	Path ResponsePath

	// Extensions contains data to be added to in the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Each argument is one of ErrorLocation,
// []ErrorLocation, ResponsePath, ErrorExtensions, error, Op or ErrKind.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg
		case ResponsePath:
			e.Path = arg
		case ErrorExtensions:
			e.Extensions = arg
		case error:
			e.Err = arg
		case Op:
			e.Op = arg
		case ErrKind:
			e.Kind = arg
		default:
			log.Error().Str("type", fmt.Sprintf("%T", arg)).Msg("graphql.NewError: bad call")
			return errors.Newf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	if e.Err != nil {
		e.inherit(e.Err)
	}

	return e
}

// inherit fills the fields that were not given from the wrapped error.
func (e *Error) inherit(prev error) {
	var prevErr *Error
	if p, ok := prev.(*Error); ok {
		prevErr = p
	}

	if len(e.Locations) == 0 {
		if prevErr != nil {
			if len(prevErr.Locations) > 0 {
				e.Locations = append([]ErrorLocation(nil), prevErr.Locations...)
			}
		} else if withLocations, ok := prev.(ErrorWithLocations); ok {
			e.Locations = withLocations.Locations()
		}
	}

	if e.Path.Empty() {
		if prevErr != nil {
			e.Path = prevErr.Path.Clone()
		} else if withPath, ok := prev.(ErrorWithPath); ok {
			e.Path = withPath.Path()
		}
	}

	if e.Extensions == nil {
		if prevErr != nil {
			e.Extensions = prevErr.Extensions
		} else {
			var withExtensions ErrorWithExtensions
			if errors.As(prev, &withExtensions) {
				e.Extensions = withExtensions.Extensions()
			}
		}
	}

	if e.Kind == ErrKindOther && prevErr != nil {
		e.Kind = prevErr.Kind
	}
}

// WrapError builds an Error value from an underlying error with a message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Unwrap returns the underlying error so errors.Is and errors.As see through an Error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, outer *Error) {
	initialLen := b.Len()

	// sep writes str only if something has been written for this error.
	sep := func(str string) {
		if b.Len() != initialLen {
			b.WriteString(str)
		}
	}

	// prefix writes first when nothing has been written yet; otherwise rest.
	prefix := func(first, rest string) {
		if b.Len() == initialLen {
			b.WriteString(first)
		} else {
			b.WriteString(rest)
		}
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		sep(": ")
		b.WriteString(e.Message)
	}

	// Suppress data already printed by the enclosing error.
	if len(e.Locations) > 0 && (outer == nil || !reflect.DeepEqual(outer.Locations, e.Locations)) {
		prefix("At ", " at ")
		fmt.Fprintf(b, "%+v", e.Locations)
	}

	if !e.Path.Empty() && (outer == nil || !reflect.DeepEqual(outer.Path, e.Path)) {
		prefix("For ", " for ")
		b.WriteString("response field in the path ")
		b.WriteString(e.Path.String())
	}

	if e.Kind != ErrKindOther && (outer == nil || outer.Kind != e.Kind) {
		sep(": ")
		b.WriteString(e.Kind.String())
	}

	if len(e.Extensions) > 0 && (outer == nil || !reflect.DeepEqual(outer.Extensions, e.Extensions)) {
		sep(" (additional info: ")
		fmt.Fprintf(b, "%v)", e.Extensions)
	}

	if e.Err != nil {
		if inner, ok := e.Err.(*Error); ok {
			sep(":\n  ")
			inner.printError(b, e)
		} else {
			sep(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorEncoder implements jsoniter.ValEncoder to encode Error to JSON in the response format.
type errorEncoder struct{}

var _ jsoniter.ValEncoder = errorEncoder{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	if len(err.Locations) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i, location := range err.Locations {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}

	if !err.Path.Empty() {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteVal(&err.Path)
	}

	if len(err.Extensions) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteVal(map[string]interface{}(err.Extensions))
	}

	stream.WriteObjectEnd()
}

// Errors wraps a list of Error. Wrapped in a struct instead of "type Errors []*Error" to enforce
// checks with errs.HaveOccurred() rather than errs != nil.
type Errors struct {
	Errors []*Error
}

// ErrorsOf constructs an Errors value. Arguments are either a list of *Error's, arguments that can
// be taken by NewError (a message followed by its context), or the former followed by the latter.
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case error:
			errs.Append(arg)
		case string:
			errs.Emplace(arg, args[(i+1):]...)
			return errs
		default:
			panic("graphql.ErrorsOf: bad call")
		}
	}
	return errs
}

// NoErrors constructs an empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// Emplace constructs an Error from arguments and appends it to errs.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Append(NewError(message, args...))
}

// Append appends errors to errs. Errors that are not *Error are wrapped in one.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		gqlErr, ok := err.(*Error)
		if !ok {
			gqlErr = &Error{Message: err.Error(), Err: err}
		}
		errs.Errors = append(errs.Errors, gqlErr)
	}
}

// AppendErrors pulls every Error in each of e and appends them to errs.
func (errs *Errors) AppendErrors(e ...Errors) {
	for _, err := range e {
		errs.Errors = append(errs.Errors, err.Errors...)
	}
}

// HaveOccurred returns true if some errors exist.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// Error implements Go's error interface so an Errors can be returned where an error is expected.
func (errs Errors) Error() string {
	messages := make([]string, len(errs.Errors))
	for i, err := range errs.Errors {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.ResponsePath", responsePathEncoder{})
	jsoniter.RegisterTypeEncoder("graphql.Error", errorEncoder{})
}
