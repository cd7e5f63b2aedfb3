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
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/botobag/routes/graphql"
)

// DefaultFieldResolverOption specifies an option to configure field resolver instance created by
// NewDefaultFieldResolver.
type DefaultFieldResolverOption func(*defaultFieldResolver)

// defaultFieldResolver is used when no resolve function is given to a field. It resolves the field
// value to the value of field in source object value whose name matches, or if it's a function,
// returns the result of calling that function.
type defaultFieldResolver struct {
	UnresolvedAsError   bool   // default: true
	ScanAnonymousFields bool   // default: true
	ScanMethods         bool   // default: true
	FieldTagName        string // default: "graphql"
}

// NewDefaultFieldResolver configures a field resolver which is useful as "default" resolver for
// fields without resolve function. It is used by Prepare when PrepareParams.DefaultFieldResolver is
// not given.
//
// When source value is a map with string keys, the created resolver takes the value keyed by the
// field name. When it is a struct, the value of the exported field whose name matches the field name
// (case-insensitively) is used. Additional capabilities can be configured via various options.
func NewDefaultFieldResolver(opts ...DefaultFieldResolverOption) graphql.FieldResolver {
	resolver := &defaultFieldResolver{
		UnresolvedAsError:   true,
		ScanAnonymousFields: true,
		ScanMethods:         true,
		FieldTagName:        "graphql",
	}

	// Configure resolver with options.
	for _, opt := range opts {
		opt(resolver)
	}

	return resolver
}

// UnresolvedAsError specifies whether error should be returned for fields that cannot be
// successfully resolved by the resolver. The feature is enabled by default.
func UnresolvedAsError(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.UnresolvedAsError = enabled
	}
}

// ScanAnonymousFields specifies whether anonymous fields contained the object should be inspected
// further to find matching field. The feature is enabled by default.
func ScanAnonymousFields(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.ScanAnonymousFields = enabled
	}
}

// ScanMethods specifies whether public methods exposed by the source object value should also be
// taken into consideration to search for field value. The matching method is invoked with the
// context (and optionally the source and the ResolveInfo) and its return value is used as field
// result. The feature is enabled by default.
func ScanMethods(enabled bool) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.ScanMethods = enabled
	}
}

// FieldTagName specifies the struct field tag that is used to specify custom name in source object
// field for matching targeting field. For example,
//
//	type Foo struct {
//		Bar string `graphql:"baz"`
//	}
//
// value in field Bar could be returned as result for fields named "bar" and "baz".
//
// The feature is enabled by default and can be disabled by FieldTagName("").
func FieldTagName(name string) DefaultFieldResolverOption {
	return func(resolver *defaultFieldResolver) {
		resolver.FieldTagName = name
	}
}

// Resolve implements graphql.FieldResolver.
func (resolver *defaultFieldResolver) Resolve(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error) {
	value := reflect.ValueOf(source)
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	// It source is a pointer, resolve value from what it points to. Methods are looked up on the
	// pointer so the ones with pointer receiver are included.
	methodReceiver := value
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil, resolver.unresolvedError(info)
		}
		value = value.Elem()
	}

	switch value.Kind() {
	case reflect.Struct:
		return resolver.resolveFromStruct(ctx, source, value, methodReceiver, info)

	case reflect.Map:
		return resolver.resolveFromMap(ctx, source, value, info)
	}

	return nil, resolver.unresolvedError(info)
}

func (resolver *defaultFieldResolver) unresolvedErrorWithMessage(message string) error {
	if !resolver.UnresolvedAsError {
		return nil
	}

	return graphql.NewError(message)
}

func (resolver *defaultFieldResolver) unresolvedError(info graphql.ResolveInfo) error {
	return resolver.unresolvedErrorWithMessage(fmt.Sprintf(
		`default resolver cannot resolve value for "%s.%s"`, info.Object().Name(), info.Field().Name()))
}

func (resolver *defaultFieldResolver) resolveFromFunc(
	ctx context.Context,
	source interface{},
	funcName string,
	f interface{},
	info graphql.ResolveInfo) (interface{}, error) {

	switch f := f.(type) {
	case func(ctx context.Context) (interface{}, error):
		return f(ctx)

	case func(ctx context.Context, source interface{}) (interface{}, error):
		return f(ctx, source)

	case func(ctx context.Context, source interface{}, info graphql.ResolveInfo) (interface{}, error):
		return f(ctx, source, info)

	default:
		return nil, resolver.unresolvedErrorWithMessage(fmt.Sprintf(
			`default resolver found %s but is unable to call for resolving "%s.%s" because of `+
				`unexpected type %T`, funcName, info.Object().Name(), info.Field().Name(), f))
	}
}

func (resolver *defaultFieldResolver) resolveFromValueOrFunc(
	ctx context.Context,
	source interface{},
	valueName string,
	value reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	// value could be a function.
	if value.Kind() == reflect.Func {
		return resolver.resolveFromFunc(ctx, source, valueName, value.Interface(), info)
	}
	return value.Interface(), nil
}

func (resolver *defaultFieldResolver) resolveFromStruct(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	methodReceiver reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	targetFieldName := info.Field().Name()
	queue := []reflect.Value{sourceValue}
	tagName := resolver.FieldTagName

	for len(queue) > 0 {
		value := queue[0]
		queue = queue[1:]

		valueType := value.Type()
		matched := -1
		for i := 0; i < valueType.NumField(); i++ {
			field := valueType.Field(i)

			// Handle anonymous contained structs.
			if resolver.ScanAnonymousFields &&
				field.Anonymous &&
				field.Type.Kind() == reflect.Struct {
				queue = append(queue, value.Field(i))
				continue
			}

			// Skip unexported fields.
			if len(field.PkgPath) > 0 {
				continue
			}

			// Name specified by tag takes precedence.
			if len(tagName) > 0 {
				tagOptions := strings.Split(field.Tag.Get(tagName), ",")
				if tagOptions[0] == targetFieldName {
					matched = i
					break
				}
			}

			if matched < 0 && strings.EqualFold(field.Name, targetFieldName) {
				matched = i
			}
		}

		if matched >= 0 {
			return resolver.resolveFromValueOrFunc(
				ctx, source, fmt.Sprintf("%s.%s", valueType.Name(), valueType.Field(matched).Name),
				value.Field(matched), info)
		}
	}

	if resolver.ScanMethods {
		if result, found, err := resolver.resolveFromMethod(ctx, source, methodReceiver, info); found {
			return result, err
		}
	}

	return nil, resolver.unresolvedError(info)
}

// resolveFromMethod looks for an exported method whose name matches the field name.
func (resolver *defaultFieldResolver) resolveFromMethod(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, bool, error) {

	targetFieldName := info.Field().Name()
	sourceType := sourceValue.Type()
	for i := 0; i < sourceType.NumMethod(); i++ {
		method := sourceType.Method(i)
		if strings.EqualFold(method.Name, targetFieldName) {
			result, err := resolver.resolveFromFunc(
				ctx, source, fmt.Sprintf("method %s", method.Name), sourceValue.Method(i).Interface(), info)
			return result, true, err
		}
	}
	return nil, false, nil
}

func (resolver *defaultFieldResolver) resolveFromMap(
	ctx context.Context,
	source interface{},
	sourceValue reflect.Value,
	info graphql.ResolveInfo) (interface{}, error) {

	if sourceValue.Type().Key().Kind() != reflect.String {
		return nil, resolver.unresolvedError(info)
	}

	fieldName := info.Field().Name()
	value := sourceValue.MapIndex(reflect.ValueOf(fieldName).Convert(sourceValue.Type().Key()))
	if !value.IsValid() {
		return nil, resolver.unresolvedError(info)
	}

	// Unwrap interface.
	if value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil
		}
		value = value.Elem()
	}

	return resolver.resolveFromValueOrFunc(ctx, source, fmt.Sprintf(`map["%s"]`, fieldName), value, info)
}
