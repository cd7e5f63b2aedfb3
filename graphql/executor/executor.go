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
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	values "github.com/botobag/routes/graphql/internal/value"
)

// executor runs a prepared operation within an ExecutionContext.
type executor interface {
	Run(c context.Context, ctx *ExecutionContext) *ExecutionResult
}

// errNullPropagated is returned when a null was produced for a non-null position. The error that
// produced the null has been reported when it is returned.
var errNullPropagated = errors.New("null value propagated to non-null position")

// common includes functions shared between executor implementations.
type common struct{}

// rootFields collects the fields in the selection set of the operation.
func (e common) rootFields(ctx *ExecutionContext) ([]*ExecutionNode, error) {
	// Root node is a special node which behaves like a field with nil parent and definition.
	return e.collectFields(ctx, &ExecutionNode{}, ctx.Operation().RootType())
}

// collectFields builds the child nodes for the fields in the selection set(s) of node. Fields that
// share a response key are merged into one node. Nodes are cached in node so that elements of a
// list of objects share them.
//
// Reference: https://spec.graphql.org/June2018/#CollectFields()
func (e common) collectFields(
	ctx *ExecutionContext,
	node *ExecutionNode,
	objectType *graphql.Object) ([]*ExecutionNode, error) {

	if node.childrenBuilt {
		return node.Children, nil
	}

	var (
		// Prevent named fragment to be applied twice or more in a selection set.
		visitedFragmentNames = map[string]bool{}

		// Map field response key to its corresponding node.
		fields = map[string]*ExecutionNode{}

		children []*ExecutionNode
	)

	var collect func(selectionSet ast.SelectionSet) error
	collect = func(selectionSet ast.SelectionSet) error {
		for _, selection := range selectionSet {
			include, err := e.shouldIncludeNode(ctx, selection)
			if err != nil {
				return err
			} else if !include {
				continue
			}

			switch selection := selection.(type) {
			case *ast.Field:
				key := selection.ResponseKey()
				if child, exists := fields[key]; exists {
					child.Definitions = append(child.Definitions, selection)
					continue
				}

				fieldDef := fieldDefinition(ctx.Operation().Schema(), objectType, selection.Name.Value())
				if fieldDef == nil {
					// Unknown fields are ignored. They would have been rejected by validation.
					continue
				}

				child := &ExecutionNode{
					Parent:      node,
					Definitions: []*ast.Field{selection},
					Field:       fieldDef,
				}
				fields[key] = child
				children = append(children, child)

			case *ast.InlineFragment:
				if selection.HasTypeCondition() &&
					selection.TypeCondition.Name.Value() != objectType.Name() {
					continue
				}
				if err := collect(selection.SelectionSet); err != nil {
					return err
				}

			case *ast.FragmentSpread:
				name := selection.Name.Value()
				if visitedFragmentNames[name] {
					continue
				}
				visitedFragmentNames[name] = true

				fragment := ctx.Operation().FragmentDef(name)
				if fragment == nil || fragment.TypeCondition.Name.Value() != objectType.Name() {
					continue
				}
				if err := collect(fragment.SelectionSet); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if node.IsRoot() {
		if err := collect(ctx.Operation().Definition().SelectionSet); err != nil {
			return nil, err
		}
	} else {
		for _, definition := range node.Definitions {
			if err := collect(definition.SelectionSet); err != nil {
				return nil, err
			}
		}
	}

	// Compute argument values.
	for _, child := range children {
		definition := child.Definitions[0]
		child.Args, child.ArgsErr = values.ArgumentValues(
			child.Field.Args(), definition.Arguments, definition, ctx.VariableValues())
	}

	node.Children = children
	node.childrenBuilt = true

	return children, nil
}

// shouldIncludeNode determines if a field should be included based on the @include and @skip
// directives, where @skip has higher precedence than @include.
func (common) shouldIncludeNode(ctx *ExecutionContext, selection ast.Selection) (bool, error) {
	directives := selection.GetDirectives()
	if len(directives) == 0 {
		return true, nil
	}

	skip, ok, err := values.DirectiveValues(graphql.SkipDirective(), directives, ctx.VariableValues())
	if err != nil {
		return false, err
	} else if ok && skip.Get("if") == true {
		return false, nil
	}

	include, ok, err := values.DirectiveValues(graphql.IncludeDirective(), directives, ctx.VariableValues())
	if err != nil {
		return false, err
	} else if ok && include.Get("if") == false {
		return false, nil
	}

	return true, nil
}

// fieldDefinition finds the definition of the named field in the parent type. It handles the meta
// fields which are not listed in the fields of the type.
func fieldDefinition(schema *graphql.Schema, parentType *graphql.Object, name string) *graphql.Field {
	switch name {
	case "__typename":
		return graphql.TypeNameMetaFieldDef()
	case "__schema":
		if parentType == schema.Query() {
			return graphql.SchemaMetaFieldDef()
		}
	case "__type":
		if parentType == schema.Query() {
			return graphql.TypeMetaFieldDef()
		}
	}
	return parentType.Fields()[name]
}

// executeFields executes the fields in nodes serially on the source value.
func (e common) executeFields(
	c context.Context,
	ctx *ExecutionContext,
	parentType *graphql.Object,
	source interface{},
	nodes []*ExecutionNode,
	path graphql.ResponsePath,
	errs *graphql.Errors) (*ObjectResultValue, error) {

	object := &ObjectResultValue{
		ExecutionNodes: nodes,
		FieldValues:    make([]ResultNode, len(nodes)),
	}

	for i, node := range nodes {
		if err := e.executeField(c, ctx, parentType, source, node, path, errs, &object.FieldValues[i]); err != nil {
			return nil, err
		}
	}

	return object, nil
}

// executeField resolves the field on the given source object and completes the value into result.
// It returns errNullPropagated if a null was written to a non-null field.
func (e common) executeField(
	c context.Context,
	ctx *ExecutionContext,
	parentType *graphql.Object,
	source interface{},
	node *ExecutionNode,
	path graphql.ResponsePath,
	errs *graphql.Errors,
	result *ResultNode) error {

	fieldPath := path.Clone()
	fieldPath.AppendFieldName(node.ResponseKey())

	info := &ResolveInfo{
		ExecutionContext: ctx,
		ExecutionNode:    node,
		ParentType:       parentType,
		ResponsePath:     fieldPath,
	}

	returnType := node.Field.Type()
	value, err := e.resolveField(c, ctx, source, info)
	if err == nil {
		err = e.completeValue(c, ctx, returnType, info, fieldPath, value, errs, result)
	}
	if err != nil {
		return e.handleFieldError(err, returnType, node, fieldPath, errs, result)
	}

	return nil
}

// resolveField calls the resolver of the field. A panic in the resolver is converted into an error.
func (common) resolveField(
	c context.Context,
	ctx *ExecutionContext,
	source interface{},
	info *ResolveInfo) (value interface{}, err error) {

	node := info.ExecutionNode
	if node.ArgsErr != nil {
		return nil, node.ArgsErr
	}

	// Stop resolving fields once the request was cancelled.
	if err := c.Err(); err != nil {
		return nil, err
	}

	resolver := node.Field.Resolver()
	if resolver == nil {
		resolver = ctx.Operation().DefaultFieldResolver()
	}

	defer func() {
		if r := recover(); r != nil {
			log.Ctx(c).Error().
				Str("field", fmt.Sprintf("%s.%s", info.ParentType.Name(), node.Field.Name())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("resolver panicked")
			value = nil
			err = errors.Newf("resolver for %s.%s panicked: %v", info.ParentType.Name(), node.Field.Name(), r)
		}
	}()

	return resolver.Resolve(c, source, info)
}

// handleFieldError reports err (unless it was reported) and writes null to result. The null is
// propagated to the parent if t is a non-null type.
func (common) handleFieldError(
	err error,
	t graphql.Type,
	node *ExecutionNode,
	path graphql.ResponsePath,
	errs *graphql.Errors,
	result *ResultNode) error {

	if !errors.Is(err, errNullPropagated) {
		errs.Errors = append(errs.Errors, locatedError(err, node, path))
	}

	result.Kind = ResultKindNil
	result.Value = nil

	if graphql.IsNonNullType(t) {
		return errNullPropagated
	}
	return nil
}

// locatedError attaches locations of the field and the response path to err.
func locatedError(err error, node *ExecutionNode, path graphql.ResponsePath) *graphql.Error {
	if e, ok := err.(*graphql.Error); ok {
		located := *e
		if len(located.Locations) == 0 {
			located.Locations = node.Locations()
		}
		if located.Path.Empty() {
			located.Path = path
		}
		if located.Kind == graphql.ErrKindOther {
			located.Kind = graphql.ErrKindExecution
		}
		return &located
	}

	return graphql.NewError(err.Error(), node.Locations(), path, err, graphql.ErrKindExecution).(*graphql.Error)
}

// completeValue implements "Value Completion" [0] for the value resolved for a field. The result is
// written into result.
//
// [0]: https://spec.graphql.org/June2018/#sec-Value-Completion
func (e common) completeValue(
	c context.Context,
	ctx *ExecutionContext,
	returnType graphql.Type,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{},
	errs *graphql.Errors,
	result *ResultNode) error {

	// If field type is NonNull, complete for inner type, and throw field error if result is null.
	if nonNullType, ok := returnType.(*graphql.NonNull); ok {
		if err := e.completeValue(c, ctx, nonNullType.InnerType(), info, path, value, errs, result); err != nil {
			return err
		}
		if result.IsNil() {
			return graphql.NewError(fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
				info.ParentType.Name(), info.Field().Name()))
		}
		return nil
	}

	if isNilValue(value) {
		result.Kind = ResultKindNil
		result.Value = nil
		return nil
	}

	switch returnType := returnType.(type) {
	case *graphql.List:
		return e.completeListValue(c, ctx, returnType, info, path, value, errs, result)

	case graphql.LeafType:
		return e.completeLeafValue(returnType, value, result)

	case *graphql.Object:
		return e.completeObjectValue(c, ctx, returnType, info, path, value, errs, result)
	}

	return graphql.NewError(
		fmt.Sprintf(`Cannot complete value of unexpected type "%s".`, returnType), graphql.ErrKindInternal)
}

func (e common) completeListValue(
	c context.Context,
	ctx *ExecutionContext,
	returnType *graphql.List,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{},
	errs *graphql.Errors,
	result *ResultNode) error {

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return graphql.NewError(fmt.Sprintf(`Expected Iterable, but did not find one for field "%s.%s".`,
			info.ParentType.Name(), info.Field().Name()))
	}

	var (
		itemType = returnType.ElementType()
		numItems = v.Len()
		items    = make([]ResultNode, numItems)
	)

	for i := 0; i < numItems; i++ {
		itemPath := path.Clone()
		itemPath.AppendIndex(i)

		err := e.completeValue(c, ctx, itemType, info, itemPath, v.Index(i).Interface(), errs, &items[i])
		if err != nil {
			if err := e.handleFieldError(err, itemType, info.ExecutionNode, itemPath, errs, &items[i]); err != nil {
				return err
			}
		}
	}

	result.Kind = ResultKindList
	result.Value = items
	return nil
}

func (common) completeLeafValue(returnType graphql.LeafType, value interface{}, result *ResultNode) error {
	coerced, err := returnType.CoerceResultValue(value)
	if err != nil {
		return err
	}

	if coerced == nil {
		return graphql.NewError(fmt.Sprintf(`Expected a value of type "%s" but received: %s`,
			returnType.Name(), graphql.Inspect(value)))
	}

	result.Kind = ResultKindLeaf
	result.Value = coerced
	return nil
}

func (e common) completeObjectValue(
	c context.Context,
	ctx *ExecutionContext,
	returnType *graphql.Object,
	info *ResolveInfo,
	path graphql.ResponsePath,
	value interface{},
	errs *graphql.Errors,
	result *ResultNode) error {

	children, err := e.collectFields(ctx, info.ExecutionNode, returnType)
	if err != nil {
		return err
	}

	object, err := e.executeFields(c, ctx, returnType, value, children, path, errs)
	if err != nil {
		return err
	}

	result.Kind = ResultKindObject
	result.Value = object
	return nil
}

// isNilValue returns true if value is nil or a typed nil.
func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
