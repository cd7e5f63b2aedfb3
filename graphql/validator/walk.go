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

package validator

import (
	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
)

// walk visits every definition in the document in order and runs the rules on the nodes it meets.
// Fragment definitions are walked on their own with their type condition as parent type; spreads
// are not followed.
func walk(ctx *ValidationContext) {
	for _, definition := range ctx.document.Definitions {
		ctx.current = definition

		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			for _, rule := range ctx.rules.operationRules {
				rule.CheckOperation(ctx, definition)
			}

			for _, variableDefinition := range definition.VariableDefinitions {
				if variableDefinition.DefaultValue != nil {
					walkValue(ctx, ctx.schema.TypeFromAST(variableDefinition.Type), variableDefinition.DefaultValue)
				}
			}

			walkDirectives(ctx, definition.Directives, operationDirectiveLocation(definition))

			var parentType graphql.Type
			if root := ctx.schema.RootType(definition.OperationType()); root != nil {
				parentType = root
			}
			walkSelectionSet(ctx, parentType, definition.SelectionSet)

		case *ast.FragmentDefinition:
			for _, rule := range ctx.rules.fragmentRules {
				rule.CheckFragment(ctx, definition)
			}

			walkDirectives(ctx, definition.Directives, graphql.DirectiveLocationFragmentDefinition)

			var parentType graphql.Type
			if t := ctx.schema.TypeFromName(definition.TypeCondition.Name.Value()); t != nil {
				parentType = t
			}
			walkSelectionSet(ctx, parentType, definition.SelectionSet)
		}
	}
	ctx.current = nil
}

func operationDirectiveLocation(operation *ast.OperationDefinition) graphql.DirectiveLocation {
	switch operation.OperationType() {
	case ast.OperationTypeMutation:
		return graphql.DirectiveLocationMutation
	case ast.OperationTypeSubscription:
		return graphql.DirectiveLocationSubscription
	}
	return graphql.DirectiveLocationQuery
}

// fieldDefinition finds the definition of the named field on parentType including the meta fields.
func fieldDefinition(schema *graphql.Schema, parentType graphql.Type, name string) *graphql.Field {
	object, ok := parentType.(*graphql.Object)
	if !ok {
		return nil
	}

	switch name {
	case graphql.TypeNameMetaFieldDef().Name():
		return graphql.TypeNameMetaFieldDef()
	case graphql.SchemaMetaFieldDef().Name():
		if object == schema.Query() {
			return graphql.SchemaMetaFieldDef()
		}
	case graphql.TypeMetaFieldDef().Name():
		if object == schema.Query() {
			return graphql.TypeMetaFieldDef()
		}
	}

	return object.Fields()[name]
}

func walkSelectionSet(ctx *ValidationContext, parentType graphql.Type, selectionSet ast.SelectionSet) {
	if len(selectionSet) > 0 {
		for _, rule := range ctx.rules.selectionSetRules {
			rule.CheckSelectionSet(ctx, parentType, selectionSet)
		}
	}

	for _, selection := range selectionSet {
		switch selection := selection.(type) {
		case *ast.Field:
			def := fieldDefinition(ctx.schema, parentType, selection.Name.Value())
			info := &FieldInfo{
				parentType: parentType,
				def:        def,
				node:       selection,
			}
			for _, rule := range ctx.rules.fieldRules {
				rule.CheckField(ctx, info)
			}

			var argDefs []graphql.Argument
			if def != nil {
				argDefs = def.Args()
			}
			walkArguments(ctx, argDefs, selection.Arguments)
			walkDirectives(ctx, selection.Directives, graphql.DirectiveLocationField)

			var fieldType graphql.Type
			if def != nil {
				fieldType = graphql.NamedTypeOf(def.Type())
			}
			walkSelectionSet(ctx, fieldType, selection.SelectionSet)

		case *ast.FragmentSpread:
			fragment := ctx.Fragment(selection.Name.Value())
			ctx.fragmentSpreads[ctx.current] = append(ctx.fragmentSpreads[ctx.current], selection)
			for _, rule := range ctx.rules.fragmentSpreadRules {
				rule.CheckFragmentSpread(ctx, parentType, fragment, selection)
			}
			walkDirectives(ctx, selection.Directives, graphql.DirectiveLocationFragmentSpread)

		case *ast.InlineFragment:
			typeCondition := parentType
			if selection.HasTypeCondition() {
				typeCondition = nil
				if t := ctx.schema.TypeFromName(selection.TypeCondition.Name.Value()); t != nil {
					typeCondition = t
				}
			}
			for _, rule := range ctx.rules.inlineFragmentRules {
				rule.CheckInlineFragment(ctx, parentType, typeCondition, selection)
			}
			walkDirectives(ctx, selection.Directives, graphql.DirectiveLocationInlineFragment)
			walkSelectionSet(ctx, typeCondition, selection.SelectionSet)
		}
	}
}

func walkDirectives(ctx *ValidationContext, directives ast.Directives, location graphql.DirectiveLocation) {
	for _, directive := range directives {
		def := ctx.schema.Directives().Lookup(directive.Name.Value())
		for _, rule := range ctx.rules.directiveRules {
			rule.CheckDirective(ctx, def, directive, location)
		}

		var argDefs []graphql.Argument
		if def != nil {
			argDefs = def.Args()
		}
		walkArguments(ctx, argDefs, directive.Arguments)
	}
}

// walkArguments walks each argument value with the type of the matching definition.
func walkArguments(ctx *ValidationContext, argDefs []graphql.Argument, args ast.Arguments) {
	for _, arg := range args {
		var argType graphql.Type
		for i := range argDefs {
			if argDefs[i].Name() == arg.Name.Value() {
				argType = argDefs[i].Type()
				break
			}
		}
		walkValue(ctx, argType, arg.Value)
	}
}

// walkValue runs ValueRule's on value and records the variable usages in it.
func walkValue(ctx *ValidationContext, expectedType graphql.Type, value ast.Value) {
	for _, rule := range ctx.rules.valueRules {
		rule.CheckValue(ctx, expectedType, value)
	}
	recordVariableUsages(ctx, expectedType, value)
}

func recordVariableUsages(ctx *ValidationContext, expectedType graphql.Type, value ast.Value) {
	switch value := value.(type) {
	case ast.Variable:
		if ctx.current != nil {
			ctx.variableUsages[ctx.current] = append(ctx.variableUsages[ctx.current], VariableUsage{
				Node: value,
				Type: expectedType,
			})
		}

	case ast.ListValue:
		var elementType graphql.Type
		if list, ok := graphql.NullableTypeOf(expectedType).(*graphql.List); ok {
			elementType = list.ElementType()
		}
		for _, item := range value.Values {
			recordVariableUsages(ctx, elementType, item)
		}

	case ast.ObjectValue:
		inputObject, _ := graphql.NullableTypeOf(expectedType).(*graphql.InputObject)
		for _, field := range value.Fields {
			var fieldType graphql.Type
			if inputObject != nil {
				if def := inputObject.Field(field.Name.Value()); def != nil {
					fieldType = def.Type()
				}
			}
			recordVariableUsages(ctx, fieldType, field.Value)
		}
	}
}
