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

package parser

import (
	"fmt"

	"github.com/botobag/routes/graphql"
	"github.com/botobag/routes/graphql/ast"
	"github.com/botobag/routes/graphql/lexer"
	"github.com/botobag/routes/graphql/token"
)

// Parse parses the given GraphQL source into a Document. Only executable definitions (operations
// and fragments) are accepted.
func Parse(source *token.Source) (ast.Document, error) {
	p, err := newParser(source)
	if err != nil {
		return ast.Document{}, err
	}
	return p.parseDocument()
}

// ParseValue parses a string containing a GraphQL value (e.g., `[42]`).
func ParseValue(source *token.Source) (ast.Value, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	value, err := p.parseValue(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KindEOF); err != nil {
		return nil, err
	}
	return value, nil
}

// ParseType parses a string containing a GraphQL type reference (e.g., `[Int!]`).
func ParseType(source *token.Source) (ast.Type, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KindEOF); err != nil {
		return nil, err
	}
	return t, nil
}

type parser struct {
	lexer *lexer.Lexer
}

func newParser(source *token.Source) (*parser, error) {
	p := &parser{
		lexer: lexer.New(source),
	}
	// Move past <SOF>.
	if _, err := p.lexer.Advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) peek() *token.Token {
	return p.lexer.Token()
}

func (p *parser) advance() (*token.Token, error) {
	tok := p.peek()
	if _, err := p.lexer.Advance(); err != nil {
		return nil, err
	}
	return tok, nil
}

// skip consumes the next token if it has the given kind.
func (p *parser) skip(kind token.Kind) (bool, error) {
	if p.peek().Kind != kind {
		return false, nil
	}
	_, err := p.advance()
	return err == nil, err
}

// expect consumes the next token if it has the given kind and returns it. Otherwise it reports a
// syntax error.
func (p *parser) expect(kind token.Kind) (*token.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return nil, p.syntaxError(tok, fmt.Sprintf("Expected %s, found %s", describeKind(kind), tok.Description()))
	}
	return p.advance()
}

func describeKind(kind token.Kind) string {
	if kind.IsPunctuator() {
		return fmt.Sprintf(`"%s"`, kind)
	}
	return kind.String()
}

func (p *parser) isKeyword(keyword string) bool {
	tok := p.peek()
	return tok.Kind == token.KindName && tok.Value == keyword
}

func (p *parser) expectKeyword(keyword string) (*token.Token, error) {
	tok := p.peek()
	if !p.isKeyword(keyword) {
		return nil, p.syntaxError(tok, fmt.Sprintf(`Expected "%s", found %s`, keyword, tok.Description()))
	}
	return p.advance()
}

func (p *parser) unexpected(tok *token.Token) error {
	if tok == nil {
		tok = p.peek()
	}
	return p.syntaxError(tok, fmt.Sprintf("Unexpected %s", tok.Description()))
}

func (p *parser) syntaxError(tok *token.Token, description string) error {
	return graphql.NewSyntaxError(p.lexer.Source(), tok.Location, description)
}

// many parses a non-empty list of nodes surrounded by the open and close tokens.
func (p *parser) many(open token.Kind, parseFn func() error, close token.Kind) error {
	if _, err := p.expect(open); err != nil {
		return err
	}
	for {
		if err := parseFn(); err != nil {
			return err
		}
		if closed, err := p.skip(close); err != nil {
			return err
		} else if closed {
			return nil
		}
	}
}

// any parses a possibly empty list of nodes surrounded by the open and close tokens.
func (p *parser) any(open token.Kind, parseFn func() error, close token.Kind) error {
	if _, err := p.expect(open); err != nil {
		return err
	}
	for {
		if closed, err := p.skip(close); err != nil {
			return err
		} else if closed {
			return nil
		}
		if err := parseFn(); err != nil {
			return err
		}
	}
}

// Name : /[_A-Za-z][_0-9A-Za-z]*/
func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{Token: tok}, nil
}

// Document : Definition+
func (p *parser) parseDocument() (ast.Document, error) {
	var definitions []ast.Definition
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}
		definitions = append(definitions, definition)

		if eof, err := p.skip(token.KindEOF); err != nil {
			return ast.Document{}, err
		} else if eof {
			break
		}
	}
	return ast.Document{Definitions: definitions}, nil
}

// Definition :
//   - OperationDefinition
//   - FragmentDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindLeftBrace:
		return p.parseOperationDefinition()
	case token.KindName:
		switch tok.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}
	}
	return nil, p.unexpected(tok)
}

// OperationDefinition :
//   - SelectionSet
//   - OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	definition := &ast.OperationDefinition{}

	if p.peek().Kind == token.KindLeftBrace {
		definition.Brace = p.peek()
		selectionSet, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		definition.SelectionSet = selectionSet
		return definition, nil
	}

	operationType, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	definition.Type = operationType

	if p.peek().Kind == token.KindName {
		if definition.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if definition.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
		return nil, err
	}

	if definition.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}

	definition.Brace = p.peek()
	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

// OperationType : one of query mutation subscription
func (p *parser) parseOperationType() (*token.Token, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return nil, err
	}
	switch tok.Value {
	case "query", "mutation", "subscription":
		return tok, nil
	}
	return nil, p.unexpected(tok)
}

// VariableDefinitions : ( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}

	var definitions []*ast.VariableDefinition
	err := p.many(token.KindLeftParen, func() error {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return err
		}
		definitions = append(definitions, definition)
		return nil
	}, token.KindRightParen)

	return definitions, err
}

// VariableDefinition : Variable : Type DefaultValue?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	definition := &ast.VariableDefinition{
		Variable: variable,
		Type:     t,
	}

	if equals, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if equals {
		if definition.DefaultValue, err = p.parseValue(true); err != nil {
			return nil, err
		}
	}

	return definition, nil
}

// Variable : $ Name
func (p *parser) parseVariable() (ast.Variable, error) {
	dollar, err := p.expect(token.KindDollar)
	if err != nil {
		return ast.Variable{}, err
	}
	name, err := p.parseName()
	if err != nil {
		return ast.Variable{}, err
	}
	return ast.Variable{Dollar: dollar, Name: name}, nil
}

// SelectionSet : { Selection+ }
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	var selectionSet ast.SelectionSet
	err := p.many(token.KindLeftBrace, func() error {
		selection, err := p.parseSelection()
		if err != nil {
			return err
		}
		selectionSet = append(selectionSet, selection)
		return nil
	}, token.KindRightBrace)
	return selectionSet, err
}

// Selection :
//   - Field
//   - FragmentSpread
//   - InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	if p.peek().Kind == token.KindSpread {
		return p.parseFragment()
	}
	return p.parseField()
}

// Field : Alias? Name Arguments? Directives? SelectionSet?
//
// Alias : Name :
func (p *parser) parseField() (*ast.Field, error) {
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	field := &ast.Field{}
	if colon, err := p.skip(token.KindColon); err != nil {
		return nil, err
	} else if colon {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	} else {
		field.Name = nameOrAlias
	}

	if field.Arguments, err = p.parseArguments(false); err != nil {
		return nil, err
	}

	if field.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}

	if p.peek().Kind == token.KindLeftBrace {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return field, nil
}

// Corresponds to both FragmentSpread and InlineFragment in the grammar.
//
// FragmentSpread : ... FragmentName Directives?
//
// InlineFragment : ... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (ast.Selection, error) {
	spread, err := p.expect(token.KindSpread)
	if err != nil {
		return nil, err
	}

	hasTypeCondition := p.isKeyword("on")
	if !hasTypeCondition && p.peek().Kind == token.KindName {
		name, err := p.parseFragmentName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{
			Spread:     spread,
			Name:       name,
			Directives: directives,
		}, nil
	}

	fragment := &ast.InlineFragment{
		Spread: spread,
	}

	if hasTypeCondition {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		if fragment.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}

	if fragment.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}

	if fragment.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return fragment, nil
}

// FragmentDefinition : fragment FragmentName TypeCondition Directives? SelectionSet
//
// TypeCondition : on NamedType
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	keyword, err := p.expectKeyword("fragment")
	if err != nil {
		return nil, err
	}

	definition := &ast.FragmentDefinition{
		Keyword: keyword,
	}

	if definition.Name, err = p.parseFragmentName(); err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}

	if definition.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}

	if definition.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}

	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

// FragmentName : Name but not `on`
func (p *parser) parseFragmentName() (ast.Name, error) {
	if p.isKeyword("on") {
		return ast.Name{}, p.unexpected(nil)
	}
	return p.parseName()
}

// Arguments[Const] : ( Argument[?Const]+ )
func (p *parser) parseArguments(isConst bool) (ast.Arguments, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}

	var args ast.Arguments
	err := p.many(token.KindLeftParen, func() error {
		name, err := p.parseName()
		if err != nil {
			return err
		}
		if _, err := p.expect(token.KindColon); err != nil {
			return err
		}
		value, err := p.parseValue(isConst)
		if err != nil {
			return err
		}
		args = append(args, &ast.Argument{Name: name, Value: value})
		return nil
	}, token.KindRightParen)

	return args, err
}

// Directives[Const] : Directive[?Const]+
//
// Directive[Const] : @ Name Arguments[?Const]?
func (p *parser) parseDirectives(isConst bool) (ast.Directives, error) {
	var directives ast.Directives
	for p.peek().Kind == token.KindAt {
		at, err := p.advance()
		if err != nil {
			return nil, err
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		args, err := p.parseArguments(isConst)
		if err != nil {
			return nil, err
		}
		directives = append(directives, &ast.Directive{
			At:        at,
			Name:      name,
			Arguments: args,
		})
	}
	return directives, nil
}

// Value[Const] :
//   - [~Const] Variable
//   - IntValue
//   - FloatValue
//   - StringValue
//   - BooleanValue
//   - NullValue
//   - EnumValue
//   - ListValue[?Const]
//   - ObjectValue[?Const]
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindLeftBracket:
		return p.parseListValue(isConst)

	case token.KindLeftBrace:
		return p.parseObjectValue(isConst)

	case token.KindInt:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return ast.IntValue{Token: tok}, nil

	case token.KindFloat:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return ast.FloatValue{Token: tok}, nil

	case token.KindString, token.KindBlockString:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return ast.StringValue{Token: tok}, nil

	case token.KindName:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		switch tok.Value {
		case "true", "false":
			return ast.BooleanValue{Token: tok}, nil
		case "null":
			return ast.NullValue{Token: tok}, nil
		}
		return ast.EnumValue{Token: tok}, nil

	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}
	}

	return nil, p.unexpected(tok)
}

// ListValue[Const] :
//   - [ ]
//   - [ Value[?Const]+ ]
func (p *parser) parseListValue(isConst bool) (ast.ListValue, error) {
	list := ast.ListValue{
		Bracket: p.peek(),
		Values:  []ast.Value{},
	}
	err := p.any(token.KindLeftBracket, func() error {
		value, err := p.parseValue(isConst)
		if err != nil {
			return err
		}
		list.Values = append(list.Values, value)
		return nil
	}, token.KindRightBracket)
	return list, err
}

// ObjectValue[Const] :
//   - { }
//   - { ObjectField[?Const]+ }
//
// ObjectField[Const] : Name : Value[?Const]
func (p *parser) parseObjectValue(isConst bool) (ast.ObjectValue, error) {
	object := ast.ObjectValue{
		Brace: p.peek(),
	}
	err := p.any(token.KindLeftBrace, func() error {
		name, err := p.parseName()
		if err != nil {
			return err
		}
		if _, err := p.expect(token.KindColon); err != nil {
			return err
		}
		value, err := p.parseValue(isConst)
		if err != nil {
			return err
		}
		object.Fields = append(object.Fields, &ast.ObjectField{Name: name, Value: value})
		return nil
	}, token.KindRightBrace)
	return object, err
}

// Type :
//   - NamedType
//   - ListType
//   - NonNullType
func (p *parser) parseType() (ast.Type, error) {
	var t ast.Type

	if p.peek().Kind == token.KindLeftBracket {
		bracket, err := p.advance()
		if err != nil {
			return nil, err
		}
		itemType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KindRightBracket); err != nil {
			return nil, err
		}
		t = ast.ListType{Bracket: bracket, ItemType: itemType}
	} else {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		t = namedType
	}

	if bang, err := p.skip(token.KindBang); err != nil {
		return nil, err
	} else if bang {
		return ast.NonNullType{Type: t}, nil
	}

	return t, nil
}

// NamedType : Name
func (p *parser) parseNamedType() (ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return ast.NamedType{}, err
	}
	return ast.NamedType{Name: name}, nil
}
