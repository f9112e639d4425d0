// Package parser implements a recursive-descent parser for interface files.
//
// The grammar mirrors the subset of C++ declarations the binding pipeline
// understands: namespaces, classes with single inheritance, templates with
// optional closed parameter sets, enums, typedefs, operator overloads, free
// functions, forward declarations and include directives. The parser consumes
// the token stream greedily, production by production, and fails fast with a
// ParseError on the first unexpected token.
package parser

import (
	"strings"

	"idlwrap/pkg/ast"
)

// Parser holds the token stream and the current position. The scope stack is
// tracked for error messages only; declarations stay locally scoped in the
// tree.
type Parser struct {
	tokens  []Token
	current int
	scope   []string
}

// New creates a new parser instance
func New() *Parser {
	return &Parser{}
}

// Parse tokenizes the source and parses it into a Module.
func (p *Parser) Parse(src string) (*ast.Module, error) {
	tokens, err := NewTokenizer(src).Tokenize()
	if err != nil {
		return nil, err
	}

	p.tokens = tokens
	p.current = 0
	p.scope = nil

	module := &ast.Module{}
	for !p.isAtEnd() {
		decl, err := p.parseDecl(module.Decls)
		if err != nil {
			return nil, err
		}
		module.Decls = append(module.Decls, decl)
	}

	return module, nil
}

// parseDecl parses one declaration at module or namespace scope. The decls of
// the enclosing scope are passed in for duplicate-overload detection.
func (p *Parser) parseDecl(scope []ast.Decl) (ast.Decl, error) {
	switch p.peek().Type {
	case TokenHash:
		return p.parseInclude()
	case TokenNamespace:
		return p.parseNamespace()
	case TokenTemplate:
		return p.parseTemplate(scope)
	case TokenVirtual, TokenClass:
		return p.parseClassOrForward(nil)
	case TokenEnum:
		return p.parseEnum()
	case TokenTypedef:
		return p.parseTypedef()
	case TokenIdentifier, TokenPair, TokenConst:
		return p.parseGlobalFunction(scope, nil)
	default:
		return nil, p.errorHere("declaration")
	}
}

// parseInclude parses '#include <path/to/header.h>'.
func (p *Parser) parseInclude() (*ast.Include, error) {
	hash := p.advance() // consume '#'

	word, err := p.expect(TokenIdentifier, "'include' after '#'")
	if err != nil {
		return nil, err
	}
	if word.Value != "include" {
		return nil, p.errorAt(word, "'include' after '#'")
	}

	if _, err := p.expect(TokenLess, "'<' after '#include'"); err != nil {
		return nil, err
	}

	// The path is reassembled from raw tokens up to the closing '>'.
	var path strings.Builder
	for !p.isAtEnd() && p.peek().Type != TokenGreater {
		path.WriteString(p.advance().Value)
	}
	if _, err := p.expect(TokenGreater, "'>' closing include path"); err != nil {
		return nil, err
	}

	return &ast.Include{Path: path.String(), Pos: tokenPos(hash)}, nil
}

// Token stream helpers

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAhead(offset int) Token {
	idx := p.current + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) check(tokenType TokenType) bool {
	return p.peek().Type == tokenType
}

func (p *Parser) match(tokenType TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TokenEOF
}

// expect consumes a token of the given type or fails with a ParseError
// describing what the grammar wanted.
func (p *Parser) expect(tokenType TokenType, expected string) (Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	if expected == "" {
		expected = tokenType.Describe()
	}
	return Token{}, p.errorHere(expected)
}

// errorHere builds a ParseError at the current token.
func (p *Parser) errorHere(expected string) error {
	return p.errorAt(p.peek(), expected)
}

// errorAt builds a ParseError at the given token, tagging the enclosing scope
// when inside one.
func (p *Parser) errorAt(tok Token, expected string) error {
	if len(p.scope) > 0 {
		expected += " in " + strings.Join(p.scope, "::")
	}
	found := tok.Value
	if tok.Type == TokenEOF {
		found = "end of file"
	}
	return &ParseError{
		Expected: expected,
		Found:    found,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// enterScope pushes a name onto the diagnostic scope path.
func (p *Parser) enterScope(name string) {
	p.scope = append(p.scope, name)
}

// exitScope pops the diagnostic scope path.
func (p *Parser) exitScope() {
	if len(p.scope) > 0 {
		p.scope = p.scope[:len(p.scope)-1]
	}
}

func tokenPos(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
