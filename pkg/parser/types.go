package parser

import (
	"strings"

	"idlwrap/pkg/ast"
)

// Template arguments may themselves be generic, but only one level deep:
// substitution reaches inside nested one-level generic arguments and no
// further.
const maxTemplateDepth = 2

// parseTypeRef parses a type reference:
//
//	['const'] [ns::]name ['<' typeRef {',' typeRef} '>'] ['*'|'&']
func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	return p.parseTypeRefDepth(0)
}

func (p *Parser) parseTypeRefDepth(depth int) (ast.TypeRef, error) {
	var t ast.TypeRef

	if p.match(TokenConst) {
		t.IsConst = true
	}

	var first Token
	switch p.peek().Type {
	case TokenIdentifier, TokenPair:
		first = p.advance()
	default:
		return t, p.errorHere("type name")
	}

	path := []string{first.Value}
	for p.check(TokenDoubleColon) {
		p.advance()
		id, err := p.expect(TokenIdentifier, "identifier after '::'")
		if err != nil {
			return t, err
		}
		path = append(path, id.Value)
	}
	t.Name = path[len(path)-1]
	t.Namespace = path[:len(path)-1]

	if p.check(TokenLess) {
		if depth >= maxTemplateDepth {
			return t, p.errorHere("a non-template argument (template arguments nested deeper than one level are not supported)")
		}
		p.advance()
		for {
			arg, err := p.parseTypeRefDepth(depth + 1)
			if err != nil {
				return t, err
			}
			t.Args = append(t.Args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
		if _, err := p.expect(TokenGreater, "'>' closing template arguments"); err != nil {
			return t, err
		}
	}

	if p.match(TokenStar) {
		t.IsPointer = true
	} else if p.match(TokenAmpersand) {
		t.IsRef = true
	}

	return t, nil
}

// parseParams parses a parenthesized parameter list:
//
//	'(' [ typeRef name ['=' literal] {',' typeRef name ['=' literal]} ] ')'
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(TokenLeftParen, "'(' opening parameter list"); err != nil {
		return nil, err
	}

	var params []ast.Param
	if p.match(TokenRightParen) {
		return params, nil
	}

	for {
		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(TokenIdentifier, "parameter name")
		if err != nil {
			return nil, err
		}

		param := ast.Param{Name: name.Value, Type: typ}
		if p.match(TokenEquals) {
			literal, err := p.parseDefaultLiteral()
			if err != nil {
				return nil, err
			}
			param.Default = literal
		}
		params = append(params, param)

		if !p.match(TokenComma) {
			break
		}
	}

	if _, err := p.expect(TokenRightParen, "')' closing parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseDefaultLiteral parses a default-argument literal: a possibly negative
// number, a string, or a (possibly qualified) identifier such as an enumerator.
func (p *Parser) parseDefaultLiteral() (string, error) {
	switch p.peek().Type {
	case TokenMinus:
		p.advance()
		num, err := p.expect(TokenNumber, "number after '-'")
		if err != nil {
			return "", err
		}
		return "-" + num.Value, nil

	case TokenNumber, TokenString:
		return p.advance().Value, nil

	case TokenIdentifier:
		var b strings.Builder
		b.WriteString(p.advance().Value)
		for p.check(TokenDoubleColon) {
			p.advance()
			id, err := p.expect(TokenIdentifier, "identifier after '::'")
			if err != nil {
				return "", err
			}
			b.WriteString("::")
			b.WriteString(id.Value)
		}
		return b.String(), nil

	default:
		return "", p.errorHere("default argument literal")
	}
}
