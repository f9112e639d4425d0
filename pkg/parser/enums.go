package parser

import (
	"idlwrap/pkg/ast"
)

// parseEnum handles enum declarations. Enumerator values are assigned by
// ordinal position; explicit value syntax is not part of the grammar.
func (p *Parser) parseEnum() (*ast.Enum, error) {
	keyword := p.advance() // consume 'enum'

	name, err := p.expect(TokenIdentifier, "enum name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLeftBrace, "'{' after enum name"); err != nil {
		return nil, err
	}

	e := &ast.Enum{Name: name.Value, Pos: tokenPos(keyword)}
	for {
		enumerator, err := p.expect(TokenIdentifier, "enumerator name")
		if err != nil {
			return nil, err
		}
		e.Enumerators = append(e.Enumerators, enumerator.Value)
		if !p.match(TokenComma) {
			break
		}
	}

	if _, err := p.expect(TokenRightBrace, "'}' closing enum body"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "';' after enum"); err != nil {
		return nil, err
	}

	return e, nil
}
