package parser

import (
	"idlwrap/pkg/ast"
)

// parseTypedef handles typedef declarations. A typedef whose right-hand side
// is a template name applied to concrete arguments doubles as an explicit
// instantiation request; the distinction is drawn by the instantiator, not
// here.
func (p *Parser) parseTypedef() (*ast.Typedef, error) {
	keyword := p.advance() // consume 'typedef'

	typ, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier, "typedef alias name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';' after typedef"); err != nil {
		return nil, err
	}

	return &ast.Typedef{Name: name.Value, Type: typ, Pos: tokenPos(keyword)}, nil
}
