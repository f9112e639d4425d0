package parser

import (
	"idlwrap/pkg/ast"
)

// parseNamespace handles namespace declarations. Namespace bodies nest to
// unbounded depth and hold any scope-level declaration.
func (p *Parser) parseNamespace() (*ast.Namespace, error) {
	keyword := p.advance() // consume 'namespace'

	name, err := p.expect(TokenIdentifier, "namespace name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenLeftBrace, "'{' after namespace name"); err != nil {
		return nil, err
	}

	ns := &ast.Namespace{Name: name.Value, Pos: tokenPos(keyword)}

	p.enterScope(ns.Name)
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorHere("'}' closing namespace body")
		}
		decl, err := p.parseDecl(ns.Decls)
		if err != nil {
			return nil, err
		}
		ns.Decls = append(ns.Decls, decl)
	}
	p.advance() // consume '}'
	p.exitScope()

	return ns, nil
}
