package parser

import (
	"idlwrap/pkg/ast"
)

// parseTemplate handles a leading 'template<...>' clause and attaches the
// parameter list to the class or function declaration that follows. A
// parameter may restrict itself to an explicit finite set of concrete types:
//
//	template<T = {gtsam::Point2, gtsam::Point3}> class PriorFactor { ... };
//
// An unrestricted parameter leaves the template open, requiring explicit
// typedef instantiation requests elsewhere.
func (p *Parser) parseTemplate(scope []ast.Decl) (ast.Decl, error) {
	p.advance() // consume 'template'

	if _, err := p.expect(TokenLess, "'<' after 'template'"); err != nil {
		return nil, err
	}

	var tparams ast.TemplateParamList
	for {
		name, err := p.expect(TokenIdentifier, "template parameter name")
		if err != nil {
			return nil, err
		}

		param := ast.TemplateParam{Name: name.Value}
		if p.match(TokenEquals) {
			if !p.check(TokenLeftBrace) {
				return nil, p.errorHere("'{' opening an allowed-type set (default template arguments are not supported)")
			}
			p.advance()
			for {
				allowed, err := p.parseTypeRef()
				if err != nil {
					return nil, err
				}
				param.Allowed = append(param.Allowed, allowed)
				if !p.match(TokenComma) {
					break
				}
			}
			if _, err := p.expect(TokenRightBrace, "'}' closing allowed-type set"); err != nil {
				return nil, err
			}
		}
		tparams = append(tparams, param)

		if !p.match(TokenComma) {
			break
		}
	}

	if _, err := p.expect(TokenGreater, "'>' closing template parameter list"); err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case TokenVirtual, TokenClass:
		return p.parseClassOrForward(tparams)
	case TokenIdentifier, TokenPair, TokenConst:
		return p.parseGlobalFunction(scope, tparams)
	default:
		return nil, p.errorHere("class or function after template clause")
	}
}
