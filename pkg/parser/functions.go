package parser

import (
	"fmt"

	"idlwrap/pkg/ast"
)

// parseGlobalFunction handles a free function at module or namespace scope.
// The enclosing scope's declarations are scanned so that a duplicate overload
// identity fails at parse time.
func (p *Parser) parseGlobalFunction(scope []ast.Decl, tparams ast.TemplateParamList) (*ast.Function, error) {
	returns, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier, "function name")
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenSemicolon, "';' after function declaration"); err != nil {
		return nil, err
	}

	fn := &ast.Function{
		Name:           name.Value,
		Params:         params,
		Returns:        returns,
		TemplateParams: tparams,
		Pos:            tokenPos(name),
	}

	// Generic functions are checked after instantiation instead.
	if !fn.IsTemplate() {
		sig := ast.SignatureKey(fn.Params)
		for _, d := range scope {
			other, ok := d.(*ast.Function)
			if ok && !other.IsTemplate() && other.Name == fn.Name && ast.SignatureKey(other.Params) == sig {
				return nil, p.errorAt(name, fmt.Sprintf("a distinct signature: %s(%s) is already declared", fn.Name, sig))
			}
		}
	}

	return fn, nil
}
