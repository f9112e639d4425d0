package parser

import (
	"fmt"

	"idlwrap/pkg/ast"
)

// parseClassOrForward handles class definitions and forward declarations. A
// non-nil template parameter list attaches to the definition; template forward
// declarations are rejected.
func (p *Parser) parseClassOrForward(tparams ast.TemplateParamList) (ast.Decl, error) {
	isVirtual := p.match(TokenVirtual)

	keyword, err := p.expect(TokenClass, "'class'")
	if err != nil {
		return nil, err
	}

	// Forward declarations may carry a qualified name; definitions may not.
	name, err := p.expect(TokenIdentifier, "class name")
	if err != nil {
		return nil, err
	}
	path := []string{name.Value}
	for p.check(TokenDoubleColon) {
		p.advance()
		id, err := p.expect(TokenIdentifier, "identifier after '::'")
		if err != nil {
			return nil, err
		}
		path = append(path, id.Value)
	}

	if p.check(TokenSemicolon) {
		if tparams != nil {
			return nil, p.errorHere("class body after template clause")
		}
		p.advance()
		return &ast.ForwardDecl{
			Type:      ast.TypeRef{Name: path[len(path)-1], Namespace: path[:len(path)-1]},
			IsVirtual: isVirtual,
			Pos:       tokenPos(keyword),
		}, nil
	}
	if len(path) > 1 {
		return nil, p.errorHere("';' after qualified class name")
	}

	cls := &ast.Class{
		Name:           name.Value,
		TemplateParams: tparams,
		IsVirtual:      isVirtual,
		Pos:            tokenPos(keyword),
	}

	if p.match(TokenColon) {
		base, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		if p.check(TokenComma) {
			return nil, p.errorHere("'{' after base class (multiple inheritance is not supported)")
		}
		cls.Base = &base
	}

	if _, err := p.expect(TokenLeftBrace, "'{' after class name"); err != nil {
		return nil, err
	}

	p.enterScope(cls.Name)
	seen := make(map[string]bool)
	for !p.check(TokenRightBrace) {
		if p.isAtEnd() {
			return nil, p.errorHere("'}' closing class body")
		}
		if err := p.parseMember(cls, seen); err != nil {
			return nil, err
		}
	}
	p.advance() // consume '}'
	p.exitScope()

	if _, err := p.expect(TokenSemicolon, "';' after class body"); err != nil {
		return nil, err
	}

	return cls, nil
}

// parseMember classifies one class-body statement by fixed lookahead: a
// 'static' prefix marks a static method; a declaration whose name matches the
// enclosing class and has no return type is a constructor; an 'operator'
// keyword after the return type marks an operator overload; anything else is
// an instance method or a property depending on whether a parameter list
// follows the name.
func (p *Parser) parseMember(cls *ast.Class, seen map[string]bool) error {
	tok := p.peek()

	if tok.Type == TokenTemplate {
		return p.errorHere("class member (member templates are not supported)")
	}

	if tok.Type == TokenStatic {
		return p.parseStaticMethod(cls, seen)
	}

	if tok.Type == TokenIdentifier && tok.Value == cls.Name && p.peekAhead(1).Type == TokenLeftParen {
		return p.parseConstructor(cls, seen)
	}

	if tok.Type == TokenIdentifier || tok.Type == TokenPair || tok.Type == TokenConst {
		return p.parseTypedMember(cls, seen)
	}

	return p.errorHere("class member")
}

// parseConstructor handles a constructor declaration.
func (p *Parser) parseConstructor(cls *ast.Class, seen map[string]bool) error {
	name := p.advance() // consume the class name

	params, err := p.parseParams()
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "';' after constructor declaration"); err != nil {
		return err
	}

	if err := p.checkOverload(seen, name, cls.Name, params); err != nil {
		return err
	}
	cls.Constructors = append(cls.Constructors, ast.Constructor{Params: params, Pos: tokenPos(name)})
	return nil
}

// parseStaticMethod handles a 'static'-prefixed method declaration.
func (p *Parser) parseStaticMethod(cls *ast.Class, seen map[string]bool) error {
	p.advance() // consume 'static'

	returns, err := p.parseTypeRef()
	if err != nil {
		return err
	}
	name, err := p.expect(TokenIdentifier, "method name")
	if err != nil {
		return err
	}
	params, err := p.parseParams()
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "';' after method declaration"); err != nil {
		return err
	}

	if err := p.checkOverload(seen, name, name.Value, params); err != nil {
		return err
	}
	cls.Methods = append(cls.Methods, ast.Method{
		Name:     name.Value,
		Params:   params,
		Returns:  returns,
		IsStatic: true,
		Pos:      tokenPos(name),
	})
	return nil
}

// parseTypedMember handles members starting with a type: operator overloads,
// instance methods and properties.
func (p *Parser) parseTypedMember(cls *ast.Class, seen map[string]bool) error {
	returns, err := p.parseTypeRef()
	if err != nil {
		return err
	}

	if p.check(TokenOperator) {
		opKeyword := p.advance()
		token, err := p.parseOperatorToken()
		if err != nil {
			return err
		}
		params, err := p.parseParams()
		if err != nil {
			return err
		}
		isConst := p.match(TokenConst)
		if _, err := p.expect(TokenSemicolon, "';' after operator declaration"); err != nil {
			return err
		}

		if err := p.checkOverload(seen, opKeyword, "operator"+token, params); err != nil {
			return err
		}
		cls.Operators = append(cls.Operators, ast.Operator{
			Token:   token,
			Params:  params,
			Returns: returns,
			IsConst: isConst,
			Pos:     tokenPos(opKeyword),
		})
		return nil
	}

	name, err := p.expect(TokenIdentifier, "member name")
	if err != nil {
		return err
	}

	if p.check(TokenLeftParen) {
		params, err := p.parseParams()
		if err != nil {
			return err
		}
		isConst := p.match(TokenConst)
		if _, err := p.expect(TokenSemicolon, "';' after method declaration"); err != nil {
			return err
		}

		// A bare 'void serialize() const' marks the class serializable
		// instead of binding a method.
		if name.Value == "serialize" && len(params) == 0 && returns.IsVoid() {
			cls.Serializable = true
			return nil
		}

		if err := p.checkOverload(seen, name, name.Value, params); err != nil {
			return err
		}
		cls.Methods = append(cls.Methods, ast.Method{
			Name:    name.Value,
			Params:  params,
			Returns: returns,
			IsConst: isConst,
			Pos:     tokenPos(name),
		})
		return nil
	}

	if _, err := p.expect(TokenSemicolon, "';' after property declaration"); err != nil {
		return err
	}
	cls.Properties = append(cls.Properties, ast.Property{
		Name: name.Value,
		Type: returns,
		Pos:  tokenPos(name),
	})
	return nil
}

// parseOperatorToken consumes the token following the 'operator' keyword.
// Tokens outside the supported set are a parse error, not silently ignored.
func (p *Parser) parseOperatorToken() (string, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenPlus:
		p.advance()
		return "+", nil
	case TokenMinus:
		p.advance()
		return "-", nil
	case TokenStar:
		p.advance()
		return "*", nil
	case TokenSlash:
		p.advance()
		return "/", nil
	case TokenDoubleEquals:
		p.advance()
		return "==", nil
	case TokenNotEquals:
		p.advance()
		return "!=", nil
	case TokenLess:
		p.advance()
		return "<", nil
	case TokenGreater:
		p.advance()
		return ">", nil
	case TokenLessEqual:
		p.advance()
		return "<=", nil
	case TokenGreaterEqual:
		p.advance()
		return ">=", nil
	case TokenLeftShift:
		p.advance()
		return "<<", nil
	case TokenLeftBracket:
		p.advance()
		if _, err := p.expect(TokenRightBracket, "']' after 'operator['"); err != nil {
			return "", err
		}
		return "[]", nil
	case TokenLeftParen:
		if p.peekAhead(1).Type == TokenRightParen {
			p.advance()
			p.advance()
			return "()", nil
		}
	}
	return "", p.errorAt(tok, "a supported operator token")
}

// checkOverload records a declaration's overload identity and rejects a
// duplicate in the same scope.
func (p *Parser) checkOverload(seen map[string]bool, at Token, name string, params []ast.Param) error {
	key := name + "(" + ast.SignatureKey(params) + ")"
	if seen[key] {
		return p.errorAt(at, fmt.Sprintf("a distinct signature: %s is already declared", key))
	}
	seen[key] = true
	return nil
}
