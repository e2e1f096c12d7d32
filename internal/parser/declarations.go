package parser

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// parseDecl parses `Decl := 'type' Ident 'is' Type ';' | Type Ident '(' Params? ')' Block`.
func (p *Parser) parseDecl() (ast.Declaration, error) {
	if p.at(token.TYPE) {
		return p.parseTypeAliasDecl()
	}
	return p.parseMethodDecl()
}

// parseTypeAliasDecl registers the alias name only after its body parses
// successfully, so a body cannot refer to the name it is itself defining
// since the referent must already be declared, a body cannot directly
// reference the name it is itself defining.
func (p *Parser) parseTypeAliasDecl() (ast.Declaration, error) {
	start := p.cur().Span
	p.advance() // 'type'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IS); err != nil {
		return nil, err
	}
	body, err := p.parseType()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	if p.declaredTypes[nameTok.Literal] || p.declaredMethods[nameTok.Literal] {
		return nil, p.syntaxErrorf(nameTok.Span, "%q is already declared", nameTok.Literal)
	}
	p.declaredTypes[nameTok.Literal] = true
	return ast.NewTypeAliasDecl(nameTok.Literal, body, span(start, end.Span)), nil
}

// parseMethodDecl parses a method declaration. Forward references to other
// methods are not validated here; the checker resolves calls after
// registering every declaration (see internal/semantic).
func (p *Parser) parseMethodDecl() (ast.Declaration, error) {
	start := p.cur().Span
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if p.declaredTypes[nameTok.Literal] || p.declaredMethods[nameTok.Literal] {
		return nil, p.syntaxErrorf(nameTok.Span, "%q is already declared", nameTok.Literal)
	}
	p.declaredMethods[nameTok.Literal] = true

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	p.pushScope()
	var params []ast.Param
	if !p.at(token.RPAREN) {
		for {
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pn, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if err := p.declareLocal(pn.Literal, pn.Span); err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Type: pt, Name: pn.Literal})
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	p.popScope()
	return ast.NewMethodDecl(nameTok.Literal, retType, params, body, span(start, body.Span())), nil
}

func span(start, end token.Span) token.Span {
	return token.Span{Start: start.Start, End: end.End}
}
