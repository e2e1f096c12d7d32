package parser

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// parseType parses `Type := Base ('[' ']')*`.
func (p *Parser) parseType() (ast.TypeExpression, error) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	for p.at(token.LBRACKET) {
		start := p.cur().Span
		p.advance()
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		base = ast.NewArrayTypeExpr(base, span(start, end.Span))
	}
	return base, nil
}

var primitiveTypeTokens = map[token.Type]string{
	token.VOID:      "void",
	token.BOOL:      "bool",
	token.INT_KW:    "int",
	token.CHAR_KW:   "char",
	token.STRING_KW: "string",
}

// parseBaseType parses one primitive keyword, a record type `{...}`, or a
// named type reference to an already-declared alias.
func (p *Parser) parseBaseType() (ast.TypeExpression, error) {
	if name, ok := primitiveTypeTokens[p.cur().Type]; ok {
		tok := p.advance()
		return ast.NewPrimitiveTypeExpr(name, tok.Span), nil
	}
	switch p.cur().Type {
	case token.LBRACE:
		return p.parseRecordType()
	case token.IDENT:
		tok := p.advance()
		if !p.declaredTypes[tok.Literal] {
			return nil, p.syntaxErrorf(tok.Span, "undeclared type %q", tok.Literal)
		}
		return ast.NewNamedTypeExpr(tok.Literal, tok.Span), nil
	default:
		return nil, p.syntaxErrorf(p.cur().Span, "expected a type, found %s %q", p.cur().Type, p.cur().Literal)
	}
}

// parseRecordType parses `{ Type Ident (',' Type Ident)* }`, rejecting an
// empty field list and duplicate field names.
func (p *Parser) parseRecordType() (ast.TypeExpression, error) {
	start := p.cur().Span
	p.advance() // '{'
	var fields []ast.RecordFieldExpr
	seen := map[string]bool{}
	for {
		ft, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fn, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if seen[fn.Literal] {
			return nil, p.syntaxErrorf(fn.Span, "duplicate record field %q", fn.Literal)
		}
		seen[fn.Literal] = true
		fields = append(fields, ast.RecordFieldExpr{Type: ft, Name: fn.Literal})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.NewRecordTypeExpr(fields, span(start, end.Span)), nil
}
