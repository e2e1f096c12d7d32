package parser

import (
	"strconv"

	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// parseExpr parses `Expr := Rel (('&&'|'||') Expr)?`. The right-hand side
// recurses into Expr itself, so a chain of `&&`/`||` at this level is
// right-associative, and the two operators may even interleave; this is
// spelled out on purpose rather than tidied into a conventional
// left-associative loop.
func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	if p.at(token.AND) || p.at(token.OR) {
		op := boolOp(p.cur().Type)
		p.advance()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(op, left, right, span(left.Span(), right.Span())), nil
	}
	return left, nil
}

func boolOp(t token.Type) ast.BinOp {
	if t == token.AND {
		return ast.AND
	}
	return ast.OR
}

// parseRel parses `Rel := Add (relOp Add)?`: at most one relational
// comparison, non-associative by construction (there is no further Rel
// slot after the right operand).
func (p *Parser) parseRel() (ast.Expression, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if op, ok := relOp(p.cur().Type); ok {
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(op, left, right, span(left.Span(), right.Span())), nil
	}
	return left, nil
}

func relOp(t token.Type) (ast.BinOp, bool) {
	switch t {
	case token.LT:
		return ast.LT, true
	case token.LTEQ:
		return ast.LTEQ, true
	case token.GT:
		return ast.GT, true
	case token.GTEQ:
		return ast.GTEQ, true
	case token.EQ:
		return ast.EQ, true
	case token.NEQ:
		return ast.NEQ, true
	default:
		return 0, false
	}
}

// parseAdd parses `Add := Mul (('+'|'-') Add)?`, right-associative.
func (p *Parser) parseAdd() (ast.Expression, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	if p.at(token.PLUS) || p.at(token.MINUS) {
		op := ast.ADD
		if p.at(token.MINUS) {
			op = ast.SUB
		}
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(op, left, right, span(left.Span(), right.Span())), nil
	}
	return left, nil
}

// parseMul parses `Mul := Idx (('*'|'/'|'%') Mul)?`, right-associative.
func (p *Parser) parseMul() (ast.Expression, error) {
	left, err := p.parseIdx()
	if err != nil {
		return nil, err
	}
	if op, ok := mulOp(p.cur().Type); ok {
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpr(op, left, right, span(left.Span(), right.Span())), nil
	}
	return left, nil
}

func mulOp(t token.Type) (ast.BinOp, bool) {
	switch t {
	case token.STAR:
		return ast.MUL, true
	case token.SLASH:
		return ast.DIV, true
	case token.PERCENT:
		return ast.REM, true
	default:
		return 0, false
	}
}

// parseIdx parses `Idx := Term ( '[' Expr ']' | '.' Ident )*`.
func (p *Parser) parseIdx() (ast.Expression, error) {
	e, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.LBRACKET:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RBRACKET)
			if err != nil {
				return nil, err
			}
			e = ast.NewIndexExpr(e, idx, span(e.Span(), end.Span))
		case token.DOT:
			p.advance()
			field, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			e = ast.NewRecordAccessExpr(e, field.Literal, span(e.Span(), field.Span))
		default:
			return e, nil
		}
	}
}

// parseTerm parses the atoms of the grammar: literals, parenthesised
// expressions, unary operators, array/record constructors, variable
// references, and invocations.
func (p *Parser) parseTerm() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Type {
	case token.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return e, nil

	case token.INT:
		p.advance()
		v, err := parseIntLiteral(tok)
		if err != nil {
			return nil, p.syntaxErrorf(tok.Span, "invalid integer literal %q", tok.Literal)
		}
		return ast.NewIntLiteral(v, tok.Span), nil

	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Literal, tok.Span), nil

	case token.CHAR:
		p.advance()
		return ast.NewCharLiteral(tok.Literal[0], tok.Span), nil

	case token.TRUE:
		p.advance()
		return ast.NewBoolLiteral(true, tok.Span), nil

	case token.FALSE:
		p.advance()
		return ast.NewBoolLiteral(false, tok.Span), nil

	case token.NULL:
		p.advance()
		return ast.NewNullLiteral(tok.Span), nil

	case token.BANG:
		p.advance()
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(ast.NOT, operand, span(tok.Span, operand.Span())), nil

	case token.MINUS:
		p.advance()
		operand, err := p.parseIdx()
		if err != nil {
			return nil, err
		}
		if lit, ok := operand.(*ast.IntLiteral); ok {
			return ast.NewIntLiteral(-lit.Value, span(tok.Span, operand.Span())), nil
		}
		return ast.NewUnaryExpr(ast.NEG, operand, span(tok.Span, operand.Span())), nil

	case token.PIPE:
		p.advance()
		operand, err := p.parseIdx()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.PIPE)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(ast.LENGTHOF, operand, span(tok.Span, end.Span)), nil

	case token.LBRACKET:
		return p.parseArrayExpr()

	case token.LBRACE:
		return p.parseRecordConstructor()

	case token.IDENT:
		p.advance()
		if p.at(token.LPAREN) {
			return p.parseInvokeArgs(tok.Literal, tok.Span)
		}
		if !p.isInScope(tok.Literal) {
			return nil, p.syntaxErrorf(tok.Span, "undeclared identifier %q", tok.Literal)
		}
		return ast.NewIdentifier(tok.Literal, tok.Span), nil

	default:
		return nil, p.syntaxErrorf(tok.Span, "unexpected token %s %q in expression", tok.Type, tok.Literal)
	}
}

// parseIntLiteral converts a scanned INT token's digits to int32. The
// lexer already rejected anything outside the 32-bit signed range, so the
// conversion here cannot fail.
func parseIntLiteral(tok token.Token) (int32, error) {
	v, err := strconv.ParseInt(tok.Literal, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// parseArrayExpr parses either `[e1, e2, ...]` (possibly empty) or
// `[value ; size]`, disambiguated by whether a ';' follows the first
// element.
func (p *Parser) parseArrayExpr() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // '['
	if p.at(token.RBRACKET) {
		end := p.advance()
		return ast.NewArrayInitExpr(nil, span(start, end.Span)), nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.SEMICOLON) {
		p.advance()
		size, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		return ast.NewArrayGeneratorExpr(first, size, span(start, end.Span)), nil
	}
	elems := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	end, err := p.expect(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	return ast.NewArrayInitExpr(elems, span(start, end.Span)), nil
}

// parseRecordConstructor parses `{ Ident ':' Expr (',' Ident ':' Expr)* }`,
// rejecting duplicate field names.
func (p *Parser) parseRecordConstructor() (ast.Expression, error) {
	start := p.cur().Span
	p.advance() // '{'
	var fields []ast.RecordFieldInit
	seen := map[string]bool{}
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if seen[nameTok.Literal] {
			return nil, p.syntaxErrorf(nameTok.Span, "duplicate record field %q", nameTok.Literal)
		}
		seen[nameTok.Literal] = true
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordFieldInit{Name: nameTok.Literal, Value: val})
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
	return ast.NewRecordConstructorExpr(fields, span(start, end.Span)), nil
}

// parseInvokeArgs parses `'(' (Expr (',' Expr)*)? ')'` given the method
// name has already been consumed.
func (p *Parser) parseInvokeArgs(method string, startSpan token.Span) (*ast.InvokeExpr, error) {
	p.advance() // '('
	var args []ast.Expression
	if !p.at(token.RPAREN) {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return ast.NewInvokeExpr(method, args, span(startSpan, end.Span)), nil
}
