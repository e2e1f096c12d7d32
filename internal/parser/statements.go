package parser

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// parseBlock parses `{ Stmt* }`. A block always introduces a fresh scope
// nested in whatever scope is active when it starts, so declarations made
// inside an if/else branch or loop body never leak to a sibling branch or
// the enclosing scope.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	p.pushScope()
	var stmts []ast.Statement
	for !p.at(token.RBRACE) {
		s, err := p.parseStmt()
		if err != nil {
			p.popScope()
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.popScope()
	end, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	return ast.NewBlockStmt(stmts, span(start.Span, end.Span)), nil
}

func isBaseTypeStart(t token.Type) bool {
	_, isPrimitive := primitiveTypeTokens[t]
	return isPrimitive || t == token.LBRACE
}

// isNamedArrayVarDeclStart looks past the current IDENT for one or more
// `[]` pairs followed by another IDENT, the spelling of a local variable
// declared as an array of an already-declared named type.
func (p *Parser) isNamedArrayVarDeclStart() bool {
	i := 1
	if !p.peekAt(i, token.LBRACKET) {
		return false
	}
	for p.peekAt(i, token.LBRACKET) {
		if !p.peekAt(i+1, token.RBRACKET) {
			return false
		}
		i += 2
	}
	return p.peekAt(i, token.IDENT)
}

// parseStmt dispatches on the current token to one of the Stmt productions.
func (p *Parser) parseStmt() (ast.Statement, error) {
	tok := p.cur()
	switch {
	case tok.Type == token.ASSERT:
		return p.parseAssertStmt()
	case tok.Type == token.RETURN:
		return p.parseReturnStmt()
	case tok.Type == token.PRINT:
		return p.parsePrintStmt()
	case tok.Type == token.BREAK:
		return p.parseBreakStmt()
	case tok.Type == token.CONTINUE:
		return p.parseContinueStmt()
	case tok.Type == token.IF:
		return p.parseIfStmt()
	case tok.Type == token.WHILE:
		return p.parseWhileStmt()
	case tok.Type == token.FOR:
		return p.parseForStmt()
	case isBaseTypeStart(tok.Type):
		return p.parseVarDeclStmt()
	case tok.Type == token.IDENT && (p.peekAt(1, token.IDENT) || p.isNamedArrayVarDeclStart()):
		// `Ident Ident ...` or `Ident ('[' ']')+ Ident ...`, a var decl
		// naming an already-declared type, possibly as an array of it.
		return p.parseVarDeclStmt()
	case tok.Type == token.IDENT:
		return p.parseExprStmt()
	default:
		return nil, p.syntaxErrorf(tok.Span, "unexpected token %s %q, expected a statement", tok.Type, tok.Literal)
	}
}

func (p *Parser) parseAssertStmt() (ast.Statement, error) {
	start := p.advance() // 'assert'
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewAssertStmt(e, span(start.Span, end.Span)), nil
}

func (p *Parser) parseReturnStmt() (ast.Statement, error) {
	start := p.advance() // 'return'
	if p.at(token.SEMICOLON) {
		end := p.advance()
		return ast.NewReturnStmt(nil, span(start.Span, end.Span)), nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(e, span(start.Span, end.Span)), nil
}

func (p *Parser) parsePrintStmt() (ast.Statement, error) {
	start := p.advance() // 'print'
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewPrintStmt(e, span(start.Span, end.Span)), nil
}

func (p *Parser) parseBreakStmt() (ast.Statement, error) {
	start := p.advance() // 'break'
	if p.loopDepth == 0 {
		return nil, p.syntaxErrorf(start.Span, "break outside of a loop")
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewBreakStmt(span(start.Span, end.Span)), nil
}

func (p *Parser) parseContinueStmt() (ast.Statement, error) {
	start := p.advance() // 'continue'
	if p.loopDepth == 0 {
		return nil, p.syntaxErrorf(start.Span, "continue outside of a loop")
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewContinueStmt(span(start.Span, end.Span)), nil
}

// parseIfStmt parses `'if' '(' Expr ')' Block ('else' (IfStmt | Block))?`.
// Each branch gets an independently scoped block, so neither sees the
// other's local declarations.
func (p *Parser) parseIfStmt() (ast.Statement, error) {
	start := p.advance() // 'if'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	end := then.Span()
	var els ast.Statement
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			els, err = p.parseIfStmt()
		} else {
			els, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
		end = els.Span()
	}
	return ast.NewIfStmt(cond, then, els, span(start.Span, end)), nil
}

// parseWhileStmt parses `'while' '(' Expr ')' Block`.
func (p *Parser) parseWhileStmt() (ast.Statement, error) {
	start := p.advance() // 'while'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(cond, body, span(start.Span, body.Span())), nil
}

// parseForStmt parses `'for' '(' VarDecl Expr ';' Stmt ')' Block`. The
// loop's own declaration lives in a scope that does not leak past the
// statement.
func (p *Parser) parseForStmt() (ast.Statement, error) {
	start := p.advance() // 'for'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	p.pushScope()
	declStmt, err := p.parseVarDeclStmt()
	if err != nil {
		p.popScope()
		return nil, err
	}
	decl := declStmt.(*ast.VarDeclStmt)
	cond, err := p.parseExpr()
	if err != nil {
		p.popScope()
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		p.popScope()
		return nil, err
	}
	step, err := p.parseStmt()
	if err != nil {
		p.popScope()
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		p.popScope()
		return nil, err
	}
	p.loopDepth++
	body, err := p.parseBlock()
	p.loopDepth--
	p.popScope()
	if err != nil {
		return nil, err
	}
	return ast.NewForStmt(decl, cond, step, body, span(start.Span, body.Span())), nil
}

// parseVarDeclStmt parses `Type Ident ('=' Expr)? ';'`. The name becomes
// visible only after the initialiser is parsed, so a declaration can never
// refer to itself.
func (p *Parser) parseVarDeclStmt() (ast.Statement, error) {
	start := p.cur().Span
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.at(token.ASSIGN) {
		p.advance()
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	if err := p.declareLocal(nameTok.Literal, nameTok.Span); err != nil {
		return nil, err
	}
	return ast.NewVarDeclStmt(typ, nameTok.Literal, init, span(start, end.Span)), nil
}

// parseExprStmt parses the two statement forms built on an identifier that
// is not itself the start of a named-type var decl: an invocation
// (`Ident '(' Args? ')' ';'`) or an assignment (`LVal '=' Expr ';'`). Since
// Idx/Term already produce exactly these shapes, the parsed expression
// settles which form applies: an invocation not followed by '=' is an
// invocation statement, anything else must be an assignable LVal.
func (p *Parser) parseExprStmt() (ast.Statement, error) {
	start := p.cur().Span
	e, err := p.parseIdx()
	if err != nil {
		return nil, err
	}
	if invoke, ok := e.(*ast.InvokeExpr); ok && !p.at(token.ASSIGN) {
		end, err := p.expect(token.SEMICOLON)
		if err != nil {
			return nil, err
		}
		return ast.NewInvokeStmt(invoke, span(start, end.Span)), nil
	}
	lval, ok := e.(ast.LVal)
	if !ok {
		return nil, p.syntaxErrorf(e.Span(), "expression is not assignable")
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignStmt(lval, value, span(start, end.Span)), nil
}
