// Package parser implements a recursive-descent parser over the token
// stream produced by the lexer. It is predictive with one-token lookahead,
// plus a forward probe used to tell a named-type local variable declaration
// (`Ident Ident`, or `Ident` followed by `[]` pairs and then `Ident`) apart
// from an `Ident(...)`/`Ident = `/`Ident[...]`/`Ident.field` statement.
//
// The parser performs its own local validation: no duplicate type-alias or
// method name, unique parameter/local names within a method, break/continue
// only inside a loop, no duplicate record field names, and that every
// variable identifier used as an expression refers to a name already in
// lexical scope. All of these raise *errors.CompilerError with Kind ==
// errors.SyntaxError and parsing stops immediately; this parser does not
// attempt error recovery.
package parser

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/errors"
	"github.com/zoltan-nz/whilelang/internal/lexer"
	"github.com/zoltan-nz/whilelang/internal/token"
)

// scope is one lexical block's set of declared local names.
type scope map[string]bool

// Parser consumes a token slice and produces an *ast.Program.
type Parser struct {
	tokens []token.Token
	pos    int

	declaredTypes   map[string]bool
	declaredMethods map[string]bool

	scopes    []scope
	loopDepth int

	file   string
	source string
}

// New creates a Parser for filename's source, scanning it with the lexer
// first. Returns a *errors.CompilerError with Kind == errors.LexicalError
// if scanning fails.
func New(source, filename string) (*Parser, error) {
	tokens, err := lexer.Scan(source)
	if err != nil {
		if ce, ok := err.(*errors.CompilerError); ok {
			ce.WithFile(filename, source)
		}
		return nil, err
	}
	return &Parser{
		tokens:          tokens,
		declaredTypes:   map[string]bool{},
		declaredMethods: map[string]bool{},
		file:            filename,
		source:          source,
	}, nil
}

// ParseProgram parses the entire token stream: `File := Decl*`.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var decls []ast.Declaration
	for !p.at(token.EOF) {
		d, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return &ast.Program{Declarations: decls}, nil
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) cur() token.Token  { return p.tokens[p.pos] }
func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) peekAt(offset int, t token.Type) bool {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return false
	}
	return p.tokens[idx].Type == t
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.at(t) {
		return token.Token{}, p.syntaxErrorf(p.cur().Span, "expected %s, found %s %q", t, p.cur().Type, p.cur().Literal)
	}
	return p.advance(), nil
}

func (p *Parser) syntaxErrorf(span token.Span, format string, args ...any) error {
	e := errors.New(errors.SyntaxError, span, format, args...)
	e.WithFile(p.file, p.source)
	return e
}

// --- scope management ------------------------------------------------------

func (p *Parser) pushScope() { p.scopes = append(p.scopes, scope{}) }
func (p *Parser) popScope()  { p.scopes = p.scopes[:len(p.scopes)-1] }

// declareLocal adds name to the innermost scope, or reports a SyntaxError
// if name is already visible in any enclosing scope of the same method.
func (p *Parser) declareLocal(name string, span token.Span) error {
	top := p.scopes[len(p.scopes)-1]
	if p.isInScope(name) {
		return p.syntaxErrorf(span, "duplicate local declaration of %q", name)
	}
	top[name] = true
	return nil
}

// isInScope walks the scope chain from innermost to outermost.
func (p *Parser) isInScope(name string) bool {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i][name] {
			return true
		}
	}
	return false
}
