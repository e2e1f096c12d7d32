package semantic

import "github.com/zoltan-nz/whilelang/internal/ast"

// symbolTable maps variable names to their declared (syntactic) type,
// scoped by blocks.
type symbolTable struct {
	vars  map[string]ast.TypeExpression
	outer *symbolTable
}

func newSymbolTable(outer *symbolTable) *symbolTable {
	return &symbolTable{vars: map[string]ast.TypeExpression{}, outer: outer}
}

func (st *symbolTable) define(name string, typ ast.TypeExpression) {
	st.vars[name] = typ
}

// resolve walks outward from this scope to the global one.
func (st *symbolTable) resolve(name string) (ast.TypeExpression, bool) {
	for s := st; s != nil; s = s.outer {
		if t, ok := s.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}
