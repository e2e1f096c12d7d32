package semantic

import (
	"github.com/zoltan-nz/whilelang/internal/ast"
	"github.com/zoltan-nz/whilelang/internal/types"
)

// checkMethodBody type-checks a method's body against its registered
// signature, with parameters pre-installed in the outermost environment.
func (a *Analyzer) checkMethodBody(method *ast.MethodDecl, sig *methodSig) error {
	env := newSymbolTable(nil)
	for i, param := range method.Params {
		env.define(param.Name, method.Params[i].Type)
	}
	return a.checkBlock(env, method.Body, sig)
}

// checkBlock type-checks a block in its own scope, branched from env, so
// declarations made here never leak to env's other branches.
func (a *Analyzer) checkBlock(env *symbolTable, block *ast.BlockStmt, method *methodSig) error {
	inner := newSymbolTable(env)
	for _, stmt := range block.Stmts {
		if err := a.checkStmt(inner, stmt, method); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkStmt(env *symbolTable, stmt ast.Statement, method *methodSig) error {
	switch s := stmt.(type) {
	case *ast.AssertStmt:
		return a.checkAssertStmt(env, s)
	case *ast.AssignStmt:
		return a.checkAssignStmt(env, s)
	case *ast.VarDeclStmt:
		return a.checkVarDeclStmt(env, s)
	case *ast.PrintStmt:
		_, err := a.checkExpr(env, s.Expr)
		return err
	case *ast.ReturnStmt:
		return a.checkReturnStmt(env, s, method)
	case *ast.BreakStmt, *ast.ContinueStmt:
		return nil
	case *ast.IfStmt:
		return a.checkIfStmt(env, s, method)
	case *ast.WhileStmt:
		return a.checkWhileStmt(env, s, method)
	case *ast.ForStmt:
		return a.checkForStmt(env, s, method)
	case *ast.InvokeStmt:
		_, err := a.checkInvoke(env, s.Call, true)
		return err
	default:
		return a.typeErrorf(stmt.Span(), "unsupported statement %T", stmt)
	}
}

func (a *Analyzer) checkAssertStmt(env *symbolTable, s *ast.AssertStmt) error {
	t, err := a.checkExpr(env, s.Expr)
	if err != nil {
		return err
	}
	if !t.IsBool() {
		return a.typeErrorf(s.Expr.Span(), "assert requires a bool expression, got %s", t)
	}
	return nil
}

func (a *Analyzer) checkAssignStmt(env *symbolTable, s *ast.AssignStmt) error {
	targetType, err := a.checkExpr(env, s.Target)
	if err != nil {
		return err
	}
	valueType, err := a.checkExpr(env, s.Value)
	if err != nil {
		return err
	}
	ok, err := types.SubtypeOf(valueType, targetType, a)
	if err != nil {
		return a.wrapUnfoldErr(s.Value.Span(), err)
	}
	if !ok {
		return a.typeErrorf(s.Value.Span(), "cannot assign %s to %s", valueType, targetType)
	}
	return nil
}

// checkVarDeclStmt installs name with its declared (syntactic) type only
// after the initialiser checks, so a declaration can never see itself.
func (a *Analyzer) checkVarDeclStmt(env *symbolTable, s *ast.VarDeclStmt) error {
	declared, err := a.elaborateType(s.Type)
	if err != nil {
		return err
	}
	if a.isEffectivelyVoid(declared) {
		return a.typeErrorf(s.Type.Span(), "variable %q may not have type void", s.Name)
	}
	if s.Init != nil {
		initType, err := a.checkExpr(env, s.Init)
		if err != nil {
			return err
		}
		ok, err := types.SubtypeOf(initType, declared, a)
		if err != nil {
			return a.wrapUnfoldErr(s.Init.Span(), err)
		}
		if !ok {
			return a.typeErrorf(s.Init.Span(), "cannot initialise %q of type %s with %s", s.Name, declared, initType)
		}
	}
	env.define(s.Name, s.Type)
	return nil
}

// checkReturnStmt enforces `return e` requires type(e) <= method.return;
// bare `return` requires the method return to be void.
func (a *Analyzer) checkReturnStmt(env *symbolTable, s *ast.ReturnStmt, method *methodSig) error {
	if s.Value == nil {
		if !a.isEffectivelyVoid(method.returnType) {
			return a.typeErrorf(s.Span(), "missing return value for non-void method")
		}
		return nil
	}
	t, err := a.checkExpr(env, s.Value)
	if err != nil {
		return err
	}
	ok, err := types.SubtypeOf(t, method.returnType, a)
	if err != nil {
		return a.wrapUnfoldErr(s.Value.Span(), err)
	}
	if !ok {
		return a.typeErrorf(s.Value.Span(), "cannot return %s from a method declared to return %s", t, method.returnType)
	}
	return nil
}

func (a *Analyzer) checkIfStmt(env *symbolTable, s *ast.IfStmt, method *methodSig) error {
	cond, err := a.checkExpr(env, s.Cond)
	if err != nil {
		return err
	}
	if !cond.IsBool() {
		return a.typeErrorf(s.Cond.Span(), "if condition must be bool, got %s", cond)
	}
	if err := a.checkBlock(env, s.Then, method); err != nil {
		return err
	}
	switch els := s.Else.(type) {
	case nil:
		return nil
	case *ast.BlockStmt:
		return a.checkBlock(env, els, method)
	default:
		return a.checkStmt(env, els, method)
	}
}

func (a *Analyzer) checkWhileStmt(env *symbolTable, s *ast.WhileStmt, method *methodSig) error {
	cond, err := a.checkExpr(env, s.Cond)
	if err != nil {
		return err
	}
	if !cond.IsBool() {
		return a.typeErrorf(s.Cond.Span(), "while condition must be bool, got %s", cond)
	}
	return a.checkBlock(env, s.Body, method)
}

// checkForStmt analyses decl into a scoped environment, then cond, step,
// and body with that same scoped environment.
func (a *Analyzer) checkForStmt(env *symbolTable, s *ast.ForStmt, method *methodSig) error {
	inner := newSymbolTable(env)
	if err := a.checkVarDeclStmt(inner, s.Decl); err != nil {
		return err
	}
	cond, err := a.checkExpr(inner, s.Cond)
	if err != nil {
		return err
	}
	if !cond.IsBool() {
		return a.typeErrorf(s.Cond.Span(), "for condition must be bool, got %s", cond)
	}
	if s.Step != nil {
		if err := a.checkStmt(inner, s.Step, method); err != nil {
			return err
		}
	}
	return a.checkBlock(inner, s.Body, method)
}
