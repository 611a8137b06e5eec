// Package resolver implements the static analysis pass that runs between parsing and
// interpretation. It annotates every variable reference, this, super, and assignment
// in the AST with the number of lexical scopes between its use and its declaration,
// and enforces Lox's static rules: no self-referential initializers, no return
// outside a function, no this or super outside a method, and no class inheriting
// from itself.
package resolver

import (
	"github.com/loxproj/golox/ast"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

// varState tracks the declaration status of a name within a single lexical scope, so
// that a variable can't be resolved to its own initializer (var a = a;).
type varState int

const (
	declared varState = iota
	defined
)

type scope map[string]varState

type funcKind int

const (
	funcKindNone funcKind = iota
	funcKindFunction
	funcKindMethod
	funcKindInitializer
)

type classKind int

const (
	classKindNone classKind = iota
	classKindClass
	classKindSubclass
)

// Resolver performs the static resolution pass over a parsed program.
type Resolver struct {
	scopes []scope
	errs   loxerr.List

	currentFunc  funcKind
	currentClass classKind
}

// New constructs a Resolver.
func New() *Resolver {
	return &Resolver{}
}

// Resolve walks prog, mutating the Depth field of every VariableExpr, AssignExpr,
// ThisExpr, and SuperExpr node in place. It returns an aggregate error describing
// every static rule violation found, or nil if the program is well-formed.
func (r *Resolver) Resolve(prog *ast.Program) error {
	r.resolveStmts(prog.Stmts)
	return r.errs.Err()
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(&s.FunDecl, funcKindFunction)
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ReturnStmt:
		r.resolveReturn(s)
	default:
		panic("resolver: unexpected statement type")
	}
}

func (r *Resolver) resolveReturn(s *ast.ReturnStmt) {
	if r.currentFunc == funcKindNone {
		r.errs.AddFromToken(s.Keyword, "can't return from top-level code")
	}
	if s.Value == nil {
		return
	}
	if r.currentFunc == funcKindInitializer {
		r.errs.AddFromToken(s.Keyword, "can't return a value from an initializer")
	}
	r.resolveExpr(s.Value)
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classKindClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errs.AddFromToken(s.Superclass.Name, "a class can't inherit from itself")
		} else {
			r.resolveExpr(s.Superclass)
		}
		r.currentClass = classKindSubclass

		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1][token.SuperIdent] = defined
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1][token.ThisIdent] = defined

	for _, method := range s.Methods {
		kind := funcKindMethod
		if method.Name.Lexeme == token.InitIdent {
			kind = funcKindInitializer
		}
		r.resolveFunction(&method.FunDecl, kind)
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunDecl, kind funcKind) {
	enclosingFunc := r.currentFunc
	r.currentFunc = kind
	defer func() { r.currentFunc = enclosingFunc }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.VariableExpr:
		r.resolveVariable(e)
	case *ast.ThisExpr:
		if r.currentClass == classKindNone {
			r.errs.AddFromToken(e.Keyword, "can't use 'this' outside of a class")
			return
		}
		r.resolveLocal(e.Keyword, token.ThisIdent, &e.Depth)
	case *ast.SuperExpr:
		r.resolveSuper(e)
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.Name, e.Name.Lexeme, &e.Depth)
	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.GroupingExpr:
		r.resolveExpr(e.Expr)
	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(e.Object)
	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.LiteralExpr:
		// nothing to resolve
	default:
		panic("resolver: unexpected expression type")
	}
}

func (r *Resolver) resolveVariable(e *ast.VariableExpr) {
	if len(r.scopes) > 0 {
		if state, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && state == declared {
			r.errs.AddFromToken(e.Name, "can't read local variable %m in its own initializer", e.Name)
			return
		}
	}
	r.resolveLocal(e.Name, e.Name.Lexeme, &e.Depth)
}

func (r *Resolver) resolveSuper(e *ast.SuperExpr) {
	switch r.currentClass {
	case classKindNone:
		r.errs.AddFromToken(e.Keyword, "can't use 'super' outside of a class")
		return
	case classKindClass:
		r.errs.AddFromToken(e.Keyword, "can't use 'super' in a class with no superclass")
		return
	}
	r.resolveLocal(e.Keyword, token.SuperIdent, &e.Depth)
}

// resolveLocal walks the scope stack from innermost to outermost looking for name. If
// found at depth d, *depth is set to d; if not found anywhere, *depth is left nil,
// meaning the interpreter should look it up in the global environment at runtime.
func (r *Resolver) resolveLocal(tok token.Token, name string, depth **int) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			d := len(r.scopes) - 1 - i
			*depth = &d
			return
		}
	}
	// Not found in any scope: treated as a global, resolved by name at runtime.
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	current := r.scopes[len(r.scopes)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.errs.AddFromToken(name, "already a variable named %m in this scope", name)
	}
	current[name.Lexeme] = declared
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = defined
}
