// Package ast declares the types used to represent abstract syntax trees for Lox
// programs produced by the parser, annotated in place by the resolver, and walked by
// the interpreter.
package ast

import "github.com/loxproj/golox/token"

// Program is the root node of an AST: the top-level list of statements parsed from a
// source file or REPL line.
type Program struct {
	Stmts []Stmt
}

// Expr is the interface implemented by every expression node.
type Expr interface {
	exprNode()
}

// Stmt is the interface implemented by every statement node.
type Stmt interface {
	stmtNode()
}

type expr struct{}

func (expr) exprNode() {}

type stmt struct{}

func (stmt) stmtNode() {}

// LiteralExpr is a literal value: a number, string, boolean, or nil.
type LiteralExpr struct {
	Value token.Token // Number, String, True, False, or Nil
	expr
}

// VariableExpr is the use of a variable, such as a in print a;.
// Depth is filled in by the resolver: nil means the variable must be looked up by
// name in the global environment, a non-nil value is the number of enclosing scopes
// to walk up to find the declaring environment.
type VariableExpr struct {
	Name  token.Token
	Depth *int
	expr
}

// ThisExpr is a use of the this keyword inside a method body.
type ThisExpr struct {
	Keyword token.Token
	Depth   *int
	expr
}

// SuperExpr is a super.method expression.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
	Depth   *int
	expr
}

// AssignExpr is an assignment to a variable, such as a = 1.
type AssignExpr struct {
	Name  token.Token
	Value Expr
	Depth *int
	expr
}

// UnaryExpr is a unary operator expression, such as -a or !a.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
	expr
}

// BinaryExpr is a binary operator expression, such as a + b.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

// LogicalExpr is a short-circuiting and/or expression.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

// GroupingExpr is a parenthesised expression, such as (a + b).
type GroupingExpr struct {
	Expr Expr
	expr
}

// CallExpr is a function or method call, such as f(a, b).
type CallExpr struct {
	Callee Expr
	Paren  token.Token // closing ')', used to attribute runtime errors to a line
	Args   []Expr
	expr
}

// GetExpr is a property access, such as a.b.
type GetExpr struct {
	Object Expr
	Name   token.Token
	expr
}

// SetExpr is a property assignment, such as a.b = c.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
	expr
}

// VarStmt is a variable declaration, such as var a = 1; or var a;.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if absent
	stmt
}

// ExpressionStmt is a bare expression statement, such as a function call.
type ExpressionStmt struct {
	Expr Expr
	stmt
}

// PrintStmt is a print statement, such as print a;.
type PrintStmt struct {
	Expr Expr
	stmt
}

// BlockStmt is a brace-delimited list of statements introducing a new scope.
type BlockStmt struct {
	Stmts []Stmt
	stmt
}

// IfStmt is an if statement, with an optional else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
	stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
	stmt
}

// FunDecl is a function's name, parameters, and body. It's used both for top-level
// function declarations and for class method declarations.
type FunDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// FunctionStmt is a function declaration, such as fun f(a, b) { return a + b; }.
type FunctionStmt struct {
	FunDecl
	stmt
}

// ClassStmt is a class declaration, such as class A < B { ... }.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if the class has no superclass
	Methods    []*FunctionStmt
	stmt
}

// ReturnStmt is a return statement, with an optional value.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if absent
	stmt
}
