package ast

import (
	"fmt"
	"strings"
)

// Sprint formats a statement as an indented s-expression. It's used by the parser
// tests to assert on tree shape without depending on struct layout.
func Sprint(stmt Stmt) string {
	return sprintStmt(stmt, 0)
}

func sexpr(depth int, name string, children ...string) string {
	var b strings.Builder
	fmt.Fprint(&b, "(", name)
	for _, child := range children {
		fmt.Fprint(&b, "\n", strings.Repeat("  ", depth+1), child)
	}
	fmt.Fprint(&b, ")")
	return b.String()
}

func sprintStmt(s Stmt, depth int) string {
	switch s := s.(type) {
	case *VarStmt:
		if s.Initializer == nil {
			return sexpr(depth, "var", s.Name.Lexeme)
		}
		return sexpr(depth, "var", s.Name.Lexeme, sprintExpr(s.Initializer, depth+1))
	case *ExpressionStmt:
		return sexpr(depth, "expr", sprintExpr(s.Expr, depth+1))
	case *PrintStmt:
		return sexpr(depth, "print", sprintExpr(s.Expr, depth+1))
	case *BlockStmt:
		children := make([]string, len(s.Stmts))
		for i, inner := range s.Stmts {
			children[i] = sprintStmt(inner, depth+1)
		}
		return sexpr(depth, "block", children...)
	case *IfStmt:
		children := []string{sprintExpr(s.Condition, depth+1), sprintStmt(s.Then, depth+1)}
		if s.Else != nil {
			children = append(children, sprintStmt(s.Else, depth+1))
		}
		return sexpr(depth, "if", children...)
	case *WhileStmt:
		return sexpr(depth, "while", sprintExpr(s.Condition, depth+1), sprintStmt(s.Body, depth+1))
	case *FunctionStmt:
		return sexpr(depth, "fun", s.Name.Lexeme)
	case *ClassStmt:
		name := s.Name.Lexeme
		if s.Superclass != nil {
			name += " < " + s.Superclass.Name.Lexeme
		}
		return sexpr(depth, "class", name)
	case *ReturnStmt:
		if s.Value == nil {
			return sexpr(depth, "return")
		}
		return sexpr(depth, "return", sprintExpr(s.Value, depth+1))
	default:
		panic(fmt.Sprintf("ast.Sprint: unexpected statement type %T", s))
	}
}

func sprintExpr(e Expr, depth int) string {
	switch e := e.(type) {
	case *LiteralExpr:
		return e.Value.Lexeme
	case *VariableExpr:
		return e.Name.Lexeme
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + e.Method.Lexeme
	case *AssignExpr:
		return sexpr(depth, "=", e.Name.Lexeme, sprintExpr(e.Value, depth+1))
	case *UnaryExpr:
		return sexpr(depth, e.Op.Lexeme, sprintExpr(e.Right, depth+1))
	case *BinaryExpr:
		return sexpr(depth, e.Op.Lexeme, sprintExpr(e.Left, depth+1), sprintExpr(e.Right, depth+1))
	case *LogicalExpr:
		return sexpr(depth, e.Op.Lexeme, sprintExpr(e.Left, depth+1), sprintExpr(e.Right, depth+1))
	case *GroupingExpr:
		return sexpr(depth, "group", sprintExpr(e.Expr, depth+1))
	case *CallExpr:
		children := make([]string, len(e.Args)+1)
		children[0] = sprintExpr(e.Callee, depth+1)
		for i, arg := range e.Args {
			children[i+1] = sprintExpr(arg, depth+1)
		}
		return sexpr(depth, "call", children...)
	case *GetExpr:
		return sexpr(depth, "get", sprintExpr(e.Object, depth+1), e.Name.Lexeme)
	case *SetExpr:
		return sexpr(depth, "set", sprintExpr(e.Object, depth+1), e.Name.Lexeme, sprintExpr(e.Value, depth+1))
	default:
		panic(fmt.Sprintf("ast.Sprint: unexpected expression type %T", e))
	}
}
