package parser_test

import (
	"strings"
	"testing"

	"github.com/loxproj/golox/ast"
	"github.com/loxproj/golox/parser"
	"github.com/loxproj/golox/scanner"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	sc := scanner.New(src, func(line int, message string) {
		t.Fatalf("unexpected scan error at line %d: %s", line, message)
	})
	prog, err := parser.New(sc.Scan()).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) returned unexpected error: %s", src, err)
	}
	return prog
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parse(t, "1 + 2 * 3 - -4;")
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}

	got := ast.Sprint(prog.Stmts[0])
	want := strings.TrimSpace(`
(expr
  (-
    (+
      1
      (*
        2
        3))
    (-
      4)))`)
	if got != want {
		t.Errorf("Sprint mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	prog := parse(t, "for (var i = 0; i < 10; i = i + 1) print i;")
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}

	block, ok := prog.Stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockStmt", prog.Stmts[0])
	}
	if len(block.Stmts) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (init, while)", len(block.Stmts))
	}
	if _, ok := block.Stmts[0].(*ast.VarStmt); !ok {
		t.Errorf("first statement is %T, want *ast.VarStmt", block.Stmts[0])
	}
	whileStmt, ok := block.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("second statement is %T, want *ast.WhileStmt", block.Stmts[1])
	}
	whileBody, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("while body is %T, want *ast.BlockStmt", whileStmt.Body)
	}
	if len(whileBody.Stmts) != 2 {
		t.Errorf("while body has %d statements, want 2 (print, increment)", len(whileBody.Stmts))
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := parse(t, `
class Pastry {
  init(filling) {
    this.filling = filling;
  }
}
class Croissant < Pastry {}
`)
	if len(prog.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Stmts))
	}

	pastry, ok := prog.Stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("first statement is %T, want *ast.ClassStmt", prog.Stmts[0])
	}
	if pastry.Name.Lexeme != "Pastry" || pastry.Superclass != nil || len(pastry.Methods) != 1 {
		t.Errorf("Pastry class = %+v, want name Pastry, no superclass, 1 method", pastry)
	}

	croissant, ok := prog.Stmts[1].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("second statement is %T, want *ast.ClassStmt", prog.Stmts[1])
	}
	if croissant.Superclass == nil || croissant.Superclass.Name.Lexeme != "Pastry" {
		t.Errorf("Croissant superclass = %+v, want Pastry", croissant.Superclass)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	prog := parse(t, "a = 1; a.b = 2;")
	if _, ok := prog.Stmts[0].(*ast.ExpressionStmt).Expr.(*ast.AssignExpr); !ok {
		t.Errorf("a = 1 parsed as %T, want *ast.AssignExpr", prog.Stmts[0].(*ast.ExpressionStmt).Expr)
	}
	if _, ok := prog.Stmts[1].(*ast.ExpressionStmt).Expr.(*ast.SetExpr); !ok {
		t.Errorf("a.b = 2 parsed as %T, want *ast.SetExpr", prog.Stmts[1].(*ast.ExpressionStmt).Expr)
	}
}

func TestParseInvalidAssignmentTargetReportsError(t *testing.T) {
	sc := scanner.New("1 + 2 = 3;", func(int, string) {})
	_, err := parser.New(sc.Scan()).Parse()
	if err == nil {
		t.Fatal("Parse() returned no error for an invalid assignment target, want an error")
	}
}

func TestParseErrorRecoverySkipsOnlyTheBadStatement(t *testing.T) {
	sc := scanner.New(`
var a = ;
var b = 2;
`, func(int, string) {})
	prog, err := parser.New(sc.Scan()).Parse()
	if err == nil {
		t.Fatal("Parse() returned no error, want an error for the malformed first declaration")
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1 (only the well-formed var b)", len(prog.Stmts))
	}
	varB, ok := prog.Stmts[0].(*ast.VarStmt)
	if !ok || varB.Name.Lexeme != "b" {
		t.Errorf("recovered statement = %+v, want var b", prog.Stmts[0])
	}
}
