// Package interpreter implements the tree-walking evaluator for a resolved Lox
// [ast.Program]: the Environment and value model, and the recursive evaluation of
// every statement and expression kind.
package interpreter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/loxproj/golox/ast"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

// stmtResult is the value produced by executing a statement: either nothing, meaning
// control should simply fall through to the next statement, or a return signal that
// must propagate up through every enclosing block and loop until it reaches the
// function call that should produce it. Go has no non-local control transfer short of
// panic/goto, so this sum type is the idiomatic way to thread a return signal up
// through a recursive-descent tree walk without resorting to exceptions for ordinary,
// expected control flow.
type stmtResult interface {
	stmtResultMarker()
}

type stmtNone struct{}

func (stmtNone) stmtResultMarker() {}

type stmtReturn struct {
	value loxObject
}

func (stmtReturn) stmtResultMarker() {}

// Interpreter evaluates a resolved Lox program. A single Interpreter carries global
// state (the global environment, the call stack) across multiple top-level
// statements, so that a REPL session can build up variables and functions across
// separate calls to [Interpreter.Interpret].
type Interpreter struct {
	globals *environment
	env     *environment
	calls   *callStack
	stdout  io.Writer
}

// New constructs an Interpreter which writes the output of print statements to
// stdout.
func New(stdout io.Writer) *Interpreter {
	globals := newEnvironment()
	defineGlobals(globals)
	return &Interpreter{
		globals: globals,
		env:     globals,
		calls:   newCallStack(),
		stdout:  stdout,
	}
}

// Interpret executes every statement in prog in order. Runtime errors are reported as
// a [*loxerr.RuntimeError] rather than as a Go panic: this is the one place that
// turns the panic into an error return (evalCall recovers only to record the trace
// and then re-panics), so that every runtime failure deep in the evaluation of an
// expression unwinds cleanly back to the top without every intermediate call needing
// to check and propagate an error return. The returned error's Trace field, if non-empty, is
// a rendering of the call stack active at the point the error was raised: it's
// captured by evalCall before the stack unwinds, since by the time this recover
// fires every intervening call frame has already been popped.
func (i *Interpreter) Interpret(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			runtimeErr, ok := r.(*loxerr.RuntimeError)
			if !ok {
				panic(r)
			}
			err = runtimeErr
		}
	}()

	for _, stmt := range prog.Stmts {
		i.execute(stmt)
	}
	return nil
}

func (i *Interpreter) execute(stmt ast.Stmt) stmtResult {
	switch s := stmt.(type) {
	case *ast.VarStmt:
		var value loxObject = theNil
		if s.Initializer != nil {
			value = i.eval(s.Initializer)
		}
		i.env.Define(s.Name.Lexeme, value)
		return stmtNone{}
	case *ast.ExpressionStmt:
		i.eval(s.Expr)
		return stmtNone{}
	case *ast.PrintStmt:
		fmt.Fprintln(i.stdout, i.eval(s.Expr).String())
		return stmtNone{}
	case *ast.BlockStmt:
		return i.executeBlock(s.Stmts, i.env.Child())
	case *ast.IfStmt:
		switch {
		case i.eval(s.Condition).IsTruthy():
			return i.execute(s.Then)
		case s.Else != nil:
			return i.execute(s.Else)
		default:
			return stmtNone{}
		}
	case *ast.WhileStmt:
		for i.eval(s.Condition).IsTruthy() {
			if result := i.execute(s.Body); result != (stmtNone{}) {
				return result
			}
		}
		return stmtNone{}
	case *ast.FunctionStmt:
		fn := newFunction(&s.FunDecl, i.env, false)
		i.env.Define(s.Name.Lexeme, fn)
		return stmtNone{}
	case *ast.ClassStmt:
		i.executeClassStmt(s)
		return stmtNone{}
	case *ast.ReturnStmt:
		var value loxObject = theNil
		if s.Value != nil {
			value = i.eval(s.Value)
		}
		return stmtReturn{value: value}
	default:
		panic(fmt.Sprintf("interpreter: unexpected statement type %T", s))
	}
}

// executeBlock executes stmts in the given environment, stopping early and
// propagating a stmtReturn the moment one is produced.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, env *environment) stmtResult {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()

	for _, stmt := range stmts {
		if result := i.execute(stmt); result != (stmtNone{}) {
			return result
		}
	}
	return stmtNone{}
}

func (i *Interpreter) executeClassStmt(s *ast.ClassStmt) {
	var superclass *loxClass
	if s.Superclass != nil {
		obj := i.eval(s.Superclass)
		sc, ok := obj.(*loxClass)
		if !ok {
			panic(loxerr.NewRuntimeError(s.Superclass.Name, "superclass must be a class"))
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, theNil)

	env := i.env
	if superclass != nil {
		env = env.Child()
		env.Define(token.SuperIdent, superclass)
	}

	methods := make(map[string]*loxFunction, len(s.Methods))
	for _, method := range s.Methods {
		isInit := method.Name.Lexeme == token.InitIdent
		methods[method.Name.Lexeme] = newFunction(&method.FunDecl, env, isInit)
	}

	class := newClass(s.Name.Lexeme, superclass, methods)
	i.env.Assign(s.Name, class)
}

func (i *Interpreter) eval(expr ast.Expr) loxObject {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return i.evalLiteral(e)
	case *ast.VariableExpr:
		return i.resolveIdent(e.Name, e.Depth)
	case *ast.ThisExpr:
		return i.resolveIdent(e.Keyword, e.Depth)
	case *ast.SuperExpr:
		return i.evalSuper(e)
	case *ast.AssignExpr:
		return i.evalAssign(e)
	case *ast.UnaryExpr:
		return i.evalUnary(e)
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.LogicalExpr:
		return i.evalLogical(e)
	case *ast.GroupingExpr:
		return i.eval(e.Expr)
	case *ast.CallExpr:
		return i.evalCall(e)
	case *ast.GetExpr:
		return i.evalGet(e)
	case *ast.SetExpr:
		return i.evalSet(e)
	default:
		panic(fmt.Sprintf("interpreter: unexpected expression type %T", e))
	}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpr) loxObject {
	right := i.eval(e.Right)
	switch e.Op.Type {
	case token.Bang:
		return loxBool(!right.IsTruthy())
	case token.Minus:
		n, ok := right.(loxNumber)
		if !ok {
			panic(newInvalidUnaryOpError(e.Op, right))
		}
		return n.unaryOp(e.Op)
	default:
		panic(fmt.Sprintf("interpreter: unexpected unary operator %s", e.Op.Type))
	}
}

func (i *Interpreter) evalLiteral(e *ast.LiteralExpr) loxObject {
	switch e.Value.Type {
	case token.Number:
		n, err := strconv.ParseFloat(e.Value.Lexeme, 64)
		if err != nil {
			panic(fmt.Sprintf("interpreter: invalid number literal %q", e.Value.Lexeme))
		}
		return loxNumber(n)
	case token.String:
		return loxString(e.Value.Lexeme)
	case token.True:
		return loxBool(true)
	case token.False:
		return loxBool(false)
	case token.Nil:
		return theNil
	default:
		panic(fmt.Sprintf("interpreter: unexpected literal token type %s", e.Value.Type))
	}
}

// resolveIdent looks up the value bound to name, using depth (set by the resolver) to
// find it directly in an enclosing environment if it's a local, or by name in the
// global environment otherwise.
func (i *Interpreter) resolveIdent(name token.Token, depth *int) loxObject {
	if depth != nil {
		return i.env.GetAt(*depth, name.Lexeme)
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evalSuper(e *ast.SuperExpr) loxObject {
	depth := *e.Depth
	superclass := i.env.GetAt(depth, token.SuperIdent).(*loxClass)
	instance := i.env.GetAt(depth-1, token.ThisIdent).(*loxInstance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Method, "undefined property %m", e.Method))
	}
	return method.Bind(instance)
}

func (i *Interpreter) evalAssign(e *ast.AssignExpr) loxObject {
	value := i.eval(e.Value)
	if e.Depth != nil {
		i.env.AssignAt(*e.Depth, e.Name.Lexeme, value)
	} else {
		i.globals.Assign(e.Name, value)
	}
	return value
}

func (i *Interpreter) evalLogical(e *ast.LogicalExpr) loxObject {
	left := i.eval(e.Left)
	switch e.Op.Type {
	case token.Or:
		if left.IsTruthy() {
			return left
		}
	case token.And:
		if !left.IsTruthy() {
			return left
		}
	}
	return i.eval(e.Right)
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpr) loxObject {
	left := i.eval(e.Left)
	right := i.eval(e.Right)

	switch e.Op.Type {
	case token.EqualEqual:
		return loxBool(i.isEqual(left, right))
	case token.BangEqual:
		return loxBool(!i.isEqual(left, right))
	}

	switch l := left.(type) {
	case loxNumber:
		return l.binaryOp(e.Op, right)
	case loxString:
		return l.binaryOp(e.Op, right)
	default:
		panic(newInvalidBinaryOpError(e.Op, left, right))
	}
}

func (i *Interpreter) isEqual(a, b loxObject) bool {
	if _, aNil := a.(loxNil); aNil {
		_, bNil := b.(loxNil)
		return bNil
	}
	eq, ok := a.(loxEquatable)
	if !ok {
		return a == b
	}
	return eq.Equal(b)
}

func (i *Interpreter) evalCall(e *ast.CallExpr) loxObject {
	callee := i.eval(e.Callee)
	callable, ok := callee.(loxCallable)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Paren, "can only call functions and classes"))
	}

	args := make([]loxObject, len(e.Args))
	for idx, arg := range e.Args {
		args[idx] = i.eval(arg)
	}

	if len(args) != callable.Arity() {
		panic(loxerr.NewRuntimeError(e.Paren, "expected %d arguments but got %d", callable.Arity(), len(args)))
	}

	name := callable.String()
	i.calls.Push(name, e.Paren)
	defer func() {
		if r := recover(); r != nil {
			// Capture the trace here, at the innermost active call, while every
			// frame is still on the stack; the first evalCall to see the panic
			// is the only one whose capture sticks.
			if runtimeErr, ok := r.(*loxerr.RuntimeError); ok && runtimeErr.Trace == "" {
				runtimeErr.Trace = i.calls.StackTrace()
			}
			i.calls.Pop()
			panic(r)
		}
		i.calls.Pop()
	}()

	return callable.Call(i, args)
}

func (i *Interpreter) evalGet(e *ast.GetExpr) loxObject {
	obj := i.eval(e.Object)
	instance, ok := obj.(*loxInstance)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Name, "only instances have properties"))
	}
	return instance.Get(e.Name)
}

func (i *Interpreter) evalSet(e *ast.SetExpr) loxObject {
	obj := i.eval(e.Object)
	instance, ok := obj.(*loxInstance)
	if !ok {
		panic(loxerr.NewRuntimeError(e.Name, "only instances have fields"))
	}
	value := i.eval(e.Value)
	instance.Set(e.Name, value)
	return value
}
