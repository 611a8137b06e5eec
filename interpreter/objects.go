package interpreter

import (
	"fmt"
	"strconv"

	"github.com/loxproj/golox/ast"
	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

// loxType is the string representation of a Lox object's runtime type, used only for
// error messages.
type loxType string

const (
	loxTypeNumber   loxType = "number"
	loxTypeString   loxType = "string"
	loxTypeBool     loxType = "bool"
	loxTypeNil      loxType = "nil"
	loxTypeFunction loxType = "function"
	loxTypeClass    loxType = "class"
	loxTypeInstance loxType = "instance"
)

// Format implements fmt.Formatter. All verbs have the default behaviour, except for
// 'm' (message), which formats the type for use in an error message.
func (t loxType) Format(f fmt.State, verb rune) {
	if verb == 'm' {
		fmt.Fprintf(f, "'%s'", string(t))
		return
	}
	fmt.Fprint(f, string(t))
}

// loxObject is a Lox value at runtime.
type loxObject interface {
	String() string
	Type() loxType
	// IsTruthy reports whether the value is truthy: everything except nil and false.
	IsTruthy() bool
}

// loxEquatable is implemented by values with a well-defined equality other than Go
// identity; loxFunction, loxClass, and loxInstance fall back to == on the interpreter
// side instead, since a function or instance is only ever equal to itself.
type loxEquatable interface {
	Equal(other loxObject) bool
}

func newInvalidUnaryOpError(op token.Token, right loxObject) error {
	return loxerr.NewRuntimeError(op, "%m operator can't be used with type %m", op.Type, right.Type())
}

func newInvalidBinaryOpError(op token.Token, left, right loxObject) error {
	return loxerr.NewRuntimeError(op, "%m operator can't be used with types %m and %m", op.Type, left.Type(), right.Type())
}

type loxNil struct{}

func (loxNil) String() string  { return "nil" }
func (loxNil) Type() loxType   { return loxTypeNil }
func (loxNil) IsTruthy() bool  { return false }
func (loxNil) Equal(loxObject) bool {
	return false // overridden by the caller for the nil/nil case
}

var theNil = loxNil{}

type loxBool bool

func (b loxBool) String() string { return strconv.FormatBool(bool(b)) }
func (loxBool) Type() loxType    { return loxTypeBool }
func (b loxBool) IsTruthy() bool { return bool(b) }
func (b loxBool) Equal(other loxObject) bool {
	o, ok := other.(loxBool)
	return ok && b == o
}

type loxNumber float64

func (n loxNumber) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (loxNumber) Type() loxType    { return loxTypeNumber }
func (loxNumber) IsTruthy() bool   { return true }
func (n loxNumber) Equal(other loxObject) bool {
	o, ok := other.(loxNumber)
	return ok && n == o
}

func (n loxNumber) unaryOp(op token.Token) loxObject {
	if op.Type == token.Minus {
		return -n
	}
	panic(newInvalidUnaryOpError(op, n))
}

func (n loxNumber) binaryOp(op token.Token, right loxObject) loxObject {
	rightNum, ok := right.(loxNumber)
	if !ok {
		panic(newInvalidBinaryOpError(op, n, right))
	}
	switch op.Type {
	case token.Plus:
		return n + rightNum
	case token.Minus:
		return n - rightNum
	case token.Star:
		return n * rightNum
	case token.Slash:
		if rightNum == 0 {
			panic(loxerr.NewRuntimeError(op, "can't divide by zero"))
		}
		return n / rightNum
	case token.Less:
		return loxBool(n < rightNum)
	case token.LessEqual:
		return loxBool(n <= rightNum)
	case token.Greater:
		return loxBool(n > rightNum)
	case token.GreaterEqual:
		return loxBool(n >= rightNum)
	default:
		panic(newInvalidBinaryOpError(op, n, right))
	}
}

type loxString string

func (s loxString) String() string { return string(s) }
func (loxString) Type() loxType    { return loxTypeString }
func (loxString) IsTruthy() bool   { return true }
func (s loxString) Equal(other loxObject) bool {
	o, ok := other.(loxString)
	return ok && s == o
}

func (s loxString) binaryOp(op token.Token, right loxObject) loxObject {
	rightStr, ok := right.(loxString)
	if !ok || op.Type != token.Plus {
		panic(newInvalidBinaryOpError(op, s, right))
	}
	return s + rightStr
}

// loxCallable is implemented by every value that can appear as the callee of a call
// expression: functions, methods, and classes (whose "call" constructs an instance).
type loxCallable interface {
	loxObject
	Arity() int
	Call(i *Interpreter, args []loxObject) loxObject
}

// loxFunction is a user-defined function or method, together with the environment it
// closed over at the point it was declared.
type loxFunction struct {
	decl          *ast.FunDecl
	closure       *environment
	isInitializer bool
}

func newFunction(decl *ast.FunDecl, closure *environment, isInitializer bool) *loxFunction {
	return &loxFunction{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *loxFunction) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }
func (*loxFunction) Type() loxType    { return loxTypeFunction }
func (*loxFunction) IsTruthy() bool   { return true }
func (f *loxFunction) Arity() int     { return len(f.decl.Params) }

// Bind returns a copy of f whose closure has been extended with a binding of this to
// instance. It's called once per method lookup on an instance, so that this refers to
// the right instance inside the method body even though the method itself is shared
// across every instance of the class.
func (f *loxFunction) Bind(instance *loxInstance) *loxFunction {
	env := f.closure.Child()
	env.Define(token.ThisIdent, instance)
	return newFunction(f.decl, env, f.isInitializer)
}

func (f *loxFunction) Call(i *Interpreter, args []loxObject) loxObject {
	env := f.closure.Child()
	for idx, param := range f.decl.Params {
		env.Define(param.Lexeme, args[idx])
	}

	result := i.executeBlock(f.decl.Body, env)
	if f.isInitializer {
		return f.closure.GetAt(0, token.ThisIdent)
	}
	if ret, ok := result.(stmtReturn); ok {
		return ret.value
	}
	return theNil
}

// loxClass is a Lox class: a named bag of methods and an optional superclass.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFunction
}

func newClass(name string, superclass *loxClass, methods map[string]*loxFunction) *loxClass {
	return &loxClass{name: name, superclass: superclass, methods: methods}
}

func (c *loxClass) String() string { return "<class " + c.name + ">" }
func (*loxClass) Type() loxType    { return loxTypeClass }
func (*loxClass) IsTruthy() bool   { return true }

// findMethod looks up name among c's own methods, then its superclass's, and so on up
// the inheritance chain.
func (c *loxClass) findMethod(name string) (*loxFunction, bool) {
	if fn, ok := c.methods[name]; ok {
		return fn, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *loxClass) Arity() int {
	if init, ok := c.findMethod(token.InitIdent); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance of c, running its init method (if any) against it.
// init always returns the newly-constructed instance, regardless of any return
// statement inside it, since a constructor call's purpose is always to produce an
// instance.
func (c *loxClass) Call(i *Interpreter, args []loxObject) loxObject {
	instance := newInstance(c)
	if init, ok := c.findMethod(token.InitIdent); ok {
		init.Bind(instance).Call(i, args)
	}
	return instance
}

// loxInstance is an instance of a loxClass: a class pointer plus a bag of field
// values set via property assignment.
type loxInstance struct {
	class  *loxClass
	fields map[string]loxObject
}

func newInstance(class *loxClass) *loxInstance {
	return &loxInstance{class: class, fields: make(map[string]loxObject)}
}

func (inst *loxInstance) String() string { return "<instance of " + inst.class.name + ">" }
func (*loxInstance) Type() loxType       { return loxTypeInstance }
func (*loxInstance) IsTruthy() bool      { return true }

// Get looks up name as a field, then falls back to a bound method. It panics with a
// runtime error if neither exists.
func (inst *loxInstance) Get(name token.Token) loxObject {
	if value, ok := inst.fields[name.Lexeme]; ok {
		return value
	}
	if method, ok := inst.class.findMethod(name.Lexeme); ok {
		return method.Bind(inst)
	}
	panic(loxerr.NewRuntimeError(name, "undefined property %m", name))
}

func (inst *loxInstance) Set(name token.Token, value loxObject) {
	inst.fields[name.Lexeme] = value
}
