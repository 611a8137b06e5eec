package interpreter

import (
	"fmt"

	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

// environment holds the variable bindings introduced by a single lexical scope: the
// global scope, a block, a function call, or a method call. Environments are chained
// via parent, mirroring the nesting of lexical scopes; a closure keeps its defining
// environment alive for as long as the function value itself is reachable, which Go's
// garbage collector handles even when the chain contains cycles (e.g. a class whose
// methods close over the environment that defines the class itself).
type environment struct {
	parent *environment
	values map[string]loxObject
}

func newEnvironment() *environment {
	return &environment{values: make(map[string]loxObject)}
}

// Child creates a new environment nested directly inside e.
func (e *environment) Child() *environment {
	return &environment{parent: e, values: make(map[string]loxObject)}
}

// Define binds name to value in e, overwriting any existing binding for name in this
// environment only. It's used for every var declaration, function parameter, and
// loop-desugared binding, which is why redeclaration is allowed here: the resolver is
// responsible for rejecting redeclaration within a single scope in code, not the
// runtime representation of that scope.
func (e *environment) Define(name string, value loxObject) {
	e.values[name] = value
}

// Get looks up name in the global environment by name. It's used for references which
// the resolver couldn't tie to any enclosing scope.
func (e *environment) Get(name token.Token) loxObject {
	if value, ok := e.values[name.Lexeme]; ok {
		return value
	}
	panic(loxerr.NewRuntimeError(name, "undefined variable %m", name))
}

// Assign assigns value to an existing binding for name in e itself, raising a runtime
// error if e has none; enclosing environments are not searched. It's used for globals
// and for the class name that a class statement predefines in the current environment.
func (e *environment) Assign(name token.Token, value loxObject) {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = value
		return
	}
	panic(loxerr.NewRuntimeError(name, "undefined variable %m", name))
}

// GetAt looks up name in the environment depth scopes up the chain from e. depth is
// computed once by the resolver, so lookups for resolved locals never need to search.
func (e *environment) GetAt(depth int, name string) loxObject {
	env := e.ancestor(depth)
	value, ok := env.values[name]
	if !ok {
		panic(fmt.Sprintf("interpreter: environment at depth %d has no binding for %q", depth, name))
	}
	return value
}

// AssignAt assigns value to name in the environment depth scopes up the chain from e.
func (e *environment) AssignAt(depth int, name string, value loxObject) {
	e.ancestor(depth).values[name] = value
}

func (e *environment) ancestor(depth int) *environment {
	env := e
	for range depth {
		env = env.parent
	}
	return env
}
