package interpreter

import "time"

// nativeFunction is a built-in function implemented in Go rather than Lox, such as
// clock.
type nativeFunction struct {
	name  string
	arity int
	fn    func(args []loxObject) loxObject
}

func (f *nativeFunction) String() string               { return "<native fn " + f.name + ">" }
func (*nativeFunction) Type() loxType                   { return loxTypeFunction }
func (*nativeFunction) IsTruthy() bool                  { return true }
func (f *nativeFunction) Arity() int                    { return f.arity }
func (f *nativeFunction) Call(_ *Interpreter, args []loxObject) loxObject {
	return f.fn(args)
}

// defineGlobals registers every native function in env.
func defineGlobals(env *environment) {
	env.Define("clock", &nativeFunction{
		name:  "clock",
		arity: 0,
		fn: func([]loxObject) loxObject {
			return loxNumber(float64(time.Now().UnixNano()) / float64(time.Second))
		},
	})
}
