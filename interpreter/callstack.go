package interpreter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/loxproj/golox/stack"
	"github.com/loxproj/golox/token"
)

// stackFrame records where a call was made from and which function, if any, that call
// site was itself inside of.
type stackFrame struct {
	Function string // name of the enclosing function, or "" if at the top level
	CallSite token.Token
}

// callStack tracks the chain of active Lox function calls, so that a runtime error
// can be reported with a full stack trace rather than just the line it occurred on.
type callStack struct {
	frames      *stack.Stack[*stackFrame]
	calledFuncs *stack.Stack[string]
}

func newCallStack() *callStack {
	cs := &callStack{
		frames:      stack.New[*stackFrame](),
		calledFuncs: stack.New[string](),
	}
	cs.calledFuncs.Push("")
	return cs
}

// Push records a call to function made at callSite.
func (cs *callStack) Push(function string, callSite token.Token) {
	cs.frames.Push(&stackFrame{Function: cs.calledFuncs.Peek(), CallSite: callSite})
	cs.calledFuncs.Push(function)
}

// Pop records that the most recently pushed call has returned.
func (cs *callStack) Pop() {
	cs.frames.Pop()
	cs.calledFuncs.Pop()
}

func (cs *callStack) Len() int {
	return cs.frames.Len()
}

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

// StackTrace renders the current call stack, most recent call first.
func (cs *callStack) StackTrace() string {
	var b strings.Builder
	bold.Fprintln(&b, "Stack trace (most recent call first):")

	locations := make([]string, cs.Len())
	locationWidth := 0
	functions := make([]string, cs.Len())
	functionWidth := 0
	for i, frame := range cs.frames.Backward() {
		locations[i] = fmt.Sprintf("[line %d]", frame.CallSite.Line)
		locationWidth = max(locationWidth, runewidth.StringWidth(locations[i]))
		function := ""
		if frame.Function != "" {
			function = "in " + frame.Function
		}
		functions[i] = function
		functionWidth = max(functionWidth, runewidth.StringWidth(functions[i]))
	}

	for i := cs.Len() - 1; i >= 0; i-- {
		location := runewidth.FillRight(locations[i], locationWidth)
		function := runewidth.FillRight(functions[i], functionWidth)
		fmt.Fprint(&b, "  ", location, " ", function)
		if i > 0 {
			fmt.Fprintln(&b)
		}
	}
	return b.String()
}
