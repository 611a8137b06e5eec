// Package loxerr defines the error types shared by the scanner, parser, resolver,
// and interpreter.
package loxerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/loxproj/golox/token"
)

var (
	boldRed = color.New(color.Bold, color.FgRed)
	bold    = color.New(color.Bold)
)

// StaticError describes a single error reported by the scanner, parser, or resolver.
// It's attributed to a source line and, where available, the offending token.
type StaticError struct {
	Line    int
	Where   string // e.g. "at end" or "at 'foo'"; empty if not applicable
	Message string
}

// NewStaticError creates a [*StaticError] attributed to a line with no particular token.
func NewStaticError(line int, format string, args ...any) *StaticError {
	return &StaticError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// NewStaticErrorFromToken creates a [*StaticError] describing a problem with tok.
func NewStaticErrorFromToken(tok token.Token, format string, args ...any) *StaticError {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at end"
	}
	return &StaticError{Line: tok.Line, Where: where, Message: fmt.Sprintf(format, args...)}
}

func (e *StaticError) Error() string {
	where := ""
	if e.Where != "" {
		where = " " + e.Where
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, where, e.Message)
}

// ColorError returns e formatted with ANSI color, or plain text if color is
// unavailable (e.g. output isn't a terminal).
func (e *StaticError) ColorError() string {
	where := ""
	if e.Where != "" {
		where = " " + e.Where
	}
	return fmt.Sprintf(
		"%s%s: %s",
		boldRed.Sprintf("[line %d] Error%s", e.Line, where),
		"",
		e.Message,
	)
}

// List accumulates [*StaticError]s produced while scanning, parsing, or resolving a
// program. A phase that reports one or more errors must not hand the program off to
// the next phase.
type List struct {
	errs []*StaticError
}

// Add appends a formatted error attributed to line.
func (l *List) Add(line int, format string, args ...any) {
	l.errs = append(l.errs, NewStaticError(line, format, args...))
}

// AddFromToken appends a formatted error attributed to tok.
func (l *List) AddFromToken(tok token.Token, format string, args ...any) {
	l.errs = append(l.errs, NewStaticErrorFromToken(tok, format, args...))
}

// Len reports how many errors have been recorded.
func (l *List) Len() int {
	return len(l.errs)
}

// Errs returns the accumulated errors, sorted by line.
func (l *List) Errs() []*StaticError {
	sorted := make([]*StaticError, len(l.errs))
	copy(sorted, l.errs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line < sorted[j].Line })
	return sorted
}

// Err returns an error aggregating every recorded error, or nil if none were
// recorded.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return &aggregateError{errs: l.Errs()}
}

type aggregateError struct {
	errs []*StaticError
}

func (a *aggregateError) Error() string {
	lines := make([]string, len(a.errs))
	for i, e := range a.errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// Errors unwraps the individual [*StaticError]s contained in an aggregate error.
func (a *aggregateError) Errors() []*StaticError {
	return a.errs
}

// RuntimeError describes an error raised while executing a resolved program.
type RuntimeError struct {
	Token   token.Token
	Message string
	// Trace is a rendering of the call stack active when the error was raised,
	// filled in by the interpreter at the point of the panic, before the stack
	// unwinds. Empty if the error occurred at the top level.
	Trace string
}

// NewRuntimeError creates a [*RuntimeError] attributed to tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error: [Line %d on %s] %s", e.Token.Line, tokenDesc(e.Token), e.Message)
}

// ColorError returns e formatted with ANSI color.
func (e *RuntimeError) ColorError() string {
	return fmt.Sprintf(
		"%s %s",
		boldRed.Sprint("Runtime error:"),
		fmt.Sprintf("[Line %d on %s] %s", e.Token.Line, bold.Sprint(tokenDesc(e.Token)), e.Message),
	)
}

func tokenDesc(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end"
	}
	return tok.Lexeme
}
