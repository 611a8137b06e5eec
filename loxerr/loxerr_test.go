package loxerr_test

import (
	"testing"

	"github.com/loxproj/golox/loxerr"
	"github.com/loxproj/golox/token"
)

func TestStaticErrorFromTokenFormatsWhere(t *testing.T) {
	tests := []struct {
		name string
		tok  token.Token
		want string
	}{
		{
			name: "EOF token",
			tok:  token.Token{Type: token.EOF, Line: 3},
			want: "[line 3] Error at end: expected expression",
		},
		{
			name: "ordinary token",
			tok:  token.Token{Type: token.Ident, Lexeme: "foo", Line: 3},
			want: "[line 3] Error at 'foo': expected expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loxerr.NewStaticErrorFromToken(tt.tok, "expected expression")
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListErrsAreSortedByLine(t *testing.T) {
	var l loxerr.List
	l.Add(3, "third")
	l.Add(1, "first")
	l.Add(2, "second")

	errs := l.Errs()
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3", len(errs))
	}
	for i, want := range []int{1, 2, 3} {
		if errs[i].Line != want {
			t.Errorf("errs[%d].Line = %d, want %d", i, errs[i].Line, want)
		}
	}
}

func TestListErrReturnsNilWhenEmpty(t *testing.T) {
	var l loxerr.List
	if err := l.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestRuntimeErrorFormat(t *testing.T) {
	err := loxerr.NewRuntimeError(token.Token{Type: token.Ident, Lexeme: "x", Line: 5}, "undefined variable %q", "x")
	want := `Runtime error: [Line 5 on x] undefined variable "x"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
