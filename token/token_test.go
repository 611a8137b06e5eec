package token_test

import (
	"testing"

	"github.com/loxproj/golox/token"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident string
		want  token.Type
	}{
		{"and", token.And},
		{"class", token.Class},
		{"else", token.Else},
		{"false", token.False},
		{"for", token.For},
		{"fun", token.Fun},
		{"if", token.If},
		{"nil", token.Nil},
		{"or", token.Or},
		{"print", token.Print},
		{"return", token.Return},
		{"super", token.Super},
		{"this", token.This},
		{"true", token.True},
		{"var", token.Var},
		{"while", token.While},
		{"foo", token.Ident},
		{"", token.Ident},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := token.LookupIdent(tt.ident); got != tt.want {
				t.Errorf("LookupIdent(%q) = %s, want %s", tt.ident, got, tt.want)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  token.Type
		want string
	}{
		{token.Plus, "+"},
		{token.EqualEqual, "=="},
		{token.And, "and"},
		{token.EOF, "EOF"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestTokenIsZero(t *testing.T) {
	var zero token.Token
	if !zero.IsZero() {
		t.Error("zero value Token.IsZero() = false, want true")
	}

	nonZero := token.Token{Type: token.Ident, Lexeme: "a", Line: 1}
	if nonZero.IsZero() {
		t.Error("non-zero Token.IsZero() = true, want false")
	}
}
