package scanner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/loxproj/golox/scanner"
	"github.com/loxproj/golox/token"
)

func tok(typ token.Type, lexeme string, line int) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: line}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Token
	}{
		{
			name: "punctuation and operators",
			src:  "(){},.-+;*!!====<<=>>=/",
			want: []token.Token{
				tok(token.LeftParen, "(", 1),
				tok(token.RightParen, ")", 1),
				tok(token.LeftBrace, "{", 1),
				tok(token.RightBrace, "}", 1),
				tok(token.Comma, ",", 1),
				tok(token.Dot, ".", 1),
				tok(token.Minus, "-", 1),
				tok(token.Plus, "+", 1),
				tok(token.Semicolon, ";", 1),
				tok(token.Star, "*", 1),
				tok(token.Bang, "!", 1),
				tok(token.BangEqual, "!=", 1),
				tok(token.EqualEqual, "==", 1),
				tok(token.Equal, "=", 1),
				tok(token.Less, "<", 1),
				tok(token.LessEqual, "<=", 1),
				tok(token.Greater, ">", 1),
				tok(token.GreaterEqual, ">=", 1),
				tok(token.Slash, "/", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "line comment is ignored",
			src:  "1 // a comment\n2",
			want: []token.Token{
				tok(token.Number, "1", 1),
				tok(token.Number, "2", 2),
				tok(token.EOF, "", 2),
			},
		},
		{
			name: "nested block comments",
			src:  "1 /* outer /* inner */ still outer */ 2",
			want: []token.Token{
				tok(token.Number, "1", 1),
				tok(token.Number, "2", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "string literal",
			src:  `"hello world"`,
			want: []token.Token{
				tok(token.String, "hello world", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "multiline string literal increments line count",
			src:  "\"a\nb\" 1",
			want: []token.Token{
				tok(token.String, "a\nb", 2),
				tok(token.Number, "1", 2),
				tok(token.EOF, "", 2),
			},
		},
		{
			name: "integer and float number literals",
			src:  "123 3.14",
			want: []token.Token{
				tok(token.Number, "123", 1),
				tok(token.Number, "3.14", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "trailing dot is not part of number",
			src:  "123.",
			want: []token.Token{
				tok(token.Number, "123", 1),
				tok(token.Dot, ".", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "identifiers and keywords",
			src:  "foo bar_baz and class",
			want: []token.Token{
				tok(token.Ident, "foo", 1),
				tok(token.Ident, "bar_baz", 1),
				tok(token.And, "and", 1),
				tok(token.Class, "class", 1),
				tok(token.EOF, "", 1),
			},
		},
		{
			name: "grapheme cluster is a single token boundary within a string",
			src:  `"a👨‍👩‍👧‍👦b"`,
			want: []token.Token{
				tok(token.String, "a👨‍👩‍👧‍👦b", 1),
				tok(token.EOF, "", 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scanner.New(tt.src, func(line int, message string) {
				t.Errorf("unexpected scan error at line %d: %s", line, message)
			})
			got := sc.Scan()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unexpected character", "$"},
		{"unterminated string", `"abc`},
		{"unterminated block comment", "/* abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs []string
			sc := scanner.New(tt.src, func(line int, message string) {
				errs = append(errs, message)
			})
			sc.Scan()
			if len(errs) == 0 {
				t.Errorf("Scan(%q) reported no errors, want at least one", tt.src)
			}
		})
	}
}
