// Package token declares the type representing a lexical token of Lox code.
package token

import "fmt"

// Type is the type of a lexical token of Lox code.
type Type int

// The list of all token types.
const (
	Illegal Type = iota
	EOF

	// Keywords
	keywordsStart
	And
	Class
	Else
	False
	For
	Fun
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	keywordsEnd

	// Literals
	Ident
	String
	Number

	// Symbols
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
)

var typeStrings = map[Type]string{
	Illegal:      "illegal",
	EOF:          "EOF",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	For:          "for",
	Fun:          "fun",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	Ident:        "identifier",
	String:       "string",
	Number:       "number",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
}

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Format implements fmt.Formatter. All verbs have the default behaviour, except for
// 'm' (message) which formats the type for use in an error message.
func (t Type) Format(f fmt.State, verb rune) {
	switch verb {
	case 'm':
		fmt.Fprintf(f, "'%s'", t.String())
	default:
		fmt.Fprint(f, t.String())
	}
}

var keywordTypesByIdent = func() map[string]Type {
	m := make(map[string]Type, keywordsEnd-keywordsStart-1)
	for typ := keywordsStart + 1; typ < keywordsEnd; typ++ {
		m[typeStrings[typ]] = typ
	}
	return m
}()

// LookupIdent returns the keyword type for ident, or Ident if it isn't a keyword.
func LookupIdent(ident string) Type {
	if typ, ok := keywordTypesByIdent[ident]; ok {
		return typ
	}
	return Ident
}

// ThisIdent is the identifier used to refer to the current instance inside a method.
const ThisIdent = "this"

// SuperIdent is the identifier used to refer to the superclass inside a method.
const SuperIdent = "super"

// InitIdent is the name of a class's constructor method.
const InitIdent = "init"

// Token is a lexical token of Lox code.
type Token struct {
	Type   Type
	Lexeme string // source text of the token; for a string literal, the text between the quotes
	Line   int    // 1-based line the token ends on
}

func (t Token) String() string {
	return fmt.Sprintf("%d: %s [%s]", t.Line, t.Lexeme, t.Type)
}

// Format implements fmt.Formatter. All verbs have the default behaviour, except for
// 'm' (message), which formats the token's lexeme for use in an error message.
func (t Token) Format(f fmt.State, verb rune) {
	switch verb {
	case 'm':
		fmt.Fprintf(f, "'%s'", t.Lexeme)
	default:
		fmt.Fprint(f, t.String())
	}
}

// IsZero reports whether t is the zero value.
func (t Token) IsZero() bool {
	return t == Token{}
}
