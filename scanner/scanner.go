// Package scanner implements a grapheme-cluster-accurate scanner for Lox source code.
package scanner

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/loxproj/golox/token"
)

// ErrorHandler is the function called when a lexical error is encountered. line is
// the line the error occurred on. Scanning never stops because of an error.
type ErrorHandler func(line int, message string)

// Scanner converts Lox source code into a sequence of tokens. Each outer step of
// scanning consumes exactly one grapheme cluster at a time, rather than a byte or a
// rune, so that a multi-codepoint cluster (a combining-character sequence, an emoji
// ZWJ sequence, and so on) appearing inside a string literal or between tokens is
// never split across two scans.
type Scanner struct {
	clusters []string // the source, already segmented into grapheme clusters
	errs     ErrorHandler

	start   int // index into clusters of the first cluster of the token being scanned
	current int // index into clusters of the next cluster to be scanned
	line    int
}

// New constructs a Scanner over src. errHandler is called once per lexical error; if
// nil, errors are silently discarded.
func New(src string, errHandler ErrorHandler) *Scanner {
	if errHandler == nil {
		errHandler = func(int, string) {}
	}
	return &Scanner{
		clusters: segment(src),
		errs:     errHandler,
		line:     1,
	}
}

// segment splits src into grapheme clusters using the Unicode text segmentation
// algorithm, rather than by byte or by rune.
func segment(src string) []string {
	var clusters []string
	state := -1
	remaining := src
	for len(remaining) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(remaining, state)
		clusters = append(clusters, cluster)
		remaining = rest
		state = newState
	}
	return clusters
}

// Scan scans and returns every token in the source, ending with exactly one EOF
// token.
func (s *Scanner) Scan() []token.Token {
	var tokens []token.Token
	for {
		tok := s.Next()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// Next scans and returns the next token. It returns an EOF token once the end of the
// source has been reached, and keeps returning EOF on every subsequent call.
func (s *Scanner) Next() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.current

	if s.atEnd() {
		return s.newToken(token.EOF)
	}

	c := s.advance()

	switch {
	case c == "(":
		return s.newToken(token.LeftParen)
	case c == ")":
		return s.newToken(token.RightParen)
	case c == "{":
		return s.newToken(token.LeftBrace)
	case c == "}":
		return s.newToken(token.RightBrace)
	case c == ",":
		return s.newToken(token.Comma)
	case c == ".":
		return s.newToken(token.Dot)
	case c == "-":
		return s.newToken(token.Minus)
	case c == "+":
		return s.newToken(token.Plus)
	case c == ";":
		return s.newToken(token.Semicolon)
	case c == "*":
		return s.newToken(token.Star)
	case c == "!":
		return s.newToken(s.ifMatch("=", token.BangEqual, token.Bang))
	case c == "=":
		return s.newToken(s.ifMatch("=", token.EqualEqual, token.Equal))
	case c == "<":
		return s.newToken(s.ifMatch("=", token.LessEqual, token.Less))
	case c == ">":
		return s.newToken(s.ifMatch("=", token.GreaterEqual, token.Greater))
	case c == "/":
		return s.newToken(token.Slash)
	case c == `"`:
		return s.scanString()
	case isDigit(c):
		return s.scanNumber()
	case isAlpha(c):
		return s.scanIdent()
	default:
		s.errs(s.line, "unexpected character "+c)
		return s.Next()
	}
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		c := s.peek()
		switch {
		case c == " " || c == "\r" || c == "\t":
			s.advance()
		case c == "\n":
			s.line++
			s.advance()
		case c == "/" && s.peekAt(1) == "/":
			for s.peek() != "\n" && !s.atEnd() {
				s.advance()
			}
		case c == "/" && s.peekAt(1) == "*":
			s.skipBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipBlockComment() {
	startLine := s.line
	s.advance() // '/'
	s.advance() // '*'
	depth := 1
	for depth > 0 {
		if s.atEnd() {
			s.errs(startLine, "unterminated block comment")
			return
		}
		switch {
		case s.peek() == "/" && s.peekAt(1) == "*":
			s.advance()
			s.advance()
			depth++
		case s.peek() == "*" && s.peekAt(1) == "/":
			s.advance()
			s.advance()
			depth--
		case s.peek() == "\n":
			s.line++
			s.advance()
		default:
			s.advance()
		}
	}
}

func (s *Scanner) scanString() token.Token {
	startLine := s.line
	var b strings.Builder
	for s.peek() != `"` {
		if s.atEnd() {
			s.errs(startLine, "unterminated string")
			return s.newToken(token.Illegal)
		}
		if s.peek() == "\n" {
			s.line++
		}
		b.WriteString(s.advance())
	}
	s.advance() // closing quote
	tok := s.newToken(token.String)
	tok.Lexeme = b.String()
	return tok
}

func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == "." && isDigit(s.peekAt(1)) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	tok := s.newToken(token.Number)
	if _, err := strconv.ParseFloat(tok.Lexeme, 64); err != nil {
		s.errs(tok.Line, "invalid number literal "+tok.Lexeme)
	}
	return tok
}

func (s *Scanner) scanIdent() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	tok := s.newToken(token.Ident)
	tok.Type = token.LookupIdent(tok.Lexeme)
	return tok
}

func (s *Scanner) newToken(typ token.Type) token.Token {
	return token.Token{
		Type:   typ,
		Lexeme: strings.Join(s.clusters[s.start:s.current], ""),
		Line:   s.line,
	}
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.clusters)
}

// advance consumes and returns the current cluster.
func (s *Scanner) advance() string {
	c := s.clusters[s.current]
	s.current++
	return c
}

// peek returns the cluster that would next be consumed, or "" at end of input.
func (s *Scanner) peek() string {
	return s.peekAt(0)
}

// peekAt returns the cluster n clusters ahead of current without consuming it, or ""
// past the end of input.
func (s *Scanner) peekAt(n int) string {
	i := s.current + n
	if i >= len(s.clusters) {
		return ""
	}
	return s.clusters[i]
}

func (s *Scanner) ifMatch(next string, matched, unmatched token.Type) token.Type {
	if s.peek() == next {
		s.advance()
		return matched
	}
	return unmatched
}

func isDigit(c string) bool {
	return len(c) == 1 && c[0] >= '0' && c[0] <= '9'
}

func isAlpha(c string) bool {
	if len(c) != 1 {
		// Any multi-byte grapheme cluster can't be part of a keyword/identifier made
		// up of ASCII letters and digits, so treat it as a single opaque unit that
		// can't start an identifier.
		return false
	}
	b := c[0]
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isAlphaNumeric(c string) bool {
	return isAlpha(c) || isDigit(c)
}
