// Package lexer partitions source text into code tokens and classified
// comment spans.
package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

type Lexer struct {
	input  []byte
	file   string
	prof   *profile.Profile
	pos    int
	line   int
	column int
	err    *source.ParseError
}

func NewLexer(input []byte, file string, prof *profile.Profile) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		prof:   prof,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() source.Position {
	return source.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Err returns the first fatal error met while scanning.
func (l *Lexer) Err() *source.ParseError {
	return l.err
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) hasPrefix(s string) bool {
	return s != "" && bytes.HasPrefix(l.input[l.pos:], []byte(s))
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

// skipWhitespace consumes blanks and returns the number of line breaks seen.
func (l *Lexer) skipWhitespace() int {
	newlines := 0
	for !l.atEOF() && isSpace(l.peek()) {
		ch := l.advance()
		if ch == '\n' || (ch == '\r' && l.peek() != '\n') {
			newlines++
		}
	}
	return newlines
}

// NextToken returns the next token, comments included. Whitespace is
// skipped.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	return l.next()
}

func (l *Lexer) next() Token {
	start := l.Position()
	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: source.Span{Start: start, End: start}}
	}

	m := l.prof.Markers
	if l.hasPrefix(m.BlockOpen) {
		return l.scanBlockComment(start)
	}
	if l.hasPrefix(m.Line) {
		return l.scanLineComment(start)
	}

	ch := l.peek()
	if r, _ := utf8.DecodeRune(l.input[l.pos:]); isLetter(r) {
		return l.scanIdentOrKeyword(start)
	}
	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(start)
	}
	if ch == '\'' {
		return l.scanQuoted(start, '\'')
	}
	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanQuoted(start, '"')
	}
	return l.scanOperator(start)
}

func (l *Lexer) token(kind TokenKind, start source.Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    source.Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) scanLineComment(start source.Position) Token {
	for !l.atEOF() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start source.Position) Token {
	m := l.prof.Markers
	l.advanceN(len(m.BlockOpen))
	for {
		if l.atEOF() {
			l.err = source.Errorf(source.UnterminatedComment, start, "block comment is never closed")
			return l.token(TokenError, start)
		}
		if l.hasPrefix(m.BlockClose) {
			l.advanceN(len(m.BlockClose))
			return l.token(TokenComment, start)
		}
		l.advance()
	}
}

func (l *Lexer) scanIdentOrKeyword(start source.Position) Token {
	for !l.atEOF() {
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !isLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advanceN(size)
	}
	literal := string(l.input[start.Offset:l.pos])

	// non-sealed is the one hyphenated keyword.
	if literal == "non" && l.hasPrefix("-sealed") && l.prof.IsModifier("non-sealed") {
		rest := l.input[l.pos+len("-sealed"):]
		if r, _ := utf8.DecodeRune(rest); len(rest) == 0 || (!isLetter(r) && !unicode.IsDigit(r)) {
			l.advanceN(len("-sealed"))
			return l.token(TokenKeyword, start)
		}
	}

	if l.prof.IsKeyword(literal) {
		return l.token(TokenKeyword, start)
	}
	return l.token(TokenIdent, start)
}

func (l *Lexer) scanNumber(start source.Position) Token {
	hex := false
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X' || l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		hex = l.peekN(1) == 'x' || l.peekN(1) == 'X'
		l.advanceN(2)
	}
	for !l.atEOF() {
		ch := l.peek()
		switch {
		case isDigit(ch) || isHexDigit(ch) || ch == '_' || ch == '.':
			l.advance()
		case ch == 'l' || ch == 'L':
			l.advance()
		case (ch == '+' || ch == '-') && isExponent(l.input[l.pos-1], hex):
			l.advance()
		case hex && (ch == 'p' || ch == 'P'):
			l.advance()
		default:
			return l.token(TokenLiteral, start)
		}
	}
	return l.token(TokenLiteral, start)
}

// isExponent reports whether ch starts an exponent. In hexadecimal
// literals 'e' is a digit and the binary exponent is 'p'.
func isExponent(ch byte, hex bool) bool {
	if hex {
		return ch == 'p' || ch == 'P'
	}
	return ch == 'e' || ch == 'E'
}

// scanQuoted reads a string or character literal. An unterminated literal
// ends at the line break.
func (l *Lexer) scanQuoted(start source.Position, quote byte) Token {
	l.advance()
	for !l.atEOF() && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(TokenLiteral, start)
}

func (l *Lexer) scanTextBlock(start source.Position) Token {
	l.advanceN(3)
	for !l.atEOF() {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenLiteral, start)
}

func (l *Lexer) scanOperator(start source.Position) Token {
	for _, op := range operators {
		if l.hasPrefix(op) {
			l.advanceN(len(op))
			if punctuation[op] {
				return l.token(TokenPunct, start)
			}
			return l.token(TokenOperator, start)
		}
	}
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenError, start)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(r rune) bool {
	return r == '_' || r == '$' || (r != utf8.RuneError && unicode.IsLetter(r))
}
