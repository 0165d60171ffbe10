package lexer

import "github.com/dhamidi/ddoc/source"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenIdent
	TokenKeyword
	TokenLiteral
	TokenOperator
	TokenPunct
	TokenComment
	TokenLineComment
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenIdent:       "Identifier",
	TokenKeyword:     "Keyword",
	TokenLiteral:     "Literal",
	TokenOperator:    "Operator",
	TokenPunct:       "Punctuation",
	TokenComment:     "Comment",
	TokenLineComment: "LineComment",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is immutable once produced.
type Token struct {
	Kind    TokenKind   `json:"kind"`
	Span    source.Span `json:"span"`
	Literal string      `json:"literal"`
}

func (t Token) IsComment() bool {
	return t.Kind == TokenComment || t.Kind == TokenLineComment
}

// Is reports whether t is the identifier, keyword or symbol lit.
func (t Token) Is(lit string) bool {
	return t.Literal == lit && t.Kind != TokenLiteral && t.Kind != TokenEOF && !t.IsComment()
}

// punctuation separates constructs; everything else non-alphanumeric is an
// operator.
var punctuation = map[string]bool{
	"(": true, ")": true, "{": true, "}": true, "[": true, "]": true,
	";": true, ",": true, ".": true, "...": true, "@": true, "::": true,
}

// operators is ordered longest first for maximal munch.
var operators = []string{
	">>>=",
	"<<=", ">>=", ">>>", "...",
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "++", "--", "->", "::",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "@",
	"=", "<", ">", "!", "~", "?", ":", "&", "|", "^", "+", "-", "*", "/", "%",
}
