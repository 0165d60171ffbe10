package syntax

import (
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/source"
)

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

func isOpener(tok lexer.Token) bool {
	_, ok := closers[tok.Literal]
	return ok && tok.Kind == lexer.TokenPunct
}

func isCloser(tok lexer.Token) bool {
	if tok.Kind != lexer.TokenPunct {
		return false
	}
	switch tok.Literal {
	case ")", "]", "}":
		return true
	}
	return false
}

// matchDelims pairs every bracket token with its partner. match[i] is -1
// for tokens that are not brackets.
func matchDelims(toks []lexer.Token) ([]int, error) {
	match := make([]int, len(toks))
	var stack []int
	for i, tok := range toks {
		match[i] = -1
		switch {
		case isOpener(tok):
			stack = append(stack, i)
		case isCloser(tok):
			if len(stack) == 0 {
				return nil, source.Errorf(source.UnmatchedDelimiter, tok.Span.Start, "unexpected %q", tok.Literal)
			}
			open := stack[len(stack)-1]
			if want := closers[toks[open].Literal]; want != tok.Literal {
				return nil, source.Errorf(source.UnmatchedDelimiter, tok.Span.Start,
					"%q does not close %q opened at %s", tok.Literal, toks[open].Literal, toks[open].Span.Start)
			}
			stack = stack[:len(stack)-1]
			match[open] = i
			match[i] = open
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		end := toks[len(toks)-1].Span.End
		return nil, source.Errorf(source.UnexpectedEndOfUnit, end,
			"%q opened at %s is never closed", toks[open].Literal, toks[open].Span.Start)
	}
	return match, nil
}
