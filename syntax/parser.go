package syntax

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

type parser struct {
	prof  *profile.Profile
	kw    profile.Keywords
	toks  []lexer.Token
	match []int
	pos   int
	tree  *Tree
	diags []source.Diagnostic
	err   *source.ParseError
}

// Parse builds the structural tree of one tokenized unit. Comments in res
// are not consulted. A fatal error yields no tree.
func Parse(res *lexer.Result, file string, prof *profile.Profile) (*Tree, []source.Diagnostic, error) {
	toks := res.Tokens
	if len(toks) == 0 || toks[len(toks)-1].Kind != lexer.TokenEOF {
		pos := source.Position{File: file, Line: 1, Column: 1}
		if len(toks) > 0 {
			pos = toks[len(toks)-1].Span.End
		}
		toks = append(toks[:len(toks):len(toks)], lexer.Token{Kind: lexer.TokenEOF, Span: source.Span{Start: pos, End: pos}})
	}

	match, err := matchDelims(toks)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{
		prof:  prof,
		kw:    prof.Keywords,
		toks:  toks,
		match: match,
		tree:  &Tree{File: file},
	}
	p.parseUnit()
	if p.err != nil {
		return nil, nil, p.err
	}
	return p.tree, p.diags, nil
}

func (p *parser) peek() lexer.Token {
	return p.peekN(0)
}

func (p *parser) peekN(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) at(lit string) bool {
	return lit != "" && p.peek().Is(lit)
}

func (p *parser) accept(lit string) bool {
	if p.at(lit) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == lexer.TokenEOF
}

// atEnd reports whether the enclosing bracketed range is exhausted.
func (p *parser) atEnd() bool {
	return p.err != nil || p.atEOF() || isCloser(p.peek())
}

func (p *parser) atIdent() bool {
	return p.peek().Kind == lexer.TokenIdent
}

// skipGroup moves past the bracket group opening at the current token.
func (p *parser) skipGroup() {
	if isOpener(p.peek()) {
		p.pos = p.match[p.pos] + 1
		return
	}
	p.advance()
}

// closeOf returns the index of the closer matching the opener at the
// current token.
func (p *parser) closeOf() int {
	return p.match[p.pos]
}

func (p *parser) fail(kind source.ErrorKind, format string, args ...any) {
	if p.err == nil {
		p.err = source.Errorf(kind, p.peek().Span.Start, format, args...)
	}
}

func (p *parser) diag(kind source.ErrorKind, pos source.Position, format string, args ...any) {
	p.diags = append(p.diags, source.Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// span covers tokens [from, to).
func (p *parser) span(from, to int) source.Span {
	if to <= from {
		start := p.toks[from].Span.Start
		return source.Span{Start: start, End: start}
	}
	return source.Span{Start: p.toks[from].Span.Start, End: p.toks[to-1].Span.End}
}

// text renders tokens [from, to), separated by a single space wherever the
// source had whitespace or a comment between them.
func (p *parser) text(from, to int) string {
	var b strings.Builder
	for i := from; i < to && i < len(p.toks); i++ {
		tok := p.toks[i]
		if tok.Kind == lexer.TokenEOF {
			break
		}
		if i > from && tok.Span.Start.Offset > p.toks[i-1].Span.End.Offset {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Literal)
	}
	return b.String()
}

// open adds a node whose span is fixed later by finish.
// open adds a node for payload. Declarations are opened right after their
// name token, which is recorded as the node's Name.
func (p *parser) open(parent NodeID, start int, payload Payload) NodeID {
	id := p.tree.add(parent, p.span(start, start), payload)
	if IsDeclaration(payload) && p.pos > 0 {
		p.tree.Nodes[id].Name = p.toks[p.pos-1].Span.Start
	}
	return id
}

func (p *parser) finish(id NodeID, start int) {
	p.tree.Nodes[id].Span = p.span(start, p.pos)
}

// inner returns the text between the bracket group at the current token
// and moves past it.
func (p *parser) inner() string {
	if !isOpener(p.peek()) {
		return ""
	}
	from := p.pos
	to := p.closeOf()
	p.pos = to + 1
	return p.text(from+1, to)
}

func (p *parser) parseUnit() {
	root := p.tree.add(NoNode, source.Span{
		Start: source.Position{File: p.tree.File, Line: 1, Column: 1},
		End:   p.toks[len(p.toks)-1].Span.End,
	}, &Unit{})
	p.tree.Root = root
	unit := p.tree.Nodes[root].Payload.(*Unit)

	for p.err == nil && !p.atEOF() {
		switch {
		case p.at(";"):
			p.advance()
		case p.at(p.kw.Package):
			p.advance()
			from := p.pos
			unit.Package = p.text(from, p.statementEnd())
			p.expectSemicolon()
		case p.at(p.kw.Import):
			p.advance()
			from := p.pos
			unit.Imports = append(unit.Imports, p.text(from, p.statementEnd()))
			p.expectSemicolon()
		case isCloser(p.peek()):
			// matchDelims guarantees closers pair up, so this is unreachable
			// at the top level.
			p.fail(source.UnmatchedDelimiter, "unexpected %q", p.peek().Literal)
		default:
			p.member(root, "")
		}
	}
}

// statementEnd moves to the next ';' at the current depth, or to the end
// of the enclosing range, and returns its index.
func (p *parser) statementEnd() int {
	for !p.atEnd() && !p.at(";") {
		p.skipGroup()
	}
	return p.pos
}

func (p *parser) expectSemicolon() {
	if p.accept(";") {
		return
	}
	p.diag(source.MissingSemicolon, p.peek().Span.Start, "expected ';' before %q", p.describe())
}

func (p *parser) describe() string {
	if p.atEOF() {
		return "end of unit"
	}
	return p.peek().Literal
}
