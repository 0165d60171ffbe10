package syntax

import (
	"slices"

	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/source"
)

// body parses a statement body into children of parent. Braces are
// flattened: the statements inside become direct children.
func (p *parser) body(parent NodeID) {
	if !p.at("{") {
		p.statement(parent)
		return
	}
	close := p.closeOf()
	p.advance()
	p.statements(parent, false)
	if p.err == nil {
		p.pos = close + 1
	}
}

// block adds a Block node for the braced region at the current token.
func (p *parser) block(parent NodeID, start int, label string) NodeID {
	id := p.open(parent, start, &Block{Label: label})
	p.body(id)
	p.finish(id, start)
	return id
}

// statements parses until the end of the enclosing range. Inside a switch
// body it also stops at the next case label.
func (p *parser) statements(parent NodeID, inSwitch bool) {
	for !p.atEnd() {
		if inSwitch && p.atCaseLabel() {
			return
		}
		before := p.pos
		p.statement(parent)
		if p.pos == before && !p.atEnd() {
			p.advance()
		}
	}
}

func (p *parser) atCaseLabel() bool {
	if p.at(p.kw.Case) {
		return true
	}
	return p.at(p.kw.Default) && (p.peekN(1).Is(":") || p.peekN(1).Is("->"))
}

func (p *parser) statement(parent NodeID) {
	start := p.pos
	label := ""
	if p.atIdent() && p.peekN(1).Is(":") {
		label = p.advance().Literal
		p.advance()
	}

	switch {
	case p.at(";"):
		p.advance()
	case p.at("{"):
		p.block(parent, start, label)
	case p.at(p.kw.If):
		p.ifChain(parent, start)
	case p.at(p.kw.Switch) && p.peekN(1).Is("("):
		p.switchBlock(parent, start)
	case p.at(p.kw.For), p.at(p.kw.While), p.at(p.kw.Do):
		p.loop(parent, start, label)
	case p.at(p.kw.Try):
		p.tryBlocks(parent)
	case p.at(p.kw.Synchronized) && p.peekN(1).Is("("):
		kwStart := p.pos
		p.advance()
		lock := p.inner()
		p.block(parent, kwStart, p.kw.Synchronized+" ("+lock+")")
	case p.atLocalType():
		mods, annos := p.modifiers()
		p.typeDecl(parent, start, mods, annos)
	case p.at(p.kw.Break), p.at(p.kw.Continue):
		kw := p.advance().Literal
		s := &Statement{Keyword: kw, Jump: true}
		if p.atIdent() {
			s.Label = p.peek().Literal
		}
		p.opaque(parent, start, s)
	case p.at(p.kw.Return), p.at(p.kw.Throw), p.atYield():
		kw := p.advance().Literal
		p.opaque(parent, start, &Statement{Keyword: kw, Jump: true})
	case p.at(p.kw.Assert):
		kw := p.advance().Literal
		p.opaque(parent, start, &Statement{Keyword: kw})
	default:
		p.opaque(parent, start, &Statement{})
	}
}

// atYield tells the yield statement from a use of yield as a name.
func (p *parser) atYield() bool {
	if p.kw.Yield == "" || p.peek().Literal != p.kw.Yield {
		return false
	}
	next := p.peekN(1)
	switch next.Kind {
	case lexer.TokenIdent, lexer.TokenLiteral, lexer.TokenKeyword:
		return true
	case lexer.TokenPunct:
		return next.Is("(")
	case lexer.TokenOperator:
		return next.Is("-") || next.Is("!") || next.Is("~") || next.Is("+")
	}
	return false
}

// atLocalType looks past modifiers and annotations for a type keyword.
func (p *parser) atLocalType() bool {
	save := p.pos
	defer func() { p.pos = save }()
	for p.atAnnotation() || p.isModifierAt(0) {
		if p.atAnnotation() {
			p.annotation()
		} else {
			p.advance()
		}
	}
	return p.atTypeKeyword(0)
}

// opaque consumes a statement up to its ';' without looking inside.
func (p *parser) opaque(parent NodeID, start int, s *Statement) {
	end := p.statementEnd()
	s.Text = p.text(start, end)
	id := p.open(parent, start, s)
	switch {
	case p.at(";"):
		p.advance()
	case p.atEOF():
		p.fail(source.UnexpectedEndOfUnit, "statement cut off")
		return
	default:
		p.diag(source.MissingSemicolon, p.peek().Span.Start, "expected ';' before %q", p.describe())
	}
	p.finish(id, start)
}

// ifChain flattens if / else if / else into one chain of branches.
func (p *parser) ifChain(parent NodeID, start int) {
	chain := p.open(parent, start, &IfChain{})
	branchStart := p.pos
	keyword := p.kw.If
	p.advance()
	for p.err == nil {
		b := &Branch{Keyword: keyword}
		if keyword != p.kw.Else {
			b.Condition = p.inner()
		}
		id := p.open(chain, branchStart, b)
		p.body(id)
		p.finish(id, branchStart)

		if keyword == p.kw.Else || !p.at(p.kw.Else) {
			break
		}
		branchStart = p.pos
		p.advance()
		if p.accept(p.kw.If) {
			keyword = p.kw.Else + " " + p.kw.If
		} else {
			keyword = p.kw.Else
		}
	}
	p.finish(chain, start)
}

func (p *parser) switchBlock(parent NodeID, start int) {
	p.advance()
	sw := p.open(parent, start, &SwitchBlock{Selector: p.inner()})
	if !p.at("{") {
		p.diag(source.UnrecognizedMember, p.peek().Span.Start, "switch without body")
		p.finish(sw, start)
		return
	}
	close := p.closeOf()
	p.advance()

	var groups []NodeID
	starts := map[NodeID]int{}
	open := NoNode
	for !p.atEnd() {
		entryStart := p.pos
		var labels []string
		isDefault := false
		switch {
		case p.accept(p.kw.Case):
			labels = p.caseLabels()
			isDefault = slices.Contains(labels, p.kw.Default)
		case p.at(p.kw.Default) && (p.peekN(1).Is(":") || p.peekN(1).Is("->")):
			p.advance()
			isDefault = true
		default:
			// Statements before the first label.
			p.statement(sw)
			continue
		}
		arrow := p.accept("->")
		if !arrow && !p.accept(":") {
			p.diag(source.UnrecognizedMember, p.peek().Span.Start, "expected ':' or '->' after case label")
		}

		id := open
		if id != NoNode && !isDefault && !arrow {
			g := p.tree.Nodes[id].Payload.(*CaseGroup)
			g.Labels = append(g.Labels, labels...)
			entryStart = starts[id]
		} else {
			if labels == nil {
				labels = []string{}
			}
			id = p.open(sw, entryStart, &CaseGroup{Labels: labels, Default: isDefault, Arrow: arrow})
			groups = append(groups, id)
			starts[id] = entryStart
		}
		open = NoNode

		if arrow {
			p.body(id)
			p.finish(id, entryStart)
			continue
		}
		p.statements(id, true)
		p.finish(id, entryStart)
		if len(p.tree.Nodes[id].Children) == 0 && !isDefault {
			open = id
		}
	}
	if p.err != nil {
		return
	}
	p.pos = close + 1
	p.finish(sw, start)

	for i, id := range groups {
		g := p.tree.Nodes[id].Payload.(*CaseGroup)
		g.Fallthrough = !g.Arrow && i < len(groups)-1 && !p.endsInJump(id)
	}
}

// caseLabels reads comma separated labels up to ':' or '->'.
func (p *parser) caseLabels() []string {
	var labels []string
	start := p.pos
	for !p.atEnd() && !p.at(":") && !p.at("->") {
		if p.at(",") {
			labels = append(labels, p.text(start, p.pos))
			p.advance()
			start = p.pos
			continue
		}
		p.skipGroup()
	}
	if p.pos > start {
		labels = append(labels, p.text(start, p.pos))
	}
	return labels
}

// endsInJump reports whether the last statement of id leaves the group.
func (p *parser) endsInJump(id NodeID) bool {
	children := p.tree.Nodes[id].Children
	if len(children) == 0 {
		return false
	}
	last := children[len(children)-1]
	switch n := p.tree.Nodes[last].Payload.(type) {
	case *Statement:
		return n.Jump
	case *Block:
		if n.Label == "" {
			return p.endsInJump(last)
		}
	}
	return false
}

func (p *parser) loop(parent NodeID, start int, label string) {
	l := &Loop{Label: label}
	switch kw := p.advance().Literal; kw {
	case p.kw.For:
		l.Kind = LoopFor
		p.forHeader(l)
	case p.kw.While:
		l.Kind = LoopWhile
		l.Condition = p.inner()
	default:
		l.Kind = LoopDo
	}
	id := p.open(parent, start, l)
	p.body(id)
	if l.Kind == LoopDo {
		if p.accept(p.kw.While) {
			l.Condition = p.inner()
		}
		p.expectSemicolon()
	}
	p.finish(id, start)
}

// forHeader splits a for header into init, condition and update, or into
// variable and iterable for the enhanced form.
func (p *parser) forHeader(l *Loop) {
	if !p.at("(") {
		return
	}
	open := p.pos
	close := p.closeOf()
	var semis []int
	colon := -1
	for i := open + 1; i < close; i++ {
		switch {
		case isOpener(p.toks[i]):
			i = p.match[i]
		case p.toks[i].Is(";"):
			semis = append(semis, i)
		case p.toks[i].Is(":") && colon < 0:
			colon = i
		}
	}
	switch {
	case len(semis) == 2:
		l.Init = p.text(open+1, semis[0])
		l.Condition = p.text(semis[0]+1, semis[1])
		l.Update = p.text(semis[1]+1, close)
	case colon >= 0:
		l.Kind = LoopForEach
		l.Variable = p.text(open+1, colon)
		l.Iterable = p.text(colon+1, close)
	default:
		l.Condition = p.text(open+1, close)
	}
	p.pos = close + 1
}

// tryBlocks adds try, catch and finally as sibling blocks.
func (p *parser) tryBlocks(parent NodeID) {
	start := p.pos
	p.advance()
	label := p.kw.Try
	if p.at("(") {
		label += " (" + p.inner() + ")"
	}
	p.block(parent, start, label)
	for p.err == nil {
		clauseStart := p.pos
		switch {
		case p.at(p.kw.Catch):
			p.advance()
			p.block(parent, clauseStart, p.kw.Catch+" ("+p.inner()+")")
		case p.at(p.kw.Finally):
			p.advance()
			p.block(parent, clauseStart, p.kw.Finally)
		default:
			return
		}
	}
}
