package syntax

import (
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/source"
)

// isModifierAt reports whether the token at offset n is a declaration
// modifier. Contextual modifiers such as sealed only count when a name or
// keyword follows.
func (p *parser) isModifierAt(n int) bool {
	tok := p.peekN(n)
	if !p.prof.IsModifier(tok.Literal) {
		return false
	}
	if tok.Kind == lexer.TokenKeyword {
		return true
	}
	next := p.peekN(n + 1)
	return tok.Kind == lexer.TokenIdent && (next.Kind == lexer.TokenIdent || next.Kind == lexer.TokenKeyword)
}

func (p *parser) atAnnotation() bool {
	return p.at("@") && !p.peekN(1).Is(p.kw.Interface)
}

func (p *parser) modifiers() (mods, annos []string) {
	for p.err == nil {
		switch {
		case p.atAnnotation():
			annos = append(annos, p.annotation())
		case p.isModifierAt(0):
			mods = append(mods, p.advance().Literal)
		default:
			return mods, annos
		}
	}
	return mods, annos
}

func (p *parser) annotation() string {
	start := p.pos
	p.advance()
	p.qualifiedName()
	if p.at("(") {
		p.skipGroup()
	}
	return p.text(start, p.pos)
}

func (p *parser) qualifiedName() string {
	start := p.pos
	if !p.atIdent() {
		return ""
	}
	p.advance()
	for p.at(".") && p.peekN(1).Kind == lexer.TokenIdent {
		p.advance()
		p.advance()
	}
	return p.text(start, p.pos)
}

// angle moves past a balanced type argument list starting at '<'.
func (p *parser) angle() bool {
	if !p.at("<") {
		return false
	}
	depth := 0
	for !p.atEnd() {
		tok := p.peek()
		switch {
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		case tok.Is(">>"):
			depth -= 2
		case tok.Is(">>>"):
			depth -= 3
		case tok.Is(";") || tok.Is("=") || tok.Is("{"):
			return false
		case isOpener(tok):
			p.skipGroup()
			continue
		}
		p.advance()
		if depth <= 0 {
			return true
		}
	}
	return false
}

func (p *parser) atTypeStart() bool {
	tok := p.peek()
	return tok.Kind == lexer.TokenIdent || (tok.Kind == lexer.TokenKeyword && p.prof.IsPrimitive(tok.Literal))
}

// typeText reads a type such as java.util.Map<K, V>[] and returns its text.
func (p *parser) typeText() (string, bool) {
	start := p.pos
	for p.atAnnotation() {
		p.annotation()
	}
	if !p.atTypeStart() {
		p.pos = start
		return "", false
	}
	p.advance()
	for p.err == nil {
		if p.at("<") {
			if !p.angle() {
				p.pos = start
				return "", false
			}
			continue
		}
		if p.at(".") && (p.peekN(1).Kind == lexer.TokenIdent || p.peekN(1).Is("@")) {
			p.advance()
			for p.atAnnotation() {
				p.annotation()
			}
			p.advance()
			continue
		}
		break
	}
	p.dims()
	return p.text(start, p.pos), true
}

// dims moves past array brackets, possibly annotated.
func (p *parser) dims() {
	for {
		save := p.pos
		for p.atAnnotation() {
			p.annotation()
		}
		if p.at("[") && p.peekN(1).Is("]") {
			p.advance()
			p.advance()
			continue
		}
		p.pos = save
		return
	}
}

// typeParams reads <T extends A, U> and returns the parameter names.
func (p *parser) typeParams() []string {
	start := p.pos
	if !p.angle() {
		return nil
	}
	var names []string
	depth := 0
	expect := true
	for i := start; i < p.pos; i++ {
		tok := p.toks[i]
		switch {
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		case tok.Is(">>"):
			depth -= 2
		case tok.Is(","):
			if depth == 1 {
				expect = true
			}
		case tok.Is("@") && i+1 < p.pos:
			i++
		case tok.Kind == lexer.TokenIdent && depth == 1 && expect:
			names = append(names, tok.Literal)
			expect = false
		}
	}
	return names
}

func (p *parser) typeList() []string {
	var types []string
	for p.err == nil {
		t, ok := p.typeText()
		if !ok {
			break
		}
		types = append(types, t)
		if !p.accept(",") {
			break
		}
	}
	return types
}

// atTypeKeyword reports whether a type declaration starts at offset n.
func (p *parser) atTypeKeyword(n int) bool {
	tok := p.peekN(n)
	switch {
	case tok.Is(p.kw.Class), tok.Is(p.kw.Interface), tok.Is(p.kw.Enum):
		return true
	case tok.Is("@"):
		return p.peekN(n + 1).Is(p.kw.Interface)
	case tok.Is(p.kw.Record):
		return p.peekN(n+1).Kind == lexer.TokenIdent && (p.peekN(n+2).Is("(") || p.peekN(n+2).Is("<"))
	}
	return false
}

// member parses one type member or top-level declaration. owner is the
// simple name of the enclosing type, if any.
func (p *parser) member(parent NodeID, owner string) {
	start := p.pos
	mods, annos := p.modifiers()
	if p.err != nil {
		return
	}

	switch {
	case p.at("{"):
		label := ""
		for _, m := range mods {
			if m == p.kw.Static {
				label = m
			}
		}
		p.block(parent, start, label)
		return
	case p.atTypeKeyword(0):
		p.typeDecl(parent, start, mods, annos)
		return
	}

	var typeParams []string
	if p.at("<") {
		typeParams = p.typeParams()
	}

	if p.atIdent() && p.peekN(1).Is("(") {
		name := p.advance().Literal
		p.method(parent, start, &MethodDecl{
			Name: name, Constructor: true, Modifiers: mods, Annotations: annos, TypeParams: typeParams,
		})
		return
	}
	if p.atIdent() && p.peek().Literal == owner && p.peekN(1).Is("{") {
		name := p.advance().Literal
		p.method(parent, start, &MethodDecl{
			Name: name, Constructor: true, Modifiers: mods, Annotations: annos, TypeParams: typeParams,
		})
		return
	}

	typ, ok := p.typeText()
	if !ok || !p.atIdent() {
		p.skipMember(start)
		return
	}
	if p.peekN(1).Is("(") {
		name := p.advance().Literal
		p.method(parent, start, &MethodDecl{
			Name: name, ReturnType: typ, Modifiers: mods, Annotations: annos, TypeParams: typeParams,
		})
		return
	}
	p.fields(parent, start, typ, mods, annos)
}

// skipMember records an unrecognised member and moves past it.
func (p *parser) skipMember(start int) {
	pos := p.toks[start].Span.Start
	for !p.atEnd() {
		if p.at(";") {
			p.advance()
			break
		}
		if p.at("{") {
			p.skipGroup()
			break
		}
		p.skipGroup()
	}
	if p.pos == start && !p.atEnd() {
		p.advance()
	}
	p.diag(source.UnrecognizedMember, pos, "skipped %q", p.text(start, p.pos))
}

func (p *parser) typeDecl(parent NodeID, start int, mods, annos []string) {
	decl := &TypeDecl{Modifiers: mods, Annotations: annos}
	switch {
	case p.at("@"):
		decl.Kind = KindAnnotation
		p.advance()
	case p.at(p.kw.Interface):
		decl.Kind = KindInterface
	case p.at(p.kw.Enum):
		decl.Kind = KindEnum
	case p.at(p.kw.Record):
		decl.Kind = KindRecord
	}
	p.advance()

	if !p.atIdent() {
		p.headerError("type name")
		return
	}
	decl.Name = p.advance().Literal
	id := p.open(parent, start, decl)

	if p.at("<") {
		decl.TypeParams = p.typeParams()
	}
	if decl.Kind == KindRecord && p.at("(") {
		decl.Components = p.params(nil)
	}
	for p.err == nil {
		switch {
		case p.accept(p.kw.Extends):
			decl.Extends = append(decl.Extends, p.typeList()...)
		case p.accept(p.kw.Implements):
			decl.Implements = append(decl.Implements, p.typeList()...)
		case p.peek().Literal == p.kw.Permits && p.peekN(1).Kind == lexer.TokenIdent:
			p.advance()
			decl.Permits = append(decl.Permits, p.typeList()...)
		case p.at("{"):
			p.typeBody(id, decl)
			p.finish(id, start)
			return
		default:
			p.headerError("'{'")
			return
		}
	}
}

// headerError reports a declaration header that does not continue. At the
// end of the unit it is fatal; elsewhere the rest is skipped.
func (p *parser) headerError(want string) {
	if p.atEOF() {
		p.fail(source.UnexpectedEndOfUnit, "declaration cut off, expected %s", want)
		return
	}
	start := p.pos
	p.skipMember(start)
}

func (p *parser) typeBody(id NodeID, decl *TypeDecl) {
	close := p.closeOf()
	p.advance()
	if decl.Kind == KindEnum {
		p.enumConstants(id)
	}
	for !p.atEnd() {
		if p.accept(";") {
			continue
		}
		before := p.pos
		p.member(id, decl.Name)
		if p.pos == before && !p.atEnd() {
			p.advance()
		}
	}
	if p.err == nil {
		p.pos = close + 1
	}
}

func (p *parser) enumConstants(parent NodeID) {
	for !p.atEnd() {
		if p.accept(";") {
			return
		}
		start := p.pos
		var annos []string
		for p.atAnnotation() {
			annos = append(annos, p.annotation())
		}
		if !p.atIdent() {
			p.pos = start
			return
		}
		c := &EnumConstant{Name: p.advance().Literal, Annotations: annos}
		id := p.open(parent, start, c)
		if p.at("(") {
			c.Arguments = p.inner()
		}
		if p.at("{") {
			close := p.closeOf()
			p.advance()
			for !p.atEnd() {
				if p.accept(";") {
					continue
				}
				before := p.pos
				p.member(id, "")
				if p.pos == before && !p.atEnd() {
					p.advance()
				}
			}
			if p.err == nil {
				p.pos = close + 1
			}
		}
		p.finish(id, start)
		if !p.accept(",") {
			p.accept(";")
			return
		}
	}
}

func (p *parser) method(parent NodeID, start int, m *MethodDecl) {
	id := p.open(parent, start, m)
	if p.at("(") {
		m.Params = p.params(m)
	}
	if m.Params == nil {
		m.Params = []Param{}
	}
	if m.ReturnType != "" {
		before := p.pos
		p.dims()
		if p.pos > before {
			m.ReturnType += p.text(before, p.pos)
		}
	}
	if p.accept(p.kw.Throws) {
		m.Throws = p.typeList()
	}
	if p.accept(p.kw.Default) {
		from := p.pos
		m.Default = p.text(from, p.statementEnd())
	}

	switch {
	case p.at("{"):
		m.HasBody = true
		p.body(id)
	case p.at(";"):
		p.advance()
	case p.atEOF():
		p.fail(source.UnexpectedEndOfUnit, "method %s cut off", m.Name)
		return
	default:
		p.diag(source.MissingSemicolon, p.peek().Span.Start, "expected body or ';' after method %s", m.Name)
	}
	p.finish(id, start)
}

// params reads the parenthesised parameter list at the current token. A
// receiver parameter is stored on m when m is non-nil.
func (p *parser) params(m *MethodDecl) []Param {
	close := p.closeOf()
	p.advance()
	params := []Param{}
	for p.err == nil && p.pos < close {
		start := p.pos
		prm, receiver, ok := p.param()
		if !ok {
			for p.pos < close && !p.at(",") {
				p.skipGroup()
			}
			p.diag(source.UnrecognizedMember, p.toks[start].Span.Start, "unreadable parameter %q", p.text(start, p.pos))
		} else if receiver && m != nil {
			m.Receiver = &prm
		} else {
			params = append(params, prm)
		}
		if !p.accept(",") && p.pos < close {
			p.pos = close
		}
	}
	p.pos = close + 1
	return params
}

func (p *parser) param() (prm Param, receiver, ok bool) {
	prm.Modifiers, prm.Annotations = p.modifiers()
	typ, ok := p.typeText()
	if !ok {
		return prm, false, false
	}
	prm.Type = typ
	if p.accept("...") {
		prm.Varargs = true
	}
	switch {
	case p.at(p.kw.This):
		p.advance()
		prm.Name = p.kw.This
		return prm, true, true
	case p.atIdent() && p.peekN(1).Is(".") && p.peekN(2).Is(p.kw.This):
		start := p.pos
		p.pos += 3
		prm.Name = p.text(start, p.pos)
		return prm, true, true
	case p.atIdent():
		prm.Name = p.advance().Literal
	default:
		return prm, false, false
	}
	before := p.pos
	p.dims()
	prm.Type += p.text(before, p.pos)
	return prm, false, true
}

// fields reads the declarators of one field statement. Each declarator
// becomes its own node; all share the first node as their group.
func (p *parser) fields(parent NodeID, start int, typ string, mods, annos []string) {
	group := NoNode
	var last NodeID
	declStart := start
	for p.err == nil {
		if !p.atIdent() {
			p.diag(source.UnrecognizedMember, p.peek().Span.Start, "expected field name, got %q", p.describe())
			break
		}
		nameAt := p.peek().Span.Start
		f := &FieldDecl{Name: p.advance().Literal, Type: typ, Modifiers: mods, Annotations: annos}
		before := p.pos
		p.dims()
		f.Type += p.text(before, p.pos)
		if p.accept("=") {
			vstart := p.pos
			p.expression()
			f.Value = p.text(vstart, p.pos)
		}
		last = p.open(parent, declStart, f)
		p.tree.Nodes[last].Name = nameAt
		if group == NoNode {
			group = last
		}
		f.Group = group
		p.finish(last, declStart)
		if !p.accept(",") {
			break
		}
		declStart = p.pos
	}
	if p.err != nil {
		return
	}
	if p.at(";") {
		p.advance()
		if group != NoNode {
			p.finish(last, declStart)
		}
		return
	}
	if p.atEOF() {
		p.fail(source.UnexpectedEndOfUnit, "field declaration cut off")
		return
	}
	p.diag(source.MissingSemicolon, p.peek().Span.Start, "expected ';' after field declaration")
	if !p.atEnd() {
		p.statementEnd()
		p.accept(";")
	}
}

// expression moves past an initializer up to a ',' or ';' at the current
// depth. Type arguments after new or before a method name are skipped
// whole so their commas do not split the declarator.
func (p *parser) expression() {
	for !p.atEnd() && !p.at(",") && !p.at(";") {
		switch {
		case isOpener(p.peek()):
			p.skipGroup()
		case p.at(p.kw.New):
			p.advance()
			if _, ok := p.typeText(); !ok {
				p.angle()
			}
		case p.at(".") && p.peekN(1).Is("<"):
			p.advance()
			p.angle()
		default:
			p.advance()
		}
	}
}
