package document

import (
	"slices"
	"strings"

	"github.com/dhamidi/ddoc/bind"
	"github.com/dhamidi/ddoc/javadoc"
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/source"
	"github.com/dhamidi/ddoc/syntax"
)

type builder struct {
	tree     *syntax.Tree
	comments []lexer.Comment
	bindings *bind.Result
}

// Build derives the document of one unit. comments and bindings must come
// from the same parse as tree. Opaque statements are kept only when they
// carry narrative or transfer control.
func Build(tree *syntax.Tree, comments []lexer.Comment, bindings *bind.Result, diags []source.Diagnostic) *Document {
	b := &builder{tree: tree, comments: comments, bindings: bindings}
	unit, _ := tree.Payload(tree.Root).(*syntax.Unit)
	if unit == nil {
		unit = &syntax.Unit{}
	}
	return &Document{
		File:        tree.File,
		Package:     unit.Package,
		Imports:     append([]string(nil), unit.Imports...),
		Narrative:   b.narrative(tree.Root),
		Sections:    b.children(tree.Root),
		Diagnostics: append([]source.Diagnostic(nil), diags...),
	}
}

func (b *builder) narrative(id syntax.NodeID) []narrative.Line {
	lines := []narrative.Line{}
	for _, i := range b.bindings.Narrative[id] {
		lines = append(lines, b.comments[i].Narrative...)
	}
	return lines
}

func (b *builder) children(id syntax.NodeID) []*Section {
	out := []*Section{}
	for _, c := range b.tree.Node(id).Children {
		if s := b.section(c); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (b *builder) section(id syntax.NodeID) *Section {
	n := b.tree.Node(id)
	s := &Section{Span: n.Span, Narrative: b.narrative(id)}

	switch p := n.Payload.(type) {
	case *syntax.TypeDecl:
		v := *p
		s.Kind, s.Name, s.Type = KindType, p.Name, &v
	case *syntax.FieldDecl:
		v := *p
		s.Kind, s.Name, s.Field = KindField, p.Name, &v
	case *syntax.MethodDecl:
		v := *p
		s.Kind, s.Name, s.Method = KindMethod, p.Name, &v
	case *syntax.EnumConstant:
		v := *p
		s.Kind, s.Name, s.Constant = KindConstant, p.Name, &v
	case *syntax.IfChain:
		s.Kind = KindIf
	case *syntax.Branch:
		v := *p
		s.Kind, s.Name, s.Branch = KindBranch, p.Keyword, &v
	case *syntax.SwitchBlock:
		v := *p
		s.Kind, s.Switch = KindSwitch, &v
	case *syntax.CaseGroup:
		v := *p
		s.Kind, s.Case = KindCase, &v
		labels := p.Labels
		if p.Default && !slices.Contains(labels, "default") {
			labels = append([]string{"default"}, labels...)
		}
		s.Name = strings.Join(labels, ", ")
	case *syntax.Block:
		v := *p
		s.Kind, s.Name, s.Block = KindBlock, p.Label, &v
	case *syntax.Loop:
		v := *p
		s.Kind, s.Name, s.Loop = KindLoop, p.Label, &v
	case *syntax.Statement:
		if len(s.Narrative) == 0 && !p.Jump {
			return nil
		}
		v := *p
		s.Kind, s.Name, s.Statement = KindStatement, p.Keyword, &v
	default:
		return nil
	}

	if j := b.bindings.Javadoc[id]; j >= 0 {
		s.Doc = javadoc.Parse(b.comments[j].Lines)
	}
	s.Children = b.children(id)
	return s
}
