package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/javadoc"
	"github.com/dhamidi/ddoc/narrative"
)

type MarkdownEncoder struct {
	w   io.Writer
	doc *document.Document
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

func (e *MarkdownEncoder) Encode(doc *document.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	d := e.doc

	title := d.File
	if title == "" {
		title = d.Package
	}
	if title == "" {
		title = "Design"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if d.Package != "" {
		fmt.Fprintf(&sb, "Package `%s`\n\n", d.Package)
	}
	if len(d.Imports) > 0 {
		sb.WriteString("Imports:\n\n")
		for _, imp := range d.Imports {
			fmt.Fprintf(&sb, "- `%s`\n", imp)
		}
		sb.WriteString("\n")
	}
	writeNarrative(&sb, d.Narrative, 1)

	for _, s := range d.Sections {
		writeSection(&sb, s, 2)
	}

	if len(d.Diagnostics) > 0 {
		sb.WriteString("## Diagnostics\n\n")
		for _, diag := range d.Diagnostics {
			fmt.Fprintf(&sb, "- %d:%d %s: %s\n", diag.Pos.Line, diag.Pos.Column, diag.Kind, diag.Message)
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

func heading(level int) string {
	return strings.Repeat("#", min(level, 6))
}

func writeSection(sb *strings.Builder, s *document.Section, level int) {
	fmt.Fprintf(sb, "%s %s\n\n", heading(level), s.Title())

	if sig := signature(s); sig != "" {
		fmt.Fprintf(sb, "`%s`\n\n", sig)
	}
	if s.Case != nil && s.Case.Fallthrough {
		sb.WriteString("_falls through_\n\n")
	}
	if s.Doc != nil {
		writeDoc(sb, s.Doc)
	}
	writeNarrative(sb, s.Narrative, level)

	for _, c := range s.Children {
		writeSection(sb, c, level+1)
	}
}

func signature(s *document.Section) string {
	var parts []string
	switch s.Kind {
	case document.KindType:
		t := s.Type
		parts = append(parts, t.Modifiers...)
		name := s.Name
		if len(t.TypeParams) > 0 {
			name += "<" + strings.Join(t.TypeParams, ", ") + ">"
		}
		parts = append(parts, t.Kind.String(), name)
		if len(t.Extends) > 0 {
			parts = append(parts, "extends", strings.Join(t.Extends, ", "))
		}
		if len(t.Implements) > 0 {
			parts = append(parts, "implements", strings.Join(t.Implements, ", "))
		}
	case document.KindField:
		f := s.Field
		parts = append(parts, f.Modifiers...)
		parts = append(parts, f.Type, f.Name)
		if f.Value != "" {
			parts = append(parts, "=", f.Value)
		}
	case document.KindMethod:
		m := s.Method
		parts = append(parts, m.Modifiers...)
		if len(m.TypeParams) > 0 {
			parts = append(parts, "<"+strings.Join(m.TypeParams, ", ")+">")
		}
		if !m.Constructor {
			parts = append(parts, m.ReturnType)
		}
		var params []string
		for _, p := range m.Params {
			typ := p.Type
			if p.Varargs {
				typ += "..."
			}
			params = append(params, typ+" "+p.Name)
		}
		parts = append(parts, s.Name+"("+strings.Join(params, ", ")+")")
		if len(m.Throws) > 0 {
			parts = append(parts, "throws", strings.Join(m.Throws, ", "))
		}
	case document.KindConstant:
		if s.Constant.Arguments != "" {
			return s.Name + "(" + s.Constant.Arguments + ")"
		}
	case document.KindLoop:
		l := s.Loop
		switch {
		case l.Iterable != "":
			return l.Variable + " : " + l.Iterable
		case l.Init != "" || l.Update != "":
			return l.Init + "; " + l.Condition + "; " + l.Update
		default:
			return l.Condition
		}
	case document.KindStatement:
		return s.Statement.Text
	}
	return strings.Join(parts, " ")
}

func writeDoc(sb *strings.Builder, doc *javadoc.Doc) {
	if doc.Deprecated != "" {
		fmt.Fprintf(sb, "**Deprecated** %s\n\n", doc.Deprecated)
	}
	if doc.Description != "" {
		sb.WriteString(doc.Description)
		sb.WriteString("\n\n")
	}

	var items []string
	for _, p := range doc.Params {
		name := p.Name
		if p.TypeParam {
			name = "<" + name + ">"
		}
		items = append(items, fmt.Sprintf("param `%s` %s", name, p.Description))
	}
	if doc.Returns != "" {
		items = append(items, "returns "+doc.Returns)
	}
	for _, t := range doc.Throws {
		items = append(items, fmt.Sprintf("throws `%s` %s", t.Type, t.Description))
	}
	if len(doc.Authors) > 0 {
		items = append(items, "author "+strings.Join(doc.Authors, ", "))
	}
	if doc.Since != "" {
		items = append(items, "since "+doc.Since)
	}
	if doc.Version != "" {
		items = append(items, "version "+doc.Version)
	}
	for _, see := range doc.See {
		items = append(items, "see "+see)
	}
	for _, tag := range doc.Tags {
		items = append(items, "@"+tag.Name+" "+tag.Value)
	}
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", strings.TrimSpace(item))
	}
	if len(items) > 0 {
		sb.WriteString("\n")
	}
}

// writeNarrative renders lines below a heading of the given level. Runs of
// text lines form one paragraph, runs of assignments one list.
func writeNarrative(sb *strings.Builder, lines []narrative.Line, level int) {
	prev := narrative.Kind(-1)
	for _, l := range lines {
		if prev >= 0 && (l.Kind != prev || l.Kind == narrative.KindHeading || l.Kind == narrative.KindBranch) {
			sb.WriteString("\n")
		}
		switch l.Kind {
		case narrative.KindHeading:
			fmt.Fprintf(sb, "%s %s\n", heading(level+l.Level), l.Text)
		case narrative.KindBranch:
			if l.Text == "" {
				fmt.Fprintf(sb, "**%s**\n", l.Keyword)
			} else {
				fmt.Fprintf(sb, "**%s** %s\n", l.Keyword, l.Text)
			}
		case narrative.KindAssignment:
			a := l.Assignment
			if a.Category != "" {
				fmt.Fprintf(sb, "- [%s] `%s` = `%s`\n", a.Category, a.Name, a.Value)
			} else {
				fmt.Fprintf(sb, "- `%s` = `%s`\n", a.Name, a.Value)
			}
		default:
			sb.WriteString(l.Text)
			sb.WriteString("\n")
		}
		prev = l.Kind
	}
	if prev >= 0 {
		sb.WriteString("\n")
	}
}
