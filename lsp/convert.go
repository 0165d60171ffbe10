package lsp

import (
	"bytes"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/source"
	"github.com/dhamidi/ddoc/syntax"
)

const diagnosticSource = "ddoc"

// toPosition converts a byte position into a UTF-16 based protocol
// position.
func toPosition(content []byte, pos source.Position) protocol.Position {
	if pos.Line == 0 {
		return protocol.Position{}
	}
	lineStart := pos.Offset - (pos.Column - 1)
	if lineStart < 0 {
		lineStart = 0
	}
	end := min(pos.Offset, len(content))
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(utf16Len(content[min(lineStart, end):end])),
	}
}

func toRange(content []byte, span source.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(content, span.Start),
		End:   toPosition(content, span.End),
	}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		n += utf16.RuneLen(r)
		b = b[size:]
	}
	return n
}

// toOffset converts a protocol position to a byte offset, clamped to the
// content.
func toOffset(content []byte, pos protocol.Position) int {
	offset := 0
	for line := 0; line < int(pos.Line); line++ {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			return len(content)
		}
		offset += i + 1
	}
	units := int(pos.Character)
	for units > 0 && offset < len(content) && content[offset] != '\n' {
		r, size := utf8.DecodeRune(content[offset:])
		units -= utf16.RuneLen(r)
		offset += size
	}
	return offset
}

func toDiagnostics(f *File) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}
	src := diagnosticSource

	if f.ParseErr != nil {
		severity := protocol.DiagnosticSeverityError
		code := protocol.IntegerOrString{Value: f.ParseErr.Kind.String()}
		pos := toPosition(f.Content, f.ParseErr.Pos)
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Code:     &code,
			Source:   &src,
			Message:  f.ParseErr.Cause,
		})
		return diags
	}

	for _, d := range f.Doc.Diagnostics {
		severity := protocol.DiagnosticSeverityWarning
		code := protocol.IntegerOrString{Value: d.Kind.String()}
		pos := toPosition(f.Content, d.Pos)
		diags = append(diags, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Code:     &code,
			Source:   &src,
			Message:  d.Message,
		})
	}
	return diags
}

func symbolKind(s *document.Section) protocol.SymbolKind {
	switch s.Kind {
	case document.KindType:
		switch s.Type.Kind {
		case syntax.KindInterface, syntax.KindAnnotation:
			return protocol.SymbolKindInterface
		case syntax.KindEnum:
			return protocol.SymbolKindEnum
		case syntax.KindRecord:
			return protocol.SymbolKindStruct
		}
		return protocol.SymbolKindClass
	case document.KindField:
		return protocol.SymbolKindField
	case document.KindMethod:
		if s.Method.Constructor {
			return protocol.SymbolKindConstructor
		}
		return protocol.SymbolKindMethod
	case document.KindConstant:
		return protocol.SymbolKindEnumMember
	case document.KindStatement:
		return protocol.SymbolKindEvent
	}
	return protocol.SymbolKindNamespace
}

// toSymbols maps sections to document symbols. Only sections that are
// declarations or carry narrative are listed; the children of an
// unlisted section are lifted to its parent.
func toSymbols(content []byte, sections []*document.Section) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, s := range sections {
		children := toSymbols(content, s.Children)
		if !isDeclaration(s) && len(s.Narrative) == 0 {
			symbols = append(symbols, children...)
			continue
		}
		rng := toRange(content, s.Span)
		sym := protocol.DocumentSymbol{
			Name:           s.Title(),
			Kind:           symbolKind(s),
			Range:          rng,
			SelectionRange: rng,
			Children:       children,
		}
		if summary := summarize(s.Narrative); summary != "" {
			sym.Detail = &summary
		}
		if s.Doc != nil && s.Doc.Deprecated != "" {
			deprecated := true
			sym.Deprecated = &deprecated
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

func isDeclaration(s *document.Section) bool {
	switch s.Kind {
	case document.KindType, document.KindField, document.KindMethod, document.KindConstant:
		return true
	}
	return false
}

// summarize returns the first heading, or failing that the first line.
func summarize(lines []narrative.Line) string {
	for _, l := range lines {
		if l.Kind == narrative.KindHeading {
			return l.Text
		}
	}
	if len(lines) > 0 {
		return lines[0].Text
	}
	return ""
}

// sectionAt returns the innermost section containing offset.
func sectionAt(doc *document.Document, offset int) *document.Section {
	var found *document.Section
	doc.Walk(func(s *document.Section, depth int) bool {
		if s.Span.Start.Offset <= offset && offset < s.Span.End.Offset {
			found = s
			return true
		}
		return false
	})
	return found
}

func hoverText(s *document.Section) string {
	var sb strings.Builder
	sb.WriteString("**")
	sb.WriteString(s.Title())
	sb.WriteString("**\n")
	if s.Doc != nil && s.Doc.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(s.Doc.Description)
		sb.WriteString("\n")
	}
	if len(s.Narrative) > 0 {
		sb.WriteString("\n")
	}
	for _, l := range s.Narrative {
		switch l.Kind {
		case narrative.KindHeading:
			sb.WriteString("**" + l.Text + "**\n")
		case narrative.KindBranch:
			sb.WriteString("_" + l.Keyword + "_ " + l.Text + "\n")
		case narrative.KindAssignment:
			sb.WriteString("- `" + l.Assignment.Name + "` = `" + l.Assignment.Value + "`\n")
		default:
			sb.WriteString(l.Text + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
