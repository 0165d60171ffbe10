// Package document holds the detailed-design model produced for one source
// unit, and the builder that derives it from a bound syntax tree.
package document

import (
	"github.com/dhamidi/ddoc/javadoc"
	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/source"
	"github.com/dhamidi/ddoc/syntax"
)

type Kind int

const (
	KindType Kind = iota
	KindField
	KindMethod
	KindConstant
	KindIf
	KindBranch
	KindSwitch
	KindCase
	KindBlock
	KindLoop
	KindStatement
)

var kindNames = map[Kind]string{
	KindType:      "type",
	KindField:     "field",
	KindMethod:    "method",
	KindConstant:  "constant",
	KindIf:        "if",
	KindBranch:    "branch",
	KindSwitch:    "switch",
	KindCase:      "case",
	KindBlock:     "block",
	KindLoop:      "loop",
	KindStatement: "statement",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Document is the design model of one unit. It is not modified after Build
// returns.
type Document struct {
	File    string   `json:"file,omitempty"`
	Package string   `json:"package,omitempty"`
	Imports []string `json:"imports,omitempty"`
	// Narrative holds unit-level narrative not bound to any declaration.
	Narrative   []narrative.Line    `json:"narrative"`
	Sections    []*Section          `json:"sections"`
	Diagnostics []source.Diagnostic `json:"diagnostics,omitempty"`
}

// Section is one declaration or control construct. Exactly one of the
// detail pointers is set, matching Kind.
type Section struct {
	Kind      Kind             `json:"kind"`
	Name      string           `json:"name,omitempty"`
	Span      source.Span      `json:"span"`
	Narrative []narrative.Line `json:"narrative"`
	Doc       *javadoc.Doc     `json:"doc,omitempty"`

	Type      *syntax.TypeDecl     `json:"type,omitempty"`
	Field     *syntax.FieldDecl    `json:"field,omitempty"`
	Method    *syntax.MethodDecl   `json:"method,omitempty"`
	Constant  *syntax.EnumConstant `json:"constant,omitempty"`
	Branch    *syntax.Branch       `json:"branch,omitempty"`
	Switch    *syntax.SwitchBlock  `json:"switch,omitempty"`
	Case      *syntax.CaseGroup    `json:"case,omitempty"`
	Block     *syntax.Block        `json:"block,omitempty"`
	Loop      *syntax.Loop         `json:"loop,omitempty"`
	Statement *syntax.Statement    `json:"statement,omitempty"`

	Children []*Section `json:"children,omitempty"`
}

// Walk visits sections depth first in source order. Returning false from
// fn skips the children of s.
func (d *Document) Walk(fn func(s *Section, depth int) bool) {
	var visit func(s *Section, depth int)
	visit = func(s *Section, depth int) {
		if !fn(s, depth) {
			return
		}
		for _, c := range s.Children {
			visit(c, depth+1)
		}
	}
	for _, s := range d.Sections {
		visit(s, 0)
	}
}

// Title returns a short human readable heading for s.
func (s *Section) Title() string {
	switch s.Kind {
	case KindType:
		return s.Type.Kind.String() + " " + s.Name
	case KindMethod:
		if s.Method.Constructor {
			return "constructor " + s.Name
		}
		return "method " + s.Name
	case KindField:
		return "field " + s.Name
	case KindConstant:
		return "constant " + s.Name
	case KindBranch:
		if s.Branch.Condition == "" {
			return s.Branch.Keyword
		}
		return s.Branch.Keyword + " (" + s.Branch.Condition + ")"
	case KindSwitch:
		return "switch (" + s.Switch.Selector + ")"
	case KindLoop:
		return s.Loop.Kind.String() + " loop"
	}
	if s.Name == "" {
		return s.Kind.String()
	}
	return s.Kind.String() + " " + s.Name
}
