// Package narrative parses the content lines of design-narrative comments
// into headings, branch labels, pseudo-assignments and free text.
package narrative

import (
	"regexp"
	"strings"
	"unicode"
)

type Kind int

const (
	KindText Kind = iota
	KindHeading
	KindBranch
	KindAssignment
)

var kindNames = map[Kind]string{
	KindText:       "text",
	KindHeading:    "heading",
	KindBranch:     "branch",
	KindAssignment: "assignment",
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

// Assignment is a design-level variable description, `[category] name = value`.
type Assignment struct {
	Category string `json:"category,omitempty"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// Line is one parsed narrative content line.
type Line struct {
	Kind Kind `json:"kind"`
	// Text is the heading title, the text following a branch keyword, or the
	// whole line for free text and assignments.
	Text       string      `json:"text"`
	Level      int         `json:"level,omitempty"`
	Keyword    string      `json:"keyword,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
}

// Parser classifies content lines. It holds no per-call state.
type Parser struct {
	heading  string
	branches []string
}

// NewParser returns a parser recognising headings introduced by heading and
// branch labels introduced by any of branches. Branch keywords are matched
// in the given order, so longer keywords ("else if") must come first.
func NewParser(heading string, branches []string) *Parser {
	return &Parser{heading: heading, branches: branches}
}

var (
	reCategorized = regexp.MustCompile(`^\[([^\]]*)\]\s*(.*)$`)
	reAssignment  = regexp.MustCompile(`^(\S|\S.*?\S)\s*=\s*(\S.*)$`)
)

// Parse classifies a single line. The second result is non-empty when the
// line looked like a pseudo-assignment but could not be read as one; the
// line is then returned as free text.
func (p *Parser) Parse(content string) (Line, string) {
	content = strings.TrimSpace(content)

	if p.heading != "" && strings.HasPrefix(content, p.heading) {
		level := 0
		rest := content
		for strings.HasPrefix(rest, p.heading) {
			level++
			rest = rest[len(p.heading):]
		}
		return Line{Kind: KindHeading, Level: level, Text: strings.TrimSpace(rest)}, ""
	}

	for _, kw := range p.branches {
		if rest, ok := cutWord(content, kw); ok {
			return Line{Kind: KindBranch, Keyword: kw, Text: rest}, ""
		}
	}

	if a, problem := parseAssignment(content); a != nil {
		return Line{Kind: KindAssignment, Text: content, Assignment: a}, ""
	} else if problem != "" {
		return Line{Kind: KindText, Text: content}, problem
	}

	return Line{Kind: KindText, Text: content}, ""
}

func parseAssignment(content string) (*Assignment, string) {
	if !hasAssignOp(content) {
		return nil, ""
	}

	category := ""
	rest := content
	if strings.HasPrefix(content, "[") {
		m := reCategorized.FindStringSubmatch(content)
		if m == nil {
			return nil, "unclosed category bracket"
		}
		category = strings.TrimSpace(m[1])
		rest = m[2]
		if category == "" {
			return nil, "empty category"
		}
	}

	m := reAssignment.FindStringSubmatch(rest)
	if m == nil {
		return nil, "assignment needs a name and a value"
	}
	return &Assignment{Category: category, Name: m[1], Value: strings.TrimSpace(m[2])}, ""
}

// hasAssignOp reports whether s contains a lone '=' that is not part of a
// comparison or compound operator.
func hasAssignOp(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.IndexByte("=!<>+-*/%&|^", s[i-1]) >= 0 {
			continue
		}
		return true
	}
	return false
}

// cutWord strips kw from the front of s when it is followed by a word
// boundary.
func cutWord(s, kw string) (string, bool) {
	if kw == "" || !strings.HasPrefix(s, kw) {
		return "", false
	}
	rest := s[len(kw):]
	if rest == "" {
		return "", true
	}
	r := []rune(rest)[0]
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
