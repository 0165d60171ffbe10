// Package source holds the positional and error vocabulary shared by every
// stage of the pipeline.
package source

import "fmt"

// Position is a location in a source unit. Line and Column are 1-based,
// Column counts bytes.
type Position struct {
	File   string `json:"-"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start.Offset, End.Offset).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

// Before reports whether s ends at or before the start of other.
func (s Span) Before(other Span) bool {
	return s.End.Offset <= other.Start.Offset
}
