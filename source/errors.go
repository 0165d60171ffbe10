package source

import "fmt"

type ErrorKind int

const (
	// Fatal kinds abort the unit.
	UnterminatedComment ErrorKind = iota + 1
	UnmatchedDelimiter
	UnexpectedEndOfUnit

	// Recovered kinds are reported as diagnostics.
	MalformedPseudoAssignment
	OrphanJavadoc
	UnrecognizedMember
	MissingSemicolon
)

var errorKindNames = map[ErrorKind]string{
	UnterminatedComment:       "UnterminatedComment",
	UnmatchedDelimiter:        "UnmatchedDelimiter",
	UnexpectedEndOfUnit:       "UnexpectedEndOfUnit",
	MalformedPseudoAssignment: "MalformedPseudoAssignment",
	OrphanJavadoc:             "OrphanJavadoc",
	UnrecognizedMember:        "UnrecognizedMember",
	MissingSemicolon:          "MissingSemicolon",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Fatal reports whether an error of this kind aborts the parse of a unit.
func (k ErrorKind) Fatal() bool {
	return k == UnterminatedComment || k == UnmatchedDelimiter || k == UnexpectedEndOfUnit
}

// ParseError is returned for fatal problems. No document is produced
// alongside it.
type ParseError struct {
	Kind  ErrorKind
	Pos   Position
	Cause string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Cause)
}

func Errorf(kind ErrorKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Cause: fmt.Sprintf(format, args...)}
}

// Diagnostic records a recovered anomaly. The content it refers to is kept
// in the document in degraded form.
type Diagnostic struct {
	Kind    ErrorKind `json:"kind"`
	Pos     Position  `json:"pos"`
	Message string    `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
}
