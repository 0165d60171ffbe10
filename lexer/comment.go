package lexer

import (
	"regexp"
	"strings"

	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/source"
)

type Dialect int

const (
	PlainLine Dialect = iota
	PlainBlock
	Javadoc
	NarrativeLine
	NarrativeBlock
)

var dialectNames = map[Dialect]string{
	PlainLine:      "plain-line",
	PlainBlock:     "plain-block",
	Javadoc:        "javadoc",
	NarrativeLine:  "narrative-line",
	NarrativeBlock: "narrative-block",
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return "unknown"
}

func (d Dialect) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Dialect) IsNarrative() bool {
	return d == NarrativeLine || d == NarrativeBlock
}

// Comment is a classified comment span. Lines hold the content with
// markers and decoration removed; Narrative is filled for narrative
// dialects only.
type Comment struct {
	Dialect   Dialect          `json:"dialect"`
	Span      source.Span      `json:"span"`
	Lines     []string         `json:"lines"`
	Narrative []narrative.Line `json:"narrative,omitempty"`
}

var reNewline = regexp.MustCompile("\r\n|\r|\n")

// blockLines strips the opening and closing delimiters of a block comment
// and the leading `*` decoration of every line. Leading and trailing blank
// lines are dropped; skipped reports how many leading lines went.
func blockLines(raw, open, close string) (lines []string, skipped int) {
	body := strings.TrimPrefix(raw, open)
	body = strings.TrimSuffix(body, close)

	for _, l := range reNewline.Split(body, -1) {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "*")
		lines = append(lines, strings.TrimSpace(l))
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
		skipped++
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, skipped
}
