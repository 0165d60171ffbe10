package lexer

import (
	"strings"

	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

// Result is the output of Tokenize. Token and comment ranges never overlap
// and together cover every non-blank byte of the input.
type Result struct {
	Tokens      []Token
	Comments    []Comment
	Diagnostics []source.Diagnostic
}

// Tokenize scans input whole. A fatal error yields no partial result.
func Tokenize(input []byte, file string, prof *profile.Profile) (*Result, error) {
	l := NewLexer(input, file, prof)
	m := prof.Markers
	res := &Result{}
	var starts [][]source.Position
	open := -1

	for {
		newlines := l.skipWhitespace()
		tok := l.next()
		if err := l.Err(); err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenLineComment:
			if strings.HasPrefix(tok.Literal, m.NarrativeLine) {
				content := strings.TrimSpace(strings.TrimPrefix(tok.Literal, m.NarrativeLine))
				if open >= 0 && newlines == 1 {
					c := &res.Comments[open]
					c.Lines = append(c.Lines, content)
					c.Span.End = tok.Span.End
					starts[open] = append(starts[open], tok.Span.Start)
				} else {
					res.Comments = append(res.Comments, Comment{
						Dialect: NarrativeLine,
						Span:    tok.Span,
						Lines:   []string{content},
					})
					starts = append(starts, []source.Position{tok.Span.Start})
					open = len(res.Comments) - 1
				}
				continue
			}
			res.Comments = append(res.Comments, Comment{
				Dialect: PlainLine,
				Span:    tok.Span,
				Lines:   []string{strings.TrimSpace(strings.TrimPrefix(tok.Literal, m.Line))},
			})
			starts = append(starts, nil)

		case TokenComment:
			c, first := classifyBlock(tok, m)
			res.Comments = append(res.Comments, c)
			var pos []source.Position
			for i := range c.Lines {
				p := tok.Span.Start
				p.Line += first + i
				pos = append(pos, p)
			}
			starts = append(starts, pos)

		default:
			res.Tokens = append(res.Tokens, tok)
		}
		open = -1
		if tok.Kind == TokenEOF {
			break
		}
	}

	np := narrative.NewParser(m.Heading, prof.BranchLabels())
	for i := range res.Comments {
		c := &res.Comments[i]
		if !c.Dialect.IsNarrative() {
			continue
		}
		c.Narrative = []narrative.Line{}
		for j, text := range c.Lines {
			if text == "" {
				continue
			}
			line, problem := np.Parse(text)
			if problem != "" {
				res.Diagnostics = append(res.Diagnostics, source.Diagnostic{
					Kind:    source.MalformedPseudoAssignment,
					Pos:     starts[i][j],
					Message: problem + ": " + text,
				})
			}
			c.Narrative = append(c.Narrative, line)
		}
	}
	return res, nil
}

// classifyBlock applies the block-comment precedence: narrative marker,
// then Javadoc, then plain. first is the line offset of Lines[0] from the
// comment start.
func classifyBlock(tok Token, m profile.Markers) (Comment, int) {
	raw := tok.Literal
	c := Comment{Span: tok.Span}
	var first int
	switch {
	case strings.HasPrefix(raw, m.NarrativeBlock):
		c.Dialect = NarrativeBlock
		c.Lines, first = blockLines(raw, m.NarrativeBlock, m.BlockClose)
	case strings.HasPrefix(raw, m.Javadoc) && raw != m.BlockOpen+m.BlockClose:
		c.Dialect = Javadoc
		c.Lines, first = blockLines(raw, m.Javadoc, m.BlockClose)
	default:
		c.Dialect = PlainBlock
		c.Lines, first = blockLines(raw, m.BlockOpen, m.BlockClose)
	}
	if c.Lines == nil {
		c.Lines = []string{}
	}
	return c, first
}
