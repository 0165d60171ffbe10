// Package javadoc extracts the description and block tags of a Javadoc
// comment. Inline tags are flattened to their text.
package javadoc

import (
	"strings"
	"unicode"
)

// Doc is the structured content of one Javadoc comment.
type Doc struct {
	Description string   `json:"description,omitempty"`
	Params      []Param  `json:"params,omitempty"`
	Returns     string   `json:"returns,omitempty"`
	Throws      []Throws `json:"throws,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	Since       string   `json:"since,omitempty"`
	Version     string   `json:"version,omitempty"`
	Deprecated  string   `json:"deprecated,omitempty"`
	Serial      string   `json:"serial,omitempty"`
	See         []string `json:"see,omitempty"`
	// Tags holds block tags with no dedicated field, in source order.
	Tags []Tag `json:"tags,omitempty"`
}

// Param documents a method parameter, or a type parameter when written as
// `@param <T>`.
type Param struct {
	Name        string `json:"name"`
	TypeParam   bool   `json:"type_param,omitempty"`
	Description string `json:"description,omitempty"`
}

type Throws struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// Parse reads the content lines of a Javadoc comment, delimiters and
// leading asterisks already removed.
func Parse(lines []string) *Doc {
	doc := &Doc{}
	var desc []string
	name := ""
	var body []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if name == "" {
			if text != "" {
				desc = append(desc, Flatten(text))
			}
		} else {
			doc.addTag(name, text)
		}
		body = body[:0]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if tag, rest, ok := blockTag(trimmed); ok {
			flush()
			name = tag
			body = append(body, rest)
			continue
		}
		body = append(body, trimmed)
	}
	flush()

	doc.Description = strings.Join(desc, "\n")
	return doc
}

// blockTag recognises `@name rest` at the start of a line.
func blockTag(line string) (name, rest string, ok bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	end := 1
	for end < len(line) && isTagChar(rune(line[end])) {
		end++
	}
	if end == 1 {
		return "", "", false
	}
	return line[1:end], strings.TrimSpace(line[end:]), true
}

func isTagChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.'
}

func (d *Doc) addTag(name, value string) {
	value = Flatten(value)
	switch name {
	case "param":
		d.Params = append(d.Params, parseParam(value))
	case "return":
		d.Returns = value
	case "throws", "exception":
		typ, desc := cutField(value)
		d.Throws = append(d.Throws, Throws{Type: typ, Description: desc})
	case "author":
		for _, a := range strings.Split(value, ",") {
			if a = strings.TrimSpace(a); a != "" {
				d.Authors = append(d.Authors, a)
			}
		}
	case "since":
		d.Since = value
	case "version":
		d.Version = value
	case "deprecated":
		d.Deprecated = value
	case "serial":
		d.Serial = value
	case "see":
		d.See = append(d.See, value)
	default:
		d.Tags = append(d.Tags, Tag{Name: name, Value: value})
	}
}

func parseParam(value string) Param {
	name, desc := cutField(value)
	if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") && len(name) > 2 {
		return Param{Name: name[1 : len(name)-1], TypeParam: true, Description: desc}
	}
	return Param{Name: name, Description: desc}
}

// cutField splits off the first whitespace-delimited word.
func cutField(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// Flatten replaces inline tags such as {@code x} and {@link Ref label} with
// their text. Unknown inline tags keep their content.
func Flatten(s string) string {
	if !strings.Contains(s, "{@") {
		return s
	}
	p := &flattener{input: []rune(s)}
	return p.content(false)
}

type flattener struct {
	input []rune
	pos   int
}

func (p *flattener) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *flattener) peekAt(n int) rune {
	if p.pos+n >= len(p.input) {
		return 0
	}
	return p.input[p.pos+n]
}

func (p *flattener) atEnd() bool {
	return p.pos >= len(p.input)
}

// content reads text up to the end of input, or up to the unmatched '}'
// closing an inline tag when nested is set.
func (p *flattener) content(nested bool) string {
	var b strings.Builder
	depth := 0
	for !p.atEnd() {
		ch := p.peek()
		switch {
		case ch == '{' && p.peekAt(1) == '@':
			b.WriteString(p.inlineTag())
			continue
		case ch == '{':
			depth++
		case ch == '}' && nested:
			if depth == 0 {
				p.pos++
				return b.String()
			}
			depth--
		}
		b.WriteRune(ch)
		p.pos++
	}
	return b.String()
}

func (p *flattener) inlineTag() string {
	p.pos += 2
	start := p.pos
	for !p.atEnd() && isTagChar(p.peek()) {
		p.pos++
	}
	name := string(p.input[start:p.pos])
	for !p.atEnd() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
	body := p.content(true)

	switch name {
	case "link", "linkplain":
		ref, label := cutField(body)
		if label != "" {
			return label
		}
		return strings.TrimPrefix(strings.ReplaceAll(ref, "#", "."), ".")
	case "docRoot", "inheritDoc":
		return ""
	default:
		return body
	}
}
