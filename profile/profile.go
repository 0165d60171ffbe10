// Package profile describes the comment markers and keyword set of a
// C-family source dialect. A Profile is read-only once constructed and may be
// shared by any number of concurrent parses.
package profile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Markers are the comment delimiters of a dialect.
type Markers struct {
	Line           string `yaml:"line"`
	BlockOpen      string `yaml:"block_open"`
	BlockClose     string `yaml:"block_close"`
	NarrativeLine  string `yaml:"narrative_line"`
	NarrativeBlock string `yaml:"narrative_block"`
	Javadoc        string `yaml:"javadoc"`
	Heading        string `yaml:"heading"`
}

// Keywords names the words the structural parser keys on.
type Keywords struct {
	If           string `yaml:"if"`
	Else         string `yaml:"else"`
	Switch       string `yaml:"switch"`
	Case         string `yaml:"case"`
	Default      string `yaml:"default"`
	For          string `yaml:"for"`
	While        string `yaml:"while"`
	Do           string `yaml:"do"`
	Break        string `yaml:"break"`
	Continue     string `yaml:"continue"`
	Return       string `yaml:"return"`
	Throw        string `yaml:"throw"`
	Yield        string `yaml:"yield"`
	Assert       string `yaml:"assert"`
	Try          string `yaml:"try"`
	Catch        string `yaml:"catch"`
	Finally      string `yaml:"finally"`
	Synchronized string `yaml:"synchronized"`
	Static       string `yaml:"static"`
	Class        string `yaml:"class"`
	Interface    string `yaml:"interface"`
	Enum         string `yaml:"enum"`
	Record       string `yaml:"record"`
	Extends      string `yaml:"extends"`
	Implements   string `yaml:"implements"`
	Permits      string `yaml:"permits"`
	Throws       string `yaml:"throws"`
	Package      string `yaml:"package"`
	Import       string `yaml:"import"`
	This         string `yaml:"this"`
	New          string `yaml:"new"`
}

type Profile struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Markers    Markers  `yaml:"markers"`
	Keywords   Keywords `yaml:"keywords"`
	// Modifiers may precede a declaration.
	Modifiers []string `yaml:"modifiers"`
	// Primitives are reserved words usable as type names.
	Primitives []string `yaml:"primitives"`
	// Reserved lists any further reserved words that lex as keywords.
	Reserved []string `yaml:"reserved"`

	keywords  map[string]struct{}
	modifiers map[string]struct{}
}

// Java returns the profile for Java sources.
func Java() *Profile {
	p := &Profile{
		Name:       "java",
		Extensions: []string{".java"},
		Markers: Markers{
			Line:           "//",
			BlockOpen:      "/*",
			BlockClose:     "*/",
			NarrativeLine:  "///",
			NarrativeBlock: "/*/",
			Javadoc:        "/**",
			Heading:        "#",
		},
		Keywords: Keywords{
			If:           "if",
			Else:         "else",
			Switch:       "switch",
			Case:         "case",
			Default:      "default",
			For:          "for",
			While:        "while",
			Do:           "do",
			Break:        "break",
			Continue:     "continue",
			Return:       "return",
			Throw:        "throw",
			Yield:        "yield",
			Assert:       "assert",
			Try:          "try",
			Catch:        "catch",
			Finally:      "finally",
			Synchronized: "synchronized",
			Static:       "static",
			Class:        "class",
			Interface:    "interface",
			Enum:         "enum",
			Record:       "record",
			Extends:      "extends",
			Implements:   "implements",
			Permits:      "permits",
			Throws:       "throws",
			Package:      "package",
			Import:       "import",
			This:         "this",
			New:          "new",
		},
		Modifiers: []string{
			"public", "protected", "private", "static", "final", "abstract",
			"native", "synchronized", "transient", "volatile", "strictfp",
			"default", "sealed", "non-sealed",
		},
		Primitives: []string{
			"boolean", "byte", "char", "short", "int", "long", "float", "double", "void",
		},
		Reserved: []string{
			"const", "goto", "instanceof", "super", "true", "false", "null",
		},
	}
	p.index()
	return p
}

// contextual words stay identifiers so that they remain usable as names.
var contextual = map[string]bool{
	"record": true, "yield": true, "sealed": true, "permits": true,
}

func (p *Profile) index() {
	p.keywords = make(map[string]struct{})
	p.modifiers = make(map[string]struct{})
	for _, m := range p.Modifiers {
		p.modifiers[m] = struct{}{}
	}
	add := func(words ...string) {
		for _, w := range words {
			if w != "" && !contextual[w] {
				p.keywords[w] = struct{}{}
			}
		}
	}
	k := p.Keywords
	add(k.If, k.Else, k.Switch, k.Case, k.Default, k.For, k.While, k.Do,
		k.Break, k.Continue, k.Return, k.Throw, k.Yield, k.Assert, k.Try,
		k.Catch, k.Finally, k.Synchronized, k.Static, k.Class, k.Interface,
		k.Enum, k.Record, k.Extends, k.Implements, k.Permits, k.Throws,
		k.Package, k.Import, k.This, k.New)
	add(p.Modifiers...)
	add(p.Primitives...)
	add(p.Reserved...)
}

// IsKeyword reports whether word lexes as a keyword.
func (p *Profile) IsKeyword(word string) bool {
	_, ok := p.keywords[word]
	return ok
}

func (p *Profile) IsModifier(word string) bool {
	_, ok := p.modifiers[word]
	return ok
}

func (p *Profile) IsPrimitive(word string) bool {
	for _, w := range p.Primitives {
		if w == word {
			return true
		}
	}
	return false
}

// BranchLabels returns the narrative branch keywords, longest first.
func (p *Profile) BranchLabels() []string {
	k := p.Keywords
	return []string{k.Else + " " + k.If, k.If, k.Else}
}

// Validate checks that the markers needed for classification are present.
func (p *Profile) Validate() error {
	m := p.Markers
	switch {
	case m.Line == "":
		return fmt.Errorf("profile %q: missing line comment marker", p.Name)
	case m.BlockOpen == "" || m.BlockClose == "":
		return fmt.Errorf("profile %q: missing block comment delimiters", p.Name)
	case m.NarrativeLine == "" || !strings.HasPrefix(m.NarrativeLine, m.Line):
		return fmt.Errorf("profile %q: narrative line marker %q must extend %q", p.Name, m.NarrativeLine, m.Line)
	case m.NarrativeBlock == "" || !strings.HasPrefix(m.NarrativeBlock, m.BlockOpen):
		return fmt.Errorf("profile %q: narrative block marker %q must extend %q", p.Name, m.NarrativeBlock, m.BlockOpen)
	case m.Javadoc == "" || !strings.HasPrefix(m.Javadoc, m.BlockOpen):
		return fmt.Errorf("profile %q: javadoc marker %q must extend %q", p.Name, m.Javadoc, m.BlockOpen)
	case p.Keywords.If == "" || p.Keywords.Else == "" || p.Keywords.Switch == "" || p.Keywords.Case == "" || p.Keywords.Default == "":
		return fmt.Errorf("profile %q: conditional keywords are required", p.Name)
	}
	return nil
}

// Load reads a YAML profile. Fields absent from the document keep their
// Java defaults.
func Load(r io.Reader) (*Profile, error) {
	p := Java()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.index()
	return p, nil
}

func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Encode writes p as YAML.
func (p *Profile) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return enc.Close()
}
