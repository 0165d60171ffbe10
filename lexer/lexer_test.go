package lexer

import (
	"errors"
	"testing"

	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

func TestLexerPosition(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java", profile.Java())
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 || pos.Column != 1 || pos.Offset != 0 {
		t.Errorf("Position = %v, want 1:1 at offset 0", pos)
	}
}

func TestLexerTokenKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenKeyword},
		{"if", TokenKeyword},
		{"int", TokenKeyword},
		{"non-sealed", TokenKeyword},
		{"record", TokenIdent},
		{"foo", TokenIdent},
		{"$special", TokenIdent},
		{"変数", TokenIdent},
		{"42", TokenLiteral},
		{"0x1Fl", TokenLiteral},
		{"1.5e-3f", TokenLiteral},
		{"0x1.8p+3", TokenLiteral},
		{"1E+10", TokenLiteral},
		{`"hi \" there"`, TokenLiteral},
		{`'\n'`, TokenLiteral},
		{`"""` + "\ntext\n" + `"""`, TokenLiteral},
		{"(", TokenPunct},
		{"...", TokenPunct},
		{"::", TokenPunct},
		{">>>=", TokenOperator},
		{"->", TokenOperator},
		{"==", TokenOperator},
		{"// note", TokenLineComment},
		{"/* note */", TokenComment},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java", profile.Java())
			tok := lexer.NextToken()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerNumberSign(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"0xE-1", []string{"0xE", "-", "1"}},
		{"0xe+a", []string{"0xe", "+", "a"}},
		{"1e-1", []string{"1e-1"}},
		{"0x1p-1", []string{"0x1p-1"}},
		{"10-1", []string{"10", "-", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.java", profile.Java())
			var got []string
			for tok := lexer.NextToken(); tok.Kind != TokenEOF; tok = lexer.NextToken() {
				got = append(got, tok.Literal)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("tokens = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("tokens = %q, want %q", got, tt.want)
					break
				}
			}
		})
	}
}

func TestLexerSpans(t *testing.T) {
	lexer := NewLexer([]byte("a\n  bc"), "test.java", profile.Java())
	lexer.NextToken()
	tok := lexer.NextToken()

	if tok.Span.Start.Line != 2 || tok.Span.Start.Column != 3 {
		t.Errorf("Start = %v, want 2:3", tok.Span.Start)
	}
	if tok.Span.Start.Offset != 4 || tok.Span.End.Offset != 6 {
		t.Errorf("Offsets = [%d,%d), want [4,6)", tok.Span.Start.Offset, tok.Span.End.Offset)
	}
}

func TestTokenizeClassifiesComments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect Dialect
		lines   []string
	}{
		{"plain line", "// hello", PlainLine, []string{"hello"}},
		{"plain block", "/* hello */", PlainBlock, []string{"hello"}},
		{"empty block", "/**/", PlainBlock, []string{}},
		{"javadoc", "/**\n * Doc.\n */", Javadoc, []string{"Doc."}},
		{"narrative line", "/// # Title", NarrativeLine, []string{"# Title"}},
		{"narrative block", "/*/\n * ブロックコメント\n *\n * あいう\n */", NarrativeBlock, []string{"ブロックコメント", "", "あいう"}},
		{"narrative block beats javadoc", "/*/* x */", NarrativeBlock, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Tokenize([]byte(tt.input), "test.java", profile.Java())
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			if len(res.Comments) != 1 {
				t.Fatalf("got %d comments, want 1", len(res.Comments))
			}
			c := res.Comments[0]
			if c.Dialect != tt.dialect {
				t.Errorf("Dialect = %v, want %v", c.Dialect, tt.dialect)
			}
			if len(c.Lines) != len(tt.lines) {
				t.Fatalf("Lines = %q, want %q", c.Lines, tt.lines)
			}
			for i := range c.Lines {
				if c.Lines[i] != tt.lines[i] {
					t.Errorf("Lines[%d] = %q, want %q", i, c.Lines[i], tt.lines[i])
				}
			}
		})
	}
}

func TestTokenizeMergesNarrativeLines(t *testing.T) {
	input := "/// # なにか\n/// 記述文\n/// 変数A = \"365\"\n\n/// separate\nfoo();\n/// after code\n"
	res, err := Tokenize([]byte(input), "test.java", profile.Java())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(res.Comments))
	}

	first := res.Comments[0]
	if len(first.Lines) != 3 {
		t.Fatalf("first span has %d lines, want 3", len(first.Lines))
	}
	if first.Span.End.Line != 3 {
		t.Errorf("first span ends on line %d, want 3", first.Span.End.Line)
	}
	if first.Narrative[0].Kind != narrative.KindHeading || first.Narrative[0].Text != "なにか" {
		t.Errorf("Narrative[0] = %+v, want heading なにか", first.Narrative[0])
	}
	if a := first.Narrative[2].Assignment; a == nil || a.Name != "変数A" || a.Value != `"365"` {
		t.Errorf("Narrative[2] = %+v, want assignment 変数A", first.Narrative[2])
	}

	for i, c := range res.Comments[1:] {
		if len(c.Lines) != 1 {
			t.Errorf("comment %d has %d lines, want 1", i+1, len(c.Lines))
		}
	}
}

func TestTokenizeNarrativeAfterCodeOnSameLine(t *testing.T) {
	input := "x = 1; /// one\n/// two\n"
	res, err := Tokenize([]byte(input), "test.java", profile.Java())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Comments) != 1 || len(res.Comments[0].Lines) != 2 {
		t.Fatalf("Comments = %+v, want one span of two lines", res.Comments)
	}
}

func TestTokenizeCoversInput(t *testing.T) {
	input := "int a /* c */ = 0; // tail\n"
	res, err := Tokenize([]byte(input), "test.java", profile.Java())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	covered := make([]bool, len(input))
	mark := func(s source.Span) {
		for i := s.Start.Offset; i < s.End.Offset; i++ {
			if covered[i] {
				t.Fatalf("offset %d covered twice", i)
			}
			covered[i] = true
		}
	}
	for _, tok := range res.Tokens {
		mark(tok.Span)
	}
	for _, c := range res.Comments {
		mark(c.Span)
	}
	for i, ch := range []byte(input) {
		if !isSpace(ch) && !covered[i] {
			t.Errorf("offset %d (%q) not covered", i, ch)
		}
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != TokenEOF {
		t.Errorf("last token = %v, want EOF", last.Kind)
	}
}

func TestTokenizeUnterminatedComment(t *testing.T) {
	res, err := Tokenize([]byte("class A {}\n/* never closed"), "A.java", profile.Java())
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
	var perr *source.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *source.ParseError", err)
	}
	if perr.Kind != source.UnterminatedComment {
		t.Errorf("Kind = %v, want %v", perr.Kind, source.UnterminatedComment)
	}
	if perr.Pos.Line != 2 || perr.Pos.Column != 1 {
		t.Errorf("Pos = %v, want 2:1", perr.Pos)
	}
}

func TestTokenizeMalformedAssignmentIsRecovered(t *testing.T) {
	res, err := Tokenize([]byte("/// ok\n/// [category name = 1\n"), "A.java", profile.Java())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Kind != source.MalformedPseudoAssignment || d.Pos.Line != 2 {
		t.Errorf("diagnostic = %v, want MalformedPseudoAssignment on line 2", d)
	}
	if got := res.Comments[0].Narrative[1]; got.Kind != narrative.KindText {
		t.Errorf("malformed line kind = %v, want text", got.Kind)
	}
}
