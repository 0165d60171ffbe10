package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ddoc/bind"
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/narrative"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/syntax"
)

func build(t *testing.T, src string) *Document {
	t.Helper()
	prof := profile.Java()
	res, err := lexer.Tokenize([]byte(src), "Test.java", prof)
	require.NoError(t, err)
	tree, diags, err := syntax.Parse(res, "Test.java", prof)
	require.NoError(t, err)
	return Build(tree, res.Comments, bind.Bind(tree, res.Comments), diags)
}

func titles(doc *Document) []string {
	var out []string
	doc.Walk(func(s *Section, depth int) bool {
		out = append(out, s.Title())
		return true
	})
	return out
}

func TestBuildOrderFollowsSource(t *testing.T) {
	doc := build(t, `package demo;
import java.util.List;

class A {
	int x;
	enum E { ONE, TWO }
	A() {}
	void m(List<String> items) {
		for (String s : items) {
			if (s.isEmpty()) {
				continue;
			} else {
				use(s);
			}
		}
		switch (x) {
		case 1:
			return;
		default:
			break;
		}
	}
	class Inner {}
}`)

	assert.Equal(t, "demo", doc.Package)
	assert.Equal(t, []string{"java.util.List"}, doc.Imports)
	assert.Equal(t, []string{
		"class A",
		"field x",
		"enum E",
		"constant ONE",
		"constant TWO",
		"constructor A",
		"method m",
		"for-each loop",
		"if",
		"if (s.isEmpty())",
		"statement continue",
		"else",
		"switch (x)",
		"case 1",
		"statement return",
		"case default",
		"statement break",
		"class Inner",
	}, titles(doc))
}

func TestBuildNarrativeNeverNil(t *testing.T) {
	doc := build(t, `class A {
	int a, b;
	void m() { if (x) { y(); } switch (k) { case 1: break; } }
}`)

	require.NotNil(t, doc.Narrative)
	require.NotEmpty(t, doc.Sections)
	doc.Walk(func(s *Section, depth int) bool {
		assert.NotNil(t, s.Narrative, "section %s", s.Title())
		assert.Empty(t, s.Narrative, "section %s", s.Title())
		return true
	})
}

func TestBuildCarriesParsedNarrative(t *testing.T) {
	doc := build(t, `class A {
	/// # 処理概要
	/// ## 詳細
	/// 顧客を検索する
	/// [入力] id = 顧客ID
	void find(int id) {
		/// if 見つかった場合
		if (found) {
			/// 結果 = 顧客
			return;
		}
	}
}`)

	find := doc.Sections[0].Children[0]
	require.Equal(t, KindMethod, find.Kind)
	assert.Equal(t, []narrative.Line{
		{Kind: narrative.KindHeading, Level: 1, Text: "処理概要"},
		{Kind: narrative.KindHeading, Level: 2, Text: "詳細"},
		{Kind: narrative.KindText, Text: "顧客を検索する"},
		{Kind: narrative.KindAssignment, Text: "[入力] id = 顧客ID",
			Assignment: &narrative.Assignment{Category: "入力", Name: "id", Value: "顧客ID"}},
	}, find.Narrative)

	branch := find.Children[0].Children[0]
	require.Equal(t, KindBranch, branch.Kind)
	assert.Equal(t, []narrative.Line{
		{Kind: narrative.KindBranch, Keyword: "if", Text: "見つかった場合"},
	}, branch.Narrative)

	ret := branch.Children[0]
	require.Equal(t, KindStatement, ret.Kind)
	require.Len(t, ret.Narrative, 1)
	assert.Equal(t, "結果", ret.Narrative[0].Assignment.Name)
}

func TestBuildKeepsNarratedStatementsOnly(t *testing.T) {
	doc := build(t, `class A {
	void m() {
		a();
		/// important
		b();
		throw new X();
	}
}`)

	m := doc.Sections[0].Children[0]
	require.Len(t, m.Children, 2)
	assert.Equal(t, "b()", m.Children[0].Statement.Text)
	assert.Equal(t, "throw", m.Children[1].Statement.Keyword)
}

func TestBuildJavadoc(t *testing.T) {
	doc := build(t, `/**
 * Greets people.
 * @author Alice
 */
class Greeter {
	/**
	 * Says hello.
	 * @param name who to greet
	 * @return the greeting
	 */
	String greet(String name) { return "hi " + name; }
}`)

	greeter := doc.Sections[0]
	require.NotNil(t, greeter.Doc)
	assert.Equal(t, "Greets people.", greeter.Doc.Description)
	assert.Equal(t, []string{"Alice"}, greeter.Doc.Authors)

	greet := greeter.Children[0]
	require.NotNil(t, greet.Doc)
	assert.Equal(t, "Says hello.", greet.Doc.Description)
	require.Len(t, greet.Doc.Params, 1)
	assert.Equal(t, "name", greet.Doc.Params[0].Name)
	assert.Equal(t, "the greeting", greet.Doc.Returns)
}

func TestBuildFieldGroupSharesNarrative(t *testing.T) {
	doc := build(t, `class A {
	/// 初期値
	int a = 0, b = 2;
}`)

	fields := doc.Sections[0].Children
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Name)
	assert.Equal(t, "b", fields[1].Name)
	assert.Equal(t, fields[0].Narrative, fields[1].Narrative)
	assert.Equal(t, "初期値", fields[1].Narrative[0].Text)
}

func TestBuildUnitNarrative(t *testing.T) {
	doc := build(t, "class A {}\n/// trailing note\n")
	require.Len(t, doc.Narrative, 1)
	assert.Equal(t, "trailing note", doc.Narrative[0].Text)
}
