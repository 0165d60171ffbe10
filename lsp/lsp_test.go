package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
)

const sample = `class Greeter {
	/// 挨拶文
	String text;

	/**
	 * @deprecated use hello
	 */
	void greet() {
		/// # 出力
		System.out.println(text);
		foo();
	}
}
`

func newWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(profile.Java(), 8)
	require.NoError(t, err)
	return ws
}

func TestWorkspaceUpdateFile(t *testing.T) {
	ws := newWorkspace(t)

	f := ws.UpdateFile("Greeter.java", []byte(sample))
	require.NotNil(t, f.Doc)
	assert.Nil(t, f.ParseErr)
	assert.Same(t, f, ws.GetFile("Greeter.java"))

	again := ws.UpdateFile("Greeter.java", []byte(sample))
	assert.Same(t, f.Doc, again.Doc)

	broken := ws.UpdateFile("Greeter.java", []byte("class Greeter {"))
	assert.Nil(t, broken.Doc)
	require.NotNil(t, broken.ParseErr)
	assert.Equal(t, source.UnexpectedEndOfUnit, broken.ParseErr.Kind)

	ws.RemoveFile("Greeter.java")
	assert.Nil(t, ws.GetFile("Greeter.java"))
}

func TestWorkspaceScanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Greeter.java")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	ws := newWorkspace(t)
	f, err := ws.ScanFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Doc.File)

	_, err = ws.ScanFile(filepath.Join(t.TempDir(), "missing.java"))
	assert.Error(t, err)
}

func TestToDiagnostics(t *testing.T) {
	ws := newWorkspace(t)

	f := ws.UpdateFile("A.java", []byte("class A {\n\tint x\n}\n"))
	diags := toDiagnostics(f)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Equal(t, "MissingSemicolon", diags[0].Code.Value)

	f = ws.UpdateFile("A.java", []byte("class A {}\n/* 未完"))
	diags = toDiagnostics(f)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Equal(t, protocol.Position{Line: 1, Character: 0}, diags[0].Range.Start)

	f = ws.UpdateFile("A.java", []byte(sample))
	assert.Empty(t, toDiagnostics(f))
}

func TestToSymbols(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("Greeter.java", []byte(sample))

	symbols := toSymbols(f.Content, f.Doc.Sections)
	require.Len(t, symbols, 1)
	class := symbols[0]
	assert.Equal(t, "class Greeter", class.Name)
	assert.Equal(t, protocol.SymbolKindClass, class.Kind)

	require.Len(t, class.Children, 2)
	field := class.Children[0]
	assert.Equal(t, protocol.SymbolKindField, field.Kind)
	require.NotNil(t, field.Detail)
	assert.Equal(t, "挨拶文", *field.Detail)

	method := class.Children[1]
	assert.Equal(t, protocol.SymbolKindMethod, method.Kind)
	require.NotNil(t, method.Deprecated)
	assert.True(t, *method.Deprecated)

	require.Len(t, method.Children, 1)
	assert.Equal(t, "出力", *method.Children[0].Detail)
	assert.Equal(t, protocol.UInteger(9), method.Children[0].Range.Start.Line)
}

func TestPositions(t *testing.T) {
	content := []byte("a\n日本x\n")
	pos := source.Position{Offset: 8, Line: 2, Column: 7}

	p := toPosition(content, pos)
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, p)
	assert.Equal(t, 8, toOffset(content, p))
	assert.Equal(t, len(content), toOffset(content, protocol.Position{Line: 5}))
	assert.Equal(t, 1, toOffset(content, protocol.Position{Line: 0, Character: 9}))
}

func TestHover(t *testing.T) {
	ws := newWorkspace(t)
	f := ws.UpdateFile("Greeter.java", []byte(sample))

	s := sectionAt(f.Doc, toOffset(f.Content, protocol.Position{Line: 9, Character: 4}))
	require.NotNil(t, s)
	assert.Equal(t, "statement", s.Title())
	assert.Equal(t, "**statement**\n\n**出力**", hoverText(s))

	s = sectionAt(f.Doc, toOffset(f.Content, protocol.Position{Line: 2, Character: 2}))
	require.NotNil(t, s)
	assert.Equal(t, "**field text**\n\n挨拶文", hoverText(s))

	assert.Nil(t, sectionAt(f.Doc, len(f.Content)))
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/A.java")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a b/A.java", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)
}
