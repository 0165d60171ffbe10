package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ddoc/design"
	"github.com/dhamidi/ddoc/profile"
)

func TestOutputNames(t *testing.T) {
	results := []design.Result{
		{Path: "a/Order.java"},
		{Path: "b/Order.java"},
		{Path: "Item.java"},
	}
	assert.Equal(t, []string{"Order.md", "Order.2.md", "Item.md"}, outputNames(results, "markdown"))
}

func TestRunParse(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte("class A {\n\t/// 説明\n\tint x;\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B.java"), []byte("class B { int y }"), 0o644))

	var stdout, stderr bytes.Buffer
	opts := parseOptions{format: "markdown", workers: 2, stdout: &stdout, stderr: &stderr}
	require.NoError(t, runParse(context.Background(), []string{dir}, profile.Java(), opts))

	assert.Contains(t, stdout.String(), "### field x\n")
	assert.Contains(t, stdout.String(), "### field y\n")
	assert.Contains(t, stderr.String(), "MissingSemicolon")
	assert.Contains(t, stderr.String(), "2 files")
}

func TestRunParseOutDir(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.java"), []byte("class A {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.java"), []byte("class Bad {"), 0o644))

	var stdout, stderr bytes.Buffer
	opts := parseOptions{format: "json", outDir: out, stdout: &stdout, stderr: &stderr}
	err := runParse(context.Background(), []string{dir}, profile.Java(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, stderr.String(), "UnexpectedEndOfUnit")
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(filepath.Join(out, "A.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "A"`)
	assert.NoFileExists(t, filepath.Join(out, "Bad.json"))
}
