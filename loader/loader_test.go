package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ddoc/profile"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b", "B.java"), "class B {}")
	writeFile(t, filepath.Join(dir, "A.java"), "class A {}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".git", "C.java"), "class C {}")
	extra := filepath.Join(t.TempDir(), "Extra.jav")
	writeFile(t, extra, "class Extra {}")

	files, err := Discover([]string{dir, extra, dir}, profile.Java())
	require.NoError(t, err)

	want := []string{filepath.Join(dir, "A.java"), filepath.Join(dir, "b", "B.java"), extra}
	assert.ElementsMatch(t, want, files)
	assert.IsNonDecreasing(t, files)
}

func TestDiscoverMissing(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "missing")}, profile.Java())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.java"), "class A {}")

	units, err := Load([]string{dir}, profile.Java())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, filepath.Join(dir, "A.java"), units[0].Path)
	assert.Equal(t, "class A {}", string(units[0].Src))
}

func TestMatches(t *testing.T) {
	prof := profile.Java()
	assert.True(t, Matches("x/Y.java", prof))
	assert.True(t, Matches("Y.JAVA", prof))
	assert.False(t, Matches("Y.kt", prof))
}

func TestWatcherPoll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.java")
	writeFile(t, a, "class A {}")

	w := NewWatcher([]string{dir}, profile.Java(), time.Millisecond)
	changed, err := w.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{a}, changed)

	changed, err = w.Poll()
	require.NoError(t, err)
	assert.Empty(t, changed)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(a, later, later))
	b := filepath.Join(dir, "B.java")
	writeFile(t, b, "class B {}")

	changed, err = w.Poll()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, changed)
}
