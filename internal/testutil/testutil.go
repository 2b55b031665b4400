// Package testutil provides sandboxed filesystem and config helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEnv is a throwaway vault rooted in t.TempDir. Paths passed to its methods are
// relative to that root and may not leave it.
type TestEnv struct {
	t    *testing.T
	root string
}

// NewTestEnv creates a TestEnv that is removed with the test.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{t: t, root: t.TempDir()}
}

// RootDir is the absolute sandbox root.
func (e *TestEnv) RootDir() string {
	return e.root
}

// Path resolves rel elements against the root and fails the test if the result escapes it.
func (e *TestEnv) Path(rel ...string) string {
	e.t.Helper()

	abs := filepath.Join(append([]string{e.root}, rel...)...)
	require.True(e.t, e.contains(abs), "path %q is outside sandbox %q", abs, e.root)
	return abs
}

func (e *TestEnv) contains(abs string) bool {
	rel, err := filepath.Rel(e.root, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// WriteFile stores content at rel, creating missing folders.
func (e *TestEnv) WriteFile(rel string, content []byte) {
	e.t.Helper()

	abs := e.Path(rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(e.t, os.WriteFile(abs, content, 0o644))
}

// WriteFileString is WriteFile for text.
func (e *TestEnv) WriteFileString(rel, content string) {
	e.t.Helper()
	e.WriteFile(rel, []byte(content))
}

// ReadFileString returns the text stored at rel.
func (e *TestEnv) ReadFileString(rel string) string {
	e.t.Helper()

	data, err := os.ReadFile(e.Path(rel))
	require.NoError(e.t, err)
	return string(data)
}

// MkdirAll creates the folder rel.
func (e *TestEnv) MkdirAll(rel string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.Path(rel), 0o755))
}

func (e *TestEnv) exists(rel string) bool {
	_, err := os.Stat(e.Path(rel))
	return err == nil
}

// RequireFileExists fails the test unless rel exists.
func (e *TestEnv) RequireFileExists(rel string) {
	e.t.Helper()
	require.True(e.t, e.exists(rel), "expected %s to exist", rel)
}

// RequireFileNotExists fails the test if rel exists.
func (e *TestEnv) RequireFileNotExists(rel string) {
	e.t.Helper()
	require.False(e.t, e.exists(rel), "expected %s to be absent", rel)
}

// AssertFileContains reports an error when the file at rel lacks want.
func (e *TestEnv) AssertFileContains(rel, want string) {
	e.t.Helper()

	if got := e.ReadFileString(rel); !strings.Contains(got, want) {
		e.t.Errorf("%s does not contain %q:\n%s", rel, want, got)
	}
}

// Chdir switches the working directory to rel for the rest of the test.
func (e *TestEnv) Chdir(rel string) {
	e.t.Helper()
	e.t.Chdir(e.Path(rel))
}
