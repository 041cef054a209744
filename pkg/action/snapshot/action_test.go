package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bldgen/bldgen/pkg/action/generate"
)

func scratchModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := `package sample

//bldgen:builder
type Token struct {
	value string
}

func NewToken(value string) *Token {
	return &Token{value: value}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/sample\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.go"), []byte(src), 0o644))
	return dir
}

func TestGenerateRecordsRun(t *testing.T) {
	dir := scratchModule(t)
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	res, err := Generate(generate.Options{Dir: dir}, path, "v1")
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	m, err := List(path)
	require.NoError(t, err)
	require.Equal(t, "v1", m.CurrentVersion)
	require.Equal(t, res.Files, m.Files("v1"))
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	dir := scratchModule(t)
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	_, err := Generate(generate.Options{Dir: dir}, path, "v1")
	require.NoError(t, err)

	// No previous run yet.
	_, err = DiffCurrentWithPrevious(path)
	require.Error(t, err)

	_, err = Generate(generate.Options{Dir: dir, ProcessWide: map[string]string{"docs": "off"}}, path, "v2")
	require.NoError(t, err)

	diff, err := DiffCurrentWithPrevious(path)
	require.NoError(t, err)
	// Both versions point at the same regenerated files, so their recorded
	// contents are identical at diff time.
	require.Empty(t, diff)
}
