package generate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureSource = `package sample

//bldgen:builder
type Server struct {
	host string
	port int
	tags []string
}

func NewServer(host string, port int) *Server {
	return &Server{host: host, port: port}
}

func (s *Server) SetTags(tags []string) { s.tags = tags }

//bldgen:builder
type Bad interface{}
`

// scratchModule lays out a minimal module with one annotated package.
func scratchModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/sample\n\ngo 1.21\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.go"), []byte(fixtureSource), 0o644))
	return dir
}

func TestRun(t *testing.T) {
	dir := scratchModule(t)

	res, err := Run(Options{Dir: dir})
	require.NoError(t, err)

	require.Equal(t, []string{filepath.Join(dir, "server_builder_gen.go")}, res.Files)
	require.Contains(t, res.Errors, "Bad")
	require.Len(t, res.Errors, 1)

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	src := string(data)
	require.Contains(t, src, "Code generated by bldgen. DO NOT EDIT.")
	require.Contains(t, src, "package sample")
	require.Contains(t, src, "//bldgen:for example.com/sample.Server")
	require.Contains(t, src, "type ServerBuilder struct")
	require.Contains(t, src, "func NewServerBuilder() *ServerBuilder")
	require.Contains(t, src, "func (b *ServerBuilder) Host(v string) *ServerBuilder")
	require.Contains(t, src, "func (b *ServerBuilder) Build() *Server")
	require.Contains(t, src, "NewServer(b.host, b.port)")
	require.Contains(t, src, "t.SetTags(b.tags)")
}

func TestRunProcessWideOptions(t *testing.T) {
	dir := scratchModule(t)

	res, err := Run(Options{
		Dir:         dir,
		ProcessWide: map[string]string{"methodAccess": "package", "docs": "off"},
	})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	src := string(data)
	require.Contains(t, src, "func (b *ServerBuilder) host(v string) *ServerBuilder")
	require.Contains(t, src, "func (b *ServerBuilder) build() *Server")
}

func TestRunRejectsBadProcessWideOption(t *testing.T) {
	_, err := Run(Options{Dir: t.TempDir(), ProcessWide: map[string]string{"nope": "on"}})
	require.Error(t, err)
}

func TestRunOutsideModule(t *testing.T) {
	_, err := Run(Options{Dir: t.TempDir()})
	require.Error(t, err)
}
