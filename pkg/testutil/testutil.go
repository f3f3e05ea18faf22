// Package testutil provides filesystem fixtures for engine tests: a temp
// template source, a temp project, and paths pointed at temp cache dirs via
// the environment overrides.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ccasp/ccasp/pkg/filesystem"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/types"
)

// Env is an isolated on-disk fixture for one test
type Env struct {
	T            *testing.T
	ProjectDir   string
	TemplatesDir string
	CacheDir     string
	DataDir      string
	FS           types.FS
	Paths        paths.Paths
}

// NewEnv creates temp directories for project, templates, cache and data,
// and points the ccasp environment overrides at them.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	base := t.TempDir()
	env := &Env{
		T:            t,
		ProjectDir:   filepath.Join(base, "project"),
		TemplatesDir: filepath.Join(base, "templates"),
		CacheDir:     filepath.Join(base, "cache"),
		DataDir:      filepath.Join(base, "data"),
		FS:           filesystem.NewOS(),
	}

	for _, dir := range []string{env.ProjectDir, env.TemplatesDir, env.CacheDir, env.DataDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv(paths.EnvCacheDir, env.CacheDir)
	t.Setenv(paths.EnvDataDir, env.DataDir)
	t.Setenv(paths.EnvTemplatesDir, env.TemplatesDir)

	p, err := paths.New()
	require.NoError(t, err)
	env.Paths = p

	return env
}

// Slug returns the project's cache key
func (e *Env) Slug() string {
	abs, err := e.Paths.NormalizeProjectPath(e.ProjectDir)
	require.NoError(e.T, err)
	return paths.ProjectSlug(abs)
}

// WriteTemplate writes a template file under the source tree
func (e *Env) WriteTemplate(rel, content string) {
	e.T.Helper()
	path := filepath.Join(e.TemplatesDir, rel)
	require.NoError(e.T, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.T, os.WriteFile(path, []byte(content), 0644))
}

// WriteConfig writes the project's .ccasp.json with the given variables
func (e *Env) WriteConfig(vars map[string]string) {
	e.T.Helper()
	doc := map[string]interface{}{"variables": vars}
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(e.T, err)
	require.NoError(e.T, os.WriteFile(filepath.Join(e.ProjectDir, paths.ProjectConfigFile), data, 0644))
}

// TreePath returns the absolute path of a file in the project's .claude tree
func (e *Env) TreePath(rel string) string {
	return filepath.Join(e.ProjectDir, paths.ProjectTreeDir, rel)
}

// CachePath returns the absolute path of a file in the project's cache
func (e *Env) CachePath(rel string) string {
	return filepath.Join(e.Paths.ProjectCacheDir(e.Slug()), rel)
}

// WriteTreeFile writes a regular file into the project's .claude tree
func (e *Env) WriteTreeFile(rel, content string) {
	e.T.Helper()
	path := e.TreePath(rel)
	require.NoError(e.T, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.T, os.WriteFile(path, []byte(content), 0644))
}

// ReadTreeFile returns the bytes of a project-tree file, following symlinks
func (e *Env) ReadTreeFile(rel string) string {
	e.T.Helper()
	data, err := os.ReadFile(e.TreePath(rel))
	require.NoError(e.T, err)
	return string(data)
}

// IsSymlink reports whether the project-tree path is a symlink
func (e *Env) IsSymlink(rel string) bool {
	e.T.Helper()
	info, err := os.Lstat(e.TreePath(rel))
	require.NoError(e.T, err)
	return info.Mode()&os.ModeSymlink != 0
}
