package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/filesystem"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/types"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ProjectConfigFile), []byte(content), 0644))
}

func TestLoadMissing(t *testing.T) {
	fsys := filesystem.NewOS()

	_, err := Load(fsys, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "variables": {
    "projectName": "demo",
    "testCommand": "go test ./...",
    "deployTarget": "staging"
  },
  "sync": {
    "enabled": true,
    "method": "symlink"
  }
}`)

	cfg, err := Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.Variables.ProjectName)
	assert.Equal(t, "go test ./...", cfg.Variables.TestCommand)
	assert.Equal(t, "staging", cfg.Variables.Extra["deployTarget"])
	assert.True(t, cfg.Sync.Enabled)
	assert.Equal(t, types.MethodSymlink, cfg.Sync.Method)
}

func TestLoadDefaultsWithoutSync(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"variables": {"projectName": "demo"}}`)

	cfg, err := Load(filesystem.NewOS(), dir)
	require.NoError(t, err)

	assert.False(t, cfg.Sync.Enabled)
	assert.Equal(t, types.MethodCopy, cfg.Sync.Method)
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non-string variable", `{"variables": {"projectName": 123}}`},
		{"bad sync method", `{"sync": {"enabled": true, "method": "hardlink"}}`},
		{"unknown sync key", `{"sync": {"enabled": true, "method": "copy", "bogus": 1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(filesystem.NewOS(), dir)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestLoadNotJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "not json at all")

	_, err := Load(filesystem.NewOS(), dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestSavePreservesForeignKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "variables": {"projectName": "demo"},
  "editor": {"theme": "dark"}
}`)

	fsys := filesystem.NewOS()
	cfg, err := Load(fsys, dir)
	require.NoError(t, err)

	cfg.Sync.Enabled = true
	cfg.Sync.Method = types.MethodCopy
	require.NoError(t, Save(fsys, dir, cfg))

	data, err := os.ReadFile(filepath.Join(dir, paths.ProjectConfigFile))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "editor", "keys the tool does not own must survive a save")
	assert.JSONEq(t, `{"theme": "dark"}`, string(raw["editor"]))

	// And the round trip still loads cleanly
	reloaded, err := Load(fsys, dir)
	require.NoError(t, err)
	assert.True(t, reloaded.Sync.Enabled)
	assert.Equal(t, "demo", reloaded.Variables.ProjectName)
}

func TestVariablesFlatten(t *testing.T) {
	v := Variables{
		ProjectName: "demo",
		TestCommand: "go test ./...",
		Extra:       map[string]string{"deployTarget": "staging"},
	}

	flat := v.Flatten()
	assert.Equal(t, "demo", flat["PROJECT_NAME"])
	assert.Equal(t, "go test ./...", flat["TEST_COMMAND"])
	assert.Equal(t, "staging", flat["deployTarget"])
	assert.Equal(t, "staging", flat["DEPLOY_TARGET"])

	_, hasEmpty := flat["LINT_COMMAND"]
	assert.False(t, hasEmpty, "unset fields must not flatten to empty strings")
}

func TestVariablesIsEmpty(t *testing.T) {
	assert.True(t, Variables{}.IsEmpty())
	assert.False(t, Variables{ProjectName: "x"}.IsEmpty())
	assert.False(t, Variables{Extra: map[string]string{"k": "v"}}.IsEmpty())
}
