package compiler

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/hashutil"
	"github.com/ccasp/ccasp/pkg/manifest"
	"github.com/ccasp/ccasp/pkg/testutil"
)

func newCompiler(env *testutil.Env, version string) *Compiler {
	return New(env.FS, env.Paths, manifest.NewStore(env.FS, env.Paths), version)
}

func TestCompile(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo", "testCommand": "go test ./..."})
	env.WriteTemplate("commands/test.md", "# {{ PROJECT_NAME }}\nRun: {{ TEST_COMMAND }}\n")
	env.WriteTemplate("docs/readme.md", "Docs for {{PROJECT_NAME}}\n")

	c := newCompiler(env, "1.0.0")
	result, err := c.Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.FileCount)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 1, result.Categories["commands"].Compiled)
	assert.Equal(t, 1, result.Categories["docs"].Compiled)

	rendered, err := os.ReadFile(env.CachePath("commands/test.md"))
	require.NoError(t, err)
	assert.Equal(t, "# demo\nRun: go test ./...\n", string(rendered))

	hash, ok := result.Manifest.Hash("commands/test.md")
	require.True(t, ok)
	assert.Equal(t, hashutil.Checksum(rendered), hash)
}

func TestCompileSkipsWhenCurrent(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("commands/test.md", "{{ PROJECT_NAME }}\n")

	c := newCompiler(env, "1.0.0")
	_, err := c.Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	second, err := c.Compile(env.ProjectDir, Options{})
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, "up-to-date", second.Reason)
	assert.Equal(t, 1, second.FileCount)

	forced, err := c.Compile(env.ProjectDir, Options{Force: true})
	require.NoError(t, err)
	assert.False(t, forced.Skipped)
}

func TestCompileRecompilesOnVersionChange(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("commands/test.md", "{{ PROJECT_NAME }}\n")

	_, err := newCompiler(env, "1.0.0").Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	result, err := newCompiler(env, "1.1.0").Compile(env.ProjectDir, Options{})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, "1.1.0", result.Manifest.ToolVersion)
}

func TestCompileUnresolvedPlaceholder(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("commands/test.md", "Run: {{ TEST_COMMAND }}\n")

	result, err := newCompiler(env, "1.0.0").Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	// Left in place, reported, never silently dropped
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "TEST_COMMAND")

	rendered, err := os.ReadFile(env.CachePath("commands/test.md"))
	require.NoError(t, err)
	assert.Equal(t, "Run: {{ TEST_COMMAND }}\n", string(rendered))
}

func TestCompileFrontMatter(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("skills/review.md", `---
description: code review skill
requires:
  - DEPLOY_TARGET
strip: true
---
Review {{ PROJECT_NAME }}
`)

	result, err := newCompiler(env, "1.0.0").Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "DEPLOY_TARGET")

	rendered, err := os.ReadFile(env.CachePath("skills/review.md"))
	require.NoError(t, err)
	assert.Equal(t, "Review demo\n", string(rendered))
}

func TestCompileMissingTemplateSource(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	require.NoError(t, os.RemoveAll(env.TemplatesDir))

	_, err := newCompiler(env, "1.0.0").Compile(env.ProjectDir, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSource))
}

func TestCompileMissingConfig(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteTemplate("commands/test.md", "hi\n")

	_, err := newCompiler(env, "1.0.0").Compile(env.ProjectDir, Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
}

func TestRecompileFile(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("commands/test.md", "v1 {{ PROJECT_NAME }}\n")

	c := newCompiler(env, "1.0.0")
	_, err := c.Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	env.WriteTemplate("commands/test.md", "v2 {{ PROJECT_NAME }}\n")
	hash, err := c.RecompileFile(env.ProjectDir, "commands/test.md")
	require.NoError(t, err)
	assert.Equal(t, hashutil.Checksum([]byte("v2 demo\n")), hash)

	// Manifest entry tracks the new content
	m, err := manifest.NewStore(env.FS, env.Paths).LoadManifest(env.Slug())
	require.NoError(t, err)
	got, ok := m.Hash("commands/test.md")
	require.True(t, ok)
	assert.Equal(t, hash, got)
}

func TestRecompileFileOrphaned(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteConfig(map[string]string{"projectName": "demo"})
	env.WriteTemplate("commands/test.md", "hi\n")

	c := newCompiler(env, "1.0.0")
	_, err := c.Compile(env.ProjectDir, Options{})
	require.NoError(t, err)

	_, err = c.RecompileFile(env.ProjectDir, "commands/removed.md")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOrphanedLink))
}
