package repair

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccasp/ccasp/pkg/applier"
	"github.com/ccasp/ccasp/pkg/compiler"
	"github.com/ccasp/ccasp/pkg/manifest"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/planner"
	"github.com/ccasp/ccasp/pkg/testutil"
	"github.com/ccasp/ccasp/pkg/types"
)

type harness struct {
	env      *testutil.Env
	store    *manifest.Store
	compiler *compiler.Compiler
	planner  *planner.Planner
	applier  *applier.Applier
	repairer *Repairer
}

func newHarness(t *testing.T, method types.SyncMethod) *harness {
	t.Helper()
	env := testutil.NewEnv(t)

	// Config with sync already enabled for the given method
	config := fmt.Sprintf(`{
  "variables": {"projectName": "demo"},
  "sync": {"enabled": true, "method": %q}
}`, method)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.ProjectDir, paths.ProjectConfigFile), []byte(config), 0644))

	store := manifest.NewStore(env.FS, env.Paths)
	comp := compiler.New(env.FS, env.Paths, store, "1.0.0")
	pl := planner.New(env.FS, env.Paths)
	ap := applier.New(env.FS, func() bool { return true })

	return &harness{
		env:      env,
		store:    store,
		compiler: comp,
		planner:  pl,
		applier:  ap,
		repairer: New(env.FS, env.Paths, store, pl, comp, ap, "1.0.0"),
	}
}

// syncAll compiles and applies every template, recording synced hashes the
// way a real sync run does.
func (h *harness) syncAll(t *testing.T, method types.SyncMethod) {
	t.Helper()

	res, err := h.compiler.Compile(h.env.ProjectDir, compiler.Options{Force: true})
	require.NoError(t, err)

	slug := h.env.Slug()
	plan, err := h.planner.PlanSync(h.env.ProjectDir, slug, res.Manifest,
		types.SyncState{Method: method},
		func(rel string) (string, bool) { return h.store.LastKnownHash(slug, rel) })
	require.NoError(t, err)

	applied := h.applier.Apply(plan, method)
	require.Empty(t, applied.Errors)

	synced := h.store.LoadSynced(slug)
	for _, item := range applied.Created {
		hash, ok := res.Manifest.Hash(item.RelPath)
		require.True(t, ok)
		synced[item.RelPath] = hash
	}
	require.NoError(t, h.store.SaveSynced(slug, synced))
}

func TestRepairRecompilesAndRelinks(t *testing.T) {
	h := newHarness(t, types.MethodSymlink)
	h.env.WriteTemplate("commands/test.md", "run {{ PROJECT_NAME }}\n")
	h.syncAll(t, types.MethodSymlink)

	// Cache file lost: the tree symlink now dangles
	require.NoError(t, os.Remove(h.env.CachePath("commands/test.md")))

	result, err := h.repairer.RepairBrokenLinks(h.env.ProjectDir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fixed)
	assert.Empty(t, result.Errors)

	data, err := os.ReadFile(h.env.TreePath("commands/test.md"))
	require.NoError(t, err)
	assert.Equal(t, "run demo\n", string(data))
}

func TestRepairLeavesOrphansInPlace(t *testing.T) {
	h := newHarness(t, types.MethodSymlink)
	h.env.WriteTemplate("commands/test.md", "hi\n")
	h.syncAll(t, types.MethodSymlink)

	// Stale link into the cache whose template was removed upstream
	orphan := h.env.TreePath("commands/removed.md")
	require.NoError(t, os.Symlink(h.env.CachePath("commands/removed.md"), orphan))

	result, err := h.repairer.RepairBrokenLinks(h.env.ProjectDir)
	require.NoError(t, err)
	assert.Zero(t, result.Fixed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "no longer exists upstream")

	// Never deleted, only reported
	_, err = os.Lstat(orphan)
	assert.NoError(t, err)
}

func TestRepairNothingBroken(t *testing.T) {
	h := newHarness(t, types.MethodSymlink)
	h.env.WriteTemplate("commands/test.md", "hi\n")
	h.syncAll(t, types.MethodSymlink)

	result, err := h.repairer.RepairBrokenLinks(h.env.ProjectDir)
	require.NoError(t, err)
	assert.Zero(t, result.Fixed)
	assert.Empty(t, result.Errors)
}

func TestDetectCustomFiles(t *testing.T) {
	h := newHarness(t, types.MethodCopy)
	h.env.WriteTemplate("commands/test.md", "tracked\n")
	h.env.WriteTemplate("commands/build.md", "tracked\n")
	h.syncAll(t, types.MethodCopy)

	h.env.WriteTreeFile("commands/test.md", "my edits\n")
	h.env.WriteTreeFile("notes/private.md", "mine\n")

	custom, err := h.repairer.DetectCustomFiles(h.env.ProjectDir)
	require.NoError(t, err)
	require.Len(t, custom, 2)

	states := make(map[string]types.LinkState)
	for _, entry := range custom {
		states[entry.RelPath] = entry.State
	}
	assert.Equal(t, types.LinkStateCustomized, states[filepath.Join("commands", "test.md")])
	assert.Equal(t, types.LinkStateUserCreated, states[filepath.Join("notes", "private.md")])
}

func TestStatusHealthy(t *testing.T) {
	h := newHarness(t, types.MethodSymlink)
	h.env.WriteTemplate("commands/test.md", "a\n")
	h.env.WriteTemplate("hooks/pre.md", "b\n")
	h.env.WriteTemplate("docs/guide.md", "c\n")
	h.syncAll(t, types.MethodSymlink)

	status, err := h.repairer.Status(h.env.ProjectDir)
	require.NoError(t, err)

	assert.True(t, status.Enabled)
	assert.Equal(t, types.MethodSymlink, status.Method)
	assert.True(t, status.Cached)
	assert.False(t, status.NeedsRecompile)
	assert.Equal(t, 3, status.SymlinkCount)
	assert.Zero(t, status.BrokenSymlinks)
	assert.Zero(t, status.CustomFileCount)
	assert.Zero(t, status.MissingCount)
	assert.Empty(t, status.OrphanedLinks)
}

func TestStatusCountsCustomAmongCopies(t *testing.T) {
	h := newHarness(t, types.MethodCopy)
	h.env.WriteTemplate("commands/test.md", "a\n")
	h.env.WriteTemplate("hooks/pre.md", "b\n")
	h.env.WriteTemplate("docs/guide.md", "c\n")
	h.syncAll(t, types.MethodCopy)

	h.env.WriteTreeFile("hooks/pre.md", "edited\n")

	status, err := h.repairer.Status(h.env.ProjectDir)
	require.NoError(t, err)

	assert.Zero(t, status.SymlinkCount)
	assert.Equal(t, 3, status.RealFileCount)
	assert.Equal(t, 1, status.CustomFileCount)
}

func TestStatusNeverSetUp(t *testing.T) {
	env := testutil.NewEnv(t)
	store := manifest.NewStore(env.FS, env.Paths)
	r := New(env.FS, env.Paths, store, planner.New(env.FS, env.Paths),
		compiler.New(env.FS, env.Paths, store, "1.0.0"),
		applier.New(env.FS, func() bool { return true }), "1.0.0")

	status, err := r.Status(env.ProjectDir)
	require.NoError(t, err)

	assert.False(t, status.Enabled)
	assert.False(t, status.Cached)
	assert.True(t, status.NeedsRecompile)
}

func TestStatusReportsOrphans(t *testing.T) {
	h := newHarness(t, types.MethodSymlink)
	h.env.WriteTemplate("commands/test.md", "hi\n")
	h.syncAll(t, types.MethodSymlink)

	orphan := h.env.TreePath("commands/removed.md")
	require.NoError(t, os.Symlink(h.env.CachePath("commands/removed.md"), orphan))

	status, err := h.repairer.Status(h.env.ProjectDir)
	require.NoError(t, err)

	assert.Equal(t, 1, status.BrokenSymlinks)
	assert.Equal(t, []string{filepath.Join("commands", "removed.md")}, status.OrphanedLinks)
}

func TestVersionsDiffer(t *testing.T) {
	tests := []struct {
		manifest string
		tool     string
		want     bool
	}{
		{"1.0.0", "1.0.0", false},
		{"v1.0.0", "1.0.0", false},
		{"1.0.0", "1.1.0", true},
		{"dev", "dev", false},
		{"dev", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.manifest+"_vs_"+tt.tool, func(t *testing.T) {
			assert.Equal(t, tt.want, versionsDiffer(tt.manifest, tt.tool))
		})
	}
}
