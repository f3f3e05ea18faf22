package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccasp/ccasp/pkg/filesystem"
)

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "commands"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "commands", "test.md"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "commands", "build.md"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.md"), []byte("c"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(root, "top.md"), filepath.Join(root, "link.md")))

	return root
}

func TestWalkVisitsSorted(t *testing.T) {
	root := setupTree(t)
	fsys := filesystem.NewOS()

	var got []Entry
	err := Walk(fsys, root, func(e Entry) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 5)
	assert.Equal(t, Entry{RelPath: "commands", Kind: KindDir}, got[0])
	assert.Equal(t, Entry{RelPath: filepath.Join("commands", "build.md"), Kind: KindFile}, got[1])
	assert.Equal(t, Entry{RelPath: filepath.Join("commands", "test.md"), Kind: KindFile}, got[2])
	assert.Equal(t, Entry{RelPath: "link.md", Kind: KindSymlink}, got[3])
	assert.Equal(t, Entry{RelPath: "top.md", Kind: KindFile}, got[4])
}

func TestWalkMissingRoot(t *testing.T) {
	fsys := filesystem.NewOS()

	visited := 0
	err := Walk(fsys, filepath.Join(t.TempDir(), "absent"), func(e Entry) error {
		visited++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, visited)
}

func TestWalkDanglingSymlink(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	fsys := filesystem.NewOS()
	var got []Entry
	err := Walk(fsys, root, func(e Entry) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, KindSymlink, got[0].Kind)
}

func TestFiles(t *testing.T) {
	root := setupTree(t)
	fsys := filesystem.NewOS()

	files, err := Files(fsys, root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("commands", "build.md"),
		filepath.Join("commands", "test.md"),
		"link.md",
		"top.md",
	}, files)
}
