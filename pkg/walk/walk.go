// Package walk provides the single tree iterator shared by the planner,
// repair, and status components, so file classification has exactly one
// traversal implementation.
package walk

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ccasp/ccasp/pkg/types"
)

// EntryKind is the kind of a visited tree entry
type EntryKind int

const (
	// KindFile is a regular file
	KindFile EntryKind = iota
	// KindSymlink is a symbolic link (possibly dangling)
	KindSymlink
	// KindDir is a directory
	KindDir
)

// Entry is one visited path, relative to the walk root
type Entry struct {
	RelPath string
	Kind    EntryKind
}

// VisitFunc receives each entry. Returning an error stops the walk.
type VisitFunc func(Entry) error

// Walk traverses root depth-first through fsys, visiting files and symlinks
// in sorted order. Directories are visited before their contents. A missing
// root is not an error: the walk simply visits nothing.
func Walk(fsys types.FS, root string, visit VisitFunc) error {
	if _, err := fsys.Lstat(root); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return walkDir(fsys, root, "", visit)
}

func walkDir(fsys types.FS, root, rel string, visit VisitFunc) error {
	dir := filepath.Join(root, rel)
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		entryRel := filepath.Join(rel, entry.Name())
		if entry.IsDir() {
			if err := visit(Entry{RelPath: entryRel, Kind: KindDir}); err != nil {
				return err
			}
			if err := walkDir(fsys, root, entryRel, visit); err != nil {
				return err
			}
			continue
		}

		kind := KindFile
		if entry.Type()&os.ModeSymlink != 0 {
			kind = KindSymlink
		}
		if err := visit(Entry{RelPath: entryRel, Kind: kind}); err != nil {
			return err
		}
	}
	return nil
}

// Files collects the relative paths of all non-directory entries under root
func Files(fsys types.FS, root string) ([]string, error) {
	var out []string
	err := Walk(fsys, root, func(e Entry) error {
		if e.Kind != KindDir {
			out = append(out, e.RelPath)
		}
		return nil
	})
	return out, err
}
