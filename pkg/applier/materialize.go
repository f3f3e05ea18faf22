package applier

import (
	"path/filepath"
	"strings"

	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/types"
	"github.com/ccasp/ccasp/pkg/walk"
)

// Materialize walks the project tree and replaces every symlink that points
// into cacheDir with a regular file holding the target's current bytes,
// making the project self-contained. Symlinks pointing elsewhere are left
// alone. Used when sync is disabled.
func (a *Applier) Materialize(treeRoot, cacheDir string) *types.RemoveResult {
	logger := logging.GetLogger("applier")
	result := &types.RemoveResult{}

	err := walk.Walk(a.fs, treeRoot, func(e walk.Entry) error {
		if e.Kind != walk.KindSymlink {
			return nil
		}

		target := filepath.Join(treeRoot, e.RelPath)
		dest, err := a.fs.Readlink(target)
		if err != nil {
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: e.RelPath,
				Message: "symlink target cannot be determined: " + err.Error(),
			})
			return nil
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(target), dest)
		}
		if !isInside(cacheDir, filepath.Clean(dest)) {
			return nil
		}

		// Dereference before removing so a dangling link is reported, not lost
		data, err := a.fs.ReadFile(target)
		if err != nil {
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: e.RelPath,
				Message: "cannot materialize, target unreadable: " + err.Error(),
			})
			return nil
		}

		if err := a.fs.Remove(target); err != nil {
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: e.RelPath,
				Message: "failed to remove symlink: " + err.Error(),
			})
			return nil
		}
		if err := a.fs.WriteFile(target, data, 0644); err != nil {
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: e.RelPath,
				Message: "failed to write materialized file: " + err.Error(),
			})
			return nil
		}

		result.Removed = append(result.Removed, e.RelPath)
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, types.ErrorItem{Message: err.Error()})
	}

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("errors", len(result.Errors)).
		Msg("Symlinks materialized")

	return result
}

func isInside(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
