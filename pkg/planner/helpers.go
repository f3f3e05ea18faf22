package planner

import (
	"io/fs"
	"path/filepath"
	"strings"
)

func isSymlink(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}

// resolveDest resolves a symlink destination to a cleaned absolute path,
// interpreting relative destinations against the link's own directory.
func resolveDest(linkPath, dest string) string {
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(linkPath), dest)
	}
	return filepath.Clean(dest)
}

// isWithin reports whether path lies inside dir
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
