package types

import "time"

// Manifest records the output of one template compilation for a project:
// which files were rendered, their content hashes, and the tool version that
// produced them. It is written atomically and never mutated by the applier.
type Manifest struct {
	ToolVersion string                   `json:"toolVersion"`
	CompiledAt  time.Time                `json:"compiledAt"`
	Files       map[string]string        `json:"files"`
	Categories  map[string]CategoryCount `json:"categories"`
}

// CategoryCount holds per-category compilation counts for reporting
type CategoryCount struct {
	Compiled int `json:"compiled"`
}

// TotalFiles returns the number of files recorded in the manifest
func (m *Manifest) TotalFiles() int {
	return len(m.Files)
}

// Hash returns the recorded content hash for a relative path.
// The second return value reports whether the path is tracked at all,
// so absence is a first-class branch rather than an empty string.
func (m *Manifest) Hash(relPath string) (string, bool) {
	if m == nil || m.Files == nil {
		return "", false
	}
	h, ok := m.Files[relPath]
	return h, ok
}
