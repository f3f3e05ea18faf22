// Package manifest is the cache store: atomic read/write of the per-project
// compile manifest and the last-synced hash record, keyed by project slug.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/types"
)

// Store persists manifests and sync records under the project cache directory
type Store struct {
	fs    types.FS
	paths paths.Paths
}

// NewStore creates a cache store over the given filesystem and paths
func NewStore(fsys types.FS, p paths.Paths) *Store {
	return &Store{fs: fsys, paths: p}
}

// LoadManifest reads the manifest for a project slug. An absent manifest
// returns (nil, nil). A corrupt manifest is treated as absent so the next
// compile silently rebuilds the cache; the condition is logged, not fatal.
func (s *Store) LoadManifest(slug string) (*types.Manifest, error) {
	data, err := s.fs.ReadFile(s.paths.ManifestPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest for %s", slug)
	}

	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger := logging.GetLogger("manifest")
		logger.Warn().Err(err).Str("slug", slug).Msg("Manifest unreadable, treating cache as absent")
		return nil, nil
	}
	return &m, nil
}

// SaveManifest writes the manifest via write-temp-then-rename so a crash
// mid-write never leaves a half-written manifest for readers to observe.
func (s *Store) SaveManifest(slug string, m *types.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	return s.writeAtomic(s.paths.ManifestPath(slug), data)
}

// LoadSynced reads the path->hash record of the last successful sync.
// An absent or corrupt record yields an empty map: every lookup then falls
// into the "no prior record" branch, which preserves user content.
func (s *Store) LoadSynced(slug string) map[string]string {
	data, err := s.fs.ReadFile(s.paths.SyncedPath(slug))
	if err != nil {
		return map[string]string{}
	}

	var synced map[string]string
	if err := json.Unmarshal(data, &synced); err != nil {
		logger := logging.GetLogger("manifest")
		logger.Warn().Err(err).Str("slug", slug).Msg("Synced record unreadable, treating as empty")
		return map[string]string{}
	}
	if synced == nil {
		synced = map[string]string{}
	}
	return synced
}

// SaveSynced atomically replaces the last-synced hash record
func (s *Store) SaveSynced(slug string, synced map[string]string) error {
	data, err := json.MarshalIndent(synced, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode synced record")
	}
	return s.writeAtomic(s.paths.SyncedPath(slug), data)
}

// LastKnownHash returns the hash recorded for a path at the last successful
// sync. The boolean reports whether any record exists, so "never synced" is
// a first-class branch rather than an empty-string sentinel.
func (s *Store) LastKnownHash(slug, relPath string) (string, bool) {
	synced := s.LoadSynced(slug)
	h, ok := synced[relPath]
	return h, ok
}

// HasManifest reports whether a readable manifest exists for the slug
func (s *Store) HasManifest(slug string) bool {
	m, err := s.LoadManifest(slug)
	return err == nil && m != nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	// Temp file in the same directory so the rename is atomic on POSIX
	tmp := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCacheWrite, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrCacheWrite, "failed to replace %s", path)
	}
	return nil
}
