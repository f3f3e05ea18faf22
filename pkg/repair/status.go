package repair

import (
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	ccasperr "github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/project"
	"github.com/ccasp/ccasp/pkg/types"
)

// Status aggregates sync state, manifest presence and version, and a fresh
// classification pass over the project tree into a read-only health view.
func (r *Repairer) Status(projectPath string) (*types.SyncStatus, error) {
	absPath, err := r.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	status := &types.SyncStatus{
		Method: types.MethodCopy,
	}

	// A project without configuration still gets a (mostly empty) status
	cfg, err := project.Load(r.fs, absPath)
	switch {
	case err == nil:
		status.Enabled = cfg.Sync.Enabled
		status.Method = cfg.Sync.Method
	case ccasperr.IsErrorCode(err, ccasperr.ErrConfigMissing):
		// Never set up; keep defaults
	default:
		return nil, err
	}

	m, err := r.store.LoadManifest(slug)
	if err != nil {
		return nil, err
	}
	status.Cached = m != nil
	status.NeedsRecompile = true
	if m != nil {
		status.ToolVersion = m.ToolVersion
		status.CompiledAt = m.CompiledAt
		status.NeedsRecompile = versionsDiffer(m.ToolVersion, r.version)
	}

	entries, err := r.planner.Classify(absPath, slug, m, func(rel string) (string, bool) {
		return r.store.LastKnownHash(slug, rel)
	})
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		switch entry.State {
		case types.LinkStateLinked:
			status.SymlinkCount++
		case types.LinkStateBroken:
			status.BrokenSymlinks++
			if !entry.Tracked || !r.templateExists(entry.RelPath) {
				status.OrphanedLinks = append(status.OrphanedLinks, entry.RelPath)
			}
		case types.LinkStateMissing:
			status.MissingCount++
		case types.LinkStateCopied, types.LinkStateUnmodified:
			status.RealFileCount++
		case types.LinkStateCustomized, types.LinkStateUserCreated:
			if !entry.IsDir {
				status.RealFileCount++
				status.CustomFileCount++
			}
		}
	}

	return status, nil
}

// versionsDiffer compares tool versions semantically when both sides parse
// as semver, falling back to string inequality for dev builds.
func versionsDiffer(manifestVersion, toolVersion string) bool {
	mv, err1 := semver.NewVersion(manifestVersion)
	tv, err2 := semver.NewVersion(toolVersion)
	if err1 == nil && err2 == nil {
		return !mv.Equal(tv)
	}
	return manifestVersion != toolVersion
}

// templateExists reports whether a template still exists in the source tree
func (r *Repairer) templateExists(relPath string) bool {
	_, err := r.fs.Stat(filepath.Join(r.paths.TemplatesRoot(), relPath))
	return err == nil
}
