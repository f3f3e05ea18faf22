package commands

import (
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/project"
	"github.com/ccasp/ccasp/pkg/types"
)

// Enable turns sync on for a project without performing a sync. The method
// is chosen from the capability probe; the first sync may still fall back
// if the OS changes its mind between runs.
func (o *Ops) Enable(projectPath string) (*types.SyncState, error) {
	absPath, err := o.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}

	cfg, err := project.Load(o.fs, absPath)
	if err != nil {
		return nil, err
	}

	cfg.Sync.Enabled = true
	cfg.Sync.Method = types.MethodSymlink
	if !o.probe() {
		cfg.Sync.Method = types.MethodCopy
	}

	if err := project.Save(o.fs, absPath, cfg); err != nil {
		return nil, err
	}
	return &cfg.Sync, nil
}

// Disable materializes every cache-backed symlink into an independent copy
// and clears the sync record: the project becomes fully self-contained.
func (o *Ops) Disable(projectPath string) (*types.RemoveResult, error) {
	logger := logging.GetLogger("disable")

	absPath, err := o.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	cfg, err := project.Load(o.fs, absPath)
	if err != nil {
		return nil, err
	}

	result := o.applier.Materialize(o.paths.ProjectTreeRoot(absPath), o.paths.ProjectCacheDir(slug))

	cfg.Sync = types.DefaultSyncState()
	if err := project.Save(o.fs, absPath, cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("slug", slug).
		Int("materialized", len(result.Removed)).
		Msg("Sync disabled")

	return result, nil
}
