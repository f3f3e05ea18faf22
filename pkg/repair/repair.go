// Package repair detects and fixes broken links and reports the consolidated
// per-project health view. It reuses the planner's classification pass so
// drift logic has exactly one implementation.
package repair

import (
	"os"

	"github.com/ccasp/ccasp/pkg/applier"
	"github.com/ccasp/ccasp/pkg/compiler"
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/manifest"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/planner"
	"github.com/ccasp/ccasp/pkg/project"
	"github.com/ccasp/ccasp/pkg/types"
)

// Repairer fixes broken links and aggregates sync status
type Repairer struct {
	fs       types.FS
	paths    paths.Paths
	store    *manifest.Store
	planner  *planner.Planner
	compiler *compiler.Compiler
	applier  *applier.Applier
	version  string
}

// New creates a repairer
func New(fsys types.FS, p paths.Paths, store *manifest.Store, pl *planner.Planner, c *compiler.Compiler, a *applier.Applier, version string) *Repairer {
	return &Repairer{
		fs:       fsys,
		paths:    p,
		store:    store,
		planner:  pl,
		compiler: c,
		applier:  a,
		version:  version,
	}
}

// RepairBrokenLinks finds link entries in state broken, recompiles their
// cache files where the backing template still exists, and relinks them.
// Links whose template was removed upstream are reported as unfixable
// errors and left in place, never deleted.
func (r *Repairer) RepairBrokenLinks(projectPath string) (*types.RepairResult, error) {
	logger := logging.GetLogger("repair")

	absPath, err := r.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	m, err := r.store.LoadManifest(slug)
	if err != nil {
		return nil, err
	}

	cfg, err := project.Load(r.fs, absPath)
	if err != nil {
		return nil, err
	}

	entries, err := r.planner.Classify(absPath, slug, m, func(rel string) (string, bool) {
		return r.store.LastKnownHash(slug, rel)
	})
	if err != nil {
		return nil, err
	}

	result := &types.RepairResult{}
	fixPlan := &types.Plan{}

	for _, entry := range entries {
		if entry.State != types.LinkStateBroken {
			continue
		}

		if entry.Unreadable {
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: entry.RelPath,
				Message: "symlink target cannot be determined",
			})
			continue
		}

		if !entry.Tracked {
			// Stale link into our cache with no manifest entry: its backing
			// template is gone upstream. Report, leave in place.
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: entry.RelPath,
				Message: "backing template no longer exists upstream",
			})
			continue
		}

		// Make sure the cache file behind the link exists and is current
		if _, err := r.fs.Stat(entry.Source); err != nil {
			if !os.IsNotExist(err) {
				result.Errors = append(result.Errors, types.ErrorItem{RelPath: entry.RelPath, Message: err.Error()})
				continue
			}
			if _, err := r.compiler.RecompileFile(absPath, entry.RelPath); err != nil {
				result.Errors = append(result.Errors, types.ErrorItem{RelPath: entry.RelPath, Message: err.Error()})
				continue
			}
		}

		fixPlan.ToCreate = append(fixPlan.ToCreate, types.PlanItem{
			RelPath: entry.RelPath,
			Target:  entry.Target,
			Source:  entry.Source,
		})
	}

	applied := r.applier.Apply(fixPlan, cfg.Sync.Method)
	result.Fixed = len(applied.Created)
	result.Errors = append(result.Errors, applied.Errors...)

	logger.Info().
		Int("fixed", result.Fixed).
		Int("errors", len(result.Errors)).
		Msg("Repair completed")

	return result, nil
}

// DetectCustomFiles returns the link entries classified as customized or
// user-created, so callers can warn before destructive operations.
func (r *Repairer) DetectCustomFiles(projectPath string) ([]types.LinkEntry, error) {
	absPath, err := r.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	m, err := r.store.LoadManifest(slug)
	if err != nil {
		return nil, err
	}

	entries, err := r.planner.Classify(absPath, slug, m, func(rel string) (string, bool) {
		return r.store.LastKnownHash(slug, rel)
	})
	if err != nil {
		return nil, err
	}

	var custom []types.LinkEntry
	for _, entry := range entries {
		if entry.IsCustom() && !entry.IsDir {
			custom = append(custom, entry)
		}
	}
	return custom, nil
}
