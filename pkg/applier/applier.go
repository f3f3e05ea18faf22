// Package applier executes link plans: it creates symlinks into the compiled
// cache (or byte copies where symlinks are unsupported) and can reverse the
// mapping by materializing links back into independent files.
package applier

import (
	"path/filepath"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/types"
)

// Applier executes plans produced by the planner
type Applier struct {
	fs    types.FS
	probe func() bool
}

// New creates an applier. probe reports whether symlink creation is
// supported for this process.
func New(fsys types.FS, probe func() bool) *Applier {
	return &Applier{fs: fsys, probe: probe}
}

// Apply executes a plan with the requested method. When symlinks are not
// supported the method is forced to copy regardless of caller preference.
// Failures on individual files are collected, never fatal for the rest of
// the plan; skip entries are passed through untouched.
func (a *Applier) Apply(plan *types.Plan, method types.SyncMethod) *types.ApplyResult {
	logger := logging.GetLogger("applier")

	result := &types.ApplyResult{
		Method:  method,
		Skipped: plan.ToSkip,
	}
	result.Errors = append(result.Errors, plan.ToError...)

	if method == types.MethodSymlink && !a.probe() {
		logger.Info().Msg("Symlinks unsupported, falling back to copy method")
		result.Method = types.MethodCopy
		result.FallbackToCopy = true
	}

	for _, item := range plan.ToCreate {
		if err := a.create(item, result.Method); err != nil {
			logger.Warn().Err(err).Str("path", item.RelPath).Msg("Failed to create link")
			result.Errors = append(result.Errors, types.ErrorItem{
				RelPath: item.RelPath,
				Message: err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, item)
	}

	logger.Debug().
		Int("created", len(result.Created)).
		Int("skipped", len(result.Skipped)).
		Int("errors", len(result.Errors)).
		Str("method", string(result.Method)).
		Msg("Plan applied")

	return result
}

// create places one cache file into the project tree. The planner has
// already classified the target as safe to replace.
func (a *Applier) create(item types.PlanItem, method types.SyncMethod) error {
	if err := a.fs.MkdirAll(filepath.Dir(item.Target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", item.RelPath)
	}

	// Remove whatever occupies the target (stale symlink, outdated copy)
	if _, err := a.fs.Lstat(item.Target); err == nil {
		if err := a.fs.Remove(item.Target); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove existing %s", item.RelPath)
		}
	}

	if method == types.MethodSymlink {
		if err := a.fs.Symlink(item.Source, item.Target); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to symlink %s", item.RelPath)
		}
		return nil
	}

	data, err := a.fs.ReadFile(item.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read cache file for %s", item.RelPath)
	}
	if err := a.fs.WriteFile(item.Target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s", item.RelPath)
	}
	return nil
}
