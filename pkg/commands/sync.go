package commands

import (
	"time"

	"github.com/ccasp/ccasp/pkg/compiler"
	"github.com/ccasp/ccasp/pkg/logging"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/planner"
	"github.com/ccasp/ccasp/pkg/project"
	"github.com/ccasp/ccasp/pkg/types"
)

// SyncOptions controls a sync run
type SyncOptions struct {
	// Force recompiles templates even when the cache is current
	Force bool

	// DryRun computes and returns the plan without mutating anything
	DryRun bool
}

// Sync compiles the project cache, plans the diff against the project tree,
// applies it (unless dry-run), and persists the updated sync metadata.
// Re-running after an interrupt is safe: the plan is re-derived and already
// applied entries are simply skipped.
func (o *Ops) Sync(projectPath string, opts SyncOptions) (*types.SyncResult, error) {
	logger := logging.GetLogger("sync")
	done := logging.LogOperationStart(logger, "sync")
	defer done()

	absPath, err := o.paths.NormalizeProjectPath(projectPath)
	if err != nil {
		return nil, err
	}
	slug := paths.ProjectSlug(absPath)

	cfg, err := project.Load(o.fs, absPath)
	if err != nil {
		return nil, err
	}

	compileRes, err := o.compiler.Compile(absPath, compiler.Options{Force: opts.Force})
	if err != nil {
		return nil, err
	}

	method := cfg.Sync.Method
	if !cfg.Sync.Enabled {
		// First sync (or re-enable): pick the best method the OS allows
		method = types.MethodSymlink
		if !o.probe() {
			method = types.MethodCopy
		}
	}

	state := cfg.Sync
	state.Method = method

	plan, err := o.planner.PlanSync(absPath, slug, compileRes.Manifest, state, func(rel string) (string, bool) {
		return o.store.LastKnownHash(slug, rel)
	})
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return &types.SyncResult{
			Compile: compileRes,
			Plan:    plan,
			DryRun:  true,
			State:   cfg.Sync,
		}, nil
	}

	applied := o.applier.Apply(plan, method)

	if err := o.recordSynced(slug, compileRes.Manifest, applied); err != nil {
		return nil, err
	}

	cfg.Sync = types.SyncState{
		Enabled:            true,
		Method:             applied.Method,
		LastSyncAt:         time.Now().UTC(),
		CcaspVersionAtSync: o.version,
	}
	if err := project.Save(o.fs, absPath, cfg); err != nil {
		return nil, err
	}

	logger.Info().
		Str("slug", slug).
		Int("created", len(applied.Created)).
		Int("skipped", len(applied.Skipped)).
		Int("errors", len(applied.Errors)).
		Msg("Sync completed")

	return &types.SyncResult{
		Compile: compileRes,
		Plan:    plan,
		Apply:   applied,
		State:   cfg.Sync,
	}, nil
}

// recordSynced updates the last-synced hash record: every path the applier
// created, plus paths already in sync, is stamped with its manifest hash.
// Preserved user content keeps whatever record it had, so the next planner
// pass still sees it as customized.
func (o *Ops) recordSynced(slug string, m *types.Manifest, applied *types.ApplyResult) error {
	synced := o.store.LoadSynced(slug)

	for _, item := range applied.Created {
		if h, ok := m.Hash(item.RelPath); ok {
			synced[item.RelPath] = h
		}
	}
	for _, skip := range applied.Skipped {
		if skip.Reason != planner.ReasonAlreadyLinked && skip.Reason != planner.ReasonUpToDate {
			continue
		}
		if h, ok := m.Hash(skip.RelPath); ok {
			synced[skip.RelPath] = h
		}
	}

	return o.store.SaveSynced(slug, synced)
}
