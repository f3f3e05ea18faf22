// Package planner computes what a sync would do: for every manifest path it
// classifies the project-tree counterpart and buckets it into create, skip,
// or error. The planner never mutates anything, so the same pass backs
// dry-run previews, real syncs, repair, and status reporting.
package planner

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ccasp/ccasp/pkg/hashutil"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/types"
	"github.com/ccasp/ccasp/pkg/walk"
)

// Skip reasons surfaced to the user
const (
	ReasonAlreadyLinked = "Already symlinked correctly"
	ReasonUpToDate      = "Already up to date"
	ReasonCustomized    = "Customized (hash differs)"
	ReasonUserCreated   = "User-created file"
)

// HashLookup returns the hash recorded for a path at the last successful
// sync, and whether any record exists.
type HashLookup func(relPath string) (string, bool)

// Planner classifies project trees against compiled caches
type Planner struct {
	fs    types.FS
	paths paths.Paths
}

// New creates a planner over the given filesystem and paths
func New(fsys types.FS, p paths.Paths) *Planner {
	return &Planner{fs: fsys, paths: p}
}

// Classify produces a link entry for every path in the union of the manifest
// and the project tree. Tracked entries carry their cache hash; untracked
// tree files are classified as user content or stale cache links.
func (pl *Planner) Classify(projectPath, slug string, m *types.Manifest, lastHash HashLookup) ([]types.LinkEntry, error) {
	treeRoot := pl.paths.ProjectTreeRoot(projectPath)
	cacheDir := pl.paths.ProjectCacheDir(slug)

	var entries []types.LinkEntry
	tracked := make(map[string]bool)

	if m != nil {
		// Deterministic order for reporting
		relPaths := make([]string, 0, len(m.Files))
		for rel := range m.Files {
			relPaths = append(relPaths, rel)
		}
		sort.Strings(relPaths)

		for _, rel := range relPaths {
			tracked[rel] = true
			entries = append(entries, pl.classifyTracked(treeRoot, cacheDir, rel, m.Files[rel], lastHash))
		}
	}

	// Anything in the tree the manifest does not know about
	err := walk.Walk(pl.fs, treeRoot, func(e walk.Entry) error {
		if e.Kind == walk.KindDir || tracked[e.RelPath] {
			return nil
		}
		entries = append(entries, pl.classifyUntracked(treeRoot, cacheDir, e))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// classifyTracked applies the drift decision table to one manifest path
func (pl *Planner) classifyTracked(treeRoot, cacheDir, rel, cacheHash string, lastHash HashLookup) types.LinkEntry {
	entry := types.LinkEntry{
		RelPath:   rel,
		Target:    filepath.Join(treeRoot, rel),
		Source:    filepath.Join(cacheDir, rel),
		CacheHash: cacheHash,
		Tracked:   true,
	}

	info, err := pl.fs.Lstat(entry.Target)
	if err != nil {
		entry.State = types.LinkStateMissing
		return entry
	}

	if info.IsDir() {
		entry.State = types.LinkStateUserCreated
		entry.IsDir = true
		return entry
	}

	if isSymlink(info) {
		dest, err := pl.fs.Readlink(entry.Target)
		if err != nil {
			entry.State = types.LinkStateBroken
			entry.Unreadable = true
			return entry
		}
		entry.LinkDest = resolveDest(entry.Target, dest)

		if entry.LinkDest == filepath.Clean(entry.Source) {
			// Pointing at the right cache file; linked only if it resolves
			if _, err := pl.fs.Stat(entry.Target); err == nil {
				entry.State = types.LinkStateLinked
			} else {
				entry.State = types.LinkStateBroken
			}
			return entry
		}

		// Points somewhere else, or dangles: recreate
		entry.State = types.LinkStateBroken
		return entry
	}

	// Regular file: compare against the last-known-synced hash. Preservation
	// always wins over freshness; an absent record means user content.
	nowHash, err := hashutil.FileChecksum(pl.fs, entry.Target)
	if err != nil {
		entry.State = types.LinkStateBroken
		entry.Unreadable = true
		return entry
	}

	last, known := lastHash(rel)
	switch {
	case !known:
		entry.State = types.LinkStateUserCreated
	case nowHash != last:
		entry.State = types.LinkStateCustomized
	case nowHash == cacheHash:
		entry.State = types.LinkStateCopied
	default:
		// Untouched since last sync but behind the current cache content
		entry.State = types.LinkStateUnmodified
	}
	return entry
}

// classifyUntracked handles tree entries the manifest does not list
func (pl *Planner) classifyUntracked(treeRoot, cacheDir string, e walk.Entry) types.LinkEntry {
	entry := types.LinkEntry{
		RelPath: e.RelPath,
		Target:  filepath.Join(treeRoot, e.RelPath),
	}

	if e.Kind == walk.KindSymlink {
		dest, err := pl.fs.Readlink(entry.Target)
		if err != nil {
			entry.State = types.LinkStateBroken
			entry.Unreadable = true
			return entry
		}
		entry.LinkDest = resolveDest(entry.Target, dest)

		if isWithin(cacheDir, entry.LinkDest) {
			// Leftover link into our cache with no backing manifest entry:
			// its template was removed upstream
			entry.State = types.LinkStateBroken
			return entry
		}
	}

	// Foreign symlinks and plain files are user content
	entry.State = types.LinkStateUserCreated
	return entry
}

// PlanSync derives the mutation plan for a project from a classification
// pass. Only tracked paths are ever planned; user content is reported in
// the skip list and untracked paths never appear as targets.
func (pl *Planner) PlanSync(projectPath, slug string, m *types.Manifest, state types.SyncState, lastHash HashLookup) (*types.Plan, error) {
	entries, err := pl.Classify(projectPath, slug, m, lastHash)
	if err != nil {
		return nil, err
	}

	plan := &types.Plan{}
	for _, entry := range entries {
		if !entry.Tracked {
			continue
		}

		switch {
		case entry.IsDir:
			plan.ToError = append(plan.ToError, types.ErrorItem{
				RelPath: entry.RelPath,
				Message: "path exists as a directory",
			})

		case entry.State == types.LinkStateMissing:
			plan.ToCreate = append(plan.ToCreate, planItem(entry))

		case entry.State == types.LinkStateLinked:
			plan.ToSkip = append(plan.ToSkip, types.SkipItem{RelPath: entry.RelPath, Reason: ReasonAlreadyLinked})

		case entry.State == types.LinkStateBroken && entry.Unreadable:
			plan.ToError = append(plan.ToError, types.ErrorItem{
				RelPath: entry.RelPath,
				Message: "symlink target cannot be determined",
			})

		case entry.State == types.LinkStateBroken:
			plan.ToCreate = append(plan.ToCreate, planItem(entry))

		case entry.State == types.LinkStateCustomized:
			plan.ToSkip = append(plan.ToSkip, types.SkipItem{RelPath: entry.RelPath, Reason: ReasonCustomized})

		case entry.State == types.LinkStateUserCreated:
			plan.ToSkip = append(plan.ToSkip, types.SkipItem{RelPath: entry.RelPath, Reason: ReasonUserCreated})

		case entry.State == types.LinkStateCopied && state.Method == types.MethodCopy:
			// Byte-identical copy under copy method: nothing to do
			plan.ToSkip = append(plan.ToSkip, types.SkipItem{RelPath: entry.RelPath, Reason: ReasonUpToDate})

		case entry.State == types.LinkStateCopied || entry.State == types.LinkStateUnmodified:
			// Provably untouched since last sync: safe to replace even when
			// the template changed upstream
			plan.ToCreate = append(plan.ToCreate, planItem(entry))

		default:
			plan.ToError = append(plan.ToError, types.ErrorItem{
				RelPath: entry.RelPath,
				Message: fmt.Sprintf("unhandled link state %q", entry.State),
			})
		}
	}
	return plan, nil
}

func planItem(entry types.LinkEntry) types.PlanItem {
	return types.PlanItem{
		RelPath: entry.RelPath,
		Target:  entry.Target,
		Source:  entry.Source,
	}
}
