package types

// LinkState classifies the relationship between one cache file and its
// project-tree counterpart.
type LinkState string

const (
	// LinkStateLinked means the path is a symlink pointing at the correct cache file
	LinkStateLinked LinkState = "linked"

	// LinkStateCopied means the path is an independent file whose bytes equal
	// the cache content (copy method, or a materialized link)
	LinkStateCopied LinkState = "copied"

	// LinkStateUnmodified means the path is a regular file equal to its
	// last-synced content but behind the current cache content
	LinkStateUnmodified LinkState = "unmodified"

	// LinkStateCustomized means the file's hash differs from the last-known
	// synced hash: the user edited it and it must never be overwritten
	LinkStateCustomized LinkState = "customized"

	// LinkStateUserCreated means the path exists but was never part of a sync
	LinkStateUserCreated LinkState = "user-created"

	// LinkStateBroken means the path is a symlink whose target is missing or wrong
	LinkStateBroken LinkState = "broken"

	// LinkStateMissing means the tracked path is absent from the project tree
	LinkStateMissing LinkState = "missing"
)

// LinkEntry is the classification of a single project-tree path against the
// compiled cache. Entries for untracked paths have no cache hash.
type LinkEntry struct {
	// RelPath is the path relative to the project's .claude directory
	RelPath string

	// State is the classification result
	State LinkState

	// Target is the absolute project-tree path
	Target string

	// Source is the absolute cache path this entry should link to (empty for
	// untracked paths)
	Source string

	// CacheHash is the manifest hash for the path, if tracked
	CacheHash string

	// Tracked reports whether the path appears in the manifest
	Tracked bool

	// LinkDest is the raw symlink destination when the path is a symlink
	LinkDest string

	// IsDir is set when the path exists but is a directory
	IsDir bool

	// Unreadable is set when the path is a symlink whose destination could
	// not be determined safely
	Unreadable bool
}

// IsCustom reports whether the entry represents user content that must be
// preserved.
func (e LinkEntry) IsCustom() bool {
	return e.State == LinkStateCustomized || e.State == LinkStateUserCreated
}
