package types

import "time"

// SyncMethod is how cache files are mapped into the project tree
type SyncMethod string

const (
	// MethodSymlink links project paths to the cache
	MethodSymlink SyncMethod = "symlink"

	// MethodCopy writes independent copies (symlink-unsupported fallback)
	MethodCopy SyncMethod = "copy"
)

// SyncState is the per-project sync record persisted in the project's own
// configuration file under the "sync" key.
type SyncState struct {
	Enabled            bool       `json:"enabled"`
	Method             SyncMethod `json:"method"`
	LastSyncAt         time.Time  `json:"lastSyncAt"`
	CcaspVersionAtSync string     `json:"ccaspVersionAtSync,omitempty"`
}

// DefaultSyncState returns the state of a project that has never synced
// or has been disabled: method reset to copy, not enabled.
func DefaultSyncState() SyncState {
	return SyncState{
		Enabled: false,
		Method:  MethodCopy,
	}
}
