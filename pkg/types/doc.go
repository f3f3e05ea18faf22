// Package types defines the shared data model for the ccasp sync engine:
// the filesystem interface the engine operates through, the compiled-cache
// manifest, link classification states, per-project sync state, and the
// result structures returned by every operation.
package types
