package types

import "time"

// CompileResult is returned by the template compiler.
// Skipped compilations carry a human-readable reason.
type CompileResult struct {
	Success    bool
	Skipped    bool
	Reason     string
	FileCount  int
	Categories map[string]CategoryCount
	Warnings   []CompileWarning
	Manifest   *Manifest
}

// CompileWarning reports a non-fatal issue for one rendered template,
// such as a required variable that was not provided.
type CompileWarning struct {
	RelPath string
	Message string
}

// PlanItem is one file the applier should create
type PlanItem struct {
	RelPath string
	Target  string
	Source  string
}

// SkipItem is one file the planner decided to leave alone, with the reason
type SkipItem struct {
	RelPath string
	Reason  string
}

// ErrorItem is a per-file failure. Failures are collected, never fatal for
// the rest of the plan.
type ErrorItem struct {
	RelPath string
	Message string
}

// Plan is the planner's output: a pure description of what a sync would do
type Plan struct {
	ToCreate []PlanItem
	ToSkip   []SkipItem
	ToError  []ErrorItem
}

// IsEmpty reports whether the plan has nothing to create
func (p *Plan) IsEmpty() bool {
	return len(p.ToCreate) == 0
}

// ApplyResult is returned by the link applier
type ApplyResult struct {
	Created        []PlanItem
	Skipped        []SkipItem
	Errors         []ErrorItem
	FallbackToCopy bool
	Method         SyncMethod
}

// RemoveResult is returned when symlinks are materialized back into copies
type RemoveResult struct {
	Removed []string
	Errors  []ErrorItem
}

// RepairResult is returned by broken-link repair
type RepairResult struct {
	Fixed  int
	Errors []ErrorItem
}

// SyncResult is the consolidated result of a sync operation
type SyncResult struct {
	Compile *CompileResult
	Plan    *Plan
	Apply   *ApplyResult
	DryRun  bool
	State   SyncState
}

// SyncStatus is the read-only health view of a project
type SyncStatus struct {
	Enabled         bool
	Method          SyncMethod
	Cached          bool
	ToolVersion     string
	CompiledAt      time.Time
	NeedsRecompile  bool
	SymlinkCount    int
	RealFileCount   int
	BrokenSymlinks  int
	CustomFileCount int
	MissingCount    int
	OrphanedLinks   []string
}
