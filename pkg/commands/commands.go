// Package commands exposes the operations the surrounding tooling calls:
// sync, compile, status, repair, enable, disable, and the capability probe.
// Each returns a structured result; expected conditions (customized files,
// per-file failures, missing capability) are values, never panics or thrown
// errors. Only an invalid project path or unreadable project root is fatal.
package commands

import (
	"github.com/ccasp/ccasp/pkg/applier"
	"github.com/ccasp/ccasp/pkg/capability"
	"github.com/ccasp/ccasp/pkg/compiler"
	"github.com/ccasp/ccasp/pkg/filesystem"
	"github.com/ccasp/ccasp/pkg/manifest"
	"github.com/ccasp/ccasp/pkg/paths"
	"github.com/ccasp/ccasp/pkg/planner"
	"github.com/ccasp/ccasp/pkg/repair"
	"github.com/ccasp/ccasp/pkg/types"
)

// Ops wires the engine components behind the verb-level operations
type Ops struct {
	fs       types.FS
	paths    paths.Paths
	store    *manifest.Store
	compiler *compiler.Compiler
	planner  *planner.Planner
	applier  *applier.Applier
	repairer *repair.Repairer
	probe    func() bool
	version  string
}

// New creates the operations over the real filesystem and XDG paths
func New(version string) (*Ops, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	return NewWith(filesystem.NewOS(), p, capability.SymlinksSupported, version), nil
}

// NewWith creates the operations with explicit collaborators, used by tests
// to point at temp directories and control the capability probe.
func NewWith(fsys types.FS, p paths.Paths, probe func() bool, version string) *Ops {
	store := manifest.NewStore(fsys, p)
	comp := compiler.New(fsys, p, store, version)
	pl := planner.New(fsys, p)
	ap := applier.New(fsys, probe)

	return &Ops{
		fs:       fsys,
		paths:    p,
		store:    store,
		compiler: comp,
		planner:  pl,
		applier:  ap,
		repairer: repair.New(fsys, p, store, pl, comp, ap, version),
		probe:    probe,
		version:  version,
	}
}

// CapabilityResult reports symlink support and the method a sync would use
type CapabilityResult struct {
	SymlinksSupported bool
	Method            types.SyncMethod
}

// Capability runs the symlink probe
func (o *Ops) Capability() CapabilityResult {
	if o.probe() {
		return CapabilityResult{SymlinksSupported: true, Method: types.MethodSymlink}
	}
	return CapabilityResult{SymlinksSupported: false, Method: types.MethodCopy}
}

// Compile renders the project's templates into its cache
func (o *Ops) Compile(projectPath string, force bool) (*types.CompileResult, error) {
	return o.compiler.Compile(projectPath, compiler.Options{Force: force})
}

// Status returns the read-only health view for a project
func (o *Ops) Status(projectPath string) (*types.SyncStatus, error) {
	return o.repairer.Status(projectPath)
}

// Repair fixes broken links where the backing template still exists
func (o *Ops) Repair(projectPath string) (*types.RepairResult, error) {
	return o.repairer.RepairBrokenLinks(projectPath)
}

// DetectCustomFiles lists entries that must never be overwritten
func (o *Ops) DetectCustomFiles(projectPath string) ([]types.LinkEntry, error) {
	return o.repairer.DetectCustomFiles(projectPath)
}
