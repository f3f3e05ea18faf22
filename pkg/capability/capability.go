// Package capability probes whether the current user can create symlinks.
// The result gates the applier's default method: symlink where supported,
// byte copies otherwise.
package capability

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ccasp/ccasp/pkg/logging"
)

var (
	probeOnce   sync.Once
	probeResult bool
)

// SymlinksSupported reports whether symlink creation works for this process.
// The probe runs once per process lifetime; it is deliberately not persisted
// across invocations because OS privilege (e.g. Windows Developer Mode) can
// change between runs.
func SymlinksSupported() bool {
	probeOnce.Do(func() {
		probeResult = Probe()
	})
	return probeResult
}

// Probe attempts to create and remove a throwaway symlink in the temp
// directory. Any permission or unsupported-operation error yields false.
func Probe() bool {
	logger := logging.GetLogger("capability")

	dir, err := os.MkdirTemp("", "ccasp-symlink-probe-")
	if err != nil {
		logger.Debug().Err(err).Msg("Probe temp dir creation failed")
		return false
	}
	defer func() { _ = os.RemoveAll(dir) }()

	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, []byte("probe"), 0644); err != nil {
		logger.Debug().Err(err).Msg("Probe target creation failed")
		return false
	}

	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		logger.Debug().Err(err).Msg("Symlink creation not permitted")
		return false
	}

	return true
}
