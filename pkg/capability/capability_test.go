package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbe(t *testing.T) {
	// Symlink creation works on any POSIX CI runner
	assert.True(t, Probe())
}

func TestSymlinksSupportedMemoized(t *testing.T) {
	first := SymlinksSupported()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, SymlinksSupported())
	}
}
