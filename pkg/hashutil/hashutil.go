// Package hashutil computes the content checksums recorded in manifests.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ccasp/ccasp/pkg/errors"
	"github.com/ccasp/ccasp/pkg/types"
)

// Prefix identifies the checksum algorithm in stored hashes
const Prefix = "sha256:"

// Checksum returns the prefixed SHA-256 hex digest of data
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(sum[:])
}

// FileChecksum reads a file through fsys and returns its checksum
func FileChecksum(fsys types.FS, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s for checksum", path)
	}
	return Checksum(data), nil
}
