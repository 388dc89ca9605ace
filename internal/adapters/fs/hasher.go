package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of build artifacts.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// HashBytes returns the hex digest of data.
func (h *Hasher) HashBytes(data []byte) string {
	return format(xxhash.Sum64(data))
}

// HashFiles digests every file below dir whose name ends in ext. Keys are
// slash separated paths relative to dir. An empty ext matches every file.
func (h *Hasher) HashFiles(dir, ext string) (map[string]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("not a directory"), "path", dir)
	}

	digests := make(map[string]string)
	for path := range h.walker.WalkFiles(dir, nil) {
		if !strings.HasSuffix(path, ext) {
			continue
		}

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		digests[filepath.ToSlash(rel)] = format(sum)
	}

	return digests, nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
