// Package manifest reads Durable Object class names from wrangler.toml.
package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestReader = (*Reader)(nil)

type bindingDTO struct {
	Name      string `toml:"name"`
	ClassName string `toml:"class_name"`
}

type wranglerDTO struct {
	DurableObjects struct {
		Bindings []bindingDTO `toml:"bindings"`
	} `toml:"durable_objects"`
}

// Reader implements ports.ManifestReader.
type Reader struct{}

// New creates a new manifest Reader.
func New() *Reader {
	return &Reader{}
}

// ClassNames returns the distinct Durable Object classes bound in <dir>/wrangler.toml,
// in declaration order. A missing manifest declares no classes.
func (r *Reader) ClassNames(dir string) ([]string, error) {
	path := filepath.Join(dir, domain.WranglerManifestName)

	//nolint:gosec // path is derived from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestRead.Error()), "path", path)
	}

	var dto wranglerDTO
	if err := toml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParse.Error()), "path", path)
	}

	seen := make(map[string]struct{}, len(dto.DurableObjects.Bindings))
	names := make([]string, 0, len(dto.DurableObjects.Bindings))
	for _, b := range dto.DurableObjects.Bindings {
		if b.ClassName == "" {
			continue
		}
		if _, ok := seen[b.ClassName]; ok {
			continue
		}
		seen[b.ClassName] = struct{}{}
		names = append(names, b.ClassName)
	}

	return names, nil
}
