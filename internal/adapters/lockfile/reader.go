// Package lockfile reads Cargo.lock and Cargo.toml from a crate workspace.
package lockfile

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

var _ ports.LockfileReader = (*Reader)(nil)

type lockedPackageDTO struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Dependencies []string `toml:"dependencies"`
}

type cargoLockDTO struct {
	Package []lockedPackageDTO `toml:"package"`
}

type cargoManifestDTO struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Name string `toml:"name"`
	} `toml:"lib"`
}

// Reader implements ports.LockfileReader.
type Reader struct{}

// New creates a new lockfile Reader.
func New() *Reader {
	return &Reader{}
}

// Read parses <root>/Cargo.lock.
// A missing lockfile yields domain.ErrLockfileNotFound unwrapped so callers can branch on it.
func (r *Reader) Read(root string) (*domain.Lockfile, error) {
	path := filepath.Join(root, domain.CargoLockName)

	//nolint:gosec // path is derived from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrLockfileNotFound
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileRead.Error()), "path", path)
	}

	var dto cargoLockDTO
	if err := toml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParse.Error()), "path", path)
	}

	lock := &domain.Lockfile{Packages: make([]domain.LockedPackage, 0, len(dto.Package))}
	for _, p := range dto.Package {
		lock.Packages = append(lock.Packages, domain.LockedPackage{
			Name:         p.Name,
			Version:      p.Version,
			Dependencies: p.Dependencies,
		})
	}

	// The root name only sharpens version resolution, so a broken manifest is tolerated here.
	if crate, err := r.Crate(root); err == nil {
		lock.RootPackageName = crate.Name
	}

	return lock, nil
}

// Crate reads the package and library names from <root>/Cargo.toml.
func (r *Reader) Crate(root string) (domain.Crate, error) {
	path := filepath.Join(root, domain.CargoManifestName)

	//nolint:gosec // path is derived from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Crate{}, zerr.With(zerr.Wrap(err, domain.ErrCrateManifestRead.Error()), "path", path)
	}

	var dto cargoManifestDTO
	if err := toml.Unmarshal(data, &dto); err != nil {
		return domain.Crate{}, zerr.With(zerr.Wrap(err, domain.ErrCrateManifestRead.Error()), "path", path)
	}
	if dto.Package.Name == "" {
		return domain.Crate{}, zerr.With(zerr.New(domain.ErrCrateManifestRead.Error()+": missing [package] name"), "path", path)
	}

	return domain.Crate{Name: dto.Package.Name, LibName: dto.Lib.Name}, nil
}

// FindWorkspaceRoot walks up from dir until it finds a Cargo.toml.
// When none is found, dir itself is returned.
func FindWorkspaceRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	current := abs
	for {
		if info, statErr := os.Stat(filepath.Join(current, domain.CargoManifestName)); statErr == nil && !info.IsDir() {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		current = parent
	}
}
