package ports

import "go.trai.ch/wbuild/internal/core/domain"

// LockfileReader loads the crate manifest and dependency lockfile of a workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileReader interface {
	// Read parses <root>/Cargo.lock. It returns domain.ErrLockfileNotFound
	// when the file does not exist.
	Read(root string) (*domain.Lockfile, error)

	// Crate reads the package and library names from <root>/Cargo.toml.
	Crate(root string) (domain.Crate, error)
}
