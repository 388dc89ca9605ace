package ports

import "go.trai.ch/wbuild/internal/core/domain"

// BuildInfoStore persists the outcome of successful builds per workspace.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get returns the record stored under key for the workspace at root,
	// or nil if there is none.
	Get(root, key string) (*domain.BuildInfo, error)

	// Put stores the record under info.Key() for the workspace at root.
	Put(root string, info domain.BuildInfo) error
}
