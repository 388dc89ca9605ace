package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// Bundler merges the entry module and its relative imports into one script.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Bundle returns the emitted script.
	Bundle(ctx context.Context, opts domain.BundleOptions) ([]byte, error)

	// BundleTo bundles and writes the script to dst. Nothing is written
	// unless bundling succeeds.
	BundleTo(ctx context.Context, opts domain.BundleOptions, dst string) ([]byte, error)
}
