package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// Optimizer post-processes every compiled module in a directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=optimizer.go -destination=mocks/mock_optimizer.go -package=mocks
type Optimizer interface {
	Optimize(ctx context.Context, tool domain.InstalledTool, outDir string, args []string) error
}
