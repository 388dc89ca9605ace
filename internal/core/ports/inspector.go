package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// ModuleInspector decodes a compiled module and summarizes it.
//
//go:generate go run go.uber.org/mock/mockgen -source=inspector.go -destination=mocks/mock_inspector.go -package=mocks
type ModuleInspector interface {
	Inspect(ctx context.Context, path string) (domain.ModuleSummary, error)
}
