package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// BindingGenerator turns a compiled module into JavaScript glue.
//
//go:generate go run go.uber.org/mock/mockgen -source=bindgen.go -destination=mocks/mock_bindgen.go -package=mocks
type BindingGenerator interface {
	Invoke(ctx context.Context, tool domain.InstalledTool, opts domain.BindgenOptions) error
}
