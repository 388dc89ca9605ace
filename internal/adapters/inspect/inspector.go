// Package inspect decodes compiled WebAssembly modules with wazero.
package inspect

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleInspector = (*Inspector)(nil)

// Inspector implements ports.ModuleInspector.
type Inspector struct{}

// New creates a new Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect validates the module at path and counts its exports, imports and memories.
// The module is compiled but never instantiated.
func (i *Inspector) Inspect(ctx context.Context, path string) (domain.ModuleSummary, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a build artifact
	if err != nil {
		return domain.ModuleSummary{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidModule.Error()), "path", path)
	}

	// The interpreter validates without generating machine code.
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer func() {
		_ = rt.Close(ctx)
	}()

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return domain.ModuleSummary{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidModule.Error()), "path", path)
	}
	defer func() {
		_ = compiled.Close(ctx)
	}()

	return domain.ModuleSummary{
		Path:     path,
		Size:     int64(len(data)),
		Exports:  len(compiled.ExportedFunctions()),
		Imports:  len(compiled.ImportedFunctions()),
		Memories: len(compiled.ExportedMemories()),
	}, nil
}
