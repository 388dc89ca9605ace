// Package bindgen invokes wasm-bindgen on the compiled worker module.
package bindgen

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const targetDirFlag = "--target-dir"

var _ ports.BindingGenerator = (*Invoker)(nil)

// Invoker implements ports.BindingGenerator.
type Invoker struct {
	runner ports.CommandRunner
}

// New creates a new Invoker.
func New(runner ports.CommandRunner) *Invoker {
	return &Invoker{runner: runner}
}

// Invoke generates the JavaScript glue for the compiled module into opts.OutDir.
func (i *Invoker) Invoke(ctx context.Context, tool domain.InstalledTool, opts domain.BindgenOptions) error {
	wasm := ArtifactPath(opts)
	if _, err := os.Stat(wasm); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrArtifactNotFound, "path", wasm)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrArtifactNotFound.Error()), "path", wasm)
	}

	return i.runner.Run(ctx, domain.Command{
		Name: tool.Path,
		Args: Args(wasm, opts),
	})
}

// ArtifactPath is <target>/wasm32-unknown-unknown/<profile>/<crate>.wasm.
func ArtifactPath(opts domain.BindgenOptions) string {
	targetDir := opts.TargetDir
	if dir, ok := targetDirOverride(opts.CargoArgs); ok {
		targetDir = dir
	}
	return filepath.Join(targetDir, domain.WasmTarget, opts.Profile.Dir(), opts.Crate+domain.WasmExt)
}

// Args builds the wasm-bindgen argument list for wasm.
func Args(wasm string, opts domain.BindgenOptions) []string {
	typesFlag := "--typescript"
	if opts.DisableTypes {
		typesFlag = "--no-typescript"
	}

	args := []string{wasm, "--out-dir", opts.OutDir, typesFlag, "--target", opts.Target}

	if opts.OutName != "" {
		args = append(args, "--out-name", opts.OutName)
	}

	s := opts.Settings
	if s.DebugJSGlue {
		args = append(args, "--debug")
	}
	if !s.Demangle {
		args = append(args, "--no-demangle")
	}
	if s.DWARF {
		args = append(args, "--keep-debug")
	}
	if s.OmitDefaultModulePath {
		args = append(args, "--omit-default-module-path")
	}
	if s.SplitLinkedModules {
		args = append(args, "--split-linked-modules")
	}

	return append(args, opts.ExtraArgs...)
}

func targetDirOverride(cargoArgs []string) (string, bool) {
	for idx, arg := range cargoArgs {
		if arg == targetDirFlag && idx+1 < len(cargoArgs) {
			return cargoArgs[idx+1], true
		}
		if value, ok := strings.CutPrefix(arg, targetDirFlag+"="); ok {
			return value, true
		}
	}
	return "", false
}
