// Package optimizer runs wasm-opt over the compiled modules of a build.
package optimizer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	tmpSuffix   = ".wasm-opt" + domain.WasmExt
	disableHint = `To disable wasm-opt, set "wasm_opt: false" in ` + domain.ConfigFileName + " or pass --no-opt"
)

var _ ports.Optimizer = (*Optimizer)(nil)

// Optimizer implements ports.Optimizer.
type Optimizer struct {
	runner ports.CommandRunner
}

// New creates a new Optimizer.
func New(runner ports.CommandRunner) *Optimizer {
	return &Optimizer{runner: runner}
}

// Optimize rewrites every module in outDir in place, one at a time.
// It stops at the first failure; modules already processed stay optimized.
func (o *Optimizer) Optimize(ctx context.Context, tool domain.InstalledTool, outDir string, args []string) error {
	modules, err := modules(outDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOptimizeFailed.Error()), "dir", outDir)
	}

	for _, path := range modules {
		if err := o.optimize(ctx, tool, path, args); err != nil {
			return err
		}
	}
	return nil
}

func (o *Optimizer) optimize(ctx context.Context, tool domain.InstalledTool, path string, args []string) error {
	tmp := strings.TrimSuffix(path, domain.WasmExt) + tmpSuffix

	cmdArgs := make([]string, 0, len(args)+3)
	cmdArgs = append(cmdArgs, path, "-o", tmp)
	cmdArgs = append(cmdArgs, args...)

	if err := o.runner.Run(ctx, domain.Command{Name: tool.Path, Args: cmdArgs}); err != nil {
		_ = os.Remove(tmp)
		return optimizeError(err, path)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return optimizeError(err, path)
	}
	return nil
}

func optimizeError(err error, path string) error {
	optErr := zerr.Wrap(err, domain.ErrOptimizeFailed.Error())
	optErr = zerr.With(optErr, "module", path)
	return zerr.With(optErr, "hint", disableHint)
}

// modules lists the compiled modules in dir in lexical order, ignoring leftovers
// of an interrupted run.
func modules(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, domain.WasmExt) || strings.HasSuffix(name, tmpSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}
