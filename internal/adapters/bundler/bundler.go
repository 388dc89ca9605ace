// Package bundler merges the worker entry module and its relative imports into
// a single ES module using the esbuild Go API.
package bundler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const pluginName = "wbuild-resolver"

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler.
type Bundler struct{}

// New creates a new Bundler.
func New() *Bundler {
	return &Bundler{}
}

// Bundle resolves, merges and emits opts.Entry. The result is deterministic for
// identical inputs.
func (b *Bundler) Bundle(ctx context.Context, opts domain.BundleOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Module comments in the output are relative to the working directory, so
	// it is pinned to the resolve dir instead of the process cwd.
	workDir, err := workingDir(opts.ResolveDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBundleParse.Error()), "dir", opts.ResolveDir)
	}

	resolver := newResolver(workDir, opts.Externals)

	sourcefile := opts.Sourcefile
	if sourcefile == "" {
		sourcefile = domain.DefaultBundleName
	}

	result := api.Build(api.BuildOptions{
		Stdin: &api.StdinOptions{
			Contents:   opts.Entry,
			ResolveDir: workDir,
			Sourcefile: sourcefile,
			Loader:     api.LoaderJS,
		},
		AbsWorkingDir:     workDir,
		Bundle:            true,
		Write:             false,
		Format:            api.FormatESModule,
		Platform:          api.PlatformNeutral,
		Target:            api.ESNext,
		Sourcemap:         api.SourceMapNone,
		MinifyWhitespace:  false,
		MinifyIdentifiers: false,
		MinifySyntax:      false,
		LogLevel:          api.LogLevelSilent,
		Plugins:           []api.Plugin{resolver.plugin()},
	})

	if specifier, ok := resolver.firstRejected(); ok {
		importErr := zerr.Wrap(domain.ErrNonRelativeImport, "cannot bundle "+specifier)
		return nil, zerr.With(importErr, "specifier", specifier)
	}

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			msgs = append(msgs, msg.Text)
		}
		bundleErr := zerr.Wrap(zerr.New(strings.Join(msgs, "; ")), domain.ErrBundleParse.Error())
		return nil, zerr.With(bundleErr, "entry", sourcefile)
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		for _, msg := range result.Warnings {
			v.Log(domain.LogLevelWarn, msg.Text)
		}
	}

	if len(result.OutputFiles) != 1 {
		return nil, zerr.With(domain.ErrBundleParse, "outputs", len(result.OutputFiles))
	}

	return result.OutputFiles[0].Contents, nil
}

// BundleTo bundles opts and writes the script to dst. dst is only replaced
// after a fully successful bundle.
func (b *Bundler) BundleTo(ctx context.Context, opts domain.BundleOptions, dst string) ([]byte, error) {
	out, err := b.Bundle(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := atomicWriteFile(dst, out); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrBundleWrite.Error()), "path", dst)
	}

	return out, nil
}

// resolver is the esbuild plugin state for one build.
type resolver struct {
	dir       string
	externals map[string]struct{}

	mu       sync.Mutex
	rejected []string
}

func newResolver(dir string, externals []string) *resolver {
	set := make(map[string]struct{}, len(externals))
	for _, e := range externals {
		set[e] = struct{}{}
	}
	return &resolver{dir: dir, externals: set}
}

func (r *resolver) plugin() api.Plugin {
	return api.Plugin{
		Name: pluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`}, r.resolve)
		},
	}
}

func (r *resolver) resolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	if _, ok := r.externals[args.Path]; ok {
		return api.OnResolveResult{Path: args.Path, External: true}, nil
	}

	if !strings.HasPrefix(args.Path, ".") {
		r.mu.Lock()
		r.rejected = append(r.rejected, args.Path)
		r.mu.Unlock()
		return api.OnResolveResult{}, zerr.With(domain.ErrNonRelativeImport, "specifier", args.Path)
	}

	// Relative specifiers always resolve against the output directory.
	path, err := filepath.EvalSymlinks(filepath.Join(r.dir, args.Path))
	if err != nil {
		return api.OnResolveResult{}, err
	}
	return api.OnResolveResult{Path: path}, nil
}

// workingDir returns dir as an absolute path with symlinks resolved, matching
// the paths the resolver hands to esbuild.
func workingDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (r *resolver) firstRejected() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rejected) == 0 {
		return "", false
	}
	return r.rejected[0], true
}

// atomicWriteFile writes data to a temp file next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".bundle-*.mjs")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
