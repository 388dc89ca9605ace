package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/wbuild/internal/adapters/lockfile"
	"go.trai.ch/wbuild/internal/adapters/shim"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Dir is where the workspace search starts, "." when empty.
	Dir string
	// Profile is a profile name accepted by domain.ParseProfile.
	Profile string
	// Mode overrides the configured install mode when set.
	Mode        string
	NoOpt       bool
	SkipCompile bool
	Typescript  bool
}

// BuildResult summarizes a successful build.
type BuildResult struct {
	Crate      string
	Profile    string
	BundlePath string
	// Changed is false when the bundle digest matches the previous build.
	Changed bool
	Modules []domain.ModuleSummary
}

// buildState is shared by the stages of one build. Stages run serially, so
// only preflight writes concurrently and it does so to distinct fields.
type buildState struct {
	opts     BuildOptions
	root     string
	outDir   string
	cfg      domain.Config
	profile  domain.Profile
	settings domain.ProfileSettings
	mode     domain.InstallMode

	classNames []string
	lock       *domain.Lockfile
	crate      domain.Crate

	bindgenTool domain.InstalledTool
	wasmOpt     *domain.InstalledTool

	bundle []byte
	result BuildResult
}

// Build runs the full pipeline: preflight, version check, tool installation,
// compile, glue generation, bundling, optimization and the build record.
func (a *App) Build(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	st, err := a.prepare(opts)
	if err != nil {
		return BuildResult{}, err
	}

	g := domain.NewGraph()
	stages := []domain.Stage{
		{Name: domain.StagePreflight, Run: func(ctx context.Context) error { return a.preflight(ctx, st) }},
		{Name: domain.StageCheck, Dependencies: []string{domain.StagePreflight}, Run: func(ctx context.Context) error { return a.check(ctx, st) }},
		{Name: domain.StageTools, Dependencies: []string{domain.StageCheck}, Run: func(ctx context.Context) error { return a.tools(ctx, st) }},
		{Name: domain.StageCompile, Dependencies: []string{domain.StageTools}, Run: func(ctx context.Context) error { return a.compile(ctx, st) }},
		{Name: domain.StageBindgen, Dependencies: []string{domain.StageCompile}, Run: func(ctx context.Context) error { return a.generateGlue(ctx, st) }},
		{Name: domain.StageBundle, Dependencies: []string{domain.StageBindgen}, Run: func(ctx context.Context) error { return a.bundle(ctx, st) }},
		{Name: domain.StageOptimize, Dependencies: []string{domain.StageBundle}, Run: func(ctx context.Context) error { return a.optimize(ctx, st) }},
		{Name: domain.StageRecord, Dependencies: []string{domain.StageOptimize}, Run: func(ctx context.Context) error { return a.record(ctx, st) }},
	}
	for _, s := range stages {
		if err := g.AddStage(s); err != nil {
			return BuildResult{}, err
		}
	}

	if err := a.scheduler.Run(ctx, g); err != nil {
		return BuildResult{}, err
	}
	return st.result, nil
}

// Check runs the preflight reads and the version gate only.
func (a *App) Check(ctx context.Context, opts BuildOptions) error {
	st, err := a.prepare(opts)
	if err != nil {
		return err
	}
	// Without a compile stage the compiler version is irrelevant.
	st.opts.SkipCompile = true

	g := domain.NewGraph()
	if err := g.AddStage(domain.Stage{
		Name: domain.StagePreflight,
		Run:  func(ctx context.Context) error { return a.preflight(ctx, st) },
	}); err != nil {
		return err
	}
	if err := g.AddStage(domain.Stage{
		Name:         domain.StageCheck,
		Dependencies: []string{domain.StagePreflight},
		Run:          func(ctx context.Context) error { return a.check(ctx, st) },
	}); err != nil {
		return err
	}
	return a.scheduler.Run(ctx, g)
}

func (a *App) prepare(opts BuildOptions) (*buildState, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	root, err := lockfile.FindWorkspaceRoot(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := a.configLoader.Load(root)
	if err != nil {
		return nil, err
	}

	profile, err := domain.ParseProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	mode := cfg.Install
	if opts.Mode != "" {
		if mode, err = domain.ParseInstallMode(opts.Mode); err != nil {
			return nil, err
		}
	}

	settings := cfg.SettingsFor(profile)
	if opts.NoOpt {
		settings.WasmOptArgs = nil
	}

	outDir := cfg.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(root, outDir)
	}

	return &buildState{
		opts:     opts,
		root:     root,
		outDir:   outDir,
		cfg:      cfg,
		profile:  profile,
		settings: settings,
		mode:     mode,
	}, nil
}

func (a *App) preflight(_ context.Context, st *buildState) error {
	var g errgroup.Group

	g.Go(func() error {
		names, err := a.manifests.ClassNames(st.root)
		if err != nil {
			return err
		}
		st.classNames = names
		return nil
	})

	g.Go(func() error {
		lock, err := a.lockfiles.Read(st.root)
		if errors.Is(err, domain.ErrLockfileNotFound) {
			a.logger.Warn("could not find Cargo.lock, skipping dependency version check")
			return nil
		}
		if err != nil {
			return err
		}
		st.lock = lock
		return nil
	})

	g.Go(func() error {
		crate, err := a.lockfiles.Crate(st.root)
		if err != nil {
			return err
		}
		st.crate = crate
		return nil
	})

	return g.Wait()
}

func (a *App) check(ctx context.Context, st *buildState) error {
	if st.lock != nil {
		if err := st.lock.Check(a.toolchain.Requirements(st.cfg.WorkerLib)...); err != nil {
			return err
		}
	}
	if st.opts.SkipCompile {
		return nil
	}

	out, err := a.runner.Output(ctx, domain.Command{Name: "rustc", Args: []string{"--version"}, Dir: st.root})
	if err != nil {
		return err
	}
	version, err := domain.ParseToolVersion(out)
	if err != nil {
		return err
	}
	ok, err := domain.AtLeast(version, a.toolchain.MinRustc)
	if err != nil {
		return err
	}
	if !ok {
		versionErr := zerr.With(domain.ErrCompilerVersion, "found", version)
		return zerr.With(versionErr, "required", a.toolchain.MinRustc)
	}
	return nil
}

func (a *App) tools(ctx context.Context, st *buildState) error {
	tool, err := a.installer.Ensure(ctx, domain.BindingGeneratorTool(a.toolchain.WasmBindgen), st.mode)
	if err != nil {
		return err
	}
	st.bindgenTool = tool

	// A glue generator of another version emits an incompatible schema.
	if version, err := a.installer.Version(ctx, tool); err != nil {
		a.logger.Warn(fmt.Sprintf("could not determine %s version: %v", tool.Tool.Name, err))
	} else if version != a.toolchain.WasmBindgen {
		a.logger.Warn(fmt.Sprintf("%s at %s is version %s, expected %s", tool.Tool.Name, tool.Path, version, a.toolchain.WasmBindgen))
	}

	if st.settings.OptimizerArgs() == nil {
		return nil
	}
	opt, err := a.installer.Ensure(ctx, domain.OptimizerTool(a.toolchain.WasmOpt), st.mode)
	if err != nil {
		return err
	}
	st.wasmOpt = &opt
	return nil
}

func (a *App) compile(ctx context.Context, st *buildState) error {
	if st.opts.SkipCompile {
		a.logger.Info("skipping compile")
		return nil
	}
	args := []string{"build", "--lib", "--target", domain.WasmTarget}
	args = append(args, st.profile.CargoArgs()...)
	args = append(args, st.cfg.CargoArgs...)
	return a.runner.Run(ctx, domain.Command{Name: "cargo", Args: args, Dir: st.root})
}

func (a *App) generateGlue(ctx context.Context, st *buildState) error {
	if err := prepareOutDir(st.outDir); err != nil {
		return err
	}

	opts := domain.BindgenOptions{
		Profile:      st.profile,
		Settings:     st.settings,
		Crate:        st.crate.ArtifactName(),
		TargetDir:    filepath.Join(st.root, "target"),
		OutDir:       st.outDir,
		OutName:      st.cfg.OutName,
		Target:       st.cfg.Target,
		DisableTypes: !(st.cfg.Typescript || st.opts.Typescript),
		CargoArgs:    st.cfg.CargoArgs,
		ExtraArgs:    st.cfg.BindgenArgs,
	}
	return a.bindgen.Invoke(ctx, st.bindgenTool, opts)
}

// prepareOutDir removes stale packaging metadata and marks the directory as
// generated output.
func prepareOutDir(outDir string) error {
	if err := os.Remove(filepath.Join(outDir, domain.PackageJSONName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrOutDirCreateFailed.Error()), "path", outDir)
	}
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutDirCreateFailed.Error()), "path", outDir)
	}
	gitignore := filepath.Join(outDir, domain.GitignoreName)
	if err := os.WriteFile(gitignore, []byte("*\n"), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutDirCreateFailed.Error()), "path", gitignore)
	}
	return nil
}

func (a *App) bundle(ctx context.Context, st *buildState) error {
	entry := shim.Entry(st.cfg.OutName, st.classNames)
	dst := filepath.Join(st.outDir, st.cfg.BundleName)

	out, err := a.bundler.BundleTo(ctx, domain.BundleOptions{
		Entry:      entry,
		Sourcefile: st.cfg.BundleName,
		ResolveDir: st.outDir,
		Externals:  st.cfg.Externals,
	}, dst)
	if err != nil {
		return err
	}
	st.bundle = out
	st.result.BundlePath = dst
	return nil
}

func (a *App) optimize(ctx context.Context, st *buildState) error {
	if st.wasmOpt == nil {
		a.logger.Info("skipping wasm-opt")
		return nil
	}
	return a.optimizer.Optimize(ctx, *st.wasmOpt, st.outDir, st.settings.OptimizerArgs())
}

func (a *App) record(ctx context.Context, st *buildState) error {
	digests, err := a.hasher.HashFiles(st.outDir, domain.WasmExt)
	if err != nil {
		return err
	}

	modules := make([]string, 0, len(digests))
	for name := range digests {
		modules = append(modules, name)
	}
	slices.Sort(modules)

	// Inspection never fails the build; the host reports the real error.
	for _, name := range modules {
		summary, err := a.inspector.Inspect(ctx, filepath.Join(st.outDir, filepath.FromSlash(name)))
		if err != nil {
			a.logger.Warn(fmt.Sprintf("%s: %v", name, err))
			continue
		}
		st.result.Modules = append(st.result.Modules, summary)
	}

	info := domain.BuildInfo{
		Crate:         st.crate.Name,
		Profile:       st.profile.String(),
		BundleDigest:  a.hasher.HashBytes(st.bundle),
		ModuleDigests: digests,
		Toolchain:     a.toolchain,
		Timestamp:     time.Now(),
	}

	prev, err := a.store.Get(st.root, info.Key())
	if err != nil {
		return err
	}

	st.result.Crate = info.Crate
	st.result.Profile = info.Profile
	st.result.Changed = prev == nil || prev.BundleDigest != info.BundleDigest

	return a.store.Put(st.root, info)
}
