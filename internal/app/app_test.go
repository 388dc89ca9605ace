package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/app"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/wbuild/internal/core/ports/mocks"
	"go.trai.ch/wbuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	root      string
	loader    *mocks.MockConfigLoader
	lockfiles *mocks.MockLockfileReader
	manifests *mocks.MockManifestReader
	installer *mocks.MockToolInstaller
	runner    *mocks.MockCommandRunner
	bindgen   *mocks.MockBindingGenerator
	bundler   *mocks.MockBundler
	optimizer *mocks.MockOptimizer
	inspector *mocks.MockModuleInspector
	hasher    *mocks.MockHasher
	store     *mocks.MockBuildInfoStore
	logger    *mocks.MockLogger
	warnings  []string
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]\nname = \"my-worker\"\n"), 0o600))

	f := &fixture{
		root:      root,
		loader:    mocks.NewMockConfigLoader(ctrl),
		lockfiles: mocks.NewMockLockfileReader(ctrl),
		manifests: mocks.NewMockManifestReader(ctrl),
		installer: mocks.NewMockToolInstaller(ctrl),
		runner:    mocks.NewMockCommandRunner(ctrl),
		bindgen:   mocks.NewMockBindingGenerator(ctrl),
		bundler:   mocks.NewMockBundler(ctrl),
		optimizer: mocks.NewMockOptimizer(ctrl),
		inspector: mocks.NewMockModuleInspector(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		store:     mocks.NewMockBuildInfoStore(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		f.warnings = append(f.warnings, msg)
	}).AnyTimes()

	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			v := mocks.NewMockVertex(ctrl)
			v.EXPECT().Complete(gomock.Any()).AnyTimes()
			return ports.ContextWithVertex(ctx, v), v
		}).AnyTimes()

	f.app = app.New(
		f.loader, f.lockfiles, f.manifests, f.installer, f.runner, f.bindgen,
		f.bundler, f.optimizer, f.inspector, f.hasher, f.store, f.logger,
		scheduler.NewScheduler(tel),
	)
	return f
}

func compatibleLockfile() *domain.Lockfile {
	return &domain.Lockfile{
		RootPackageName: "my-worker",
		Packages: []domain.LockedPackage{
			{Name: "my-worker", Version: "0.1.0", Dependencies: []string{"worker 0.7.1", "wasm-bindgen 0.2.106"}},
			{Name: "worker", Version: "0.7.1"},
			{Name: "wasm-bindgen", Version: "0.2.106"},
		},
	}
}

func (f *fixture) expectPreflight(lock *domain.Lockfile, lockErr error) {
	f.loader.EXPECT().Load(f.root).Return(domain.DefaultConfig(), nil)
	f.manifests.EXPECT().ClassNames(f.root).Return([]string{"Counter"}, nil)
	f.lockfiles.EXPECT().Read(f.root).Return(lock, lockErr)
	f.lockfiles.EXPECT().Crate(f.root).Return(domain.Crate{Name: "my-worker"}, nil)
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t)
	tc := domain.DefaultToolchain()
	outDir := filepath.Join(f.root, "build")

	require.NoError(t, os.MkdirAll(outDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "package.json"), []byte("{}"), 0o600))

	bindgenTool := domain.InstalledTool{Tool: domain.BindingGeneratorTool(tc.WasmBindgen), Path: "/bin/wasm-bindgen"}
	wasmOpt := domain.InstalledTool{Tool: domain.OptimizerTool(tc.WasmOpt), Path: "/bin/wasm-opt"}

	f.expectPreflight(compatibleLockfile(), nil)

	gomock.InOrder(
		f.runner.EXPECT().Output(gomock.Any(), domain.Command{Name: "rustc", Args: []string{"--version"}, Dir: f.root}).
			Return("rustc 1.80.0 (051478957 2024-07-21)\n", nil),
		f.installer.EXPECT().Ensure(gomock.Any(), domain.BindingGeneratorTool(tc.WasmBindgen), domain.InstallNormal).
			Return(bindgenTool, nil),
		f.installer.EXPECT().Version(gomock.Any(), bindgenTool).Return(tc.WasmBindgen, nil),
		f.installer.EXPECT().Ensure(gomock.Any(), domain.OptimizerTool(tc.WasmOpt), domain.InstallNormal).
			Return(wasmOpt, nil),
		f.runner.EXPECT().Run(gomock.Any(), domain.Command{
			Name: "cargo",
			Args: []string{"build", "--lib", "--target", "wasm32-unknown-unknown", "--release"},
			Dir:  f.root,
		}).Return(nil),
		f.bindgen.EXPECT().Invoke(gomock.Any(), bindgenTool, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.InstalledTool, opts domain.BindgenOptions) error {
				assert.Equal(t, "my_worker", opts.Crate)
				assert.Equal(t, outDir, opts.OutDir)
				assert.Equal(t, filepath.Join(f.root, "target"), opts.TargetDir)
				assert.Equal(t, "index", opts.OutName)
				assert.True(t, opts.DisableTypes)
				return nil
			}),
		f.bundler.EXPECT().BundleTo(gomock.Any(), gomock.Any(), filepath.Join(outDir, "shim.mjs")).DoAndReturn(
			func(_ context.Context, opts domain.BundleOptions, _ string) ([]byte, error) {
				assert.Contains(t, opts.Entry, `const __WORKER_BUILD_DO_NAMES__ = ["Counter"];`)
				assert.NotContains(t, opts.Entry, "$DURABLE_OBJECTS_INJECTION_POINT")
				assert.Equal(t, outDir, opts.ResolveDir)
				assert.Equal(t, domain.DefaultExternals("index"), opts.Externals)
				return []byte("bundle"), nil
			}),
		f.optimizer.EXPECT().Optimize(gomock.Any(), wasmOpt, outDir, []string{"-O", "--all-features"}).Return(nil),
		f.hasher.EXPECT().HashFiles(outDir, ".wasm").Return(map[string]string{"index_bg.wasm": "m1"}, nil),
		f.inspector.EXPECT().Inspect(gomock.Any(), filepath.Join(outDir, "index_bg.wasm")).
			Return(domain.ModuleSummary{Path: "index_bg.wasm", Exports: 3}, nil),
		f.hasher.EXPECT().HashBytes([]byte("bundle")).Return("b1"),
		f.store.EXPECT().Get(f.root, "my-worker@release").Return(nil, nil),
		f.store.EXPECT().Put(f.root, gomock.Any()).DoAndReturn(func(_ string, info domain.BuildInfo) error {
			assert.Equal(t, "b1", info.BundleDigest)
			assert.Equal(t, map[string]string{"index_bg.wasm": "m1"}, info.ModuleDigests)
			assert.Equal(t, tc, info.Toolchain)
			assert.False(t, info.Timestamp.IsZero())
			return nil
		}),
	)

	res, err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.NoError(t, err)

	assert.Equal(t, "my-worker", res.Crate)
	assert.Equal(t, "release", res.Profile)
	assert.Equal(t, filepath.Join(outDir, "shim.mjs"), res.BundlePath)
	assert.True(t, res.Changed)
	require.Len(t, res.Modules, 1)
	assert.Equal(t, 3, res.Modules[0].Exports)

	gitignore, err := os.ReadFile(filepath.Join(outDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*\n", string(gitignore))
	assert.NoFileExists(t, filepath.Join(outDir, "package.json"))
}

func TestApp_Build_SkipCompileNoOpt(t *testing.T) {
	f := newFixture(t)
	tc := domain.DefaultToolchain()
	outDir := filepath.Join(f.root, "build")
	bindgenTool := domain.InstalledTool{Tool: domain.BindingGeneratorTool(tc.WasmBindgen), Path: "/bin/wasm-bindgen"}

	// Missing lockfile only warns.
	f.expectPreflight(nil, domain.ErrLockfileNotFound)

	f.installer.EXPECT().Ensure(gomock.Any(), domain.BindingGeneratorTool(tc.WasmBindgen), domain.InstallNever).
		Return(bindgenTool, nil)
	f.installer.EXPECT().Version(gomock.Any(), bindgenTool).Return("0.2.100", nil)
	f.bindgen.EXPECT().Invoke(gomock.Any(), bindgenTool, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.InstalledTool, opts domain.BindgenOptions) error {
			assert.True(t, opts.Settings.DebugJSGlue)
			assert.False(t, opts.DisableTypes)
			return nil
		})
	f.bundler.EXPECT().BundleTo(gomock.Any(), gomock.Any(), gomock.Any()).Return([]byte("bundle"), nil)
	f.hasher.EXPECT().HashFiles(outDir, ".wasm").Return(map[string]string{}, nil)
	f.hasher.EXPECT().HashBytes(gomock.Any()).Return("b1")
	f.store.EXPECT().Get(f.root, "my-worker@dev").Return(&domain.BuildInfo{BundleDigest: "b1"}, nil)
	f.store.EXPECT().Put(f.root, gomock.Any()).Return(nil)

	res, err := f.app.Build(context.Background(), app.BuildOptions{
		Dir:         f.root,
		Profile:     "dev",
		Mode:        "no-install",
		NoOpt:       true,
		SkipCompile: true,
		Typescript:  true,
	})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Contains(t, f.warnings, "could not find Cargo.lock, skipping dependency version check")
	assert.Contains(t, f.warnings, "wasm-bindgen at /bin/wasm-bindgen is version 0.2.100, expected 0.2.106")
}

func TestApp_Build_VersionGate(t *testing.T) {
	f := newFixture(t)

	lock := compatibleLockfile()
	lock.Packages[0].Dependencies = []string{"worker 0.6.3", "wasm-bindgen 0.2.106"}
	f.expectPreflight(lock, nil)

	// No subprocess, download or generator call is expected.
	_, err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.ErrorContains(t, err, domain.ErrStageFailed.Error())
	require.ErrorIs(t, err, domain.ErrDependencyVersion)
	require.ErrorContains(t, err, "Unsupported version worker@0.6.3")

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, domain.StageCheck, zErr.Metadata()["stage"])
}

func TestApp_Build_CompilerTooOld(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(compatibleLockfile(), nil)
	f.runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return("rustc 1.70.0 (90c541806 2023-05-31)", nil)

	_, err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.ErrorContains(t, err, domain.ErrCompilerVersion.Error())
}

func TestApp_Build_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts app.BuildOptions
		want error
	}{
		{"profile", app.BuildOptions{Profile: "../x"}, domain.ErrInvalidProfile},
		{"mode", app.BuildOptions{Mode: "sometimes"}, domain.ErrInvalidInstallMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loader.EXPECT().Load(f.root).Return(domain.DefaultConfig(), nil)

			tt.opts.Dir = f.root
			_, err := f.app.Build(context.Background(), tt.opts)
			require.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	f.expectPreflight(compatibleLockfile(), nil)

	require.NoError(t, f.app.Check(context.Background(), app.BuildOptions{Dir: f.root}))
}

func TestApp_Install(t *testing.T) {
	f := newFixture(t)
	tc := domain.DefaultToolchain()

	for _, tool := range tc.Tools() {
		installed := domain.InstalledTool{Tool: tool, Path: "/cache/" + tool.Name}
		f.installer.EXPECT().Ensure(gomock.Any(), tool, domain.InstallForce).Return(installed, nil)
		f.installer.EXPECT().Version(gomock.Any(), installed).Return(tool.Version, nil)
	}

	statuses, err := f.app.Install(context.Background(), "force")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.Equal(t, "/cache/wasm-bindgen", statuses[0].Tool.Path)
	assert.Equal(t, tc.WasmBindgen, statuses[0].Version)
}

func TestApp_NewProject(t *testing.T) {
	f := newFixture(t)
	tc := domain.DefaultToolchain()
	scaffolder := domain.InstalledTool{Tool: domain.ScaffolderTool(tc.CargoGenerate), Path: "/bin/cargo-generate"}

	f.loader.EXPECT().Load(f.root).Return(domain.DefaultConfig(), nil)
	f.installer.EXPECT().Ensure(gomock.Any(), domain.ScaffolderTool(tc.CargoGenerate), domain.InstallNormal).
		Return(scaffolder, nil)
	f.runner.EXPECT().Run(gomock.Any(), domain.Command{
		Name: "/bin/cargo-generate",
		Args: []string{"generate", "--git", "https://github.com/cloudflare/workers-rs", "--name", "hello"},
		Dir:  f.root,
	}).Return(nil)

	require.NoError(t, f.app.NewProject(context.Background(), app.NewProjectOptions{Name: "hello", Dir: f.root}))

	err := f.app.NewProject(context.Background(), app.NewProjectOptions{})
	require.ErrorIs(t, err, domain.ErrProjectNameRequired)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	toolCache := filepath.Join(t.TempDir(), "wbuild")
	f.app.WithToolCacheDir(toolCache)

	for _, dir := range []string{
		filepath.Join(f.root, ".wbuild"),
		filepath.Join(f.root, "build"),
		toolCache,
	} {
		require.NoError(t, os.MkdirAll(dir, 0o750))
	}

	f.loader.EXPECT().Load(f.root).Return(domain.DefaultConfig(), nil)
	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Dir: f.root, Build: true}))
	assert.NoDirExists(t, filepath.Join(f.root, ".wbuild"))
	assert.NoDirExists(t, filepath.Join(f.root, "build"))
	assert.DirExists(t, toolCache)

	require.NoError(t, f.app.Clean(context.Background(), app.CleanOptions{Tools: true}))
	assert.NoDirExists(t, toolCache)
}
