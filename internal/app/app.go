// Package app implements the application layer for wbuild.
package app

import (
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/wbuild/internal/engine/scheduler"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lockfiles    ports.LockfileReader
	manifests    ports.ManifestReader
	installer    ports.ToolInstaller
	runner       ports.CommandRunner
	bindgen      ports.BindingGenerator
	bundler      ports.Bundler
	optimizer    ports.Optimizer
	inspector    ports.ModuleInspector
	hasher       ports.Hasher
	store        ports.BuildInfoStore
	logger       ports.Logger
	scheduler    *scheduler.Scheduler

	toolchain    domain.Toolchain
	toolCacheDir string
}

// New creates a new App instance pinned to the default toolchain.
func New(
	loader ports.ConfigLoader,
	lockfiles ports.LockfileReader,
	manifests ports.ManifestReader,
	installer ports.ToolInstaller,
	runner ports.CommandRunner,
	bindgen ports.BindingGenerator,
	bundler ports.Bundler,
	optimizer ports.Optimizer,
	inspector ports.ModuleInspector,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	log ports.Logger,
	sched *scheduler.Scheduler,
) *App {
	return &App{
		configLoader: loader,
		lockfiles:    lockfiles,
		manifests:    manifests,
		installer:    installer,
		runner:       runner,
		bindgen:      bindgen,
		bundler:      bundler,
		optimizer:    optimizer,
		inspector:    inspector,
		hasher:       hasher,
		store:        store,
		logger:       log,
		scheduler:    sched,
		toolchain:    domain.DefaultToolchain(),
	}
}

// WithToolchain overrides the pinned tool and library versions.
func (a *App) WithToolchain(tc domain.Toolchain) *App {
	a.toolchain = tc
	return a
}

// WithToolCacheDir sets the directory `clean --tools` removes.
func (a *App) WithToolCacheDir(dir string) *App {
	a.toolCacheDir = dir
	return a
}

// Toolchain returns the versions the App verifies and installs.
func (a *App) Toolchain() domain.Toolchain {
	return a.toolchain
}
