package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wbuild/internal/adapters/bindgen"            //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/bundler"            //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/inspect"            //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/installer"          //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/optimizer"          //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/wbuild/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			manifest.NodeID,
			installer.NodeID,
			shell.NodeID,
			bindgen.NodeID,
			bundler.NodeID,
			optimizer.NodeID,
			inspect.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			logger.NodeID,
			scheduler.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // dependency resolution
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	lockfiles, err := graft.Dep[ports.LockfileReader](ctx)
	if err != nil {
		return nil, err
	}
	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}
	toolInstaller, err := graft.Dep[ports.ToolInstaller](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}
	generator, err := graft.Dep[ports.BindingGenerator](ctx)
	if err != nil {
		return nil, err
	}
	bundle, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}
	opt, err := graft.Dep[ports.Optimizer](ctx)
	if err != nil {
		return nil, err
	}
	inspector, err := graft.Dep[ports.ModuleInspector](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	a := New(loader, lockfiles, manifests, toolInstaller, runner, generator, bundle, opt, inspector, hasher, store, log, sched)
	return a.WithToolCacheDir(installer.DefaultCacheDir()), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
