// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wbuild/internal/adapters/bindgen"
	_ "go.trai.ch/wbuild/internal/adapters/bundler"
	_ "go.trai.ch/wbuild/internal/adapters/cas"
	_ "go.trai.ch/wbuild/internal/adapters/config"
	_ "go.trai.ch/wbuild/internal/adapters/fs"
	_ "go.trai.ch/wbuild/internal/adapters/inspect"
	_ "go.trai.ch/wbuild/internal/adapters/installer"
	_ "go.trai.ch/wbuild/internal/adapters/lockfile"
	_ "go.trai.ch/wbuild/internal/adapters/logger"
	_ "go.trai.ch/wbuild/internal/adapters/manifest"
	_ "go.trai.ch/wbuild/internal/adapters/optimizer"
	_ "go.trai.ch/wbuild/internal/adapters/shell"
	_ "go.trai.ch/wbuild/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/wbuild/internal/app"
	_ "go.trai.ch/wbuild/internal/engine/scheduler"
)
