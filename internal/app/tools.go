package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/wbuild/internal/adapters/lockfile"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// ToolStatus is an installed tool and the version it reports.
type ToolStatus struct {
	Tool    domain.InstalledTool
	Version string
}

// Install ensures every tool of the toolchain is available and reports it.
// An empty mode installs normally.
func (a *App) Install(ctx context.Context, mode string) ([]ToolStatus, error) {
	installMode, err := domain.ParseInstallMode(mode)
	if err != nil {
		return nil, err
	}

	tools := a.toolchain.Tools()
	statuses := make([]ToolStatus, 0, len(tools))
	for _, tool := range tools {
		installed, err := a.installer.Ensure(ctx, tool, installMode)
		if err != nil {
			return nil, err
		}
		version, err := a.installer.Version(ctx, installed)
		if err != nil {
			a.logger.Warn(fmt.Sprintf("could not determine %s version: %v", tool.Name, err))
		}
		statuses = append(statuses, ToolStatus{Tool: installed, Version: version})
	}
	return statuses, nil
}

// NewProjectOptions configuration for the NewProject method.
type NewProjectOptions struct {
	Name string
	// Template overrides the configured template repository when set.
	Template string
	Mode     string
	// Dir is where the project directory is created, "." when empty.
	Dir string
}

// NewProject scaffolds a worker project from a template repository.
func (a *App) NewProject(ctx context.Context, opts NewProjectOptions) error {
	if opts.Name == "" {
		return domain.ErrProjectNameRequired
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return err
	}
	template := cfg.Template
	if opts.Template != "" {
		template = opts.Template
	}

	mode := cfg.Install
	if opts.Mode != "" {
		if mode, err = domain.ParseInstallMode(opts.Mode); err != nil {
			return err
		}
	}

	scaffolder, err := a.installer.Ensure(ctx, domain.ScaffolderTool(a.toolchain.CargoGenerate), mode)
	if err != nil {
		return err
	}

	return a.runner.Run(ctx, domain.Command{
		Name: scaffolder.Path,
		Args: []string{"generate", "--git", template, "--name", opts.Name},
		Dir:  dir,
	})
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Dir is where the workspace search starts, "." when empty.
	Dir   string
	Build bool
	Tools bool
}

// Clean removes build records, build output and downloaded tools based on
// the provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	remove := func(path, name string) error {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
		}
		return nil
	}

	if options.Build {
		dir := options.Dir
		if dir == "" {
			dir = "."
		}
		root, err := lockfile.FindWorkspaceRoot(dir)
		if err != nil {
			return err
		}
		cfg, err := a.configLoader.Load(root)
		if err != nil {
			return err
		}
		outDir := cfg.OutDir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(root, outDir)
		}
		if err := remove(filepath.Join(root, domain.StateDirName), "build records"); err != nil {
			return err
		}
		if err := remove(outDir, "build output"); err != nil {
			return err
		}
	}

	if options.Tools && a.toolCacheDir != "" {
		if err := remove(a.toolCacheDir, "tool cache"); err != nil {
			return err
		}
	}
	return nil
}
