package ports

import (
	"context"

	"go.trai.ch/wbuild/internal/core/domain"
)

// ToolInstaller locates external tools and installs them when permitted.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type ToolInstaller interface {
	// Ensure returns a usable executable for tool.
	Ensure(ctx context.Context, tool domain.Tool, mode domain.InstallMode) (domain.InstalledTool, error)

	// Version returns the version the installed tool reports.
	Version(ctx context.Context, installed domain.InstalledTool) (string, error)
}
