package installer

import (
	"net/http"

	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
)

// NewInstallerWithClient exports newInstallerWithClient for testing purposes.
func NewInstallerWithClient(
	logger ports.Logger,
	runner ports.CommandRunner,
	client *http.Client,
	cacheDir string,
	platform domain.Platform,
) *Installer {
	return newInstallerWithClient(logger, runner, client, cacheDir, platform)
}
