// Package installer locates external tools and downloads them into a user cache
// when they are missing.
package installer

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rogpeppe/go-internal/lockedfile"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const lockFileName = ".lock"

var _ ports.ToolInstaller = (*Installer)(nil)

// Installer implements ports.ToolInstaller.
type Installer struct {
	logger     ports.Logger
	runner     ports.CommandRunner
	httpClient *http.Client
	cacheDir   string
	platform   domain.Platform
}

// New creates an Installer caching into the per-user cache directory.
func New(logger ports.Logger, runner ports.CommandRunner) *Installer {
	client := &http.Client{
		Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
	}
	return newInstallerWithClient(logger, runner, client, DefaultCacheDir(), domain.CurrentPlatform())
}

// newInstallerWithClient creates an Installer with a custom http client, cache and platform (used for testing).
func newInstallerWithClient(
	logger ports.Logger,
	runner ports.CommandRunner,
	client *http.Client,
	cacheDir string,
	platform domain.Platform,
) *Installer {
	return &Installer{
		logger:     logger,
		runner:     runner,
		httpClient: client,
		cacheDir:   filepath.Clean(cacheDir),
		platform:   platform,
	}
}

// DefaultCacheDir is <user cache dir>/wbuild, falling back to the temp dir.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, domain.ToolCacheDirName)
}

// Ensure returns a usable executable for tool.
//
// The environment override always wins. Otherwise PATH and the cache are
// searched unless mode forces a fresh install.
func (i *Installer) Ensure(ctx context.Context, tool domain.Tool, mode domain.InstallMode) (domain.InstalledTool, error) {
	if p, ok := os.LookupEnv(tool.EnvOverride()); ok && p != "" {
		return domain.InstalledTool{Tool: tool, Path: p}, nil
	}

	target := tool.Target(i.platform)

	if mode != domain.InstallForce {
		if p, ok := lookPath(tool.BinaryName()); ok {
			return domain.InstalledTool{Tool: tool, Path: p}, nil
		}
		if p, ok := i.cached(tool, target); ok {
			return domain.InstalledTool{Tool: tool, Path: p}, nil
		}
	}

	if mode == domain.InstallNever {
		notInstalled := zerr.With(domain.ErrToolNotInstalled, "tool", tool.Name)
		return domain.InstalledTool{}, zerr.With(notInstalled, "version", tool.Version)
	}

	if err := os.MkdirAll(i.cacheDir, domain.DirPerm); err != nil {
		return domain.InstalledTool{}, zerr.With(zerr.Wrap(err, domain.ErrToolCacheCreateFailed.Error()), "path", i.cacheDir)
	}

	unlock, err := lockedfile.MutexAt(filepath.Join(i.cacheDir, lockFileName)).Lock()
	if err != nil {
		return domain.InstalledTool{}, zerr.With(zerr.Wrap(err, domain.ErrToolCacheCreateFailed.Error()), "path", i.cacheDir)
	}
	defer unlock()

	// Another process may have finished the same install while we waited.
	if mode != domain.InstallForce {
		if p, ok := i.cached(tool, target); ok {
			return domain.InstalledTool{Tool: tool, Path: p}, nil
		}
	}

	var p string
	if target == domain.TargetUnsupported {
		p, err = i.buildFromSource(ctx, tool)
	} else {
		p, err = i.download(ctx, tool, target)
	}
	if err != nil {
		return domain.InstalledTool{}, err
	}

	return domain.InstalledTool{Tool: tool, Path: p}, nil
}

// Version runs `<tool> --version` and returns the reported version.
func (i *Installer) Version(ctx context.Context, installed domain.InstalledTool) (string, error) {
	out, err := i.runner.Output(ctx, domain.Command{Name: installed.Path, Args: []string{"--version"}})
	if err != nil {
		return "", err
	}
	v, err := domain.ParseToolVersion(out)
	if err != nil {
		return "", zerr.With(err, "tool", installed.Tool.Name)
	}
	return v, nil
}

func (i *Installer) cachePath(tool domain.Tool, target domain.Target) string {
	root := filepath.Join(i.cacheDir, tool.CacheKey(target))
	if target == domain.TargetUnsupported {
		// cargo install --root places binaries under bin/.
		return filepath.Join(root, "bin", tool.BinaryName())
	}
	return filepath.Join(root, filepath.FromSlash(tool.ArchivePath(i.platform)))
}

func (i *Installer) cached(tool domain.Tool, target domain.Target) (string, bool) {
	p := i.cachePath(tool, target)
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}

func (i *Installer) download(ctx context.Context, tool domain.Tool, target domain.Target) (string, error) {
	dst := i.cachePath(tool, target)
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolCacheCreateFailed.Error()), "path", dst)
	}

	// The binary is fetched beside dst, so a failed download never touches a
	// working cached copy.
	f, err := createBinary(filepath.Dir(dst))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolCacheCreateFailed.Error()), "path", dst)
	}
	tmp := f.Name()

	url := tool.ArchiveURL(target)
	i.logger.Info(fmt.Sprintf("installing %s %s from %s", tool.Name, tool.Version, url))

	if err := i.fetch(ctx, url, tool.ArchivePath(i.platform), tool.StripComponents, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", zerr.With(zerr.With(err, "tool", tool.Name), "url", url)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolExtractFailed.Error()), "path", dst)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", zerr.With(zerr.Wrap(err, domain.ErrToolExtractFailed.Error()), "path", dst)
	}

	if err := i.removeStale(tool.CachePrefix(target), tool.CacheKey(target)); err != nil {
		i.logger.Warn(fmt.Sprintf("could not remove old %s versions: %v", tool.Name, err))
	}

	return dst, nil
}

func (i *Installer) fetch(ctx context.Context, url, want string, strip int, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, domain.ErrToolDownloadFailed.Error())
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return zerr.Wrap(err, domain.ErrToolDownloadFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(domain.ErrToolDownloadFailed, "status", resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return zerr.Wrap(err, domain.ErrToolExtractFailed.Error())
	}
	defer func() {
		_ = gz.Close()
	}()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return zerr.With(domain.ErrToolBinaryMissing, "binary", want)
		}
		if err != nil {
			return zerr.Wrap(err, domain.ErrToolExtractFailed.Error())
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if name, ok := stripComponents(hdr.Name, strip); !ok || name != want {
			continue
		}

		//nolint:gosec // archives come from pinned release URLs
		if _, err := io.Copy(w, tr); err != nil {
			return zerr.Wrap(err, domain.ErrToolExtractFailed.Error())
		}
		return nil
	}
}

func (i *Installer) buildFromSource(ctx context.Context, tool domain.Tool) (string, error) {
	if tool.Crate == "" {
		unsupported := zerr.With(domain.ErrUnsupportedPlatform, "tool", tool.Name)
		return "", zerr.With(unsupported, "platform", i.platform.String())
	}

	root := filepath.Join(i.cacheDir, tool.CacheKey(domain.TargetUnsupported))
	i.logger.Warn(fmt.Sprintf("no prebuilt %s for %s, building %s from source", tool.Name, i.platform, tool.Crate))

	err := i.runner.Run(ctx, domain.Command{
		Name: "cargo",
		Args: []string{"install", tool.Crate, "--version", tool.Version, "--root", root},
	})
	if err != nil {
		return "", err
	}

	p, ok := i.cached(tool, domain.TargetUnsupported)
	if !ok {
		return "", zerr.With(domain.ErrToolBinaryMissing, "path", i.cachePath(tool, domain.TargetUnsupported))
	}
	return p, nil
}

// removeStale deletes every cached version sharing prefix except keep.
func (i *Installer) removeStale(prefix, keep string) error {
	entries, err := os.ReadDir(i.cacheDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) || e.Name() == keep {
			continue
		}
		if err := os.RemoveAll(filepath.Join(i.cacheDir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// createBinary creates an executable temp file in dir.
func createBinary(dir string) (*os.File, error) {
	f, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return nil, err
	}
	if runtime.GOOS == "windows" {
		return f, nil
	}
	// CreateTemp uses 0600.
	if err := f.Chmod(domain.ExecPerm); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	return f, nil
}

// stripComponents drops the first n elements of an archive path.
func stripComponents(name string, n int) (string, bool) {
	parts := strings.Split(path.Clean(strings.TrimPrefix(name, "./")), "/")
	if len(parts) <= n {
		return "", false
	}
	return strings.Join(parts[n:], "/"), true
}

// lookPath scans PATH for a file or symlink named exactly file.
func lookPath(file string) (string, bool) {
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		p := filepath.Join(dir, file)
		info, err := os.Lstat(p)
		if err != nil {
			continue
		}
		if m := info.Mode(); m.IsRegular() || m&os.ModeSymlink != 0 {
			return p, true
		}
	}
	return "", false
}
