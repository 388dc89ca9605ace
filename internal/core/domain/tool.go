package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// ToolKind identifies the role a tool plays in the pipeline.
type ToolKind int

const (
	// ToolBindingGenerator turns compiled module exports into JavaScript glue.
	ToolBindingGenerator ToolKind = iota
	// ToolOptimizer shrinks compiled modules.
	ToolOptimizer
	// ToolScaffolder creates new projects from a template.
	ToolScaffolder
)

// String returns the string representation of the ToolKind.
func (k ToolKind) String() string {
	switch k {
	case ToolBindingGenerator:
		return "binding-generator"
	case ToolOptimizer:
		return "optimizer"
	case ToolScaffolder:
		return "scaffolder"
	default:
		return "unknown"
	}
}

// Target is a tool-specific platform string used in archive names.
type Target string

// TargetUnsupported is returned for platforms without a prebuilt archive.
const TargetUnsupported Target = ""

// Tool describes an external executable the pipeline can locate or install.
type Tool struct {
	Kind    ToolKind
	Name    string
	Version string
	// Crate is the cargo package used to build the tool from source, empty
	// when the tool cannot be built that way.
	Crate string
	// URLTemplate contains {version} and {target} placeholders.
	URLTemplate string
	// ArchiveBin is the binary path inside the archive after stripping
	// StripComponents leading path elements. The Windows suffix is added
	// by ArchivePath.
	ArchiveBin      string
	StripComponents int
	Targets         map[Platform]Target
}

// InstalledTool is a located executable. It is never mutated after creation.
type InstalledTool struct {
	Tool Tool
	Path string
}

// BindingGeneratorTool describes wasm-bindgen at the given version.
func BindingGeneratorTool(version string) Tool {
	return Tool{
		Kind:            ToolBindingGenerator,
		Name:            "wasm-bindgen",
		Version:         version,
		Crate:           "wasm-bindgen-cli",
		URLTemplate:     "https://github.com/wasm-bindgen/wasm-bindgen/releases/download/{version}/wasm-bindgen-{version}-{target}.tar.gz",
		ArchiveBin:      "wasm-bindgen",
		StripComponents: 1,
		Targets: map[Platform]Target{
			{OS: "darwin", Arch: "arm64"}:  "aarch64-apple-darwin",
			{OS: "darwin", Arch: "amd64"}:  "x86_64-apple-darwin",
			{OS: "linux", Arch: "arm64"}:   "aarch64-unknown-linux-musl",
			{OS: "linux", Arch: "amd64"}:   "x86_64-unknown-linux-musl",
			{OS: "windows", Arch: "amd64"}: "x86_64-pc-windows-msvc",
		},
	}
}

// OptimizerTool describes wasm-opt from the given binaryen release.
func OptimizerTool(version string) Tool {
	return Tool{
		Kind:            ToolOptimizer,
		Name:            "wasm-opt",
		Version:         version,
		URLTemplate:     "https://github.com/WebAssembly/binaryen/releases/download/version_{version}/binaryen-version_{version}-{target}.tar.gz",
		ArchiveBin:      "bin/wasm-opt",
		StripComponents: 1,
		Targets: map[Platform]Target{
			{OS: "darwin", Arch: "arm64"}:  "arm64-macos",
			{OS: "darwin", Arch: "amd64"}:  "x86_64-macos",
			{OS: "linux", Arch: "arm64"}:   "aarch64-linux",
			{OS: "linux", Arch: "amd64"}:   "x86_64-linux",
			{OS: "windows", Arch: "arm64"}: "arm64-windows",
			{OS: "windows", Arch: "amd64"}: "x86_64-windows",
		},
	}
}

// ScaffolderTool describes cargo-generate at the given version.
func ScaffolderTool(version string) Tool {
	return Tool{
		Kind:        ToolScaffolder,
		Name:        "cargo-generate",
		Version:     version,
		Crate:       "cargo-generate",
		URLTemplate: "https://github.com/cargo-generate/cargo-generate/releases/download/v{version}/cargo-generate-v{version}-{target}.tar.gz",
		ArchiveBin:  "cargo-generate",
		Targets: map[Platform]Target{
			{OS: "darwin", Arch: "arm64"}:  "aarch64-apple-darwin",
			{OS: "darwin", Arch: "amd64"}:  "x86_64-apple-darwin",
			{OS: "linux", Arch: "arm64"}:   "aarch64-unknown-linux-musl",
			{OS: "linux", Arch: "amd64"}:   "x86_64-unknown-linux-musl",
			{OS: "windows", Arch: "amd64"}: "x86_64-pc-windows-msvc",
		},
	}
}

// Target maps a platform to this tool's archive target.
func (t Tool) Target(p Platform) Target {
	target, ok := t.Targets[p]
	if !ok {
		return TargetUnsupported
	}
	return target
}

// ArchiveURL renders the download URL for a target.
func (t Tool) ArchiveURL(target Target) string {
	r := strings.NewReplacer("{version}", t.Version, "{target}", string(target))
	return r.Replace(t.URLTemplate)
}

// ArchivePath returns the binary path inside the archive for a platform.
func (t Tool) ArchivePath(p Platform) string {
	if p.OS == "windows" {
		return t.ArchiveBin + ".exe"
	}
	return t.ArchiveBin
}

// BinaryName returns the executable file name on the host.
func (t Tool) BinaryName() string {
	if runtime.GOOS == "windows" {
		return t.Name + ".exe"
	}
	return t.Name
}

// EnvOverride is the environment variable pointing at a user supplied
// binary, e.g. WASM_BINDGEN_BIN.
func (t Tool) EnvOverride() string {
	return strings.ToUpper(strings.ReplaceAll(t.Name, "-", "_")) + "_BIN"
}

// CacheKey names the cache directory of this tool for a target.
func (t Tool) CacheKey(target Target) string {
	return t.CachePrefix(target) + t.Version
}

// CachePrefix is shared by all cached versions of this tool for a target.
func (t Tool) CachePrefix(target Target) string {
	if target == TargetUnsupported {
		target = "src"
	}
	return t.Name + "-" + string(target) + "-"
}

// InstallMode controls whether missing tools may be downloaded.
type InstallMode string

const (
	// InstallNormal uses an existing binary and installs when missing.
	InstallNormal InstallMode = "normal"
	// InstallNever fails when the binary is missing.
	InstallNever InstallMode = "no-install"
	// InstallForce always installs a fresh copy.
	InstallForce InstallMode = "force"
)

// ParseInstallMode validates a mode string. The empty string means normal.
func ParseInstallMode(s string) (InstallMode, error) {
	switch InstallMode(s) {
	case "", InstallNormal:
		return InstallNormal, nil
	case InstallNever:
		return InstallNever, nil
	case InstallForce:
		return InstallForce, nil
	default:
		return "", zerr.With(ErrInvalidInstallMode, "mode", s)
	}
}

// ParseToolVersion extracts the version from `<tool> --version` output,
// which is the second whitespace separated token.
func ParseToolVersion(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return "", zerr.With(ErrToolVersionUnparseable, "output", strings.TrimSpace(output))
	}
	return fields[1], nil
}
