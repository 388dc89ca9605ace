package domain

import "go.trai.ch/zerr"

var (
	// ErrStageAlreadyExists is returned when attempting to add a stage with a name that already exists.
	ErrStageAlreadyExists = zerr.New("stage already exists")

	// ErrMissingDependency is returned when a stage references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the stage graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrStageFailed is returned when a pipeline stage fails.
	ErrStageFailed = zerr.New("stage failed")

	// ErrLockfileNotFound is returned when no Cargo.lock exists at the workspace root.
	ErrLockfileNotFound = zerr.New("could not find lockfile")

	// ErrLockfileRead is returned when the lockfile exists but cannot be read.
	ErrLockfileRead = zerr.New("failed to read lockfile")

	// ErrLockfileParse is returned when the lockfile is not valid TOML.
	ErrLockfileParse = zerr.New("failed to parse lockfile")

	// ErrCrateManifestRead is returned when Cargo.toml cannot be read or parsed.
	ErrCrateManifestRead = zerr.New("failed to read Cargo.toml")

	// ErrInvalidVersion is returned when a version string is not valid semver.
	ErrInvalidVersion = zerr.New("invalid semantic version")

	// ErrDependencyVersion is returned when a locked library does not satisfy the required version.
	ErrDependencyVersion = zerr.New("unsupported dependency version")

	// ErrManifestRead is returned when the deployment manifest exists but cannot be read.
	ErrManifestRead = zerr.New("failed to read wrangler.toml")

	// ErrManifestParse is returned when the deployment manifest is not valid TOML.
	ErrManifestParse = zerr.New("failed to parse wrangler.toml")

	// ErrUnsupportedPlatform is returned when no prebuilt archive exists for the host platform.
	ErrUnsupportedPlatform = zerr.New("no prebuilt binary for this platform")

	// ErrToolNotInstalled is returned when a tool is missing and installation is not permitted.
	ErrToolNotInstalled = zerr.New("tool is not installed")

	// ErrToolDownloadFailed is returned when the tool archive cannot be fetched.
	ErrToolDownloadFailed = zerr.New("failed to download tool")

	// ErrToolExtractFailed is returned when the tool archive cannot be unpacked.
	ErrToolExtractFailed = zerr.New("failed to extract tool")

	// ErrToolBinaryMissing is returned when the archive does not contain the expected binary.
	ErrToolBinaryMissing = zerr.New("archive does not contain the tool binary")

	// ErrToolCacheCreateFailed is returned when the tool cache directory cannot be created.
	ErrToolCacheCreateFailed = zerr.New("failed to create tool cache directory")

	// ErrToolVersionUnparseable is returned when a tool does not report a usable version.
	ErrToolVersionUnparseable = zerr.New("could not determine tool version")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrArtifactNotFound is returned when the compiled module is missing from the target directory.
	ErrArtifactNotFound = zerr.New("compiled module not found")

	// ErrNonRelativeImport is returned when the bundled code imports a bare specifier.
	ErrNonRelativeImport = zerr.New("non-relative imports are not supported")

	// ErrBundleParse is returned when the bundler cannot parse or link the entry module.
	ErrBundleParse = zerr.New("failed to bundle worker")

	// ErrBundleWrite is returned when the bundled output cannot be written.
	ErrBundleWrite = zerr.New("failed to write bundle")

	// ErrOptimizeFailed is returned when wasm-opt fails on an artifact.
	ErrOptimizeFailed = zerr.New("wasm-opt failed")

	// ErrInvalidModule is returned when a compiled module cannot be decoded.
	ErrInvalidModule = zerr.New("invalid WebAssembly module")

	// ErrOutDirCreateFailed is returned when the output directory cannot be prepared.
	ErrOutDirCreateFailed = zerr.New("failed to prepare output directory")

	// ErrConfigReadFailed is returned when the project config cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project config is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidInstallMode is returned for an unknown install mode.
	ErrInvalidInstallMode = zerr.New("invalid install mode, expected 'normal', 'no-install' or 'force'")

	// ErrInvalidProfile is returned for an empty or malformed profile name.
	ErrInvalidProfile = zerr.New("invalid build profile")

	// ErrStoreReadFailed is returned when the build record store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build records")

	// ErrStoreUnmarshalFailed is returned when the build record store is corrupt.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build records")

	// ErrStoreMarshalFailed is returned when build records cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build records")

	// ErrStoreWriteFailed is returned when build records cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build records")

	// ErrCompilerVersion is returned when the installed compiler is older than required.
	ErrCompilerVersion = zerr.New("unsupported compiler version")

	// ErrCleanFailed is returned when a cache or output directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean")

	// ErrProjectNameRequired is returned when `new` is called without a name.
	ErrProjectNameRequired = zerr.New("project name is required")
)
