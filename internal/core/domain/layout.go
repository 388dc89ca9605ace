package domain

import "path/filepath"

const (
	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".wbuild"

	// StateFileName is the name of the build record file inside the state directory.
	StateFileName = "state.json"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "wbuild.yaml"

	// CargoManifestName is the name of the crate manifest.
	CargoManifestName = "Cargo.toml"

	// CargoLockName is the name of the dependency lockfile.
	CargoLockName = "Cargo.lock"

	// WranglerManifestName is the name of the deployment manifest.
	WranglerManifestName = "wrangler.toml"

	// PackageJSONName is stale packaging metadata removed at the start of a build.
	PackageJSONName = "package.json"

	// GitignoreName marks the output directory as disposable.
	GitignoreName = ".gitignore"

	// WasmExt is the extension of compiled modules.
	WasmExt = ".wasm"

	// WasmTarget is the compiler target triple for the worker module.
	WasmTarget = "wasm32-unknown-unknown"

	// DefaultOutDir is the default output directory relative to the workspace root.
	DefaultOutDir = "build"

	// DefaultOutName is the default base name of the generated glue.
	DefaultOutName = "index"

	// DefaultBundleName is the file name of the bundled worker script.
	DefaultBundleName = "shim.mjs"

	// DefaultBindgenTarget is the default wasm-bindgen output target.
	DefaultBindgenTarget = "bundler"

	// ToolCacheDirName is the directory inside the user cache holding downloaded tools.
	ToolCacheDirName = "wbuild"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for downloaded tool binaries (rwxrwx---).
	ExecPerm = 0o770
)

// DefaultStatePath returns the path of the build record store below root.
func DefaultStatePath(root string) string {
	return filepath.Join(root, StateDirName, StateFileName)
}

// WasmGlueImport is the import specifier the glue uses for the compiled module.
func WasmGlueImport(outName string) string {
	return "./" + outName + "_bg" + WasmExt
}
