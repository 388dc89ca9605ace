package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/adapters/lockfile"
	"go.trai.ch/wbuild/internal/core/domain"
)

const cargoLock = `# This file is automatically @generated by Cargo.
version = 3

[[package]]
name = "my-worker"
version = "0.1.0"
dependencies = [
 "wasm-bindgen 0.2.106",
 "worker",
]

[[package]]
name = "wasm-bindgen"
version = "0.2.87"

[[package]]
name = "wasm-bindgen"
version = "0.2.106"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "worker"
version = "0.7.1"
`

const cargoToml = `[package]
name = "my-worker"
version = "0.1.0"

[lib]
name = "my_worker_lib"
crate-type = ["cdylib"]

[dependencies]
worker = "0.7.1"
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm))
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, domain.CargoLockName, cargoLock)
	writeFile(t, dir, domain.CargoManifestName, cargoToml)

	lock, err := lockfile.New().Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "my-worker", lock.RootPackageName)
	require.Len(t, lock.Packages, 4)

	v, ok := lock.PackageVersion("wasm-bindgen")
	require.True(t, ok)
	assert.Equal(t, "0.2.106", v, "root edge should select the pinned version")

	v, ok = lock.PackageVersion("worker")
	require.True(t, ok)
	assert.Equal(t, "0.7.1", v)
}

func TestReader_Read_WithoutManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, domain.CargoLockName, cargoLock)

	lock, err := lockfile.New().Read(dir)
	require.NoError(t, err)
	assert.Empty(t, lock.RootPackageName)

	v, ok := lock.PackageVersion("wasm-bindgen")
	require.True(t, ok)
	assert.Equal(t, "0.2.87", v, "first match wins without a root package")
}

func TestReader_Read_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := lockfile.New().Read(t.TempDir())
		require.ErrorIs(t, err, domain.ErrLockfileNotFound)
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, domain.CargoLockName, "[[package]\nname = ")

		_, err := lockfile.New().Read(dir)
		require.ErrorContains(t, err, domain.ErrLockfileParse.Error())
	})

	t.Run("directory instead of file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, domain.CargoLockName), domain.DirPerm))

		_, err := lockfile.New().Read(dir)
		require.ErrorContains(t, err, domain.ErrLockfileRead.Error())
	})
}

func TestReader_Crate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, domain.CargoManifestName, cargoToml)

	crate, err := lockfile.New().Crate(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-worker", crate.Name)
	assert.Equal(t, "my_worker_lib", crate.ArtifactName())

	empty := t.TempDir()
	writeFile(t, empty, domain.CargoManifestName, "[workspace]\nmembers = []\n")
	_, err = lockfile.New().Crate(empty)
	require.ErrorContains(t, err, domain.ErrCrateManifestRead.Error())
}

func TestFindWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, domain.CargoManifestName, cargoToml)
	nested := filepath.Join(root, "src", "bin")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	got, err := lockfile.FindWorkspaceRoot(nested)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}
