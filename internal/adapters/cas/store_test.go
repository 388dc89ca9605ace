package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/adapters/cas"
	"go.trai.ch/wbuild/internal/core/domain"
)

func record(profile string) domain.BuildInfo {
	return domain.BuildInfo{
		Crate:         "my-worker",
		Profile:       profile,
		BundleDigest:  "00000000deadbeef",
		ModuleDigests: map[string]string{"index_bg.wasm": "0000000000c0ffee"},
		Toolchain:     domain.DefaultToolchain(),
		Timestamp:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, record("release")))

	got, err := store.Get(root, "my-worker@release")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record("release"), *got)

	missing, err := store.Get(root, "my-worker@dev")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_Persistence(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, cas.NewStore().Put(root, record("release")))
	assert.FileExists(t, domain.DefaultStatePath(root))

	got, err := cas.NewStore().Get(root, "my-worker@release")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "00000000deadbeef", got.BundleDigest)
	assert.True(t, got.Timestamp.Equal(record("release").Timestamp))
}

func TestStore_IsolatesWorkspaces(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(a, record("release")))

	got, err := store.Get(b, "my-worker@release")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Errors(t *testing.T) {
	t.Run("corrupt file", func(t *testing.T) {
		root := t.TempDir()
		path := domain.DefaultStatePath(root)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

		_, err := cas.NewStore().Get(root, "x")
		require.ErrorContains(t, err, domain.ErrStoreUnmarshalFailed.Error())
	})

	t.Run("empty file", func(t *testing.T) {
		root := t.TempDir()
		path := domain.DefaultStatePath(root)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, nil, domain.FilePerm))

		got, err := cas.NewStore().Get(root, "x")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("state dir is a file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, domain.StateDirName), nil, domain.FilePerm))

		err := cas.NewStore().Put(root, record("release"))
		require.ErrorContains(t, err, domain.ErrStoreReadFailed.Error())
	})
}
