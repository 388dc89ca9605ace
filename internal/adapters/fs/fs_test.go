package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/adapters/fs"
	"go.trai.ch/wbuild/internal/core/domain"
)

// buildTree creates:
//
//	.git/config
//	snippets/a.js
//	index_bg.wasm
//	index_bg.js
//	worker/shim.mjs
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		".git/config":     "git",
		"snippets/a.js":   "snippet",
		"index_bg.wasm":   "\x00asm",
		"index_bg.js":     "glue",
		"worker/shim.mjs": "bundle",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	return root
}

func TestWalker_WalkFiles(t *testing.T) {
	root := buildTree(t)

	var got []string
	for path := range fs.NewWalker().WalkFiles(root, []string{"snippets"}) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}

	assert.Equal(t, []string{"index_bg.js", "index_bg.wasm", "worker/shim.mjs"}, got)
}

func TestWalker_WalkFiles_EarlyExit(t *testing.T) {
	root := buildTree(t)

	count := 0
	for range fs.NewWalker().WalkFiles(root, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_HashBytes(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())

	a := h.HashBytes([]byte("bundle"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, h.HashBytes([]byte("bundle")))
	assert.NotEqual(t, a, h.HashBytes([]byte("bundle2")))
}

func TestHasher_HashFiles(t *testing.T) {
	root := buildTree(t)
	h := fs.NewHasher(fs.NewWalker())

	wasm, err := h.HashFiles(root, domain.WasmExt)
	require.NoError(t, err)
	require.Len(t, wasm, 1)
	assert.Equal(t, h.HashBytes([]byte("\x00asm")), wasm["index_bg.wasm"])

	all, err := h.HashFiles(root, "")
	require.NoError(t, err)
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	assert.Equal(t, []string{"index_bg.js", "index_bg.wasm", "snippets/a.js", "worker/shim.mjs"}, keys)
}

func TestHasher_HashFiles_Missing(t *testing.T) {
	h := fs.NewHasher(fs.NewWalker())

	_, err := h.HashFiles(filepath.Join(t.TempDir(), "missing"), domain.WasmExt)
	require.Error(t, err)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	root := buildTree(t)
	h := fs.NewHasher(fs.NewWalker())

	sum, err := h.ComputeFileHash(filepath.Join(root, "index_bg.js"))
	require.NoError(t, err)
	assert.NotZero(t, sum)

	_, err = h.ComputeFileHash(filepath.Join(root, "nope"))
	require.Error(t, err)
}
