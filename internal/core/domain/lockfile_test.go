package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func diamondLockfile() *domain.Lockfile {
	return &domain.Lockfile{
		RootPackageName: "app",
		Packages: []domain.LockedPackage{
			{Name: "libx", Version: "1.0.0"},
			{Name: "libx", Version: "2.0.0"},
			{Name: "libxy", Version: "9.9.9"},
			{Name: "app", Version: "0.1.0", Dependencies: []string{"libxy", "libx 2.0.0"}},
		},
	}
}

func TestLockfile_PackageVersion(t *testing.T) {
	tests := []struct {
		name     string
		lockfile *domain.Lockfile
		pkg      string
		want     string
		found    bool
	}{
		{
			name:     "root edge wins over first match",
			lockfile: diamondLockfile(),
			pkg:      "libx",
			want:     "2.0.0",
			found:    true,
		},
		{
			name:     "prefix of another package name is not an edge",
			lockfile: diamondLockfile(),
			pkg:      "libxy",
			want:     "9.9.9",
			found:    true,
		},
		{
			name: "no root falls back to first match",
			lockfile: &domain.Lockfile{Packages: []domain.LockedPackage{
				{Name: "libx", Version: "1.0.0"},
				{Name: "libx", Version: "2.0.0"},
			}},
			pkg:   "libx",
			want:  "1.0.0",
			found: true,
		},
		{
			name: "edge with source suffix",
			lockfile: &domain.Lockfile{
				RootPackageName: "app",
				Packages: []domain.LockedPackage{
					{Name: "worker", Version: "0.6.0"},
					{Name: "app", Dependencies: []string{"worker 0.7.2 (registry+https://github.com/rust-lang/crates.io-index)"}},
				},
			},
			pkg:   "worker",
			want:  "0.7.2",
			found: true,
		},
		{
			name:     "missing package",
			lockfile: diamondLockfile(),
			pkg:      "wasm-bindgen",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lockfile.PackageVersion(tt.pkg)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSatisfiesCaret(t *testing.T) {
	tests := []struct {
		version string
		min     string
		want    bool
	}{
		{"1.2.0", "1.3.0", false},
		{"1.3.5", "1.3.0", true},
		{"1.3.0", "1.3.0", true},
		{"2.0.0", "1.3.0", false},
		{"0.2.106", "0.2.106", true},
		{"0.2.107", "0.2.106", true},
		{"0.2.105", "0.2.106", false},
		{"0.3.0", "0.2.106", false},
		{"0.0.3", "0.0.3", true},
		{"0.0.4", "0.0.3", false},
		{"0.7.2", "0.7.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.version+"^"+tt.min, func(t *testing.T) {
			got, err := domain.SatisfiesCaret(tt.version, tt.min)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSatisfiesCaret_InvalidVersion(t *testing.T) {
	_, err := domain.SatisfiesCaret("not-a-version", "1.0.0")
	require.ErrorContains(t, err, domain.ErrInvalidVersion.Error())
}

func TestAtLeast(t *testing.T) {
	ok, err := domain.AtLeast("1.80.0", "1.71.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = domain.AtLeast("1.70.1", "1.71.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLockfile_Require(t *testing.T) {
	lf := &domain.Lockfile{Packages: []domain.LockedPackage{
		{Name: "worker", Version: "0.1.0"},
		{Name: "wasm-bindgen", Version: "0.2.106"},
	}}

	t.Run("satisfied", func(t *testing.T) {
		require.NoError(t, lf.Require("wasm-bindgen", "0.2.106", "0.2.106"))
	})

	t.Run("too old", func(t *testing.T) {
		err := lf.Require("worker", "0.7.0", "0.7.1")
		require.ErrorIs(t, err, domain.ErrDependencyVersion)
		require.ErrorContains(t, err, "Unsupported version worker@0.1.0")
		require.ErrorContains(t, err, "worker = \"0.7.1\"")

		zErr, ok := err.(*zerr.Error)
		require.True(t, ok)
		assert.Equal(t, "worker", zErr.Metadata()["package"])
		assert.Equal(t, "0.1.0", zErr.Metadata()["found"])
	})

	t.Run("absent", func(t *testing.T) {
		err := lf.Require("worker-macros", "0.7.0", "0.7.1")
		require.ErrorIs(t, err, domain.ErrDependencyVersion)
		require.ErrorContains(t, err, "Ensure that you have dependency worker-macros@0.7.1")
	})
}

func TestLockfile_Check(t *testing.T) {
	tc := domain.DefaultToolchain()
	lf := &domain.Lockfile{Packages: []domain.LockedPackage{
		{Name: "worker", Version: tc.Worker},
		{Name: "wasm-bindgen", Version: "0.2.100"},
	}}

	err := lf.Check(tc.Requirements("worker")...)
	require.ErrorContains(t, err, "Unsupported version wasm-bindgen@0.2.100")
}
