package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/app"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports/mocks"
	"go.trai.ch/wbuild/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func newComponents(ctrl *gomock.Controller) (*app.Components, *mocks.MockConfigLoader) {
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)

	application := app.New(
		loader,
		mocks.NewMockLockfileReader(ctrl),
		mocks.NewMockManifestReader(ctrl),
		mocks.NewMockToolInstaller(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockBindingGenerator(ctrl),
		mocks.NewMockBundler(ctrl),
		mocks.NewMockOptimizer(ctrl),
		mocks.NewMockModuleInspector(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockBuildInfoStore(ctrl),
		logger,
		scheduler.NewScheduler(tel),
	)
	return app.NewComponents(application, logger, tel), loader
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, _ := newComponents(ctrl)

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "wbuild version")
	assert.True(t, cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and prints the error
// with its metadata when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, loader := newComponents(ctrl)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"w\"\n"), 0o600))

	loader.EXPECT().Load(dir).Return(domain.Config{}, domain.ErrConfigParseFailed)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", dir}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "✗ "+domain.ErrConfigParseFailed.Error()+"\n", stderr.String())
}
