package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/adapters/telemetry/progrock"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/wbuild/internal/core/ports"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, progrock.New())
}

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx, vertex := recorder.Record(context.Background(), domain.StageBindgen)

	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("Standard Output\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("Standard Error\n"))
	require.NoError(t, err)

	vertex.Log(domain.LogLevelInfo, "info msg")
	vertex.Log(domain.LogLevelWarn, "warn msg")
	vertex.Complete(nil)

	_, failed := recorder.Record(context.Background(), domain.StageBundle)
	failed.Complete(errors.New("boom"))

	// The same stage name may be recorded again.
	_, again := recorder.Record(context.Background(), domain.StageBindgen)
	again.Complete(nil)

	require.NoError(t, recorder.Close())
}
