package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_AddStage(t *testing.T) {
	g := domain.NewGraph()
	stage := domain.Stage{Name: "bundle"}

	require.NoError(t, g.AddStage(stage))

	err := g.AddStage(stage)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "bundle", zErr.Metadata()["stage"])
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddStage(domain.Stage{Name: "A", Dependencies: []string{"B"}}))
	require.NoError(t, g.AddStage(domain.Stage{Name: "B", Dependencies: []string{"A"}}))

	err := g.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrCycleDetected.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_MissingDependency(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddStage(domain.Stage{Name: "bundle", Dependencies: []string{"bindgen"}}))

	err := g.Validate()
	require.ErrorContains(t, err, domain.ErrMissingDependency.Error())
}

func TestGraph_Walk(t *testing.T) {
	g := domain.NewGraph()
	// A -> B -> C, execution order: C, B, A
	require.NoError(t, g.AddStage(domain.Stage{Name: "A", Dependencies: []string{"B"}}))
	require.NoError(t, g.AddStage(domain.Stage{Name: "B", Dependencies: []string{"C"}}))
	require.NoError(t, g.AddStage(domain.Stage{Name: "C"}))
	require.NoError(t, g.Validate())

	executed := make([]string, 0, 3)
	for stage := range g.Walk() {
		executed = append(executed, stage.Name)
	}

	assert.Equal(t, []string{"C", "B", "A"}, executed)
}

func TestGraph_Walk_KeepsInsertionOrderForIndependentStages(t *testing.T) {
	g := domain.NewGraph()
	for _, name := range []string{"preflight", "tools", "record"} {
		require.NoError(t, g.AddStage(domain.Stage{Name: name}))
	}
	require.NoError(t, g.Validate())

	var executed []string
	for stage := range g.Walk() {
		executed = append(executed, stage.Name)
	}

	assert.Equal(t, []string{"preflight", "tools", "record"}, executed)
	assert.Equal(t, 3, g.Len())
}
