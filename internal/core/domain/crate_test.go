package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/wbuild/internal/core/domain"
)

func TestCrate_ArtifactName(t *testing.T) {
	assert.Equal(t, "my_worker", domain.Crate{Name: "my-worker"}.ArtifactName())
	assert.Equal(t, "core_lib", domain.Crate{Name: "my-worker", LibName: "core-lib"}.ArtifactName())
}
