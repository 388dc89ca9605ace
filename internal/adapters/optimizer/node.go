package optimizer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wbuild/internal/adapters/shell"
	"go.trai.ch/wbuild/internal/core/ports"
)

// NodeID is the unique identifier for the optimizer Graft node.
const NodeID graft.ID = "adapter.optimizer"

func init() {
	graft.Register(graft.Node[ports.Optimizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Optimizer, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner), nil
		},
	})
}
