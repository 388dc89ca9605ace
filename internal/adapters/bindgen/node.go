package bindgen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wbuild/internal/adapters/shell"
	"go.trai.ch/wbuild/internal/core/ports"
)

// NodeID is the unique identifier for the binding generator Graft node.
const NodeID graft.ID = "adapter.bindgen"

func init() {
	graft.Register(graft.Node[ports.BindingGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.BindingGenerator, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner), nil
		},
	})
}
