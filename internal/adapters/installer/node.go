package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wbuild/internal/adapters/logger"
	"go.trai.ch/wbuild/internal/adapters/shell"
	"go.trai.ch/wbuild/internal/core/ports"
)

// NodeID is the unique identifier for the tool installer Graft node.
const NodeID graft.ID = "adapter.installer"

func init() {
	graft.Register(graft.Node[ports.ToolInstaller]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, shell.NodeID},
		Run: func(ctx context.Context) (ports.ToolInstaller, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return New(log, runner), nil
		},
	})
}
