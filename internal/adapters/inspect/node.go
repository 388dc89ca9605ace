package inspect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wbuild/internal/core/ports"
)

// NodeID is the unique identifier for the module inspector Graft node.
const NodeID graft.ID = "adapter.inspector"

func init() {
	graft.Register(graft.Node[ports.ModuleInspector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModuleInspector, error) {
			return New(), nil
		},
	})
}
