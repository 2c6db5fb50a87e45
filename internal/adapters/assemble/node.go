package assemble

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fnpack/internal/adapters/logger"
	"go.trai.ch/fnpack/internal/core/ports"
)

const NodeID graft.ID = "adapter.assembler"

func init() {
	graft.Register(graft.Node[ports.Assembler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Assembler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewAssembler(log), nil
		},
	})
}
