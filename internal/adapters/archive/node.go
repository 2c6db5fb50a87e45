package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fnpack/internal/adapters/fs"
	"go.trai.ch/fnpack/internal/adapters/logger"
	"go.trai.ch/fnpack/internal/core/ports"
)

const NodeID graft.ID = "adapter.archiver"

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Archiver, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewArchiver(walker, log), nil
		},
	})
}
