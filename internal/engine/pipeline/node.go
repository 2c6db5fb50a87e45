package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fnpack/internal/adapters/archive"
	"go.trai.ch/fnpack/internal/adapters/assemble"
	"go.trai.ch/fnpack/internal/adapters/cas"
	"go.trai.ch/fnpack/internal/adapters/fs"
	"go.trai.ch/fnpack/internal/adapters/logger"
	"go.trai.ch/fnpack/internal/adapters/pip"
	"go.trai.ch/fnpack/internal/adapters/prefix"
	"go.trai.ch/fnpack/internal/adapters/telemetry/progrock"
	"go.trai.ch/fnpack/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			prefix.NodeID,
			pip.NodeID,
			assemble.NodeID,
			archive.NodeID,
			fs.SizerNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			provisioner, err := graft.Dep[ports.Provisioner](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			assembler, err := graft.Dep[ports.Assembler](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			sizer, err := graft.Dep[ports.SizeReporter](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(
				provisioner,
				installer,
				assembler,
				archiver,
				sizer,
				hasher,
				store,
				telemetry,
				log,
			), nil
		},
	})
}
