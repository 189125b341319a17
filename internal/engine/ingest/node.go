package ingest

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/adapters/cachestore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/config"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/idgen"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/memprobe"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/metrics"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
)

// NodeID is the unique identifier for the ingestion service Graft node.
const NodeID graft.ID = "engine.ingest"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ResolvedNodeID,
			cachestore.NodeID,
			idgen.NodeID,
			memprobe.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			ids, err := graft.Dep[ports.IdentifierGenerator](ctx)
			if err != nil {
				return nil, err
			}

			probe, err := graft.Dep[ports.MemoryProbe](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[*metrics.Prometheus](ctx)
			if err != nil {
				return nil, err
			}

			return NewService(
				afero.NewOsFs(),
				store,
				ids,
				probe,
				log,
				tracer,
				m,
				OptionsFromConfig(cfg),
			), nil
		},
	})
}
