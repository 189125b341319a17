package idgen

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/intake/internal/adapters/config"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
)

// NodeID is the unique identifier for the identifier generator Graft node.
const NodeID graft.ID = "adapter.identifier_generator"

func init() {
	graft.Register(graft.Node[ports.IdentifierGenerator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID},
		Run: func(ctx context.Context) (ports.IdentifierGenerator, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.IDStrategy), nil
		},
	})
}

// New returns the generator for strategy. Sequential generators are seeded
// from the clock so identifiers from separate runs rarely overlap.
func New(strategy domain.IDStrategy) ports.IdentifierGenerator {
	if strategy == domain.IDSequential {
		return NewSequential(uint64(time.Now().UnixNano()))
	}
	return NewRandom()
}
