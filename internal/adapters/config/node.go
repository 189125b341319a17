package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// ResolvedNodeID is the unique identifier for the loaded configuration Graft node.
	ResolvedNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(afero.NewOsFs(), os.Environ), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        ResolvedNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to resolve working directory")
			}
			return loader.Load(cwd)
		},
	})
}
