package cachestore

import (
	"context"
	"errors"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/intake/internal/adapters/config"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return Open(afero.NewOsFs(), cfg.CacheDir)
		},
	})
}

// Open creates the cache directory if needed and returns a Store on it.
func Open(fsys afero.Fs, dir string) (*Store, error) {
	if err := fsys.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, errors.Join(domain.Classify(err), zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", dir))
	}
	return NewStore(fsys, dir)
}
