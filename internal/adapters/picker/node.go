package picker

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/intake/internal/adapters/config"
	"go.trai.ch/intake/internal/adapters/logger"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/core/ports"
	"golang.org/x/term"
)

// NodeID is the unique identifier for the folder picker Graft node.
const NodeID graft.ID = "adapter.folder_picker"

func init() {
	graft.Register(graft.Node[ports.FolderPicker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ResolvedNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.FolderPicker, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			if cfg.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // fd fits in int
				return NewStatic(""), nil
			}
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			return NewPrompt(cwd, log), nil
		},
	})
}
