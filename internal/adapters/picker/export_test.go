package picker

import (
	"context"

	"github.com/charmbracelet/huh"
	"go.trai.ch/intake/internal/core/ports"
)

// NewPromptWithRunner creates a Prompt whose form is driven by run.
func NewPromptWithRunner(start string, logger ports.Logger, run func(context.Context, *huh.FilePicker) error) *Prompt {
	return &Prompt{start: start, logger: logger, run: run}
}
