// Package picker implements folder selection for folder ingestion.
package picker

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"
	"go.trai.ch/intake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Static always returns the same path. An empty path means nothing was selected.
type Static struct {
	path string
}

// NewStatic creates a picker returning path.
func NewStatic(path string) *Static {
	return &Static{path: path}
}

// PickFolder returns the configured path.
func (s *Static) PickFolder(_ context.Context) string {
	return s.path
}

// Prompt asks the user to choose a directory with an interactive file picker.
type Prompt struct {
	start  string
	logger ports.Logger
	run    func(ctx context.Context, field *huh.FilePicker) error
}

// NewPrompt creates a picker that starts browsing at start.
func NewPrompt(start string, logger ports.Logger) *Prompt {
	return &Prompt{start: start, logger: logger, run: runForm}
}

// PickFolder shows the picker and returns the chosen directory.
// Aborting the prompt or a failing terminal yields "".
func (p *Prompt) PickFolder(ctx context.Context) string {
	var path string
	field := huh.NewFilePicker().
		Title("Select a folder to ingest").
		Description("Every file directly inside the folder is read into memory.").
		CurrentDirectory(p.start).
		DirAllowed(true).
		FileAllowed(false).
		Picking(true).
		Value(&path)

	if err := p.run(ctx, field); err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			p.logger.Warn(zerr.Wrap(err, "folder picker failed").Error())
		}
		return ""
	}
	return path
}

func runForm(ctx context.Context, field *huh.FilePicker) error {
	return huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
}
