package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/intake/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cached copies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, style.Faint.Render("cache is empty"))
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(style.Faint).
				Headers("ID", "SIZE", "TYPE", "CHECKSUM", "MODIFIED").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return style.Header.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})
			for _, e := range entries {
				t.Row(
					e.ID,
					humanize.Bytes(uint64(e.Size)), //nolint:gosec // sizes are non-negative
					e.ContentType,
					e.Checksum,
					humanize.Time(e.ModTime),
				)
			}

			_, _ = fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}
