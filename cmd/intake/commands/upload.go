package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/intake/internal/app"
	"go.trai.ch/intake/internal/core/domain"
	"go.trai.ch/intake/internal/ui/style"
)

func (c *CLI) newUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Ingest local files into the cache as one batch",
		Long:  "Ingest local files into the cache as one batch. The path \"-\" reads standard input.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			result, err := c.app.Upload(cmd.Context(), args, app.UploadOptions{StdinName: name})
			printBatch(cmd.OutOrStdout(), result)
			return err
		},
	}

	cmd.Flags().StringP("name", "n", "stdin", "Display name for content read from standard input")

	return cmd
}

func printBatch(w io.Writer, result domain.BatchResult) {
	for _, item := range result.Items {
		if item.Err != nil {
			_, _ = fmt.Fprintf(w, "%s %s\n", style.Failed.Render(style.Cross), item.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s %s %s  %s  %s  %s\n",
			style.OK.Render(style.Check),
			item.Name,
			style.Faint.Render(style.Arrow),
			style.Key.Render(item.Entry.ID),
			humanize.Bytes(uint64(item.Entry.Size)), //nolint:gosec // sizes are non-negative
			item.Entry.ContentType,
			style.Faint.Render("mem "+signedBytes(item.MemoryDelta)),
		)
	}
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return "+" + humanize.Bytes(uint64(n))
}
