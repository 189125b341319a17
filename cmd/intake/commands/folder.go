package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/intake/internal/app"
	"go.trai.ch/intake/internal/ui/style"
)

func (c *CLI) newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Read every file of a folder into the index",
		Long: "Read every regular file directly inside a folder. Without --path an interactive\n" +
			"picker asks for the folder; choosing nothing is not an error.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")

			result, err := c.app.Folder(cmd.Context(), app.FolderOptions{Path: path})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Ingested {
				return nil
			}
			_, _ = fmt.Fprintf(out, "%s %s\n", style.Header.Render("folder"), result.Path)
			for _, name := range result.Files {
				_, _ = fmt.Fprintf(out, "  %s %s\n", style.OK.Render(style.Check), name)
			}
			return nil
		},
	}

	cmd.Flags().StringP("path", "p", "", "Folder to read instead of prompting")

	return cmd
}
