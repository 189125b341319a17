package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <path>",
		Short: "Print the text of a local file without caching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.app.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func (c *CLI) newCachedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cached <id>",
		Short: "Print the text of a cached copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.app.Cached(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
