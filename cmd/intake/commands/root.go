// Package commands implements the CLI commands for intake.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/intake/internal/app"
	"go.trai.ch/intake/internal/build"
	"go.trai.ch/intake/internal/core/domain"
)

// CLI represents the command line interface for intake.
type CLI struct {
	app         Application
	rootCmd     *cobra.Command
	metricsFile string
}

// Application represents the application logic interface.
type Application interface {
	Read(ctx context.Context, path string) (string, error)
	Upload(ctx context.Context, paths []string, opts app.UploadOptions) (domain.BatchResult, error)
	Folder(ctx context.Context, opts app.FolderOptions) (domain.FolderResult, error)
	Cached(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]domain.CacheEntry, error)
	Clean(ctx context.Context) error
	WriteMetrics(path string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "intake",
		Short:         "Ingest files into a private local cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "",
		"Write Prometheus metrics of this run to the given file")

	rootCmd.AddCommand(c.newReadCmd())
	rootCmd.AddCommand(c.newUploadCmd())
	rootCmd.AddCommand(c.newFolderCmd())
	rootCmd.AddCommand(c.newCachedCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
// The metrics file is written even when the command fails.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()
	if c.metricsFile != "" {
		if mErr := c.app.WriteMetrics(c.metricsFile); mErr != nil {
			err = errors.Join(err, mErr)
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
