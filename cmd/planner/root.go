package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/wanderlust/internal/app"
	"github.com/pkordes/wanderlust/internal/config"
)

// cli carries the state shared by every subcommand. app is opened in
// PersistentPreRunE from the environment (STORE_BACKEND, DATA_DIR, ...).
type cli struct {
	out     io.Writer
	verbose bool
	log     *slog.Logger
	app     *app.App
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Manage Wanderlust trips from the command line",
		Long: `planner reads and writes the trip store configured for the API server.
The backend is chosen with STORE_BACKEND (memory, disk, sqlite, postgres).`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		c.tripsCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.placesCmd(),
		c.migrateCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	c.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	c.app, err = app.New(cmd.Context(), cfg, c.log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	return nil
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}
