// quotectl queries quotes and manages live-data settings without the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote_backend/internal/app/di"
	"quote_backend/internal/platform/config"
	"quote_backend/internal/platform/logger"
)

// cli holds the state shared by all subcommands.
type cli struct {
	cfgFile string
	verbose bool
	asJSON  bool

	cfg *config.Config
	log *zap.Logger
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Query stock quotes and manage live-data settings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg

			c.log = zap.NewNop()
			if c.verbose {
				opts := cfg.Log
				opts.Level = "debug"
				opts.Format = "console"
				if c.log, err = logger.New(opts); err != nil {
					return err
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "path to config.yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stdout at debug level")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newQuoteCmd(c),
		newUsageCmd(c),
		newSettingsCmd(c),
		newTokenCmd(c),
	)
	return root
}

// withApp builds the application for one command and closes it afterwards.
func (c *cli) withApp(ctx context.Context, fn func(*di.App) error) error {
	app, err := di.New(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
