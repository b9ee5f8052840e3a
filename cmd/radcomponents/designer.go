package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fakester/radcomponents/bootstrap"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/core/formatter"
	"github.com/spf13/cobra"
)

var (
	designerOnce bool
)

var designerCmd = &cobra.Command{
	Use:   "designer",
	Short: "Run a designer process session",
	Long: `Run a designer process session.

The session registers the module's components with the configured registry,
prints what the registry holds, and removes the components again on exit.
Use the sqlite registry driver to share the registry with "serve".

Examples:
  radcomponents designer --once
  radcomponents designer -o json --once`,
	RunE: runDesigner,
}

func init() {
	rootCmd.AddCommand(designerCmd)

	designerCmd.Flags().BoolVar(&designerOnce, "once", false, "shut down right after printing the registry")
}

func runDesigner(cmd *cobra.Command, args []string) error {
	f, err := outputFormatter()
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	d, err := bootstrap.NewDesigner(cfg, bootstrap.Options{Version: version, Logger: logger})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	ctx := cmd.Context()
	res, err := d.Start(ctx, cfg.License.State())
	if err != nil {
		d.Close(ctx)
		return err
	}
	if res.Degraded() {
		logger.Warn().Err(res.Reason).Msg("designer session running without components")
	}

	records, err := d.Components(ctx)
	if err != nil {
		d.Close(ctx)
		return fmt.Errorf("list registry: %w", err)
	}
	if err := f.FormatList(cmd.OutOrStdout(), formatter.ComponentView, formatter.ComponentRows(records), formatter.FormatOptions{}); err != nil {
		d.Close(ctx)
		return err
	}

	if !designerOnce {
		waitForSignal(ctx)
	}

	return d.Close(context.Background())
}

func waitForSignal(ctx context.Context) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}
}
