package main

import (
	"fmt"
	"os"

	"github.com/fakester/radcomponents/bootstrap"
	"github.com/fakester/radcomponents/config"
	"github.com/spf13/cobra"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway process host",
	Long: `Run the gateway process host.

The server will:
  - Load configuration from radcomponents.yaml (or --config)
  - Or load configuration from RADCOMPONENTS_* environment variables
  - Register the module's components with the configured registry
  - Serve /module/licenseState and /res/radcomponents/*
  - Remove the components again on SIGINT or SIGTERM

With a config file and --hot-reload, license and log level changes are
picked up on file save or SIGHUP.

Examples:
  radcomponents serve
  radcomponents serve --config /etc/radcomponents/radcomponents.yaml
  RADCOMPONENTS_REGISTRY_DRIVER=sqlite radcomponents serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}
	reloadable := hasConfigFile && hotReload

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	if !hasConfigFile {
		logger.Info().Msg("running with environment variables (no config file)")
	}

	// Only a file-backed holder can reload.
	var holder *config.Holder
	if reloadable {
		holder, err = config.NewHolder(cfgFile, logger)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
	} else {
		holder = config.NewStaticHolder(cfg, logger)
	}

	a, err := bootstrap.New(holder, bootstrap.Options{
		Version: version,
		Logger:  logger,
	})
	if err != nil {
		holder.Stop()
		return fmt.Errorf("error initializing: %w", err)
	}

	if reloadable {
		if err := holder.WatchFile(); err != nil {
			logger.Warn().Err(err).Msg("config file watch disabled")
		}
		holder.WatchSignals()
	}

	// Run (blocks until shutdown)
	return a.Run(cmd.Context())
}
