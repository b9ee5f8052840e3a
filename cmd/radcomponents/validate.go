package main

import (
	"fmt"
	"os"

	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before deployment",
	Long: `Validate the radcomponents configuration file.

Checks:
  - YAML syntax is valid
  - Values are in range (port, registry driver, log level, metrics path)
  - The sqlite registry is writable (optional)

Examples:
  radcomponents validate
  radcomponents validate --config /etc/radcomponents/radcomponents.yaml --check-registry`,
	RunE: runValidate,
}

var validateCheckRegistry bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckRegistry, "check-registry", false, "check that the sqlite registry is writable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n\n", cfgFile)

	// Check file exists
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Fprintf(out, "  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Fprintf(out, "  %s Config file exists\n", checkMark)

	// Load and validate config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(out, "  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Fprintf(out, "  %s Config syntax valid\n", checkMark)

	// Show config summary
	state := cfg.License.State()
	fmt.Fprintf(out, "  %s Server: %s\n", checkMark, cfg.Server.Addr())
	fmt.Fprintf(out, "  %s Registry: %s %s\n", checkMark, cfg.Registry.Driver, cfg.Registry.DSN)
	fmt.Fprintf(out, "  %s License: activated=%t trial_expired=%t\n", checkMark, state.Activated, state.TrialExpired)
	fmt.Fprintf(out, "  %s Logging: %s (%s)\n", checkMark, cfg.Logging.Level, cfg.Logging.Format)

	if validateCheckRegistry && cfg.Registry.Driver == config.DriverSQLite {
		if err := checkRegistryWritable(cfg.Registry.DSN); err != nil {
			fmt.Fprintf(out, "  %s Registry writable\n", crossMark)
			fmt.Fprintf(out, "      Error: %v\n", err)
		} else {
			fmt.Fprintf(out, "  %s Registry writable\n", checkMark)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is valid.")
	return nil
}

func checkRegistryWritable(dsn string) error {
	db, err := sqlite.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Migrate()
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
