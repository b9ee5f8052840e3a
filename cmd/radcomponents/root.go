package main

import (
	"fmt"
	"os"

	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/core/formatter"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radcomponents",
	Short: "Rad Components module host",
	Long: `radcomponents hosts the Rad Components UI module.

It registers the module's components with a designer or gateway process,
serves the module's browser resources and status routes, and inspects the
shared component registry.

Quick start:
  radcomponents serve              # Run the gateway process host
  radcomponents designer --once    # Run one designer session

Inspection:
  radcomponents components list    # Show the component catalog
  radcomponents registry status    # Compare designer and gateway registries
  radcomponents validate           # Validate configuration`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
}

func outputFormatter() (formatter.Formatter, error) {
	f, ok := formatter.Get(outputFormat)
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", outputFormat, formatter.List())
	}
	return f, nil
}
