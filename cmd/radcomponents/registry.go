package main

import (
	"fmt"
	"time"

	"github.com/fakester/radcomponents/adapters/sqlite"
	"github.com/fakester/radcomponents/config"
	"github.com/fakester/radcomponents/core/formatter"
	"github.com/spf13/cobra"
)

var registryStrict bool

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the shared component registry",
}

var registryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the designer and gateway scopes of the sqlite registry",
	Long: `Summarize the designer and gateway scopes of the sqlite registry and list
every component whose descriptor differs between them, or that only one
process has registered.

Requires registry.driver: sqlite.`,
	Example: `  radcomponents registry status
  radcomponents registry status --strict -o json`,
	RunE: runRegistryStatus,
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryStatusCmd)

	registryStatusCmd.Flags().BoolVar(&registryStrict, "strict", false, "fail when the scopes differ")
}

func runRegistryStatus(cmd *cobra.Command, args []string) error {
	f, err := outputFormatter()
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg.Registry.Driver != config.DriverSQLite {
		return fmt.Errorf("registry status needs the sqlite driver, configured driver is %q", cfg.Registry.Driver)
	}

	db, err := sqlite.Open(cfg.Registry.DSN)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate registry: %w", err)
	}

	ctx := cmd.Context()
	scopes, err := sqlite.Scopes(ctx, db)
	if err != nil {
		return fmt.Errorf("summarize scopes: %w", err)
	}
	drift, err := sqlite.Compare(ctx, db)
	if err != nil {
		return fmt.Errorf("compare scopes: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := f.FormatList(out, formatter.ScopeView, scopeRows(scopes), formatter.FormatOptions{}); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := f.FormatList(out, formatter.DriftView, driftRows(drift), formatter.FormatOptions{MaxWidth: 20}); err != nil {
		return err
	}

	if registryStrict && len(drift) > 0 {
		return fmt.Errorf("%d component(s) differ between designer and gateway", len(drift))
	}
	return nil
}

func scopeRows(scopes []sqlite.ScopeSummary) []map[string]any {
	rows := make([]map[string]any, len(scopes))
	for i, s := range scopes {
		at := ""
		if !s.RegisteredAt.IsZero() {
			at = s.RegisteredAt.Format(time.RFC3339)
		}
		rows[i] = map[string]any{
			"scope":         string(s.Scope),
			"components":    s.Components,
			"registered_at": at,
		}
	}
	return rows
}

func driftRows(drift []sqlite.Drift) []map[string]any {
	rows := make([]map[string]any, len(drift))
	for i, d := range drift {
		rows[i] = map[string]any{
			"id":       d.ID,
			"designer": d.Designer,
			"gateway":  d.Gateway,
		}
	}
	return rows
}
