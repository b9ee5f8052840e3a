package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fakester/radcomponents/components"
	"github.com/fakester/radcomponents/core/formatter"
	"github.com/fakester/radcomponents/domain/component"
	"github.com/fakester/radcomponents/resources"
	"github.com/spf13/cobra"
)

var (
	componentsColumns  []string
	componentsNoHeader bool
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Inspect the module's component catalog",
}

var componentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the components this module registers",
	Example: `  radcomponents components list
  radcomponents components list -o json
  radcomponents components list --columns id,schema,palette`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := outputFormatter()
		if err != nil {
			return err
		}
		catalog, err := components.Load(resources.FS())
		if err != nil {
			return fmt.Errorf("load components: %w", err)
		}

		records := make([]component.Record, 0, catalog.Len())
		for _, d := range catalog.All() {
			records = append(records, d.Record())
		}
		return f.FormatList(cmd.OutOrStdout(), formatter.ComponentView, formatter.ComponentRows(records), formatter.FormatOptions{
			Columns:  componentsColumns,
			NoHeader: componentsNoHeader,
		})
	},
}

var componentsSchemaCmd = &cobra.Command{
	Use:   "schema <id>",
	Short: "Print the props schema of a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := components.Load(resources.FS())
		if err != nil {
			return fmt.Errorf("load components: %w", err)
		}
		d, ok := catalog.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown component %q (available: %s)", args[0], strings.Join(catalog.IDs(), ", "))
		}

		out := cmd.OutOrStdout()
		raw := d.Schema().Raw()
		if !strings.HasSuffix(string(raw), "\n") {
			raw = append(raw, '\n')
		}
		_, err = out.Write(raw)
		return err
	},
}

var componentsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the bundled schemas and browser resources",
	Long: `Check that every component loads, that its schema defaults satisfy its
own schema, and that every browser resource it references is bundled in
the mounted folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		catalog, err := components.Load(resources.FS())
		if err != nil {
			fmt.Fprintf(out, "  %s Components load\n", crossMark)
			return fmt.Errorf("load components: %w", err)
		}
		fmt.Fprintf(out, "  %s Components load (%d)\n", checkMark, catalog.Len())

		var failed []error
		for _, d := range catalog.All() {
			if err := checkComponent(d, resources.Mounted()); err != nil {
				fmt.Fprintf(out, "  %s %s\n", crossMark, d.ID())
				fmt.Fprintf(out, "      Error: %v\n", err)
				failed = append(failed, err)
				continue
			}
			fmt.Fprintf(out, "  %s %s\n", checkMark, d.ID())
		}

		if err := checkResources(components.DesignerResources, resources.Mounted()); err != nil {
			fmt.Fprintf(out, "  %s Designer resources\n", crossMark)
			fmt.Fprintf(out, "      Error: %v\n", err)
			failed = append(failed, err)
		} else {
			fmt.Fprintf(out, "  %s Designer resources\n", checkMark)
		}

		if len(failed) > 0 {
			return fmt.Errorf("%d component(s) failed the check", len(failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
	componentsCmd.AddCommand(componentsListCmd, componentsSchemaCmd, componentsCheckCmd)

	componentsListCmd.Flags().StringSliceVar(&componentsColumns, "columns", nil, "columns to print")
	componentsListCmd.Flags().BoolVar(&componentsNoHeader, "no-header", false, "omit the table header")
}

// checkComponent validates the schema defaults and the component's browser
// resources.
func checkComponent(d component.Descriptor, mounted fs.FS) error {
	var errs []error

	defaults, err := json.Marshal(d.Schema().Defaults())
	if err != nil {
		errs = append(errs, fmt.Errorf("encode defaults: %w", err))
	} else if err := d.Schema().Validate(defaults); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}

	if err := checkResources(d.Resources(), mounted); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// checkResources resolves every resource path against the mounted folder.
func checkResources(list []component.BrowserResource, mounted fs.FS) error {
	var errs []error
	prefix := components.ResourcePath("")
	for _, res := range list {
		name, ok := strings.CutPrefix(res.Path, prefix)
		if !ok {
			errs = append(errs, fmt.Errorf("resource %s: not under %s", res.Name, prefix))
			continue
		}
		if _, err := fs.Stat(mounted, name); err != nil {
			errs = append(errs, fmt.Errorf("resource %s: %w", res.Name, err))
		}
	}

	return errors.Join(errs...)
}
