package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/pkg/manifest"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

func routesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the project's routes",
		Long: `List the routes declared in wayfind.json.

Examples:
  wayfind routes
  wayfind routes --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the route manifest as JSON")

	return cmd
}

// tableFromConfig registers the declared routes into a fresh table.
func tableFromConfig(cfg *config.Config) (*router.Table, error) {
	tbl := router.NewTable()
	for _, rc := range cfg.Routes {
		var opts []router.RouteOption
		if rc.Name != "" {
			opts = append(opts, router.WithName(rc.Name))
		}
		handler := func(ctx context.Context, res *router.Resolution) error { return nil }
		if err := tbl.Register(rc.Pattern, handler, opts...); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func runRoutes(asJSON bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	tbl, err := tableFromConfig(cfg)
	if err != nil {
		return err
	}

	m := manifest.FromTable(tbl)
	m.App = cfg.Name

	if asJSON {
		_, err := m.WriteTo(os.Stdout)
		return err
	}

	fmt.Printf("%-30s %-20s %s\n", "PATTERN", "NAME", "PARAMS")
	for _, e := range m.Routes {
		params := strings.Join(e.Params, ", ")
		if e.Wildcard {
			params += " (catch-all)"
		}
		fmt.Printf("%-30s %-20s %s\n", e.Pattern, e.Name, strings.TrimSpace(params))
	}
	return nil
}
