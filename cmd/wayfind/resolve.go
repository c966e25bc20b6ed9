package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path against the project's routes",
		Long: `Resolve a path against the routes declared in wayfind.json and print
the matched pattern and parameter bindings.

Examples:
  wayfind resolve /profile/42
  wayfind resolve "/docs/guide/install?tab=go"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(args[0])
		},
	}

	return cmd
}

func runResolve(path string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	tbl, err := tableFromConfig(cfg)
	if err != nil {
		return err
	}

	res := tbl.Resolve(path)
	if !res.Matched() {
		fmt.Printf("%-10s %s\n", "path", res.Path())
		fmt.Printf("%-10s no route matches\n", "match")
		return nil
	}

	fmt.Printf("%-10s %s\n", "path", res.Path())
	fmt.Printf("%-10s %s\n", "pattern", res.Route().Pattern().Raw())
	fmt.Printf("%-10s %s\n", "route", res.Route().Name())

	params := res.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-10s %s=%s\n", "param", name, params[name])
	}
	return nil
}
