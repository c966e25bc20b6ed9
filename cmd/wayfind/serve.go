package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	"github.com/wayfind-dev/wayfind/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the development server for the project's route table.

The server hosts the SPA shell with route-aware deep links and exposes
the route table over a JSON API:

  GET  /api/resolve?path=  resolve a path
  GET  /api/routes         the route manifest
  POST /api/navigate       dispatch a navigation
  GET  /ws                 navigation state stream

Examples:
  wayfind serve
  wayfind serve --port=8080
  wayfind serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, verbose)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from wayfind.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from wayfind.json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runServe(port int, host string, verbose bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println()
	info("serving %d routes at %s", len(srv.Table().Routes()), cfg.DevURL())
	fmt.Println()

	return srv.Run()
}
