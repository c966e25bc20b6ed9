package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐
  ║║║├─┤└┬┘├┤ ││││ ││
  ╚╩╝┴ ┴ ┴ └  ┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Client-side route resolution for single-page apps",
		Long: `Wayfind is a route table compiler and resolver for single-page apps.

Declare your routes in wayfind.json and Wayfind gives you:

  • Pattern compilation with parameters and catch-alls
  • Deterministic, specificity-ordered matching
  • A dev server with a route inspection API
  • Navigation state streamed over WebSocket
  • Deploys with deep-link-aware shell copies`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Wayfind ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
