package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "remix",
		Short: "Server-side rendering request core for Go web applications",
		Long: `Remix is the request-handling core of a server-rendered web app:
nested route matching, concurrent data loaders, and a precompiled or
live build mode behind one contract.

This CLI drives the build side:

  • dev     on-demand manifest builds plus websocket reload
  • build   fingerprinted production manifest
  • version build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		devCmd(),
		buildCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
