// Package main is the entry point for the chatterctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatterctl",
		Short:         "Command-line client for the Chatter messaging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.PersistentFlags().String("token", "", "API token (overrides config and $CHATTER_TOKEN)")
	root.PersistentFlags().String("base-url", "", "API endpoint (overrides config)")
	root.PersistentFlags().String("trace-endpoint", "", "OTLP/HTTP endpoint for trace export")

	root.AddCommand(
		versionCmd(),
		sendCmd(),
		composeCmd(),
		conversationsCmd(),
		exportCmd(),
		listenCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("chatterctl %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
