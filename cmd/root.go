// Package cmd implements the CLI commands for treemark using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treemark",
	Short: "treemark — convert HTML pages into Markdown and friends",
	Long: `treemark converts HTML documents into Markdown using a tag-aware
tree transducer, then optionally renders the Markdown to PDF, JSON, or
embeddings.

Usage:
  treemark convert <url|file|-> [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
