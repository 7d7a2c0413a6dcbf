// Command clientdetect serves the request classification API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var envFile string

	serve := newServeCommand(&envFile)
	root := &cobra.Command{
		Use:           "clientdetect",
		Short:         "Client IP and user agent detection service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading the environment (default .env if present)")

	root.AddCommand(serve)
	root.AddCommand(newClassifyCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
