// Package cli implements the njgeo command: an HTTP server and one-shot queries
// over the same reference tables.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	envFile  string
	logLevel string
}

// Execute runs the njgeo command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "njgeo",
		Short:         "New Jersey county and municipality reference data",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(queryCmd(opts))
	return cmd
}
