package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/switchyard/pkg/cli"
)

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "switchyard",
	Short: "Switchyard - path-routed gateway for LLM APIs",
	Long: `Switchyard routes HTTP requests by path prefix to an external LLM API,
a co-located inference runtime, or a diagnostic echo backend.

Services are matched in configuration order; the first prefix that matches
the request path wins.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
}
