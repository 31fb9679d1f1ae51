package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/switchyard/pkg/cli"
	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/security/secrets"
)

var validateFlags struct {
	checkCredentials bool
	envFile          string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load and validate the configuration file without starting the server.

Shadowed services (ones an earlier prefix always matches first) are reported
as warnings. With --check-credentials every passthrough credential is
resolved from the configured secret sources, so a missing API key is found
before the first request fails with 500.

Examples:
  switchyard validate --config config.yaml
  switchyard validate --check-credentials --env-file .env`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateFlags.checkCredentials, "check-credentials", false, "resolve every passthrough credential")
	validateCmd.Flags().StringVar(&validateFlags.envFile, "env-file", "", "load environment variables from this file first")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if err := loadEnvFile(validateFlags.envFile); err != nil {
		return err
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	for _, w := range config.ShadowWarnings(cfg.Services) {
		fmt.Fprintf(out, "! %s\n", w)
	}
	fmt.Fprintf(out, "✓ Configuration valid (%d services)\n", len(cfg.Services))

	if !validateFlags.checkCredentials {
		return nil
	}

	reg, err := registry.FromConfig(cfg.Services)
	if err != nil {
		return cli.WrapConfigError(cfgFile, err)
	}
	chain, err := secrets.FromConfig(cfg.Security.Secrets)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	defer chain.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	if err := checkCredentials(ctx, out, chain, passthroughCredentials(reg)); err != nil {
		return cli.NewCommandError("validate", err)
	}
	return nil
}

// checkCredentials resolves each name and reports the outcome per line.
// Values are never printed.
func checkCredentials(ctx context.Context, out io.Writer, src secrets.CredentialSource, names []string) error {
	var errs []error
	for _, name := range names {
		if _, err := src.Credential(ctx, name); err != nil {
			fmt.Fprintf(out, "✗ credential %q: %v\n", name, err)
			errs = append(errs, fmt.Errorf("credential %q unavailable: %w", name, err))
			continue
		}
		fmt.Fprintf(out, "✓ credential %q resolved\n", name)
	}
	return errors.Join(errs...)
}
