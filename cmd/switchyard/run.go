package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mercator-hq/switchyard/pkg/cli"
	"mercator-hq/switchyard/pkg/config"
	"mercator-hq/switchyard/pkg/telemetry/logging"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	envFile       string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Switchyard gateway",
	Long: `Start the gateway with the specified configuration.

The server listens on the configured address and routes each request to the
first service whose path prefix matches.

Examples:
  # Start with default config
  switchyard run

  # Start with custom config and credentials from a .env file
  switchyard run --config /etc/switchyard/config.yaml --env-file /etc/switchyard/.env

  # Override listen address
  switchyard run --listen 0.0.0.0:8080

  # Validate config without starting server
  switchyard run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runFlags.envFile, "env-file", "", "load environment variables (e.g. OPENAI_API_KEY) from this file first")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return cli.WrapConfigError("--env-file", err)
	}
	return nil
}

// loadConfig loads the config file with SWITCHYARD_* overrides applied.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, cli.WrapConfigError(path, err)
	}
	return cfg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if err := loadEnvFile(runFlags.envFile); err != nil {
		return err
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Proxy.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.WrapConfigError("flags", err)
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging, os.Stdout); err != nil {
		return cli.WrapConfigError("telemetry.logging", err)
	}

	if runFlags.dryRun {
		for _, w := range config.ShadowWarnings(cfg.Services) {
			fmt.Fprintf(out, "! %s\n", w)
		}
		fmt.Fprintf(out, "✓ Configuration valid (%d services)\n", len(cfg.Services))
		return nil
	}

	ctx, stop := cli.SetupSignalHandler()
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			slog.Warn("error releasing resources", "error", err)
		}
	}()

	cli.NotifyReload(ctx, func() { a.reloadCredentials(ctx) })

	ln, err := net.Listen("tcp", cfg.Proxy.ListenAddress)
	if err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to listen on %s: %w", cfg.Proxy.ListenAddress, err))
	}

	fmt.Fprintf(out, "Switchyard v%s\n", Version)
	fmt.Fprintf(out, "✓ Configuration loaded from %s (%d services)\n", cfgFile, a.registry.Len())
	fmt.Fprintf(out, "✓ Server listening on %s\n", ln.Addr())
	if a.tracer.Enabled() {
		fmt.Fprintf(out, "✓ Tracing to %s\n", cfg.Telemetry.Tracing.Endpoint)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop, send SIGHUP to reload credentials")

	if err := a.server().Serve(ctx, ln); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}
