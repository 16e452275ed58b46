package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tagboard/config"
	"tagboard/server"
	"tagboard/store"
	"tagboard/telemetry"
)

var (
	serveConfig string
	serveListen string
	serveDebug  bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	Long: `Run the dashboard API server. Every client session gets its own
isolated view of the dataset: independent filters, an independent
remediation working copy, and CSV exports of whatever it is looking
at. The source CSV is never modified.`,
	Example: `  tagboard serve --config tagboard.yaml
  tagboard serve --config tagboard.yaml --listen :9000
  tagboard serve --config tagboard.yaml --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "tagboard.yaml", "Configuration file")
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(serveConfig)
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveDebug {
		cfg.Debug = true
	}

	logger := telemetry.NewLogger("tagboard")

	if err := telemetry.SetupMeterProvider(); err != nil {
		return fmt.Errorf("setup metrics: %w", err)
	}
	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(*cfg, logger, metrics, store.NewLoader(logger))
	if err := srv.Serve(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
