// Command homebite is a terminal front end for the HomeBite marketplace.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homebite/internal/auth"
	"homebite/internal/client"
	"homebite/internal/config"
	"homebite/internal/sample"
	"homebite/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stdout)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stdout carries command output; logs go to stderr
	logger := config.NewLogger(cfg.Logger, stderr)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("failed to flush traces")
		}
	}()

	store, closeStore, err := newTokenStore(ctx, cfg.TokenStore, logger)
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn().Err(err).Msg("failed to close token store")
		}
	}()

	creds := auth.NewSession(store, logger)
	api, err := client.New(client.Config{
		BaseURL:           cfg.Client.BaseURL,
		Timeout:           cfg.Client.Timeout(),
		RequestsPerSecond: cfg.Client.RequestsPerSecond,
		Burst:             cfg.Client.Burst,
	}, creds, logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	loader := sample.NewLoader(ctx, sample.Source{
		S3Enabled: cfg.S3.Enabled,
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Prefix:    cfg.S3.Prefix,
	}, logger)
	catalog, err := loader.Load(ctx, cfg.Sample.Path)
	if err != nil {
		return fmt.Errorf("failed to load sample catalogue: %w", err)
	}

	a := newApp(api, catalog, time.Now, stdout, logger)
	return a.dispatch(ctx, args[0], args[1:])
}
