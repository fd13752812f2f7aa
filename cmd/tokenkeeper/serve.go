// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/internal/config"
	"github.com/holomush/tokenkeeper/internal/logging"
	"github.com/holomush/tokenkeeper/internal/observability"
	"github.com/holomush/tokenkeeper/pkg/errutil"
)

// shutdownTimeout bounds graceful shutdown of the observability server.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve subcommand.
func newServeCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the credential lifecycle service",
		Long: `Validate the signing keys, connect the token stores, and run the
expired-token sweeper and the metrics/health endpoints until interrupted.

The process refuses to start when the signing key is missing or shorter
than 64 bytes once decoded.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cmd, cfg, deps)
		},
	}
}

// runServe starts the service with injectable dependencies.
// If deps is nil, default implementations are used.
func runServe(ctx context.Context, cmd *cobra.Command, cfg config.Config, deps *Deps) error {
	deps = deps.withDefaults()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "validate configuration").Wrap(err)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	material, err := auth.ValidateKeyMaterial(cfg.Signing.Current, cfg.Signing.Previous)
	if err != nil {
		errutil.LogError(logger, "refusing to start: invalid signing key material", err)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		st        *stack
		obsServer ObservabilityServer
		metrics   *observability.Metrics
	)
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, func(ctx context.Context) error {
			return st.ready(ctx)
		})
		metrics = obsServer.Metrics()
	}

	st, err = buildStack(ctx, cfg, material, deps, logger, metrics)
	if err != nil {
		return err
	}
	defer st.close()

	if err := st.sweeper.Start(ctx); err != nil {
		return oops.Code("SWEEPER_START_FAILED").Wrap(err)
	}
	defer st.sweeper.Stop()

	if obsServer != nil {
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").With("addr", cfg.Metrics.Addr).Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		logger.Info("observability server started", "addr", obsServer.Addr())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("tokenkeeper started")
	logger.Info("tokenkeeper ready",
		"access_ttl", cfg.Tokens.AccessTTL,
		"refresh_ttl", cfg.Tokens.RefreshTTL,
		"reset_ttl", cfg.Tokens.ResetTTL,
		"refresh_sweep_interval", cfg.Sweep.RefreshInterval,
		"reset_sweep_interval", cfg.Sweep.ResetInterval,
	)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	st.sweeper.Stop()

	if obsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := obsServer.Stop(shutdownCtx); err != nil {
			logger.Warn("error stopping observability server", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// monitorServerErrors cancels ctx when a background server reports an error.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, name string) {
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}

// newLogger builds the process logger from the log section of cfg and
// installs it as the slog default.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.SetDefault("tokenkeeper", version, cfg.Log.Format, level, cmd.ErrOrStderr()), nil
}
