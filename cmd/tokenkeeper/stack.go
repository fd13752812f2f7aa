// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"errors"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/holomush/tokenkeeper/internal/auth"
	authpostgres "github.com/holomush/tokenkeeper/internal/auth/postgres"
	authredis "github.com/holomush/tokenkeeper/internal/auth/redis"
	"github.com/holomush/tokenkeeper/internal/config"
	"github.com/holomush/tokenkeeper/internal/lifecycle"
	"github.com/holomush/tokenkeeper/internal/observability"
)

// readinessSubject is the subject of the probe token minted by ready.
const readinessSubject = "tokenkeeper-readiness"

// stack is the credential subsystem assembled from configuration.
type stack struct {
	signer  *auth.Signer
	refresh *auth.RefreshTokenStore
	reset   *auth.ResetTokenFlow
	sweeper *lifecycle.Sweeper
	pool    Pool
	redis   goredis.UniversalClient
}

// buildStack connects the stores and wires the signer, refresh store, reset
// flow and sweeper. metrics may be nil.
func buildStack(
	ctx context.Context,
	cfg config.Config,
	material auth.SigningMaterial,
	deps *Deps,
	logger *slog.Logger,
	metrics *observability.Metrics,
) (*stack, error) {
	signer, err := auth.NewSigner(auth.SignerConfig{
		Material: material,
		TTL:      cfg.Tokens.AccessTTL,
		Issuer:   cfg.Signing.Issuer,
		Audience: cfg.Signing.Audience,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	pool, err := deps.PoolFactory(ctx, cfg.Database)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	s := &stack{signer: signer, pool: pool}

	var resetRepo auth.ResetTokenRepository = authpostgres.NewResetTokenRepository(pool)
	if cfg.Reset.Backend == config.BackendRedis {
		client, err := deps.RedisFactory(ctx, cfg.Redis)
		if err != nil {
			s.close()
			return nil, oops.Code("REDIS_CONNECT_FAILED").With("operation", "connect to redis").Wrap(err)
		}
		s.redis = client
		resetRepo = authredis.NewResetTokenRepository(client)
	}

	s.refresh, err = auth.NewRefreshTokenStore(authpostgres.NewRefreshTokenRepository(pool),
		auth.WithRefreshTTL(cfg.Tokens.RefreshTTL),
		auth.WithRefreshLogger(logger),
	)
	if err != nil {
		s.close()
		return nil, err
	}

	s.reset, err = auth.NewResetTokenFlow(resetRepo,
		auth.WithResetTTL(cfg.Tokens.ResetTTL),
		auth.WithResetLogger(logger),
	)
	if err != nil {
		s.close()
		return nil, err
	}

	sweeperOpts := []lifecycle.Option{lifecycle.WithLogger(logger)}
	if metrics != nil {
		sweeperOpts = append(sweeperOpts, lifecycle.WithRecorder(metrics))
	}
	s.sweeper = lifecycle.NewSweeper(cfg.Lifecycle(), s.refresh, s.reset, sweeperOpts...)

	logger.Info("credential stores ready",
		"reset_backend", cfg.Reset.Backend,
		"previous_key", material.HasPrevious(),
	)
	return s, nil
}

// sessionService builds the request-facing facade over the stack.
func (s *stack) sessionService(principals auth.PrincipalResolver, logger *slog.Logger, metrics *observability.Metrics) (*auth.SessionService, error) {
	opts := []auth.SessionOption{auth.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, auth.WithMetrics(metrics))
	}
	return auth.NewSessionService(s.signer, s.refresh, s.reset, principals, opts...)
}

// ready reports whether the signer round-trips a token and every store
// backend answers a ping.
func (s *stack) ready(ctx context.Context) error {
	checks := []observability.ReadinessChecker{s.signerReady, s.postgresReady}
	if s.redis != nil {
		checks = append(checks, s.redisReady)
	}
	return observability.AllReady(checks...)(ctx)
}

func (s *stack) signerReady(context.Context) error {
	tok, err := s.signer.Issue(readinessSubject)
	if err != nil {
		return oops.Code("NOT_READY").With("component", "signer").Wrap(err)
	}
	if _, err := s.signer.Verify(tok.Token); err != nil {
		return oops.Code("NOT_READY").With("component", "signer").Wrap(err)
	}
	return nil
}

func (s *stack) postgresReady(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return oops.Code("NOT_READY").With("component", "postgres").Wrap(err)
	}
	return nil
}

func (s *stack) redisReady(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return oops.Code("NOT_READY").With("component", "redis").Wrap(err)
	}
	return nil
}

func (s *stack) close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			slog.Debug("error closing redis client", "error", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
