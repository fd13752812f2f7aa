// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/holomush/tokenkeeper/internal/config"
	"github.com/holomush/tokenkeeper/internal/observability"
	"github.com/holomush/tokenkeeper/internal/store"
)

// Deps contains injectable dependencies for the commands that touch
// infrastructure. Nil fields use their default implementations.
type Deps struct {
	// PoolFactory opens the PostgreSQL pool.
	// Default: store.Connect
	PoolFactory func(ctx context.Context, cfg config.DatabaseConfig) (Pool, error)

	// RedisFactory opens the Redis client for the redis reset backend.
	// Default: goredis.NewClient followed by a ping
	RedisFactory func(ctx context.Context, cfg config.RedisConfig) (goredis.UniversalClient, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// MigratorFactory creates a schema migrator.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)
}

// Pool is the subset of *pgxpool.Pool used by the commands and repositories.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
	Force(version int) error
	Pending() ([]uint, error)
	Close() error
}

// withDefaults returns d with every nil factory replaced by its default.
func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.PoolFactory == nil {
		out.PoolFactory = func(ctx context.Context, cfg config.DatabaseConfig) (Pool, error) {
			pool, err := store.Connect(ctx, cfg.URL, store.PoolConfig{MaxConns: cfg.MaxConns})
			if err != nil {
				return nil, err
			}
			return pool, nil
		}
	}
	if out.RedisFactory == nil {
		out.RedisFactory = connectRedis
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(databaseURL string) (Migrator, error) {
			m, err := store.NewMigrator(databaseURL)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	return &out
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (goredis.UniversalClient, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck // ping error takes precedence
		return nil, oops.Code("REDIS_CONNECT_FAILED").With("addr", cfg.Addr).Wrap(err)
	}
	return client, nil
}
