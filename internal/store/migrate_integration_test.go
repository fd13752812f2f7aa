// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/holomush/tokenkeeper/internal/store"
)

var _ = Describe("Migrator", Ordered, func() {
	var (
		ctx       context.Context
		container *postgres.PostgresContainer
		connStr   string
		pool      *pgxpool.Pool
	)

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		container, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("tokenkeeper_test"),
			postgres.WithUsername("tokenkeeper"),
			postgres.WithPassword("tokenkeeper"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		Expect(err).NotTo(HaveOccurred())

		connStr, err = container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		pool, err = store.Connect(ctx, connStr, store.PoolConfig{MaxConns: 4})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		if pool != nil {
			pool.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	})

	tableExists := func(name string) bool {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, name).Scan(&exists)
		Expect(err).NotTo(HaveOccurred())
		return exists
	}

	It("starts at version zero with everything pending", func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		version, dirty, err := m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(BeZero())
		Expect(dirty).To(BeFalse())

		pending, err := m.Pending()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(Equal([]uint{1, 2}))
	})

	It("creates both credential tables on Up and is idempotent", func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		Expect(m.Up()).To(Succeed())
		Expect(m.Up()).To(Succeed())

		version, dirty, err := m.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(Equal(uint(2)))
		Expect(dirty).To(BeFalse())

		Expect(tableExists("refresh_tokens")).To(BeTrue())
		Expect(tableExists("reset_tokens")).To(BeTrue())
	})

	It("enforces one active refresh token per principal", func() {
		now := time.Now().UTC()
		_, err := pool.Exec(ctx, `
			INSERT INTO refresh_tokens (id, token_hash, principal_id, expires_at, created_at)
			VALUES ('01A', 'h1', 'p1', $1, $2)
		`, now.Add(time.Hour), now)
		Expect(err).NotTo(HaveOccurred())

		_, err = pool.Exec(ctx, `
			INSERT INTO refresh_tokens (id, token_hash, principal_id, expires_at, created_at)
			VALUES ('01B', 'h2', 'p1', $1, $2)
		`, now.Add(time.Hour), now)
		Expect(err).To(HaveOccurred())
	})

	It("drops the tables on Down", func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		defer m.Close()

		Expect(m.Down()).To(Succeed())
		Expect(tableExists("refresh_tokens")).To(BeFalse())
		Expect(tableExists("reset_tokens")).To(BeFalse())
	})
})
