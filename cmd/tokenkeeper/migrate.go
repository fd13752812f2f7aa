// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// newMigrateCmd creates the migrate subcommand and its children.
func newMigrateCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the credential database schema",
		Long:  `Apply, roll back, inspect, or force the refresh and reset token schema migrations.`,
	}

	var upSteps int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, deps, func(m Migrator) error {
				pending, err := m.Pending()
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					cmd.Println("No pending migrations")
					return nil
				}
				if upSteps > 0 {
					if err := m.Steps(upSteps); err != nil {
						return err
					}
				} else if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	up.Flags().IntVar(&upSteps, "steps", 0, "apply at most N migrations (0 = all)")

	var downSteps int
	var downAll bool
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long: `Roll back the last N migrations with --steps, or every migration with --all.
Rolling back everything drops the token tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if downSteps <= 0 && !downAll {
				return oops.Code("MIGRATE_DOWN_AMBIGUOUS").
					Hint("pass --steps N or --all").
					Errorf("refusing to roll back without --steps or --all")
			}
			return withMigrator(cmd, deps, func(m Migrator) error {
				if downAll {
					if err := m.Down(); err != nil {
						return err
					}
				} else if err := m.Steps(-downSteps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	down.Flags().IntVar(&downSteps, "steps", 0, "roll back N migrations")
	down.Flags().BoolVar(&downAll, "all", false, "roll back every migration")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, deps, func(m Migrator) error {
				if err := printVersion(cmd, m); err != nil {
					return err
				}
				pending, err := m.Pending()
				if err != nil {
					return err
				}
				cmd.Printf("Pending: %d\n", len(pending))
				return nil
			})
		},
	}

	force := &cobra.Command{
		Use:   "force VERSION",
		Short: "Set the recorded version without running migrations",
		Long:  `Set the recorded schema version and clear the dirty flag after a failed migration was repaired by hand.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseForceVersion(args[0])
			if err != nil {
				return err
			}
			return withMigrator(cmd, deps, func(m Migrator) error {
				if err := m.Force(v); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}

	cmd.AddCommand(up, down, versionCmd, force)
	return cmd
}

// withMigrator loads configuration, opens a migrator and runs fn with it.
func withMigrator(cmd *cobra.Command, deps *Deps, fn func(m Migrator) error) error {
	deps = deps.withDefaults()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "database.url").
			Hint("set DATABASE_URL or database.url in the config file").
			Errorf("database url is required")
	}

	m, err := deps.MigratorFactory(cfg.Database.URL)
	if err != nil {
		return oops.Code("MIGRATION_INIT_FAILED").With("operation", "create migrator").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			cmd.PrintErrf("warning: closing migrator: %v\n", closeErr)
		}
	}()

	return fn(m)
}

func printVersion(cmd *cobra.Command, m Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		cmd.Printf("Schema version: %d (dirty)\n", v)
		return nil
	}
	cmd.Printf("Schema version: %d\n", v)
	return nil
}

// parseForceVersion parses the VERSION argument of migrate force.
func parseForceVersion(arg string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(strings.TrimSpace(arg), "%d", &v); err != nil {
		return 0, oops.Code("INVALID_VERSION").With("input", arg).Wrap(err)
	}
	if v < 0 {
		return 0, oops.Code("INVALID_VERSION").With("input", arg).Errorf("version must be non-negative, got %d", v)
	}
	return v, nil
}
