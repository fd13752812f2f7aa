// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"errors"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/internal/lifecycle"
)

// newSweepCmd creates the sweep subcommand.
func newSweepCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Purge expired tokens once",
		Long: `Delete every refresh and reset token whose expiry has passed, print the
counts, and exit. Revoked or used tokens that have not yet expired are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSweep(cmd, deps)
		},
	}
}

func runSweep(cmd *cobra.Command, deps *Deps) error {
	deps = deps.withDefaults()
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "validate configuration").Wrap(err)
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	// Purging needs no signing; a throwaway key keeps the stack uniform.
	material, err := sweepMaterial(cfg.Signing.Current, cfg.Signing.Previous)
	if err != nil {
		return err
	}

	st, err := buildStack(ctx, cfg, material, deps, logger, nil)
	if err != nil {
		return err
	}
	defer st.close()

	var errs []error
	refreshed, err := st.sweeper.SweepRefreshTokens(ctx)
	if err != nil {
		errs = append(errs, err)
	} else {
		cmd.Printf("%s: %d expired deleted\n", lifecycle.RefreshTokens, refreshed)
	}
	reset, err := st.sweeper.SweepResetTokens(ctx)
	if err != nil {
		errs = append(errs, err)
	} else {
		cmd.Printf("%s: %d expired deleted\n", lifecycle.ResetTokens, reset)
	}
	return errors.Join(errs...)
}

// sweepMaterial returns the configured keys when valid and a freshly
// generated key otherwise.
func sweepMaterial(current, previous string) (auth.SigningMaterial, error) {
	if material, err := auth.ValidateKeyMaterial(current, previous); err == nil {
		return material, nil
	}
	key, err := auth.GenerateSigningKey()
	if err != nil {
		return auth.SigningMaterial{}, err
	}
	return auth.ValidateKeyMaterial(key, "")
}
