// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// newRevokeCmd creates the revoke subcommand.
func newRevokeCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke PRINCIPAL_ID",
		Short: "End every session of a principal",
		Long: `Revoke all refresh tokens of PRINCIPAL_ID, forcing the principal to log in
again once its current access tokens expire.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRevoke(cmd, args[0], deps)
		},
	}
}

func runRevoke(cmd *cobra.Command, principalID string, deps *Deps) error {
	deps = deps.withDefaults()
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "validate configuration").Wrap(err)
	}
	material, err := auth.ValidateKeyMaterial(cfg.Signing.Current, cfg.Signing.Previous)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	st, err := buildStack(ctx, cfg, material, deps, logger, nil)
	if err != nil {
		return err
	}
	defer st.close()

	svc, err := st.sessionService(principalIDResolver{}, logger, nil)
	if err != nil {
		return err
	}
	n, err := svc.EndAllSessions(ctx, principalID)
	if err != nil {
		return err
	}
	cmd.Printf("revoked %d session(s) for %s\n", n, principalID)
	return nil
}

// principalIDResolver treats identifiers as already resolved. The CLI has
// no account store, so username and email lookups always miss.
type principalIDResolver struct{}

func (principalIDResolver) ResolveByUsername(context.Context, string) (string, error) {
	return "", auth.ErrPrincipalNotFound
}

func (principalIDResolver) ResolveByEmail(context.Context, string) (string, error) {
	return "", auth.ErrPrincipalNotFound
}

func (principalIDResolver) ResolveByID(_ context.Context, id string) (string, error) {
	if id == "" {
		return "", auth.ErrPrincipalNotFound
	}
	return id, nil
}
