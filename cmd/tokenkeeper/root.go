// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/tokenkeeper/internal/config"
)

// NewRootCmd creates the root command for the tokenkeeper CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

func newRootCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenkeeper",
		Short: "tokenkeeper - session and reset token lifecycle",
		Long: `tokenkeeper issues and verifies signed access tokens, rotates opaque
refresh tokens, runs the one-time password reset flow, and purges expired
credentials on a schedule.`,
		SilenceUsage: true,
	}

	// Global flags: config file path plus every configuration key.
	cmd.PersistentFlags().String("config", "", "config file path (YAML)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCmd(deps))
	cmd.AddCommand(newMigrateCmd(deps))
	cmd.AddCommand(newSweepCmd(deps))
	cmd.AddCommand(newRevokeCmd(deps))
	cmd.AddCommand(NewKeygenCmd())
	cmd.AddCommand(NewCheckKeysCmd())

	return cmd
}

// loadConfig reads configuration for cmd using the --config file, the flags
// set on the command line, and the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path = ""
	}
	return config.Load(path, cmd.Flags())
}
