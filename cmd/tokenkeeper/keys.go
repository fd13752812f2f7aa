// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/tokenkeeper/internal/auth"
)

// NewKeygenCmd creates the keygen subcommand.
func NewKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new random signing key",
		Long: `Print a base64 encoded 64-byte random key suitable for
TOKENKEEPER_SIGNING_KEY_CURRENT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := auth.GenerateSigningKey()
			if err != nil {
				return err
			}
			cmd.Println(key)
			return nil
		},
	}
}

// NewCheckKeysCmd creates the check-keys subcommand.
func NewCheckKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-keys",
		Short: "Validate the configured signing keys",
		Long: `Decode the configured current and previous signing keys and check their
length. Exits non-zero when serve would refuse to start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			material, err := auth.ValidateKeyMaterial(cfg.Signing.Current, cfg.Signing.Previous)
			if err != nil {
				cmd.PrintErrln("signing keys: invalid")
				return err
			}

			cmd.Printf("current key: ok (%d bytes)\n", len(material.Current))
			if material.HasPrevious() {
				cmd.Printf("previous key: ok (%d bytes)\n", len(material.Previous))
			} else {
				cmd.Println("previous key: not configured")
			}
			return nil
		},
	}
}
