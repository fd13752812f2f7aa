// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command gen-schema generates the config file JSON Schema.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/holomush/tokenkeeper/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("gen-schema", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	outPath := fs.StringP("out", "o", filepath.Join("schemas", "config.schema.json"), "output path")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(*outPath, schema, 0o600); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Fprintf(stdout, "Generated %s\n", *outPath)
	return nil
}
