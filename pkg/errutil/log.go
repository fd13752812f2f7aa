// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil provides helpers for logging and asserting oops errors.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context if it's an oops error.
// For oops errors, it extracts and logs the message, code, and context.
// For standard errors, it logs the error string.
func LogError(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, errorAttrs(err)...)
}

// LogSecurityEvent logs a security-relevant event at WARN with a
// security_event attribute. err may be nil.
func LogSecurityEvent(ctx context.Context, logger *slog.Logger, event string, err error, attrs ...any) {
	if logger == nil {
		logger = slog.Default()
	}
	args := append([]any{"security_event", event}, attrs...)
	if err != nil {
		args = append(args, errorAttrs(err)...)
	}
	logger.WarnContext(ctx, "security event", args...)
}

func errorAttrs(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err}
	}
	attrs := []any{
		"error", oopsErr.Error(),
	}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}
