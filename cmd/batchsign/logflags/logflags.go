// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logflags holds the global logging flags and the hook that applies them.
package logflags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	// LevelFlag selects the minimum log level.
	LevelFlag = "log-level"
	// FormatFlag selects the log handler.
	FormatFlag = "log-format"

	formatPretty = "pretty"
	formatJSON   = "json"
)

// ErrUnknownLogFormat is returned for a --log-format value other than pretty or json.
var ErrUnknownLogFormat = errors.New("unknown log format")

// Flags returns the logging flags. They are added to the root command and inherited by every subcommand.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    LevelFlag,
			Usage:   "Minimum log level: DEBUG, INFO, WARN or ERROR",
			Sources: cli.EnvVars(ctxlog.LevelEnvVar),
			Value:   "INFO",
		},
		&cli.StringFlag{
			Name:  FormatFlag,
			Usage: "Log output format: pretty or json",
			Value: formatPretty,
		},
	}
}

// Before applies the logging flags, replacing the context logger when JSON output is requested.
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if name := cmd.String(LevelFlag); name != "" {
		level, err := ctxlog.ParseLevel(name)
		if err != nil {
			return ctx, cli.Exit(err.Error(), 1)
		}

		ctxlog.LevelVar.Set(level)
	}

	switch strings.ToLower(cmd.String(FormatFlag)) {
	case formatPretty, "":
		return ctx, nil
	case formatJSON:
		return ctxlog.New(ctx, ctxlog.NewJSONLogger(cmd.Root().ErrWriter)), nil
	default:
		return ctx, cli.Exit(fmt.Errorf("%w: %q", ErrUnknownLogFormat, cmd.String(FormatFlag)).Error(), 1)
	}
}
