// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the batchsign command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/batchsign"
	"github.com/matt-FFFFFF/batchsign/cmd/batchsign/logflags"
	"github.com/matt-FFFFFF/batchsign/cmd/batchsign/run"
	"github.com/matt-FFFFFF/batchsign/cmd/batchsign/show"
	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/matt-FFFFFF/batchsign/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		show.ShowCmd,
	},
	Flags:     logflags.Flags(),
	Before:    logflags.Before,
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "batchsign",
	Description: `batchsign applies a signing tool to every file matched by a set of glob patterns.
Each file is signed by its own concurrent invocation of the tool, and the exit code and
output of every invocation are collected into a single report.`,
	Usage:     "batchsign run -c signature.config.json",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", batchsign.Version, batchsign.Commit)

	err := rootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
