// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that signs every file matched by the configuration.
package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/batchsign/internal/color"
	"github.com/matt-FFFFFF/batchsign/internal/config"
	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/matt-FFFFFF/batchsign/internal/expand"
	"github.com/matt-FFFFFF/batchsign/internal/report"
	"github.com/matt-FFFFFF/batchsign/internal/signbatch"
	"github.com/urfave/cli/v3"
)

const (
	configFlag = "config"
	outFlag    = "out"
	formatFlag = "format"
	quietFlag  = "quiet"
)

// RunCmd is the command that runs the signing batch.
var RunCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Sign every file matched by the configuration and write a report",
		Description: `Run the configured signing tool once per file matched by the include patterns.
Every invocation runs concurrently. When all of them have finished, a report mapping each
file to its exit code and output is written, replacing any existing file.

The configuration may be JSON, YAML or HCL, chosen by file extension. Config file URLs use
Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      configFlag,
				Aliases:   []string{"c"},
				Usage:     "Location of the configuration file (go-getter syntax)",
				Value:     config.DefaultPath,
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:      outFlag,
				Aliases:   []string{"o"},
				Usage:     "Report file to write",
				Value:     report.DefaultPath,
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:     formatFlag,
				Usage:    "Report format: json or yaml",
				Value:    string(report.FormatJSON),
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:        quietFlag,
				Aliases:     []string{"q"},
				Usage:       "Do not print the results and summary after writing the report",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running run command")

	format, err := report.ParseFormat(cmd.String(formatFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	src := cmd.String(configFlag)

	cfg, err := config.Load(ctx, src)
	if err != nil {
		logger.Error("cannot load configuration", "source", src, "error", err)
		return cli.Exit(fmt.Sprintf("configuration %s: %s", src, err), 1)
	}

	logger.Debug("configuration loaded", "signTool", cfg.SignTool, "args", cfg.Args, "include", cfg.Include)

	batch := signbatch.NewBatch(*cfg, expand.New(nil))
	logger = logger.With("batch", batch.ID())
	sink := report.NewFileSink(cmd.String(outFlag), format)

	results, err := batch.Run(ctx, sink)

	stats := batch.Stats()
	logger.Debug("batch finished",
		"patterns", stats.Patterns,
		"emptyPatterns", len(stats.EmptyPatterns),
		"dispatched", stats.Dispatched,
	)

	switch {
	case errors.Is(err, signbatch.ErrInterrupted):
		return cli.Exit("batch interrupted, no report written", 1)
	case err != nil:
		logger.Error("cannot write report", "path", sink.Path, "error", err)
		return cli.Exit(err.Error(), 1)
	}

	if cmd.Bool(quietFlag) {
		return nil
	}

	w := cmd.Root().Writer

	if err := report.Dump(w, results, color.Enabled()); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := report.WriteSummary(w, results, color.Enabled()); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
