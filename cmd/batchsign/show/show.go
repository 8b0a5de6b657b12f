// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show contains the command that displays a saved report.
package show

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/batchsign/internal/color"
	"github.com/matt-FFFFFF/batchsign/internal/report"
	"github.com/urfave/cli/v3"
)

const (
	fileArg         = "file"
	summaryOnlyFlag = "summary-only"
)

// ErrShow is returned when the report cannot be shown.
var ErrShow = errors.New("cannot show report")

// ShowCmd is the command that shows a previously written report.
var ShowCmd = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show a previously written report",
		Description: "Show a report written by the run command, followed by a summary. The format follows the file extension.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: fileArg,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        summaryOnlyFlag,
				Aliases:     []string{"s"},
				Usage:       "Print only the summary",
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := cmd.StringArg(fileArg)
			if path == "" {
				path = report.DefaultPath
			}

			results, err := report.Read(path)
			if err != nil {
				return cli.Exit(errors.Join(ErrShow, err).Error(), 1)
			}

			w := cmd.Root().Writer

			if !cmd.Bool(summaryOnlyFlag) {
				if err := report.Dump(w, results, color.Enabled()); err != nil {
					return cli.Exit(errors.Join(ErrShow, err).Error(), 1)
				}
			}

			if err := report.WriteSummary(w, results, color.Enabled()); err != nil {
				return cli.Exit(errors.Join(ErrShow, err).Error(), 1)
			}

			return nil
		},
	}
}
