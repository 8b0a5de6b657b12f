// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"errors"

	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/matt-FFFFFF/batchsign/internal/signbatch"
	"github.com/spf13/afero"
)

// DefaultPath is the report written when none is given.
const DefaultPath = "result.json"

const reportFileMode = 0o644

var (
	// ErrWriteReport is returned when the report file cannot be written.
	ErrWriteReport = errors.New("failed to write report file")
	// ErrReadReport is returned when the report file cannot be read.
	ErrReadReport = errors.New("failed to read report file")
)

// FsFactory returns the filesystem reports are written to and read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

var _ signbatch.Sink = (*FileSink)(nil)

// FileSink writes the results of a batch to a file, replacing any existing content.
type FileSink struct {
	Path   string
	Format Format
}

// NewFileSink returns a FileSink for path. An empty path means DefaultPath.
func NewFileSink(path string, format Format) *FileSink {
	if path == "" {
		path = DefaultPath
	}

	return &FileSink{Path: path, Format: format}
}

// Write encodes results and writes them to the sink's path.
func (s *FileSink) Write(ctx context.Context, results map[string]signbatch.Record) error {
	data, err := Marshal(s.Format, results)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(FsFactory(), s.Path, data, reportFileMode); err != nil {
		return errors.Join(ErrWriteReport, err)
	}

	ctxlog.Info(ctx, "report written", "path", s.Path, "format", string(s.Format), "entries", len(results))

	return nil
}

// Read loads a report written by FileSink. The format follows the file extension.
func Read(path string) (map[string]signbatch.Record, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadReport, err)
	}

	return Unmarshal(FormatFromName(path), data)
}
