// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signbatch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"slices"

	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
)

const maxBufferSize = 8 * 1024 * 1024 // 8MB per stream

// Invocation is a single run of the signing tool against one file.
type Invocation struct {
	Tool string   // executable name or path, looked up in PATH when it has no separator
	Args []string // fixed arguments placed before Path
	Path string   // the file to sign, passed as the last argument
}

// Run executes the tool and converts the outcome into a Record. It never returns an error:
// failures to start are recorded with CodeLaunchFailure.
// The child is not tied to ctx; a started invocation always runs to completion.
func (i Invocation) Run(ctx context.Context) Record {
	logger := ctxlog.Logger(ctx).With("path", i.Path)
	logger.Info("dispatching invocation", "tool", i.Tool)

	stdout := &cappedBuffer{max: maxBufferSize}
	stderr := &cappedBuffer{max: maxBufferSize}

	cmd := exec.Command(i.Tool, slices.Concat(i.Args, []string{i.Path})...) //nolint:gosec,noctx
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		logger.Error("could not start signing tool", "error", err)

		return Record{Code: CodeLaunchFailure, Msg: err.Error()}
	}

	logger.Debug("process started", "pid", cmd.Process.Pid)

	err := cmd.Wait()

	if stdout.truncated || stderr.truncated {
		logger.Debug("output truncated", "maxBytes", maxBufferSize,
			"stdoutTruncated", stdout.truncated, "stderrTruncated", stderr.truncated)
	}

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		logger.Debug("invocation succeeded")

		return Record{Code: 0, Msg: Normalize(stdout.Bytes())}
	case errors.As(err, &exitErr):
		// ExitCode is -1 when the process was terminated by a signal.
		logger.Debug("invocation failed", "exitCode", exitErr.ExitCode())

		return Record{Code: exitErr.ExitCode(), Msg: Normalize(stderr.Bytes())}
	default:
		logger.Error("could not wait for signing tool", "error", err)

		return Record{Code: CodeLaunchFailure, Msg: err.Error()}
	}
}

// cappedBuffer keeps the first max bytes written to it and silently drops the rest.
type cappedBuffer struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if room >= len(p) {
		return b.buf.Write(p) //nolint:wrapcheck
	}

	b.truncated = true

	if room > 0 {
		b.buf.Write(p[:room])
	}

	return len(p), nil
}

func (b *cappedBuffer) Bytes() []byte {
	return b.buf.Bytes()
}
