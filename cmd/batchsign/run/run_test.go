// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/batchsign/internal/color"
	"github.com/matt-FFFFFF/batchsign/internal/report"
	"github.com/matt-FFFFFF/batchsign/internal/signbatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// runCLI runs the run command under a fresh root in dir and returns its stdout.
func runCLI(ctx context.Context, t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	t.Chdir(dir)

	var out bytes.Buffer

	root := &cli.Command{
		Name:           "batchsign",
		Commands:       []*cli.Command{newCommand()},
		Writer:         &out,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(ctx, append([]string{"batchsign", "run"}, args...))

	return out.String(), err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr cli.ExitCoder

	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.ExitCode())
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires echo on PATH")
	}
}

func TestRun_DefaultsWriteJSONReport(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":                  "a",
		"b.txt":                  "b",
		"signature.config.json": `{"signTool": "echo", "args": ["signed:"], "include": ["*.txt", "nonexistent*.bin"]}`,
	})

	out, err := runCLI(context.Background(), t, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "result.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"a.txt": {"code": 0, "msg": "signed: a.txt"},
		"b.txt": {"code": 0, "msg": "signed: b.txt"}
	}`, string(data))

	assert.Contains(t, out, `"signed: a.txt"`)
	assert.Contains(t, out, "2 files processed: 2 succeeded, 0 failed")
}

func TestRun_YAMLConfigAndReportQuiet(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.bin": "a",
		"sign.yaml": `signTool: echo
args: ["ok"]
include: ["*.bin"]
`,
	})

	out, err := runCLI(context.Background(), t, dir, "-c", "sign.yaml", "-o", "out.yaml", "--format", "yaml", "-q")
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := report.Read(filepath.Join(dir, "out.yaml"))
	require.NoError(t, err)
	assert.Equal(t, map[string]signbatch.Record{"a.bin": {Code: 0, Msg: "ok a.bin"}}, got)
}

func TestRun_MissingToolIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.bin":                  "a",
		"b.bin":                  "b",
		"signature.config.json": `{"signTool": "batchsign-definitely-missing-tool", "include": ["*.bin"]}`,
	})

	out, err := runCLI(context.Background(), t, dir)
	require.NoError(t, err)

	got, err := report.Read(filepath.Join(dir, "result.json"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	for p, rec := range got {
		assert.Equal(t, signbatch.CodeLaunchFailure, rec.Code, p)
		assert.NotEmpty(t, rec.Msg, p)
	}

	assert.Contains(t, out, "0 succeeded, 2 failed")
}

func TestRun_FatalErrorsWriteNoReport(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
	}{
		{
			name: "missing configuration",
		},
		{
			name:   "malformed configuration",
			config: `{"signTool": "echo", "include": [`,
		},
		{
			name:   "empty sign tool",
			config: `{"signTool": "", "include": ["*.txt"]}`,
		},
		{
			name:   "bad pattern",
			config: `{"signTool": "echo", "include": ["[x"]}`,
		},
		{
			name:   "unknown report format",
			config: `{"signTool": "echo", "include": ["*.txt"]}`,
			args:   []string{"--format", "xml"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, map[string]string{"a.txt": "a"})

			if tc.config != "" {
				writeFiles(t, dir, map[string]string{"signature.config.json": tc.config})
			}

			_, err := runCLI(context.Background(), t, dir, tc.args...)
			requireExitCode(t, err, 1)
			assert.NoFileExists(t, filepath.Join(dir, "result.json"))
		})
	}
}

func TestRun_CancelledWritesNoReport(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":                  "a",
		"signature.config.json": `{"signTool": "echo", "include": ["*.txt"]}`,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runCLI(ctx, t, dir)
	requireExitCode(t, err, 1)
	assert.Contains(t, err.Error(), "interrupted")
	assert.NoFileExists(t, filepath.Join(dir, "result.json"))
}
