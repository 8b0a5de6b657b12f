// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package expand

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("content"), 0o644))
	}

	return fs
}

func TestExpand_MemFs(t *testing.T) {
	fs := memFs(t,
		"/work/a.txt",
		"/work/b.txt",
		"/work/c.bin",
		"/work/dist/x64/app.exe",
		"/work/dist/arm64/app.exe",
		"/work/dist/readme.md",
	)

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "single star",
			pattern: "/work/*.txt",
			want:    []string{"/work/a.txt", "/work/b.txt"},
		},
		{
			name:    "literal path",
			pattern: "/work/c.bin",
			want:    []string{"/work/c.bin"},
		},
		{
			name:    "recursive double star",
			pattern: "/work/dist/**/*.exe",
			want:    []string{"/work/dist/arm64/app.exe", "/work/dist/x64/app.exe"},
		},
		{
			name:    "alternatives",
			pattern: "/work/{a,c}.*",
			want:    []string{"/work/a.txt", "/work/c.bin"},
		},
		{
			name:    "character class",
			pattern: "/work/[ab].txt",
			want:    []string{"/work/a.txt", "/work/b.txt"},
		},
		{
			name:    "no match",
			pattern: "/work/nonexistent*.bin",
			want:    nil,
		},
		{
			name:    "missing base directory",
			pattern: "/nowhere/*.txt",
			want:    nil,
		},
	}

	e := New(fs)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Collect(context.Background(), filepath.FromSlash(tt.pattern))
			require.NoError(t, err)

			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.FromSlash(w)
			}

			slices.Sort(got)
			assert.Equal(t, want, append([]string{}, got...))
		})
	}
}

func TestExpand_BadPattern(t *testing.T) {
	e := New(afero.NewMemMapFs())

	_, err := e.Expand(context.Background(), "/work/[a-")
	require.ErrorIs(t, err, ErrBadPattern)

	_, err = e.Expand(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyPattern)
}

func TestExpand_StopsWhenConsumerStops(t *testing.T) {
	fs := memFs(t, "/work/1.txt", "/work/2.txt", "/work/3.txt")

	seq, err := New(fs).Expand(context.Background(), "/work/*.txt")
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		break
	}

	assert.Equal(t, 1, n)
}

func TestExpand_RelativePatternOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o644))
	t.Chdir(dir)

	e := New(nil)

	got, err := e.Collect(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, got, "relative literal keeps its form")

	got, err = e.Collect(context.Background(), "**/*.txt")
	require.NoError(t, err)
	slices.Sort(got)
	assert.Equal(t, []string{"a.txt", filepath.Join("sub", "b.txt")}, got)

	got, err = e.Collect(context.Background(), "sub/*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sub", "b.txt")}, got)
}

func TestExpand_UnreadableDirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "x.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("ok"), 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got, err := New(afero.NewOsFs()).Collect(context.Background(), filepath.Join(dir, "**", "*.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "ok.txt")}, got)
}

func TestNew_UsesFsFactory(t *testing.T) {
	fs := memFs(t, "/stubbed/file.txt")
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	got, err := New(nil).Collect(context.Background(), filepath.FromSlash("/stubbed/*.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.FromSlash("/stubbed/file.txt")}, got)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate("dist/**/*.exe"))
	require.ErrorIs(t, Validate("dist/[x"), ErrBadPattern)
	require.ErrorIs(t, Validate(""), ErrEmptyPattern)
}
