// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package expand

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrBadPattern is returned when a pattern is syntactically malformed.
	ErrBadPattern = errors.New("malformed glob pattern")
	// ErrEmptyPattern is returned for an empty pattern string.
	ErrEmptyPattern = errors.New("empty glob pattern")

	errStop = errors.New("stop walk")
)

// FsFactory returns the filesystem used by Expanders created with New(nil).
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Expander turns glob patterns into paths.
type Expander struct {
	fs afero.Fs
}

// New returns an Expander over afs. A nil afs uses FsFactory.
func New(afs afero.Fs) *Expander {
	if afs == nil {
		afs = FsFactory()
	}

	return &Expander{fs: afs}
}

// Validate reports whether pattern can be expanded.
func Validate(pattern string) error {
	if pattern == "" {
		return ErrEmptyPattern
	}

	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return fmt.Errorf("%w: %s", ErrBadPattern, pattern)
	}

	return nil
}

// Expand returns the paths matching pattern as a lazy sequence.
// Relative patterns are resolved against the working directory of the filesystem and
// yield relative paths; absolute patterns yield absolute paths.
// Entries that cannot be read while walking are skipped.
// An error is returned only when the pattern itself is invalid.
func (e *Expander) Expand(ctx context.Context, pattern string) (iter.Seq[string], error) {
	if err := Validate(pattern); err != nil {
		return nil, err
	}

	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	fsys := e.root(base)

	return func(yield func(string) bool) {
		err := doublestar.GlobWalk(fsys, rest, func(p string, _ fs.DirEntry) error {
			if !yield(filepath.FromSlash(join(base, p))) {
				return errStop
			}

			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			ctxlog.Debug(ctx, "glob walk ended early", "pattern", pattern, "error", err)
		}
	}, nil
}

// Collect expands pattern into a slice. Convenience for callers that need the whole list.
func (e *Expander) Collect(ctx context.Context, pattern string) ([]string, error) {
	seq, err := e.Expand(ctx, pattern)
	if err != nil {
		return nil, err
	}

	var out []string
	for p := range seq {
		out = append(out, p)
	}

	return out, nil
}

// root returns an io/fs view of the filesystem rooted at base.
func (e *Expander) root(base string) fs.FS {
	if base == "." || base == "" {
		return afero.NewIOFS(e.fs)
	}

	return afero.NewIOFS(afero.NewBasePathFs(e.fs, filepath.FromSlash(base)))
}

func join(base, p string) string {
	if base == "." || base == "" {
		return p
	}

	if p == "." {
		return base
	}

	return path.Join(base, p)
}
