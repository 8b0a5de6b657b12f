// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/batchsign/internal/signbatch"
)

// ErrDisplay is returned when results cannot be written to the console.
var ErrDisplay = errors.New("failed to display results")

// Dump writes results to w as indented JSON, colorized when colour is set.
func Dump(w io.Writer, results map[string]signbatch.Record, colour bool) error {
	data, err := Marshal(FormatJSON, results)
	if err != nil {
		return errors.Join(ErrDisplay, err)
	}

	// colorjson only understands the generic decoded form.
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return errors.Join(ErrDisplay, err)
	}

	f := colorjson.NewFormatter()
	f.Indent = len(jsonIndent)
	f.DisabledColor = !colour

	out, err := f.Marshal(generic)
	if err != nil {
		return errors.Join(ErrDisplay, err)
	}

	if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
		return errors.Join(ErrDisplay, err)
	}

	return nil
}

// Failure is a file whose record has a non-zero code.
type Failure struct {
	Path string
	Code int
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []Failure // sorted by path
}

// Summarize counts results.
func Summarize(results map[string]signbatch.Record) Summary {
	s := Summary{Total: len(results)}

	for _, p := range slices.Sorted(maps.Keys(results)) {
		rec := results[p]
		if rec.Succeeded() {
			s.Succeeded++
			continue
		}

		s.Failed++
		s.Failures = append(s.Failures, Failure{Path: p, Code: rec.Code})
	}

	return s
}

// Styles used when rendering a Summary.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Failed  lipgloss.Style
	Detail  lipgloss.Style
}

// NewStyles returns the default summary styles. Without colour every style is plain.
func NewStyles(colour bool) Styles {
	if !colour {
		return Styles{
			Title:   lipgloss.NewStyle(),
			Success: lipgloss.NewStyle(),
			Failed:  lipgloss.NewStyle(),
			Detail:  lipgloss.NewStyle(),
		}
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Render formats the summary as a headline followed by one line per failure.
func (s Summary) Render(styles Styles) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("%d %s processed:", s.Total, plural(s.Total, "file", "files"))))
	b.WriteString(" ")
	b.WriteString(styles.Success.Render(fmt.Sprintf("%d succeeded", s.Succeeded)))
	b.WriteString(", ")

	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = styles.Failed.Render(failed)
	}

	b.WriteString(failed)

	for _, f := range s.Failures {
		b.WriteString("\n")
		b.WriteString(styles.Failed.Render("  ✗ "))
		b.WriteString(f.Path)
		b.WriteString(styles.Detail.Render(fmt.Sprintf(" (exit code: %d)", f.Code)))
	}

	return b.String()
}

// WriteSummary renders the summary of results to w.
func WriteSummary(w io.Writer, results map[string]signbatch.Record, colour bool) error {
	if _, err := fmt.Fprintln(w, Summarize(results).Render(NewStyles(colour))); err != nil {
		return errors.Join(ErrDisplay, err)
	}

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
