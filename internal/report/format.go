// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/batchsign/internal/signbatch"
)

// Format is the syntax of a report file.
type Format string

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"

	jsonIndent = "  "
)

var (
	// ErrUnknownFormat is returned by ParseFormat for unsupported names.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrMarshalReport is returned when results cannot be encoded.
	ErrMarshalReport = errors.New("failed to encode report")
	// ErrUnmarshalReport is returned when a report cannot be decoded.
	ErrUnmarshalReport = errors.New("failed to decode report")
)

// ParseFormat converts a flag value into a Format. The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromName picks the format from a file extension, defaulting to JSON.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal encodes results. Paths are emitted in lexical order.
func Marshal(format Format, results map[string]signbatch.Record) ([]byte, error) {
	if results == nil {
		results = map[string]signbatch.Record{}
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(results)
	default:
		data, err = json.MarshalIndent(results, "", jsonIndent)
	}

	if err != nil {
		return nil, errors.Join(ErrMarshalReport, err)
	}

	return data, nil
}

// Unmarshal decodes a report.
func Unmarshal(format Format, data []byte) (map[string]signbatch.Record, error) {
	results := map[string]signbatch.Record{}

	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &results)
	default:
		err = json.Unmarshal(data, &results)
	}

	if err != nil {
		return nil, errors.Join(ErrUnmarshalReport, err)
	}

	return results, nil
}
