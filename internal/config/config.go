// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/batchsign/internal/expand"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "./signature.config.json"

var (
	// ErrParseConfig is returned when the configuration cannot be decoded.
	ErrParseConfig = errors.New("the configuration file format is incorrect")
	// ErrInvalidConfig is returned when a decoded configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMissingSignTool is reported when signTool is empty.
	ErrMissingSignTool = errors.New("signTool must not be empty")
)

// Config is the immutable input of a signing batch.
type Config struct {
	// SignTool is the executable name or path.
	SignTool string `json:"signTool" yaml:"signTool" toml:"signTool" hcl:"sign_tool"`
	// Args are passed to every invocation before the file path.
	Args []string `json:"args" yaml:"args" toml:"args" hcl:"args,optional"`
	// Include holds the glob patterns, expanded in order.
	Include []string `json:"include" yaml:"include" toml:"include" hcl:"include,optional"`
}

// Format is a configuration syntax.
type Format string

const (
	// FormatJSON is the default syntax.
	FormatJSON Format = "json"
	// FormatYAML is YAML 1.2.
	FormatYAML Format = "yaml"
	// FormatHCL is HCL native syntax.
	FormatHCL Format = "hcl"
	// FormatTOML is TOML 1.0.
	FormatTOML Format = "toml"
)

// FormatFromName picks the format from a file name extension, defaulting to JSON.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Load fetches src and parses it. The returned configuration is validated.
func Load(ctx context.Context, src string) (*Config, error) {
	name, data, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(FormatFromName(name), data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes data in the given format. It does not validate the result.
func Parse(format Format, data []byte) (*Config, error) {
	cfg := &Config{}

	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	case FormatTOML:
		err = toml.Unmarshal(data, cfg)
	case FormatHCL:
		err = hclsimple.Decode("config.hcl", data, evalContext(), cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}

	return cfg, nil
}

// Validate reports every problem found in the configuration at once.
func (c *Config) Validate() error {
	var merr *multierror.Error

	if strings.TrimSpace(c.SignTool) == "" {
		merr = multierror.Append(merr, ErrMissingSignTool)
	}

	for i, p := range c.Include {
		if err := expand.Validate(p); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("include[%d]: %w", i, err))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Clone returns a deep copy so callers can hand out the configuration without sharing slices.
func (c *Config) Clone() Config {
	return Config{
		SignTool: c.SignTool,
		Args:     slices.Clone(c.Args),
		Include:  slices.Clone(c.Include),
	}
}

// evalContext exposes the process environment to HCL expressions as `env.NAME`.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !hclIdentifier(k) {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

func hclIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}

	return true
}
