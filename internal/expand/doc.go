// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package expand resolves glob patterns into file paths.
//
// Patterns use doublestar syntax: `*`, `?`, `[a-z]`, `{a,b}` and `**` for any number of directories.
// Matching is done against an afero filesystem so tests can run against memory.
package expand
