// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decorates console output with ANSI escape codes.
//
// Colour is on when stdout is a terminal, unless NO_COLOR is set.
// FORCE_COLOR turns it on for non-terminals (CI logs), NO_COLOR always wins.
package color
