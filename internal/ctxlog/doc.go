// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger through a context.Context.
//
// The default logger writes to stderr with PrettyHandler, which prints the level, a timestamp and the
// message followed by the record attributes as (optionally colourised) JSON.
// The level is read from BATCHSIGN_LOG_LEVEL at start-up and can be changed at runtime through LevelVar.
package ctxlog
