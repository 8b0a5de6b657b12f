// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signbatch runs a signing tool over every file matched by a set of glob patterns.
// Each file is signed by its own child process, all of them concurrently, and every outcome is
// normalised into a Record keyed by the file path.
// A failure for one file never affects another; the batch always produces a record per dispatched path.
package signbatch
