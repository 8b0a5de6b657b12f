// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signbatch

import (
	"strings"
	"unicode"
)

// CodeLaunchFailure is the code recorded when the tool could not be started or waited for,
// or when it exited without a status (killed by a signal).
const CodeLaunchFailure = -1

// Record is the normalised outcome of one invocation.
type Record struct {
	// Code is 0 on success, the exit status on failure, or CodeLaunchFailure.
	Code int `json:"code" yaml:"code"`
	// Msg is stdout on success, stderr on failure, or the launch error.
	Msg string `json:"msg" yaml:"msg"`
}

// Succeeded reports whether the invocation exited with status 0.
func (r Record) Succeeded() bool {
	return r.Code == 0
}

// Normalize converts CRLF line endings to LF and strips trailing white space.
// Invalid UTF-8 is replaced by U+FFFD.
func Normalize(b []byte) string {
	s := strings.ToValidUTF8(string(b), "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.TrimRightFunc(s, unicode.IsSpace)
}
