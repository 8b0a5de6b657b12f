// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signbatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "trailing newline", in: "signed: a.txt\n", want: "signed: a.txt"},
		{name: "crlf converted", in: "line1\r\nline2\r\n", want: "line1\nline2"},
		{name: "trailing whitespace mix", in: "done \t\r\n\n  ", want: "done"},
		{name: "leading whitespace kept", in: "  indented\n", want: "  indented"},
		{name: "lone carriage return kept inside", in: "a\rb\n", want: "a\rb"},
		{name: "invalid utf8 replaced", in: "bad\xffbyte\n", want: "bad�byte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize([]byte(tt.in)))
		})
	}
}

func TestRecordSucceeded(t *testing.T) {
	assert.True(t, Record{Code: 0}.Succeeded())
	assert.False(t, Record{Code: 1}.Succeeded())
	assert.False(t, Record{Code: CodeLaunchFailure}.Succeeded())
}
