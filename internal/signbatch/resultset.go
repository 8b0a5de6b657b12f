// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signbatch

import (
	"maps"
	"sync"
)

// ResultSet collects records from concurrent invocations.
// Inserting an existing path replaces its record.
type ResultSet struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{records: make(map[string]Record)}
}

// Insert stores r under path.
func (s *ResultSet) Insert(path string, r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[path] = r
}

// Len returns the number of distinct paths recorded.
func (s *ResultSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Snapshot returns a copy of the records.
func (s *ResultSet) Snapshot() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.records)
}
