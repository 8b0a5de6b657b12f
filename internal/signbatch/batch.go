// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signbatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/batchsign/internal/config"
	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/matt-FFFFFF/batchsign/internal/expand"
)

var (
	// ErrWriteResults is returned by Run when the sink rejects the results.
	ErrWriteResults = errors.New("failed to write results")
	// ErrInterrupted is returned by Run when ctx was cancelled while the batch ran.
	// The results are not handed to the sink.
	ErrInterrupted = errors.New("batch interrupted, results discarded")
)

// Sink receives the final results of a batch.
type Sink interface {
	Write(ctx context.Context, results map[string]Record) error
}

// InvokeFunc runs one invocation. Batch uses Invocation.Run unless WithInvoker is given.
type InvokeFunc func(ctx context.Context, inv Invocation) Record

// Option configures a Batch.
type Option func(b *Batch)

// WithInvoker replaces the function used to run each invocation.
func WithInvoker(fn InvokeFunc) Option {
	return func(b *Batch) {
		b.invoke = fn
	}
}

// Stats describes what a batch did.
type Stats struct {
	Patterns      int      // patterns processed
	EmptyPatterns []string // patterns that matched nothing or failed to expand
	Dispatched    int      // invocations launched, counting duplicate paths
}

// Batch expands the configured patterns and signs every match concurrently.
type Batch struct {
	id       string
	cfg      config.Config
	expander *expand.Expander
	invoke   InvokeFunc
	results  *ResultSet
	stats    Stats
}

// NewBatch creates a Batch for cfg. The configuration is copied.
func NewBatch(cfg config.Config, expander *expand.Expander, opts ...Option) *Batch {
	if expander == nil {
		expander = expand.New(nil)
	}

	b := &Batch{
		id:       uuid.New().String(),
		cfg:      cfg.Clone(),
		expander: expander,
		invoke: func(ctx context.Context, inv Invocation) Record {
			return inv.Run(ctx)
		},
		results: NewResultSet(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Execute launches one goroutine per matched path and waits for all of them.
// Every launched path has a record in the returned map; when patterns overlap,
// the record of whichever invocation finished last is kept.
// Execute must be called once.
func (b *Batch) Execute(ctx context.Context) map[string]Record {
	logger := ctxlog.Logger(ctx).With("batch", b.id, "tool", b.cfg.SignTool)
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("batch", b.id))

	wg := &sync.WaitGroup{}

	for _, pattern := range b.cfg.Include {
		b.stats.Patterns++

		paths, err := b.expander.Expand(ctx, pattern)
		if err != nil {
			logger.Warn("no files matched pattern", "pattern", pattern, "error", err)
			b.stats.EmptyPatterns = append(b.stats.EmptyPatterns, pattern)

			continue
		}

		matched := false

		for p := range paths {
			matched = true
			b.stats.Dispatched++

			inv := Invocation{Tool: b.cfg.SignTool, Args: b.cfg.Args, Path: p}

			wg.Add(1)

			go func() {
				defer wg.Done()

				b.results.Insert(inv.Path, b.safeInvoke(ctx, inv))
			}()
		}

		if !matched {
			logger.Warn("no files matched pattern", "pattern", pattern)
			b.stats.EmptyPatterns = append(b.stats.EmptyPatterns, pattern)
		}
	}

	logger.Debug("all invocations dispatched, waiting", "dispatched", b.stats.Dispatched)
	wg.Wait()

	snapshot := b.results.Snapshot()
	logger.Debug("batch complete", "dispatched", b.stats.Dispatched, "distinctPaths", len(snapshot))

	return snapshot
}

// Run executes the batch and hands the results to sink.
// Per-file failures live in the records. An error is returned when the sink fails,
// or when ctx is cancelled by the time the batch completes, in which case the sink is not called.
func (b *Batch) Run(ctx context.Context, sink Sink) (map[string]Record, error) {
	results := b.Execute(ctx)

	if err := ctx.Err(); err != nil {
		return results, errors.Join(ErrInterrupted, err)
	}

	if err := sink.Write(ctx, results); err != nil {
		return results, errors.Join(ErrWriteResults, err)
	}

	return results, nil
}

// ID identifies the batch in log output.
func (b *Batch) ID() string {
	return b.id
}

// Stats returns counters collected by Execute.
func (b *Batch) Stats() Stats {
	return b.stats
}

// safeInvoke turns a panic in the invoker into a failure record so one file cannot take the batch down.
func (b *Batch) safeInvoke(ctx context.Context, inv Invocation) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "invocation panicked", "path", inv.Path, "panic", r)
			rec = Record{Code: CodeLaunchFailure, Msg: fmt.Sprintf("panic: %v", r)}
		}
	}()

	return b.invoke(ctx, inv)
}
