// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
)

// Watch reads sigCh until it is closed or ctx is done.
// The second signal of the same type closes sigCh and calls cancel.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, dup := seen[sig]; dup {
				ctxlog.Warn(ctx, "second signal received, aborting without writing a report", "signal", sig.String())
				signal.Stop(sigCh)
				close(sigCh)
				cancel()

				return
			}

			ctxlog.Warn(ctx, "signal received, waiting for in-flight invocations; send again to abort", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
