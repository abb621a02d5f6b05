package main

// Notes:
// - Real signal delivery is not tested: it is process-wide and would
//   cancel every parallel test. We check the context plumbing only.

import (
	"context"
	"os"
	"slices"
	"testing"
)

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cancel     func(parentCancel, stop context.CancelFunc)
		wantClosed bool
	}{
		{"open until a signal arrives", func(_, _ context.CancelFunc) {}, false},
		{"stop cancels", func(_, stop context.CancelFunc) { stop() }, true},
		{"parent cancel propagates", func(parent, _ context.CancelFunc) { parent() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent, parentCancel := context.WithCancel(context.Background())
			defer parentCancel()
			ctx, stop := notifyContext(parent)
			defer stop()

			tt.cancel(parentCancel, stop)

			select {
			case <-ctx.Done():
				if !tt.wantClosed {
					t.Fatal("context closed without a signal")
				}
			default:
				if tt.wantClosed {
					t.Fatal("context still open")
				}
			}
		})
	}
}

func TestShutdownSignals_IncludeInterrupt(t *testing.T) {
	t.Parallel()

	if !slices.Contains(shutdownSignals, os.Interrupt) {
		t.Errorf("shutdownSignals = %v, want os.Interrupt included", shutdownSignals)
	}
}
