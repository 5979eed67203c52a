package wire

import (
	"context"
	"log/slog"
	"time"

	"github.com/alanyang/agent-console/internal/state"
)

// startConsoleReaper closes consoles that no request has touched for idle and
// that no WebSocket client is watching. Tabs that go away without closing
// their console are freed this way. A zero idle disables the reaper.
func startConsoleReaper(ctx context.Context, consoles *state.Consoles, watching func(consoleID string) bool, idle time.Duration) {
	if idle <= 0 {
		return
	}

	interval := idle / 2
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				closed := consoles.CloseIdle(time.Now().Add(-idle), func(c *state.Console) bool {
					return watching != nil && watching(c.ID)
				})
				if len(closed) > 0 {
					slog.InfoContext(ctx, "reaper: closed idle consoles", "count", len(closed), "open", consoles.Len())
				}
			}
		}
	}()
}
