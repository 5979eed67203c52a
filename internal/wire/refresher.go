package wire

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alanyang/agent-console/internal/domain/event"
	porteventbus "github.com/alanyang/agent-console/internal/port/eventbus"
	"github.com/alanyang/agent-console/internal/state"
)

// startConsoleRefresher subscribes to the agent event channel and reloads every
// open console showing an agent after that agent is updated or deleted. Bursts
// of events for one agent collapse into a single reload once delay has passed
// without a further event.
func startConsoleRefresher(ctx context.Context, consoles *state.Consoles, bus porteventbus.EventBus, delay time.Duration) {
	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
	)

	schedule := func(agentID string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[agentID]; ok {
			t.Stop()
		}
		timers[agentID] = time.AfterFunc(delay, func() {
			mu.Lock()
			delete(timers, agentID)
			mu.Unlock()

			if ctx.Err() != nil {
				return
			}
			open := consoles.ByAgent(agentID)
			for _, c := range open {
				c.Reload(ctx)
			}
			if len(open) > 0 {
				slog.DebugContext(ctx, "refresher: reloaded consoles", "agent_id", agentID, "count", len(open))
			}
		})
	}

	if _, err := bus.Subscribe(ctx, event.ChannelAgent, func(_ context.Context, e event.Event) {
		switch e.Type {
		case event.TypeAgentUpdated, event.TypeAgentDeleted:
			schedule(e.EntityID)
		}
	}); err != nil {
		slog.Error("refresher: failed to subscribe to agent channel", "error", err)
	}
}
