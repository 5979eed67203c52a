package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alanyang/agent-console/internal/domain/event"
	porteventbus "github.com/alanyang/agent-console/internal/port/eventbus"
)

var _ porteventbus.EventBus = (*EventBus)(nil)

// subscriberBuffer bounds how far a slow subscriber may fall behind before
// events to it are dropped.
const subscriberBuffer = 64

// EventBus is the in-process bus used when no Postgres is configured.
// Every subscriber gets its own goroutine, so handlers run in publish order
// per subscription, like a LISTEN connection.
type EventBus struct {
	mu   sync.RWMutex
	subs map[event.Channel]map[*subscription]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[event.Channel]map[*subscription]struct{}),
	}
}

func (eb *EventBus) Publish(ctx context.Context, e event.Event) error {
	ch := event.ChannelFor(e.Type)

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for sub := range eb.subs[ch] {
		select {
		case sub.events <- e:
		default:
			slog.WarnContext(ctx, "event dropped for slow subscriber", "channel", ch, "type", e.Type)
		}
	}
	return nil
}

func (eb *EventBus) Subscribe(ctx context.Context, ch event.Channel, handler porteventbus.Handler) (porteventbus.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{
		events: make(chan event.Event, subscriberBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	eb.mu.Lock()
	if eb.subs[ch] == nil {
		eb.subs[ch] = make(map[*subscription]struct{})
	}
	eb.subs[ch][sub] = struct{}{}
	eb.mu.Unlock()

	go func() {
		defer func() {
			eb.mu.Lock()
			delete(eb.subs[ch], sub)
			eb.mu.Unlock()
			close(sub.done)
		}()

		for {
			select {
			case <-subCtx.Done():
				return
			case e := <-sub.events:
				handler(subCtx, e)
			}
		}
	}()

	return sub, nil
}

type subscription struct {
	events chan event.Event
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}
