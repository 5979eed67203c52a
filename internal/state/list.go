package state

import (
	"context"
	"log/slog"
	"sync"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

type ListView struct {
	Filter  domainagent.Filter  `json:"filter"`
	Agents  []domainagent.Agent `json:"agents"`
	Loading bool                `json:"loading"`
	Error   string              `json:"error,omitempty"`
}

// List holds the filtered collection shown in list views.
type List struct {
	reader portagent.Reader

	mu        sync.Mutex
	gen       uint64
	filter    domainagent.Filter
	agents    []domainagent.Agent
	loading   bool
	errMsg    string
	observers []func(ListView)
}

func NewList(reader portagent.Reader) *List {
	return &List{reader: reader, agents: []domainagent.Agent{}}
}

func (l *List) OnChange(fn func(ListView)) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

// Load fetches the agents matching filter. Only the most recently started
// load may change the view.
func (l *List) Load(ctx context.Context, filter domainagent.Filter) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.filter = filter
	l.loading = true
	l.errMsg = ""
	v := l.snapshot()
	observers := l.observers
	l.mu.Unlock()
	notify(observers, v)

	agents, err := l.reader.List(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load agents", "filter", filter, "error", err)
	}

	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return
	}
	l.loading = false
	if err != nil {
		l.agents = []domainagent.Agent{}
		l.errMsg = MsgListLoadFailure
	} else {
		l.agents = agents
	}
	v = l.snapshot()
	observers = l.observers
	l.mu.Unlock()
	notify(observers, v)
}

func (l *List) View() ListView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *List) snapshot() ListView {
	agents := make([]domainagent.Agent, len(l.agents))
	for i, a := range l.agents {
		agents[i] = a.Clone()
	}
	return ListView{
		Filter:  l.filter,
		Agents:  agents,
		Loading: l.loading,
		Error:   l.errMsg,
	}
}
