package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

// Console is one open agent console in a dashboard tab.
type Console struct {
	ID      string
	AgentID string
	Draft   bool
	Detail  *Detail

	lastUsed time.Time // guarded by Consoles.mu
}

// Reload re-runs the load the console was opened with.
func (c *Console) Reload(ctx context.Context) {
	if c.Draft {
		c.Detail.LoadDraft()
		return
	}
	c.Detail.Load(ctx, c.AgentID)
}

// ConsoleListener receives every view change of every open console.
type ConsoleListener func(consoleID string, v DetailView)

// Consoles tracks the Detail states of open consoles.
type Consoles struct {
	reader   portagent.Reader
	listener ConsoleListener

	mu       sync.RWMutex
	consoles map[string]*Console
}

func NewConsoles(reader portagent.Reader, listener ConsoleListener) *Consoles {
	return &Consoles{
		reader:   reader,
		listener: listener,
		consoles: make(map[string]*Console),
	}
}

// Open registers a new console and runs its first load before returning.
func (cs *Consoles) Open(ctx context.Context, agentID string, draft bool) *Console {
	c := &Console{
		ID:      uuid.NewString(),
		AgentID: agentID,
		Draft:   draft,
		Detail:  NewDetail(cs.reader),

		lastUsed: time.Now(),
	}
	if cs.listener != nil {
		c.Detail.OnChange(func(v DetailView) {
			if _, ok := cs.Get(c.ID); ok {
				cs.listener(c.ID, v)
			}
		})
	}

	cs.mu.Lock()
	cs.consoles[c.ID] = c
	cs.mu.Unlock()

	c.Reload(ctx)
	return c
}

func (cs *Consoles) Get(id string) (*Console, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c, ok := cs.consoles[id]
	return c, ok
}

// Touch looks up a console and marks it as used now.
func (cs *Consoles) Touch(id string) (*Console, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c, ok := cs.consoles[id]
	if ok {
		c.lastUsed = time.Now()
	}
	return c, ok
}

// CloseIdle closes every console last used before cutoff, except those keep
// reports as still in use. It returns the ids it closed.
func (cs *Consoles) CloseIdle(cutoff time.Time, keep func(*Console) bool) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	var closed []string
	for id, c := range cs.consoles {
		if !c.lastUsed.Before(cutoff) || (keep != nil && keep(c)) {
			continue
		}
		delete(cs.consoles, id)
		closed = append(closed, id)
	}
	return closed
}

// Close forgets the console. It reports whether the console was open.
func (cs *Consoles) Close(id string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.consoles[id]; !ok {
		return false
	}
	delete(cs.consoles, id)
	return true
}

func (cs *Consoles) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.consoles)
}

// ByAgent returns the open non-draft consoles showing agentID.
func (cs *Consoles) ByAgent(agentID string) []*Console {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var out []*Console
	for _, c := range cs.consoles {
		if !c.Draft && c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out
}
