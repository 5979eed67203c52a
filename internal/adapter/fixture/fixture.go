// Package fixture is the development substitute for the agent record store:
// a fixed set of predefined agents served after a simulated network delay.
//
// Writes are acknowledged but never stored. Create, Update and Delete return
// what a real store would return, yet a later List or Get still sees the
// original fixtures.
package fixture

import (
	"context"
	"time"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

var _ portagent.Repository = (*Repository)(nil)

// DefaultLatency is the simulated round trip applied to every call.
const DefaultLatency = 500 * time.Millisecond

type Repository struct {
	agents  []domainagent.Agent
	latency time.Duration
}

// New returns a store over Agents() that waits latency before every call.
func New(latency time.Duration) *Repository {
	return &Repository{agents: Agents(), latency: latency}
}

func (r *Repository) List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return filter.Select(r.agents), nil
}

func (r *Repository) Get(ctx context.Context, id string) (domainagent.Agent, error) {
	if err := r.wait(ctx); err != nil {
		return domainagent.Agent{}, err
	}
	a, ok := r.find(id)
	if !ok {
		return domainagent.Agent{}, domainagent.NotFound(id)
	}
	return a.Clone(), nil
}

func (r *Repository) Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error) {
	if err := r.wait(ctx); err != nil {
		return domainagent.Agent{}, err
	}
	// Not appended to r.agents.
	return a.Clone(), nil
}

func (r *Repository) Update(ctx context.Context, id string, patch domainagent.Patch) (domainagent.Agent, error) {
	if err := r.wait(ctx); err != nil {
		return domainagent.Agent{}, err
	}
	a, ok := r.find(id)
	if !ok {
		return domainagent.Agent{}, domainagent.NotFound(id)
	}
	// The merge is returned but not written back.
	return patch.Apply(a), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.wait(ctx); err != nil {
		return err
	}
	if _, ok := r.find(id); !ok {
		return domainagent.NotFound(id)
	}
	return nil
}

func (r *Repository) find(id string) (domainagent.Agent, bool) {
	for _, a := range r.agents {
		if a.ID == id {
			return a, true
		}
	}
	return domainagent.Agent{}, false
}

func (r *Repository) wait(ctx context.Context) error {
	if r.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
