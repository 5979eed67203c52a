package agent

import (
	"context"
	"fmt"
	"log/slog"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	"github.com/alanyang/agent-console/internal/domain/event"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
	portbus "github.com/alanyang/agent-console/internal/port/eventbus"
)

// Service is the only way into agent persistence. Which store sits behind
// repo is decided by the composition root; nothing here branches on it.
// [SRP] Record access and change notification only. Defaulting belongs to the states.
type Service struct {
	repo portagent.Repository
	bus  portbus.EventBus
}

func NewService(repo portagent.Repository, bus portbus.EventBus) *Service {
	return &Service{repo: repo, bus: bus}
}

func (s *Service) List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error) {
	agents, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

func (s *Service) Get(ctx context.Context, id string) (domainagent.Agent, error) {
	if id == "" {
		return domainagent.Agent{}, domainagent.ErrMissingID
	}
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("get agent: %w", err)
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, in domainagent.Input) (domainagent.Agent, error) {
	a := domainagent.New(in)
	if err := a.Validate(); err != nil {
		return domainagent.Agent{}, fmt.Errorf("create agent: %w", err)
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("create agent: %w", err)
	}

	s.publish(ctx, event.TypeAgentCreated, created.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch domainagent.Patch) (domainagent.Agent, error) {
	if id == "" {
		return domainagent.Agent{}, domainagent.ErrMissingID
	}
	if err := validatePatch(patch); err != nil {
		return domainagent.Agent{}, fmt.Errorf("update agent: %w", err)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domainagent.Agent{}, fmt.Errorf("update agent: %w", err)
	}

	s.publish(ctx, event.TypeAgentUpdated, updated.ID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domainagent.ErrMissingID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}

	s.publish(ctx, event.TypeAgentDeleted, id)
	return nil
}

// validatePatch checks the patched fields in isolation; the stored record
// already satisfies the rest.
func validatePatch(p domainagent.Patch) error {
	base := domainagent.Agent{ID: "patch", Name: "patch", Status: domainagent.StatusActive}
	merged := p.Apply(base)
	return merged.Validate()
}

func (s *Service) publish(ctx context.Context, t event.Type, id string) {
	if err := s.bus.Publish(ctx, event.New(t, id)); err != nil {
		slog.ErrorContext(ctx, "failed to publish agent event", "type", t, "agent_id", id, "error", err)
	}
}
