package agent

import (
	"context"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
)

//go:generate mockgen -destination=../../mocks/mock_agent_repository.go -package=mocks -mock_names=Repository=MockAgentRepository . Repository

// Repository is the Agent Record Store boundary. Implementations return
// *domainagent.NotFoundError for unknown ids on Get, Update and Delete.
// [LSP] Fixture, Postgres and SQLite implementations are all valid substitutes.
type Repository interface {
	List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error)
	Get(ctx context.Context, id string) (domainagent.Agent, error)
	Create(ctx context.Context, a domainagent.Agent) (domainagent.Agent, error)
	Update(ctx context.Context, id string, patch domainagent.Patch) (domainagent.Agent, error)
	Delete(ctx context.Context, id string) error
}
