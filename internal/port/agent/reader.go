package agent

import (
	"context"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
)

//go:generate mockgen -destination=../../mocks/mock_agent_reader.go -package=mocks -mock_names=Reader=MockAgentReader . Reader

// Reader is the narrow read side the list and detail states depend on.
// [ISP] The states never mutate records, so they do not see the full Repository.
type Reader interface {
	List(ctx context.Context, filter domainagent.Filter) ([]domainagent.Agent, error)
	Get(ctx context.Context, id string) (domainagent.Agent, error)
}
