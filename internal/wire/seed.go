package wire

import (
	"context"
	"errors"
	"fmt"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	portagent "github.com/alanyang/agent-console/internal/port/agent"
)

// Seed inserts every agent in agents that repo does not already hold and
// returns how many were inserted. Existing records are left untouched, so
// seeding twice is harmless.
func Seed(ctx context.Context, repo portagent.Repository, agents []domainagent.Agent) (int, error) {
	inserted := 0
	for _, a := range agents {
		_, err := repo.Get(ctx, a.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainagent.ErrNotFound) {
			return inserted, fmt.Errorf("looking up agent %s: %w", a.ID, err)
		}
		if _, err := repo.Create(ctx, a); err != nil {
			return inserted, fmt.Errorf("inserting agent %s: %w", a.ID, err)
		}
		inserted++
	}
	return inserted, nil
}
