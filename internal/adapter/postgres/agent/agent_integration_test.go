//go:build integration

package agent_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgagent "github.com/alanyang/agent-console/internal/adapter/postgres/agent"
	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	"github.com/alanyang/agent-console/internal/testutil"
)

// helpers

func setupAgent(t *testing.T, ctx context.Context, repo *pgagent.Repository, personal bool) domainagent.Agent {
	t.Helper()
	a := domainagent.New(domainagent.Input{
		Name:       "bot-" + uuid.New().String()[:4],
		Status:     domainagent.StatusActive,
		IsPersonal: personal,
		Channels:   []string{"voice", "chat"},
	})
	created, err := repo.Create(ctx, a)
	require.NoError(t, err)
	return created
}

func containsID(agents []domainagent.Agent, id string) bool {
	for _, a := range agents {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestAgentRepo_CreateAndGet(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgagent.New(pool)

	a := domainagent.New(domainagent.Input{
		Name:     "Support",
		Status:   domainagent.StatusActive,
		Channels: []string{"chat"},
		ChannelConfigs: map[string]domainagent.ChannelConfig{
			"chat": {Enabled: true, Details: "https://example.com/c"},
		},
		Industry:       "other",
		CustomIndustry: "Aerospace",
	})
	created, err := repo.Create(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, a.ID, created.ID)
	assert.Equal(t, a.CreatedAt, created.CreatedAt)

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAgentRepo_GetNotFound(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := pgagent.New(pool)

	_, err := repo.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domainagent.ErrNotFound)
}

func TestAgentRepo_ListByOwnership(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgagent.New(pool)

	mine := setupAgent(t, ctx, repo, true)
	team := setupAgent(t, ctx, repo, false)

	all, err := repo.List(ctx, domainagent.FilterAll)
	require.NoError(t, err)
	assert.True(t, containsID(all, mine.ID))
	assert.True(t, containsID(all, team.ID))

	personal, err := repo.List(ctx, domainagent.FilterMine)
	require.NoError(t, err)
	assert.True(t, containsID(personal, mine.ID))
	assert.False(t, containsID(personal, team.ID))

	shared, err := repo.List(ctx, domainagent.FilterTeam)
	require.NoError(t, err)
	assert.False(t, containsID(shared, mine.ID))
	assert.True(t, containsID(shared, team.ID))
}

func TestAgentRepo_UpdateMergesAndPersists(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgagent.New(pool)
	a := setupAgent(t, ctx, repo, true)

	name := "Renamed"
	status := domainagent.StatusInactive
	updated, err := repo.Update(ctx, a.ID, domainagent.Patch{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, domainagent.StatusInactive, updated.Status)
	assert.Equal(t, a.Channels, updated.Channels, "unspecified fields preserved")

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = repo.Update(ctx, uuid.NewString(), domainagent.Patch{Name: &name})
	assert.ErrorIs(t, err, domainagent.ErrNotFound)
}

func TestAgentRepo_Delete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := pgagent.New(pool)
	a := setupAgent(t, ctx, repo, false)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err := repo.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domainagent.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domainagent.ErrNotFound)
}
