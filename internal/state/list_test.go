package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/agent-console/internal/adapter/fixture"
	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	"github.com/alanyang/agent-console/internal/mocks"
	"github.com/alanyang/agent-console/internal/state"
)

func TestList_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockAgentReader(ctrl)
	reader.EXPECT().List(gomock.Any(), domainagent.FilterMine).Return(fixture.Agents()[:2], nil)

	l := state.NewList(reader)
	rec := &recorder[state.ListView]{}
	l.OnChange(rec.observe)

	l.Load(context.Background(), domainagent.FilterMine)

	v := l.View()
	assert.Equal(t, domainagent.FilterMine, v.Filter)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Error)
	require.Len(t, v.Agents, 2)
	assert.Equal(t, "Customer Support Bot", v.Agents[0].Name)

	views := rec.all()
	require.Len(t, views, 2)
	assert.True(t, views[0].Loading)
	assert.False(t, views[1].Loading)
}

func TestList_Load_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockAgentReader(ctrl)
	reader.EXPECT().List(gomock.Any(), domainagent.FilterAll).Return(nil, errors.New("timeout"))

	l := state.NewList(reader)
	l.Load(context.Background(), domainagent.FilterAll)

	v := l.View()
	assert.Equal(t, state.MsgListLoadFailure, v.Error)
	assert.NotNil(t, v.Agents)
	assert.Empty(t, v.Agents)
	assert.False(t, v.Loading)
}

func TestList_InitialView(t *testing.T) {
	v := state.NewList(nil).View()
	assert.NotNil(t, v.Agents)
	assert.Empty(t, v.Agents)
	assert.False(t, v.Loading)
}

func TestList_LastLoadWins(t *testing.T) {
	reader := newGatedReader(string(domainagent.FilterMine), string(domainagent.FilterTeam))
	l := state.NewList(reader)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		l.Load(ctx, domainagent.FilterMine)
		close(done)
	}()
	<-reader.started

	close(reader.gates[string(domainagent.FilterTeam)])
	l.Load(ctx, domainagent.FilterTeam)

	close(reader.gates[string(domainagent.FilterMine)])
	<-done

	v := l.View()
	assert.Equal(t, domainagent.FilterTeam, v.Filter)
	require.Len(t, v.Agents, 1)
	assert.Equal(t, string(domainagent.FilterTeam), v.Agents[0].ID)
}

func TestList_AgainstFixtureStore(t *testing.T) {
	l := state.NewList(fixture.New(0))

	l.Load(context.Background(), domainagent.FilterTeam)

	v := l.View()
	require.Len(t, v.Agents, 2)
	assert.Equal(t, "Knowledge Base Agent", v.Agents[0].Name)
	assert.Equal(t, "Appointment Scheduler", v.Agents[1].Name)
}
