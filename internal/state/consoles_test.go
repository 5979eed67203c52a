package state_test

import (
	"context"
	"sync"
	"time"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/agent-console/internal/adapter/fixture"
	"github.com/alanyang/agent-console/internal/state"
)

type consoleEvent struct {
	id   string
	view state.DetailView
}

type consoleSink struct {
	mu     sync.Mutex
	events []consoleEvent
}

func (s *consoleSink) listen(id string, v state.DetailView) {
	s.mu.Lock()
	s.events = append(s.events, consoleEvent{id: id, view: v})
	s.mu.Unlock()
}

func (s *consoleSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestConsoles_OpenLoadsAgent(t *testing.T) {
	sink := &consoleSink{}
	cs := state.NewConsoles(fixture.New(0), sink.listen)

	c := cs.Open(context.Background(), "1", false)

	assert.NotEmpty(t, c.ID)
	v := c.Detail.View()
	require.NotNil(t, v.Agent)
	assert.Equal(t, "Customer Support Bot", v.Agent.Name)

	got, ok := cs.Get(c.ID)
	require.True(t, ok)
	assert.Same(t, c, got)

	require.Equal(t, 2, sink.count())
	assert.Equal(t, c.ID, sink.events[1].id)
	assert.False(t, sink.events[1].view.Loading)
}

func TestConsoles_OpenDraft(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)

	c := cs.Open(context.Background(), "", true)

	v := c.Detail.View()
	assert.True(t, v.IsDraft)
	assert.Empty(t, v.Error)
}

func TestConsoles_OpenMissingAgent(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)

	c := cs.Open(context.Background(), "99", false)

	assert.Equal(t, state.MsgDetailLoadFailure, c.Detail.View().Error)
	assert.True(t, c.Detail.NotFound())
}

func TestConsoles_CloseStopsUpdates(t *testing.T) {
	sink := &consoleSink{}
	cs := state.NewConsoles(fixture.New(0), sink.listen)
	c := cs.Open(context.Background(), "2", false)
	before := sink.count()

	assert.True(t, cs.Close(c.ID))
	assert.False(t, cs.Close(c.ID))
	assert.Zero(t, cs.Len())

	c.Detail.OpenRolePlay()
	assert.Equal(t, before, sink.count())

	_, ok := cs.Get(c.ID)
	assert.False(t, ok)
}

func TestConsoles_Reload(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)
	c := cs.Open(context.Background(), "4", false)
	c.Detail.StartDirectCall("+1 (555) 222-3333", state.DeviceSettings{MicrophoneID: "m", SpeakerID: "s"})

	c.Reload(context.Background())

	v := c.Detail.View()
	assert.Equal(t, "Appointment Scheduler", v.Agent.Name)
	require.NotNil(t, v.Call)
	assert.Equal(t, "adam", v.Agent.Voice)
}

func TestConsoles_ByAgent(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)
	ctx := context.Background()
	a := cs.Open(ctx, "1", false)
	b := cs.Open(ctx, "1", false)
	cs.Open(ctx, "2", false)
	cs.Open(ctx, "1", true)

	got := cs.ByAgent("1")

	assert.ElementsMatch(t, []*state.Console{a, b}, got)
	assert.Empty(t, cs.ByAgent("99"))
}

func TestConsoles_CloseIdle(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)
	ctx := context.Background()
	idle := cs.Open(ctx, "1", false)
	touched := cs.Open(ctx, "2", false)
	watched := cs.Open(ctx, "3", false)

	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	_, ok := cs.Touch(touched.ID)
	require.True(t, ok)

	closed := cs.CloseIdle(cutoff, func(c *state.Console) bool { return c.ID == watched.ID })

	assert.Equal(t, []string{idle.ID}, closed)
	assert.Equal(t, 2, cs.Len())
	_, ok = cs.Get(idle.ID)
	assert.False(t, ok)
	_, ok = cs.Get(touched.ID)
	assert.True(t, ok)
}

func TestConsoles_TouchUnknown(t *testing.T) {
	cs := state.NewConsoles(fixture.New(0), nil)

	_, ok := cs.Touch("nope")
	assert.False(t, ok)
}
