package mcp_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	mcptransport "github.com/alanyang/agent-console/internal/transport/mcp"
)

// ── Registry unit tests ──────────────────────────────────────────────────────

func TestRegistry_WatchUnregister(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()

	reg.Open("session-1")
	assert.Empty(t, reg.Watchers("1"), "an opened session watches nothing")

	reg.Watch("session-1", "1")
	assert.Equal(t, []string{"session-1"}, reg.Watchers("1"))
	assert.Empty(t, reg.Watchers("2"))

	assert.True(t, reg.Unregister("session-1"))
	assert.Empty(t, reg.Watchers("1"), "closed session must not be notified")
}

func TestRegistry_WatchAll(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()

	reg.Watch("session-all", mcptransport.WatchAll)
	reg.Watch("session-one", "3")

	got := reg.Watchers("3")
	sort.Strings(got)
	assert.Equal(t, []string{"session-all", "session-one"}, got)
	assert.Equal(t, []string{"session-all"}, reg.Watchers("4"))
}

func TestRegistry_OpenKeepsExistingWatches(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()

	reg.Watch("session-1", "1")
	reg.Open("session-1")
	assert.Equal(t, []string{"session-1"}, reg.Watchers("1"))
}

func TestRegistry_UnregisterNonExistentSession(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	assert.False(t, reg.Unregister("does-not-exist"))
}

func TestNew_ServesHandler(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	srv := mcptransport.New(reg, nil)

	assert.NotNil(t, srv.Handler())
	assert.Same(t, reg, srv.Registry())
}
