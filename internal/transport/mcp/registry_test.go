package mcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/agent-console/internal/domain/event"
	mcptransport "github.com/alanyang/agent-console/internal/transport/mcp"
)

func TestNotifyAgentChanged_NoWatchers_NoOp(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()

	// No session watches the agent, so nothing is sent and no server is needed.
	err := reg.NotifyAgentChanged(context.Background(), event.New(event.TypeAgentUpdated, "1"))
	assert.NoError(t, err, "NotifyAgentChanged without watchers must be a no-op")
}

func TestNotifyAgentChanged_WatcherWithoutServer(t *testing.T) {
	reg := mcptransport.NewSessionRegistry()
	reg.Watch("session-1", "1")

	err := reg.NotifyAgentChanged(context.Background(), event.New(event.TypeAgentUpdated, "1"))
	assert.Error(t, err)
}
