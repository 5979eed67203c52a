package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/agent-console/internal/domain/event"
)

// WatchAll subscribes a session to changes of every agent.
const WatchAll = "*"

// notificationMethod is the MCP method used for agent change pushes.
const notificationMethod = "notifications/message"

// SessionRegistry tracks which MCP sessions watch which agents and pushes
// agent change events to them.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]bool // sessionID → watched agent ids

	// mcpSrv is set after the MCP server is constructed (avoids circular init dependency).
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

// NewSessionRegistry creates a registry without an MCP server reference.
// Call SetMCPServer once the mcp-go server is constructed.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]map[string]bool),
	}
}

// SetMCPServer injects the mcp-go server after construction (breaks the init cycle).
func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Open starts tracking a session with no watches.
func (r *SessionRegistry) Open(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		r.sessions[sessionID] = make(map[string]bool)
	}
}

// Watch subscribes a session to changes of agentID, or of every agent when
// agentID is WatchAll.
func (r *SessionRegistry) Watch(sessionID, agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	watched, ok := r.sessions[sessionID]
	if !ok {
		watched = make(map[string]bool)
		r.sessions[sessionID] = watched
	}
	watched[agentID] = true
}

// Unregister removes a session when it closes. Returns whether it was known.
func (r *SessionRegistry) Unregister(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return false
	}
	delete(r.sessions, sessionID)
	return true
}

// Watchers returns the sessions that should hear about agentID.
func (r *SessionRegistry) Watchers(agentID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var targets []string
	for sessionID, watched := range r.sessions {
		if watched[agentID] || watched[WatchAll] {
			targets = append(targets, sessionID)
		}
	}
	return targets
}

// NotifyAgentChanged pushes e to every session watching its agent.
func (r *SessionRegistry) NotifyAgentChanged(_ context.Context, e event.Event) error {
	targets := r.Watchers(e.EntityID)
	if len(targets) == 0 {
		return nil // Nobody watching, no-op.
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()

	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}

	params, err := toParams(e)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	var lastErr error
	for _, sessionID := range targets {
		if err := srv.SendNotificationToSpecificClient(sessionID, notificationMethod, params); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func toParams(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": v}, nil
	}
	return params, nil
}
