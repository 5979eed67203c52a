package transport

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/agent-console/internal/domain/event"
	porteventbus "github.com/alanyang/agent-console/internal/port/eventbus"
	agentsvc "github.com/alanyang/agent-console/internal/service/agent"
	"github.com/alanyang/agent-console/internal/state"

	agenthandler "github.com/alanyang/agent-console/internal/transport/agent"
	consolehandler "github.com/alanyang/agent-console/internal/transport/console"
	mcptransport "github.com/alanyang/agent-console/internal/transport/mcp"
	wshandler "github.com/alanyang/agent-console/internal/transport/ws"
)

func NewRouter(
	ctx context.Context,
	agentSvc *agentsvc.Service,
	consoles *state.Consoles,
	hub *wshandler.Hub,
	mcpServer *mcptransport.Server,
	eventBus porteventbus.EventBus,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())

	api := r.Group("/api")

	agenthandler.Register(api.Group("/agents"), agentSvc)
	agenthandler.RegisterClassifications(api.Group("/classifications"))
	consolehandler.Register(api.Group("/consoles"), consoles)
	hub.Register(api.Group("/ws"))

	if mcpServer != nil {
		r.Any("/mcp", gin.WrapH(mcpServer.Handler()))
	}

	// Bridge: every agent event goes to WS clients and to MCP sessions watching
	// that agent. event.Type in the payload lets the client filter.
	if _, err := eventBus.Subscribe(ctx, event.ChannelAgent, func(ctx context.Context, e event.Event) {
		hub.Broadcast(e)
		if mcpServer != nil {
			if err := mcpServer.Registry().NotifyAgentChanged(ctx, e); err != nil {
				slog.ErrorContext(ctx, "failed to notify mcp watchers", "agent_id", e.EntityID, "error", err)
			}
		}
	}); err != nil {
		slog.Error("failed to subscribe agent channel to WS hub", "error", err)
	}

	return r
}
