package mcp

import (
	"context"
	"errors"
	"fmt"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	agentsvc "github.com/alanyang/agent-console/internal/service/agent"
	"github.com/alanyang/agent-console/internal/state"
)

// RegisterPrompts registers the agent_prompt native prompt.
// [SRP] Prompt registration only, separated from server lifecycle and tool definitions.
func RegisterPrompts(s *mcpserver.MCPServer, agentSvc *agentsvc.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("agent_prompt",
			mcpmcp.WithPromptDescription("System prompt of a configured agent. Agents without a stored prompt get the default one."),
			mcpmcp.WithArgument("agent_id",
				mcpmcp.ArgumentDescription("Agent id"),
				mcpmcp.RequiredArgument(),
			),
		),
		promptHandler(agentSvc),
	)
}

func promptHandler(agentSvc *agentsvc.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		agentID := req.Params.Arguments["agent_id"]

		detail := state.NewDetail(agentSvc)
		detail.Load(ctx, agentID)

		v := detail.View()
		if v.Agent == nil {
			return nil, fmt.Errorf("get prompt for agent %q: %w", agentID, errors.Join(errors.New(v.Error), detail.LastError()))
		}

		return mcpmcp.NewGetPromptResult(
			fmt.Sprintf("System prompt for %s", v.Agent.Name),
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: v.Agent.Prompt,
					},
				),
			},
		), nil
	}
}
