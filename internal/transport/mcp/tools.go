package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domainagent "github.com/alanyang/agent-console/internal/domain/agent"
	agentsvc "github.com/alanyang/agent-console/internal/service/agent"
	"github.com/alanyang/agent-console/internal/state"
)

// RegisterTools registers all MCP tools on the server.
// [SRP] Tool registration only.
// [OCP] Add a new tool by adding a new AddTool call, server.go never changes.
func RegisterTools(s *mcpserver.MCPServer, reg *SessionRegistry, agentSvc *agentsvc.Service) {
	s.AddTool(mcpmcp.NewTool("list_agents",
		mcpmcp.WithDescription("List agents. Filter is one of all-agents, my-agents (personal) or team-agents; anything else lists all."),
		mcpmcp.WithString("filter", mcpmcp.Description("all-agents, my-agents or team-agents")),
	), listAgentsHandler(agentSvc))

	s.AddTool(mcpmcp.NewTool("get_agent",
		mcpmcp.WithDescription("Returns one agent with every optional field filled in with its dashboard default."),
		mcpmcp.WithString("agent_id", mcpmcp.Required(), mcpmcp.Description("Agent id")),
	), getAgentHandler(agentSvc))

	s.AddTool(mcpmcp.NewTool("create_agent",
		append([]mcpmcp.ToolOption{
			mcpmcp.WithDescription("Create an agent. The id, creation date and interaction counter are assigned by the server."),
			mcpmcp.WithString("name", mcpmcp.Required(), mcpmcp.Description("Display name")),
		}, fieldOptions()...)...,
	), createAgentHandler(agentSvc))

	s.AddTool(mcpmcp.NewTool("update_agent",
		append([]mcpmcp.ToolOption{
			mcpmcp.WithDescription("Update an agent. Only the fields passed are changed."),
			mcpmcp.WithString("agent_id", mcpmcp.Required(), mcpmcp.Description("Agent id")),
			mcpmcp.WithString("name", mcpmcp.Description("Display name")),
		}, fieldOptions()...)...,
	), updateAgentHandler(agentSvc))

	s.AddTool(mcpmcp.NewTool("delete_agent",
		mcpmcp.WithDescription("Delete an agent by id."),
		mcpmcp.WithString("agent_id", mcpmcp.Required(), mcpmcp.Description("Agent id")),
	), deleteAgentHandler(agentSvc))

	s.AddTool(mcpmcp.NewTool("watch_agent",
		mcpmcp.WithDescription("Receive a notifications/message push on this session whenever the agent is created, updated or deleted. Pass * to watch every agent."),
		mcpmcp.WithString("agent_id", mcpmcp.Required(), mcpmcp.Description("Agent id or *")),
	), watchAgentHandler(reg))
}

// stringFields maps tool argument names to the patchable string fields.
var stringFields = []struct {
	arg  string
	desc string
	set  func(*domainagent.Patch, string)
}{
	{"description", "Short description", func(p *domainagent.Patch, v string) { p.Description = &v }},
	{"type", "Category, e.g. Customer Service", func(p *domainagent.Patch, v string) { p.Type = &v }},
	{"model", "LLM model identifier", func(p *domainagent.Patch, v string) { p.Model = &v }},
	{"purpose", "What the agent is for", func(p *domainagent.Patch, v string) { p.Purpose = &v }},
	{"prompt", "System prompt (markdown)", func(p *domainagent.Patch, v string) { p.Prompt = &v }},
	{"industry", "Industry key, or other", func(p *domainagent.Patch, v string) { p.Industry = &v }},
	{"custom_industry", "Industry label when industry is other", func(p *domainagent.Patch, v string) { p.CustomIndustry = &v }},
	{"bot_function", "Function key, or other", func(p *domainagent.Patch, v string) { p.BotFunction = &v }},
	{"custom_function", "Function label when bot_function is other", func(p *domainagent.Patch, v string) { p.CustomFunction = &v }},
	{"voice", "Voice name", func(p *domainagent.Patch, v string) { p.Voice = &v }},
	{"voice_provider", "Voice provider", func(p *domainagent.Patch, v string) { p.VoiceProvider = &v }},
}

func fieldOptions() []mcpmcp.ToolOption {
	opts := make([]mcpmcp.ToolOption, 0, len(stringFields)+3)
	for _, f := range stringFields {
		opts = append(opts, mcpmcp.WithString(f.arg, mcpmcp.Description(f.desc)))
	}
	return append(opts,
		mcpmcp.WithString("status", mcpmcp.Description("active or inactive")),
		mcpmcp.WithString("channels", mcpmcp.Description("Comma-separated channels, e.g. voice,chat,email")),
		mcpmcp.WithBoolean("is_personal", mcpmcp.Description("true for my agents, false for team agents")),
	)
}

// patchFromArgs builds a patch holding only the arguments the caller passed.
func patchFromArgs(req mcpmcp.CallToolRequest) domainagent.Patch {
	args := req.GetArguments()
	var p domainagent.Patch

	if _, ok := args["name"]; ok {
		v := mcpmcp.ParseString(req, "name", "")
		p.Name = &v
	}
	for _, f := range stringFields {
		if _, ok := args[f.arg]; ok {
			f.set(&p, mcpmcp.ParseString(req, f.arg, ""))
		}
	}
	if _, ok := args["status"]; ok {
		v := domainagent.Status(mcpmcp.ParseString(req, "status", ""))
		p.Status = &v
	}
	if _, ok := args["channels"]; ok {
		v := splitChannels(mcpmcp.ParseString(req, "channels", ""))
		p.Channels = &v
	}
	if _, ok := args["is_personal"]; ok {
		v := mcpmcp.ParseBoolean(req, "is_personal", false)
		p.IsPersonal = &v
	}
	return p
}

func splitChannels(s string) []string {
	out := []string{}
	for _, ch := range strings.Split(s, ",") {
		if ch = strings.TrimSpace(ch); ch != "" {
			out = append(out, ch)
		}
	}
	return out
}

// labeledAgent is a hydrated agent with its resolved display labels inlined.
type labeledAgent struct {
	*domainagent.Agent
	IndustryLabel string `json:"industryLabel,omitempty"`
	FunctionLabel string `json:"functionLabel,omitempty"`
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func listAgentsHandler(agentSvc *agentsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		filter := domainagent.Filter(mcpmcp.ParseString(req, "filter", string(domainagent.FilterAll)))

		list := state.NewList(agentSvc)
		list.Load(ctx, filter)

		v := list.View()
		if v.Error != "" {
			return mcpmcp.NewToolResultText("error: " + v.Error), nil
		}
		data, _ := json.Marshal(v.Agents)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func getAgentHandler(agentSvc *agentsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id := mcpmcp.ParseString(req, "agent_id", "")
		detail := state.NewDetail(agentSvc)
		detail.Load(ctx, id)

		v := detail.View()
		if detail.NotFound() {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: agent %q not found", id)), nil
		}
		if v.Agent == nil {
			return mcpmcp.NewToolResultText("error: " + v.Error), nil
		}
		data, _ := json.Marshal(labeledAgent{
			Agent:         v.Agent,
			IndustryLabel: v.IndustryLabel,
			FunctionLabel: v.FunctionLabel,
		})
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func createAgentHandler(agentSvc *agentsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		if strings.TrimSpace(mcpmcp.ParseString(req, "name", "")) == "" {
			return mcpmcp.NewToolResultText("error: name must not be empty"), nil
		}

		// Input and Patch share field names, so the patch overlay on a zero
		// record is the input.
		fields := patchFromArgs(req).Apply(domainagent.Agent{})
		a, err := agentSvc.Create(ctx, domainagent.Input{
			Name:           fields.Name,
			Description:    fields.Description,
			Type:           fields.Type,
			Status:         fields.Status,
			IsPersonal:     fields.IsPersonal,
			Model:          fields.Model,
			Channels:       fields.Channels,
			Purpose:        fields.Purpose,
			Prompt:         fields.Prompt,
			Industry:       fields.Industry,
			CustomIndustry: fields.CustomIndustry,
			BotFunction:    fields.BotFunction,
			CustomFunction: fields.CustomFunction,
			Voice:          fields.Voice,
			VoiceProvider:  fields.VoiceProvider,
		})
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		data, _ := json.Marshal(a)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func updateAgentHandler(agentSvc *agentsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id := mcpmcp.ParseString(req, "agent_id", "")
		if id == "" {
			return mcpmcp.NewToolResultText("error: agent_id required"), nil
		}

		a, err := agentSvc.Update(ctx, id, patchFromArgs(req))
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		data, _ := json.Marshal(a)
		return mcpmcp.NewToolResultText(string(data)), nil
	}
}

func deleteAgentHandler(agentSvc *agentsvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id := mcpmcp.ParseString(req, "agent_id", "")
		if id == "" {
			return mcpmcp.NewToolResultText("error: agent_id required"), nil
		}

		if err := agentSvc.Delete(ctx, id); err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return mcpmcp.NewToolResultText(`{"ok":true}`), nil
	}
}

func watchAgentHandler(reg *SessionRegistry) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id := mcpmcp.ParseString(req, "agent_id", "")
		if id == "" {
			return mcpmcp.NewToolResultText("error: agent_id required"), nil
		}

		session := mcpserver.ClientSessionFromContext(ctx)
		if session == nil {
			return mcpmcp.NewToolResultText("error: no active session"), nil
		}

		reg.Watch(session.SessionID(), id)
		return mcpmcp.NewToolResultText(`{"ok":true}`), nil
	}
}
