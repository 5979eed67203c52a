package fixture

import domainagent "github.com/alanyang/agent-console/internal/domain/agent"

// Agents returns a fresh copy of the five predefined agents.
func Agents() []domainagent.Agent {
	return []domainagent.Agent{
		{
			ID:           "1",
			Name:         "Customer Support Bot",
			Description:  "Handles customer inquiries and support tickets",
			Type:         "Customer Service",
			Status:       domainagent.StatusActive,
			CreatedAt:    "2023-05-15",
			Interactions: 1253,
			IsPersonal:   true,
			Model:        "gpt-4o",
			Channels:     []string{"voice", "chat", "email"},
			ChannelConfigs: map[string]domainagent.ChannelConfig{
				"voice": {Enabled: true, Details: "+1 (800) 555-0199"},
				"chat":  {Enabled: true, Details: "https://support.example.com/chat"},
				"email": {Enabled: true, Details: "support@example.com"},
			},
			Industry:         "retail",
			BotFunction:      "customer-support",
			AvmScore:         8.7,
			CsatScore:        92,
			PerformanceScore: 88,
		},
		{
			ID:           "2",
			Name:         "Sales Assistant",
			Description:  "Helps qualify leads and answer product questions",
			Type:         "Sales",
			Status:       domainagent.StatusActive,
			CreatedAt:    "2023-06-22",
			Interactions: 876,
			IsPersonal:   true,
			Model:        "gpt-4o-mini",
			Channels:     []string{"chat", "email"},
			ChannelConfigs: map[string]domainagent.ChannelConfig{
				"chat":  {Enabled: true, Details: "https://sales.example.com/chat"},
				"email": {Enabled: false, Details: "sales@example.com"},
			},
			Industry:    "technology",
			BotFunction: "lead-qualification",
			AvmScore:    7.9,
			CsatScore:   84,
		},
		{
			ID:             "3",
			Name:           "Knowledge Base Agent",
			Description:    "Answers questions from the internal documentation",
			Type:           "Internal",
			Status:         domainagent.StatusActive,
			CreatedAt:      "2023-07-10",
			Interactions:   2341,
			IsPersonal:     false,
			Model:          "claude-3-5-sonnet",
			Channels:       []string{"voice", "chat"},
			Industry:       "other",
			CustomIndustry: "Internal Operations",
			BotFunction:    "knowledge-base",
		},
		{
			ID:           "4",
			Name:         "Appointment Scheduler",
			Description:  "Books, moves and confirms appointments",
			Type:         "Scheduling",
			Status:       domainagent.StatusInactive,
			CreatedAt:    "2023-08-05",
			Interactions: 542,
			IsPersonal:   false,
			Channels:     []string{"voice"},
			ChannelConfigs: map[string]domainagent.ChannelConfig{
				"voice": {Enabled: true, Details: "+1 (800) 555-0142"},
			},
			Industry:      "healthcare",
			BotFunction:   "appointment-scheduling",
			Voice:         "adam",
			VoiceProvider: "elevenlabs",
		},
		{
			ID:             "5",
			Name:           "Feedback Collector",
			Description:    "Collects and categorizes customer feedback after each interaction",
			Type:           "Research",
			Status:         domainagent.StatusActive,
			CreatedAt:      "2023-09-18",
			Interactions:   389,
			IsPersonal:     true,
			Channels:       []string{"email"},
			BotFunction:    "other",
			CustomFunction: "Post-call Surveys",
		},
	}
}
