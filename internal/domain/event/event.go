package event

import "time"

type Type string

const (
	TypeAgentCreated Type = "agent_created"
	TypeAgentUpdated Type = "agent_updated"
	TypeAgentDeleted Type = "agent_deleted"
)

// Channel is a domain-scoped notification channel.
// All event types within a domain share one subscription.
type Channel string

const (
	ChannelAgent Channel = "agent"
)

var typeToChannel = map[Type]Channel{
	TypeAgentCreated: ChannelAgent,
	TypeAgentUpdated: ChannelAgent,
	TypeAgentDeleted: ChannelAgent,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state.
// Subscribers fetch fresh state through the agent service.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID string) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
