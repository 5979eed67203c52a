package agent

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Channel names the agent can be reached on.
const (
	ChannelVoice = "voice"
	ChannelChat  = "chat"
	ChannelEmail = "email"
)

// BaselineChannels are the channels every hydrated agent carries config for.
var BaselineChannels = []string{ChannelVoice, ChannelChat, ChannelEmail}

// DateLayout is the calendar-date format used for CreatedAt.
const DateLayout = "2006-01-02"

type ChannelConfig struct {
	Enabled bool   `json:"enabled"`
	Details string `json:"details"`
}

type Agent struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Type           string                   `json:"type"`
	Status         Status                   `json:"status"`
	CreatedAt      string                   `json:"createdAt"`
	Interactions   int                      `json:"interactions"`
	IsPersonal     bool                     `json:"isPersonal"`
	Model          string                   `json:"model,omitempty"`
	Channels       []string                 `json:"channels"`
	ChannelConfigs map[string]ChannelConfig `json:"channelConfigs,omitempty"`
	Avatar         string                   `json:"avatar,omitempty"`
	Purpose        string                   `json:"purpose,omitempty"`
	Prompt         string                   `json:"prompt,omitempty"`
	Industry       string                   `json:"industry,omitempty"`
	CustomIndustry string                   `json:"customIndustry,omitempty"`
	BotFunction    string                   `json:"botFunction,omitempty"`
	CustomFunction string                   `json:"customFunction,omitempty"`
	Voice          string                   `json:"voice,omitempty"`
	VoiceProvider  string                   `json:"voiceProvider,omitempty"`

	AvmScore         float64 `json:"avmScore,omitempty"`
	CsatScore        int     `json:"csatScore,omitempty"`
	PerformanceScore int     `json:"performanceScore,omitempty"`
}

// Input is everything a caller may supply when creating an agent. The id,
// creation date and interaction counter are always assigned by the service.
type Input struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Type           string                   `json:"type"`
	Status         Status                   `json:"status"`
	IsPersonal     bool                     `json:"isPersonal"`
	Model          string                   `json:"model,omitempty"`
	Channels       []string                 `json:"channels,omitempty"`
	ChannelConfigs map[string]ChannelConfig `json:"channelConfigs,omitempty"`
	Avatar         string                   `json:"avatar,omitempty"`
	Purpose        string                   `json:"purpose,omitempty"`
	Prompt         string                   `json:"prompt,omitempty"`
	Industry       string                   `json:"industry,omitempty"`
	CustomIndustry string                   `json:"customIndustry,omitempty"`
	BotFunction    string                   `json:"botFunction,omitempty"`
	CustomFunction string                   `json:"customFunction,omitempty"`
	Voice          string                   `json:"voice,omitempty"`
	VoiceProvider  string                   `json:"voiceProvider,omitempty"`
}

// New builds a fully-formed record from in. Status falls back to inactive.
func New(in Input) Agent {
	status := in.Status
	if status == "" {
		status = StatusInactive
	}
	return Agent{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		Status:         status,
		CreatedAt:      time.Now().UTC().Format(DateLayout),
		Interactions:   0,
		IsPersonal:     in.IsPersonal,
		Model:          in.Model,
		Channels:       slices.Clone(in.Channels),
		ChannelConfigs: maps.Clone(in.ChannelConfigs),
		Avatar:         in.Avatar,
		Purpose:        in.Purpose,
		Prompt:         in.Prompt,
		Industry:       in.Industry,
		CustomIndustry: in.CustomIndustry,
		BotFunction:    in.BotFunction,
		CustomFunction: in.CustomFunction,
		Voice:          in.Voice,
		VoiceProvider:  in.VoiceProvider,
	}
}

// Clone returns a deep copy so callers never share slices or maps with a store.
func (a Agent) Clone() Agent {
	a.Channels = slices.Clone(a.Channels)
	a.ChannelConfigs = maps.Clone(a.ChannelConfigs)
	return a
}

// IndustryLabel is the display label for the agent's industry.
func (a *Agent) IndustryLabel() string {
	return resolveLabel(Industries, a.Industry, a.CustomIndustry)
}

// FunctionLabel is the display label for the agent's function.
func (a *Agent) FunctionLabel() string {
	return resolveLabel(Functions, a.BotFunction, a.CustomFunction)
}

// Patch overlays the non-nil fields onto a stored record. ID, CreatedAt and
// the creation semantics are not patchable.
type Patch struct {
	Name             *string                   `json:"name,omitempty"`
	Description      *string                   `json:"description,omitempty"`
	Type             *string                   `json:"type,omitempty"`
	Status           *Status                   `json:"status,omitempty"`
	Interactions     *int                      `json:"interactions,omitempty"`
	IsPersonal       *bool                     `json:"isPersonal,omitempty"`
	Model            *string                   `json:"model,omitempty"`
	Channels         *[]string                 `json:"channels,omitempty"`
	ChannelConfigs   *map[string]ChannelConfig `json:"channelConfigs,omitempty"`
	Avatar           *string                   `json:"avatar,omitempty"`
	Purpose          *string                   `json:"purpose,omitempty"`
	Prompt           *string                   `json:"prompt,omitempty"`
	Industry         *string                   `json:"industry,omitempty"`
	CustomIndustry   *string                   `json:"customIndustry,omitempty"`
	BotFunction      *string                   `json:"botFunction,omitempty"`
	CustomFunction   *string                   `json:"customFunction,omitempty"`
	Voice            *string                   `json:"voice,omitempty"`
	VoiceProvider    *string                   `json:"voiceProvider,omitempty"`
	AvmScore         *float64                  `json:"avmScore,omitempty"`
	CsatScore        *int                      `json:"csatScore,omitempty"`
	PerformanceScore *int                      `json:"performanceScore,omitempty"`
}

// Apply returns a copy of a with every set field of p overlaid.
func (p Patch) Apply(a Agent) Agent {
	out := a.Clone()
	setIf(&out.Name, p.Name)
	setIf(&out.Description, p.Description)
	setIf(&out.Type, p.Type)
	setIf(&out.Status, p.Status)
	setIf(&out.Interactions, p.Interactions)
	setIf(&out.IsPersonal, p.IsPersonal)
	setIf(&out.Model, p.Model)
	if p.Channels != nil {
		out.Channels = slices.Clone(*p.Channels)
	}
	if p.ChannelConfigs != nil {
		out.ChannelConfigs = maps.Clone(*p.ChannelConfigs)
	}
	setIf(&out.Avatar, p.Avatar)
	setIf(&out.Purpose, p.Purpose)
	setIf(&out.Prompt, p.Prompt)
	setIf(&out.Industry, p.Industry)
	setIf(&out.CustomIndustry, p.CustomIndustry)
	setIf(&out.BotFunction, p.BotFunction)
	setIf(&out.CustomFunction, p.CustomFunction)
	setIf(&out.Voice, p.Voice)
	setIf(&out.VoiceProvider, p.VoiceProvider)
	setIf(&out.AvmScore, p.AvmScore)
	setIf(&out.CsatScore, p.CsatScore)
	setIf(&out.PerformanceScore, p.PerformanceScore)
	return out
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Filter selects a subset of agents for list views.
type Filter string

const (
	FilterAll  Filter = "all-agents"
	FilterMine Filter = "my-agents"
	FilterTeam Filter = "team-agents"
)

// Matches reports whether a passes f. Unrecognized filters match everything.
func (f Filter) Matches(a Agent) bool {
	switch f {
	case FilterMine:
		return a.IsPersonal
	case FilterTeam:
		return !a.IsPersonal
	default:
		return true
	}
}

// Select returns the agents that pass f, preserving order.
func (f Filter) Select(agents []Agent) []Agent {
	out := make([]Agent, 0, len(agents))
	for _, a := range agents {
		if f.Matches(a) {
			out = append(out, a.Clone())
		}
	}
	return out
}
