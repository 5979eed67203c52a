package agent

import (
	"fmt"
	"net/url"
)

// Fallback values applied by Normalize.
const (
	DefaultVoiceDetails = "+1 (555) 123-4567"
	DefaultChatDetails  = "https://example.com/chat"
	DefaultEmailDetails = "agent@example.com"

	DefaultCsatScore        = 85
	DefaultPerformanceScore = 92
	DefaultAvmScore         = 7.8

	DefaultVoice         = "rachel"
	DefaultVoiceProvider = "elevenlabs"
)

var defaultChannelDetails = map[string]string{
	ChannelVoice: DefaultVoiceDetails,
	ChannelChat:  DefaultChatDetails,
	ChannelEmail: DefaultEmailDetails,
}

// AvatarFor is the deterministic placeholder image for an agent id.
func AvatarFor(id string) string {
	return "https://api.dicebear.com/7.x/bottts/svg?seed=" + url.QueryEscape(id)
}

func DefaultPurpose(name string) string {
	return fmt.Sprintf("%s helps customers get quick, accurate answers and routes complex requests to the right team.", name)
}

func DefaultPrompt(name string) string {
	return fmt.Sprintf("You are %s, a friendly and professional assistant. Answer clearly and concisely, ask a clarifying question when a request is ambiguous, and never invent information you do not have.", name)
}

// Normalize backfills every unset optional field of a fetched record. It never
// mutates a, and Normalize(Normalize(a)) equals Normalize(a).
func Normalize(a Agent) Agent {
	out := a.Clone()

	if out.Channels == nil {
		out.Channels = append([]string(nil), BaselineChannels...)
	}

	if out.ChannelConfigs == nil {
		out.ChannelConfigs = make(map[string]ChannelConfig, len(BaselineChannels))
	}
	for _, ch := range BaselineChannels {
		if _, ok := out.ChannelConfigs[ch]; !ok {
			out.ChannelConfigs[ch] = ChannelConfig{Enabled: true, Details: defaultChannelDetails[ch]}
		}
	}

	if out.CsatScore == 0 {
		out.CsatScore = DefaultCsatScore
	}
	if out.PerformanceScore == 0 {
		out.PerformanceScore = DefaultPerformanceScore
	}
	if out.AvmScore == 0 {
		out.AvmScore = DefaultAvmScore
	}

	if out.Avatar == "" {
		out.Avatar = AvatarFor(out.ID)
	}
	if out.Purpose == "" {
		out.Purpose = DefaultPurpose(out.Name)
	}
	if out.Prompt == "" {
		out.Prompt = DefaultPrompt(out.Name)
	}

	if out.Voice == "" {
		out.Voice = DefaultVoice
	}
	if out.VoiceProvider == "" {
		out.VoiceProvider = DefaultVoiceProvider
	}
	return out
}
