package agent

import "time"

// DraftID is the identifier dashboards use for an agent that has been created
// client-side but not yet configured or saved.
const DraftID = "new123"

const draftName = "New Agent"

func IsDraftID(id string) bool { return id == DraftID }

// NewDraft synthesizes the placeholder record for an unsaved agent. Unlike
// Normalize it leaves every quality metric at zero.
func NewDraft() Agent {
	return Agent{
		ID:           DraftID,
		Name:         draftName,
		Description:  "Configure this agent to get started.",
		Type:         "Custom",
		Status:       StatusInactive,
		CreatedAt:    time.Now().UTC().Format(DateLayout),
		Interactions: 0,
		IsPersonal:   true,
		Channels:     append([]string(nil), BaselineChannels...),
		ChannelConfigs: map[string]ChannelConfig{
			ChannelVoice: {Enabled: true, Details: DefaultVoiceDetails},
			ChannelChat:  {Enabled: true, Details: DefaultChatDetails},
			ChannelEmail: {Enabled: true, Details: DefaultEmailDetails},
		},
		Avatar:        AvatarFor(DraftID),
		Purpose:       DefaultPurpose(draftName),
		Prompt:        DefaultPrompt(draftName),
		Voice:         DefaultVoice,
		VoiceProvider: DefaultVoiceProvider,
	}
}
