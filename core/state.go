package core

// ConversationState is the full per-user state carried between turns.
// It is owned by the conversation store between turns and exclusively by
// the orchestrator during a turn. All fields are set at construction;
// there are no optional-and-absent fields.
type ConversationState struct {
	UserID   string    `json:"user_id"`
	Messages []Message `json:"messages"`

	// Context holds the most recent retrieved grounding text.
	Context string `json:"context"`

	CurrentAgent AgentType `json:"current_agent"`

	// DiscoveryComplete is monotonic: once true it never reverts.
	DiscoveryComplete bool `json:"discovery_complete"`

	// SelectedMentor is the persona ID of the currently selected mentor,
	// empty when no mentor has been selected yet.
	SelectedMentor string `json:"selected_mentor"`

	// UserSituation accumulates the user's own words across turns and is
	// fed to mentor prompts as background.
	UserSituation string `json:"user_situation"`
}

// NewConversationState creates the initial state for a user: routing mode,
// discovery not yet complete, no mentor selected.
func NewConversationState(userID string) *ConversationState {
	return &ConversationState{
		UserID:       userID,
		Messages:     []Message{},
		CurrentAgent: AgentRouter,
	}
}

// Clone returns a deep copy. The orchestrator mutates a clone during a turn
// so a failed turn leaves the stored state untouched.
func (s *ConversationState) Clone() *ConversationState {
	clone := *s
	clone.Messages = make([]Message, len(s.Messages))
	copy(clone.Messages, s.Messages)
	return &clone
}

// AppendMessage appends a message to the conversation.
func (s *ConversationState) AppendMessage(m Message) {
	s.Messages = append(s.Messages, m)
}

// RecentMessages returns up to the last n messages in order.
func (s *ConversationState) RecentMessages(n int) []Message {
	if n <= 0 || len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// LastAssistant returns the most recent assistant message, or nil.
func (s *ConversationState) LastAssistant() *Message {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return &s.Messages[i]
		}
	}
	return nil
}
