package core

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AgentType identifies which node of the council produced a response.
type AgentType string

const (
	// AgentRouter is the initial state: the next turn will be classified
	// against the mentor catalog.
	AgentRouter AgentType = "router"

	// AgentDiscovery indicates the last response was a clarifying question.
	AgentDiscovery AgentType = "discovery"

	// AgentMentor indicates the last response came from a selected mentor.
	AgentMentor AgentType = "mentor"
)

// Message is a single entry in a conversation. Messages are append-only:
// a successful turn adds exactly one user and one assistant message.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// Agent is set on assistant messages only ("discovery" or "mentor").
	Agent string `json:"agent,omitempty"`

	// Persona is the mentor persona ID for mentor responses.
	Persona string `json:"persona,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates a user message with a fresh ID.
func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// NewAssistantMessage creates an assistant message tagged with the agent
// that produced it and, for mentor responses, the persona ID.
func NewAssistantMessage(content string, agent AgentType, persona string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Content:   content,
		Agent:     string(agent),
		Persona:   persona,
		CreatedAt: time.Now().UTC(),
	}
}
