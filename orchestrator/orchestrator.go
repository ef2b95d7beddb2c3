// Package orchestrator runs the council conversation loop: it routes each
// user turn to a discovery question or a mentor persona, grounds mentor
// prompts in retrieved journal entries, and persists conversation state
// only after the full turn succeeds.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/zenapp/council/convstore"
	"github.com/zenapp/council/core"
	"github.com/zenapp/council/llm"
	"github.com/zenapp/council/memory"
	"github.com/zenapp/council/mentors"
)

// Config holds orchestrator tuning knobs.
type Config struct {
	// Model and generation parameters passed through to the generator.
	Model       string
	MaxTokens   int64
	Temperature float64

	// HistoryWindow caps how many recent messages are sent to the model.
	// Default: 10
	HistoryWindow int

	// DiscoveryThreshold is the rune length below which a conversation
	// opener is treated as too thin to route and triggers a clarifying
	// question instead. Default: 20
	DiscoveryThreshold int

	// ContinuityMargin is how far the current mentor's keyword score may
	// trail the top score before the conversation switches mentors.
	// Default: 1
	ContinuityMargin int

	// RetryBackoff is the pause before the single generation retry.
	// Default: 500ms
	RetryBackoff time.Duration
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	MaxTokens:          1024,
	Temperature:        0.7,
	HistoryWindow:      10,
	DiscoveryThreshold: 20,
	ContinuityMargin:   1,
	RetryBackoff:       500 * time.Millisecond,
}

// Orchestrator coordinates routing, discovery, retrieval, and generation
// for every user turn. Turns for the same user are serialized; turns for
// different users run concurrently.
type Orchestrator struct {
	generator llm.Generator
	registry  *mentors.Registry
	states    convstore.Store
	retriever *memory.Retriever // Optional: journal grounding
	config    *Config

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithRetriever enables journal grounding for mentor responses.
func WithRetriever(r *memory.Retriever) Option {
	return func(o *Orchestrator) {
		o.retriever = r
	}
}

// WithConfig overrides the default configuration. Zero-valued fields fall
// back to their defaults.
func WithConfig(cfg *Config) Option {
	return func(o *Orchestrator) {
		o.config = cfg
	}
}

// New creates an orchestrator over a generator, mentor registry, and
// conversation store.
func New(generator llm.Generator, registry *mentors.Registry, states convstore.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		generator: generator,
		registry:  registry,
		states:    states,
		config:    DefaultConfig,
		userLocks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.config = fillDefaults(o.config)
	return o
}

func fillDefaults(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig
	}
	out := *cfg
	if out.MaxTokens == 0 {
		out.MaxTokens = DefaultConfig.MaxTokens
	}
	if out.HistoryWindow == 0 {
		out.HistoryWindow = DefaultConfig.HistoryWindow
	}
	if out.DiscoveryThreshold == 0 {
		out.DiscoveryThreshold = DefaultConfig.DiscoveryThreshold
	}
	if out.RetryBackoff == 0 {
		out.RetryBackoff = DefaultConfig.RetryBackoff
	}
	return &out
}

// TurnResult is the outcome of a successful turn.
type TurnResult struct {
	// Message is the assistant message appended to the conversation.
	Message core.Message

	// Agent labels who responded: "discovery" or "mentor:<persona_id>".
	Agent string
}

// HandleTurn processes one user message: it loads (or creates) the user's
// conversation, decides between a discovery question and a mentor response,
// generates the reply, and persists the updated state. On any failure the
// stored state is left exactly as it was.
func (o *Orchestrator) HandleTurn(ctx context.Context, userID, text string) (*TurnResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: user %s", core.ErrEmptyMessage, userID)
	}

	lock := o.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	state, err := o.states.Get(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		state = core.NewConversationState(userID)
	}

	// Mutate a clone; commit through Put only after the turn succeeds.
	next := state.Clone()
	firstMessage := len(next.Messages) == 0
	next.AppendMessage(core.NewUserMessage(trimmed))
	if next.UserSituation == "" {
		next.UserSituation = trimmed
	} else {
		next.UserSituation = next.UserSituation + "\n" + trimmed
	}

	if !next.DiscoveryComplete {
		if next.CurrentAgent == core.AgentDiscovery {
			// The user answered the clarifying question; from here on the
			// conversation routes normally.
			next.DiscoveryComplete = true
		} else if firstMessage && utf8.RuneCountInString(trimmed) < o.config.DiscoveryThreshold {
			return o.discoveryTurn(ctx, userID, next)
		} else {
			// A substantial opener carries enough signal to route on; skip
			// discovery for good.
			next.DiscoveryComplete = true
		}
	}

	return o.mentorTurn(ctx, userID, trimmed, next)
}

// discoveryTurn asks a single clarifying question. DiscoveryComplete stays
// false so the user's answer is recognized as the discovery follow-up.
func (o *Orchestrator) discoveryTurn(ctx context.Context, userID string, next *core.ConversationState) (*TurnResult, error) {
	log.Printf("[ORCHESTRATOR] Discovery turn for user %s", userID)

	reply, err := o.generateWithRetry(ctx, discoverySystemPrompt, next.RecentMessages(o.config.HistoryWindow))
	if err != nil {
		return nil, err
	}

	msg := core.NewAssistantMessage(reply, core.AgentDiscovery, "")
	next.AppendMessage(msg)
	next.CurrentAgent = core.AgentDiscovery

	if err := o.states.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return &TurnResult{Message: msg, Agent: string(core.AgentDiscovery)}, nil
}

// mentorTurn selects a persona, grounds it in the user's journal, and
// generates the mentor response.
func (o *Orchestrator) mentorTurn(ctx context.Context, userID, text string, next *core.ConversationState) (*TurnResult, error) {
	persona, score := o.registry.Select(text, next.SelectedMentor, o.config.ContinuityMargin)
	log.Printf("[ORCHESTRATOR] Routing user %s to mentor %s (score %d)", userID, persona.ID, score)

	if o.retriever != nil {
		if grounding := o.retriever.BuildContext(ctx, userID, text); grounding != "" {
			next.Context = grounding
		}
	}

	system := buildMentorSystem(persona, next.Context, next.UserSituation)
	reply, err := o.generateWithRetry(ctx, system, next.RecentMessages(o.config.HistoryWindow))
	if err != nil {
		return nil, err
	}

	msg := core.NewAssistantMessage(reply, core.AgentMentor, persona.ID)
	next.AppendMessage(msg)
	next.CurrentAgent = core.AgentMentor
	next.SelectedMentor = persona.ID

	if err := o.states.Put(ctx, userID, next); err != nil {
		return nil, err
	}
	return &TurnResult{Message: msg, Agent: string(core.AgentMentor) + ":" + persona.ID}, nil
}

// generateWithRetry calls the generator, retrying once after a short
// backoff. Context cancellation aborts the retry.
func (o *Orchestrator) generateWithRetry(ctx context.Context, system string, history []core.Message) (string, error) {
	opts := llm.Options{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
	}

	reply, err := o.generator.Generate(ctx, system, history, opts)
	if err == nil {
		return reply, nil
	}
	log.Printf("[ORCHESTRATOR] Generation failed, retrying once: %v", err)

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", core.ErrGeneration, ctx.Err())
	case <-time.After(o.config.RetryBackoff):
	}

	reply, err = o.generator.Generate(ctx, system, history, opts)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// ResetConversation deletes a user's conversation state. Resetting a user
// with no conversation is not an error.
func (o *Orchestrator) ResetConversation(ctx context.Context, userID string) error {
	lock := o.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := o.states.Delete(ctx, userID); err != nil {
		return err
	}
	log.Printf("[ORCHESTRATOR] Reset conversation for user %s", userID)
	return nil
}

// State returns a copy of a user's current conversation state.
func (o *Orchestrator) State(ctx context.Context, userID string) (*core.ConversationState, error) {
	return o.states.Get(ctx, userID)
}

// lockFor returns the per-user turn lock, creating it on first use.
func (o *Orchestrator) lockFor(userID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		o.userLocks[userID] = lock
	}
	return lock
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrStateNotFound)
}
