package orchestrator

import (
	"strings"

	"github.com/zenapp/council/mentors"
)

// discoverySystemPrompt drives the single clarifying exchange for openers
// too thin to route on.
const discoverySystemPrompt = `You are the welcoming voice of a council of mentors. The user has just arrived and hasn't shared much yet.

Ask ONE warm, open-ended question that invites them to share what's on their mind or what they're going through. Keep it short (one or two sentences), genuine, and free of jargon. Do not list options, do not mention mentors or routing, and do not answer a question they haven't asked.`

// buildMentorSystem assembles the system prompt for a mentor response:
// the persona's voice, then the user's accumulated situation, then any
// retrieved journal grounding.
func buildMentorSystem(persona mentors.Persona, grounding, situation string) string {
	var b strings.Builder
	b.WriteString(persona.SystemPrompt)

	if situation != "" {
		b.WriteString("\n\nWhat the user has shared so far:\n")
		b.WriteString(situation)
	}

	if grounding != "" {
		b.WriteString("\n\nRelevant entries from the user's journal. Draw on these when they apply, but never quote them back verbatim or reveal that you are reading a journal:\n")
		b.WriteString(grounding)
	}

	b.WriteString("\n\nRespond in your own voice, grounded in the conversation. Be concrete and warm; avoid generic advice.")
	return b.String()
}
