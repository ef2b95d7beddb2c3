package mentors

import (
	"log"
	"strings"
)

// Registry holds the persona catalog and scores free text against it.
// The classifier is pure and synchronous: no network calls, deterministic
// for identical input.
type Registry struct {
	personas []Persona
	byID     map[string]int
}

// NewRegistry creates a registry over the fixed catalog.
func NewRegistry() *Registry {
	personas := Catalog()
	byID := make(map[string]int, len(personas))
	for i, p := range personas {
		byID[p.ID] = i
	}
	return &Registry{personas: personas, byID: byID}
}

// Get returns the persona with the given ID.
func (r *Registry) Get(id string) (Persona, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Persona{}, false
	}
	return r.personas[i], true
}

// Default returns the fallback persona.
func (r *Registry) Default() Persona {
	p, _ := r.Get(DefaultPersonaID)
	return p
}

// Personas returns the catalog in classification order.
func (r *Registry) Personas() []Persona {
	return r.personas
}

// Score is one persona's match count for a piece of text.
type Score struct {
	Persona Persona
	Matches int
}

// Classify scores text against every persona. The score is the total count
// of case-insensitive substring occurrences of the persona's keywords, with
// no normalization by keyword-set size. Results are in catalog order.
func (r *Registry) Classify(text string) []Score {
	lower := strings.ToLower(text)
	scores := make([]Score, len(r.personas))
	for i, p := range r.personas {
		total := 0
		for _, kw := range p.Keywords {
			total += strings.Count(lower, kw)
		}
		scores[i] = Score{Persona: p, Matches: total}
	}
	return scores
}

// Select classifies text and picks a persona, applying continuity bias and
// the default fallback:
//
//   - the persona with the highest score wins; ties go to the lower catalog
//     index so selection is deterministic
//   - if previousID is set and its score is within margin of the top score,
//     the previous persona is retained
//   - if nothing matched at all and no mentor was previously selected, the
//     default persona is chosen
//
// Returns the selected persona and its score.
func (r *Registry) Select(text string, previousID string, margin int) (Persona, int) {
	scores := r.Classify(text)

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Matches > best.Matches {
			best = s
		}
	}

	if previousID != "" {
		if i, ok := r.byID[previousID]; ok {
			prev := scores[i]
			if best.Matches-prev.Matches <= margin {
				log.Printf("[MENTORS] Retaining %s (score %d, top %d within margin %d)",
					prev.Persona.ID, prev.Matches, best.Matches, margin)
				return prev.Persona, prev.Matches
			}
		}
	}

	if best.Matches == 0 {
		log.Printf("[MENTORS] No keywords matched, falling back to %s", DefaultPersonaID)
		return r.Default(), 0
	}

	log.Printf("[MENTORS] Selected %s (score %d)", best.Persona.ID, best.Matches)
	return best.Persona, best.Matches
}
