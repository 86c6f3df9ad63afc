package matching

import (
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
)

// Proposal is a candidate tied to the entry and phrase that produced it.
type Proposal struct {
	Candidate
	Entry  int
	Phrase string
}

// Select scans every phrase of every entry in declaration order and keeps
// the answer with the highest score. A later proposal replaces the current
// best only when strictly greater, so the earliest entry wins ties.
// When no proposal scores above zero the knowledge base fallback is returned.
func Select(kb *entities.KnowledgeBase, raw string) entities.MatchOutcome {
	query := Normalize(raw)

	best := entities.MatchOutcome{Entry: -1}
	kb.Each(func(i int, e entities.KnowledgeEntry) bool {
		for _, phrase := range e.Keywords {
			for _, c := range Score(query, phrase) {
				if c.Score > best.Score {
					best = entities.MatchOutcome{
						Answer: e.Answer,
						Score:  c.Score,
						Entry:  i,
						Topic:  e.Topic,
					}
				}
			}
		}
		return true
	})

	if best.Entry < 0 {
		return entities.MatchOutcome{
			Answer:   kb.Fallback(),
			Entry:    -1,
			Fallback: true,
		}
	}
	return best
}

// Match returns the best answer text for a raw query. It never fails and
// always returns a non-empty string.
func Match(kb *entities.KnowledgeBase, raw string) string {
	return Select(kb, raw).Answer
}

// Explain lists every valid proposal in scan order. It is a diagnostic and
// has no influence on Select.
func Explain(kb *entities.KnowledgeBase, raw string) []Proposal {
	query := Normalize(raw)

	var proposals []Proposal
	kb.Each(func(i int, e entities.KnowledgeEntry) bool {
		for _, phrase := range e.Keywords {
			for _, c := range Score(query, phrase) {
				proposals = append(proposals, Proposal{Candidate: c, Entry: i, Phrase: phrase})
			}
		}
		return true
	})
	return proposals
}
