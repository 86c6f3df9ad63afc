// Package matching selects the best canned answer for a free-text query.
// It is pure: no I/O, no shared mutable state, safe for concurrent use.
package matching

import (
	"strings"
	"unicode/utf8"
)

// Heuristic identifies which scoring rule produced a candidate.
type Heuristic int

const (
	// Containment fires when query and phrase contain one another.
	Containment Heuristic = iota
	// WordOverlap fires when at least one query word overlaps a phrase word.
	WordOverlap
)

func (h Heuristic) String() string {
	switch h {
	case Containment:
		return "containment"
	case WordOverlap:
		return "word-overlap"
	default:
		return "unknown"
	}
}

// Candidate is one score proposed for a (query, phrase) pair.
type Candidate struct {
	Heuristic Heuristic
	Score     float64
}

// Normalize lowercases and trims a raw query. Punctuation is kept.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Score evaluates both heuristics for a normalized query and a lowercase
// phrase and returns zero, one or two candidates. Candidates are not combined.
func Score(query, phrase string) []Candidate {
	if query == "" || phrase == "" {
		return nil
	}

	var candidates []Candidate
	length := float64(utf8.RuneCountInString(phrase))

	if strings.Contains(phrase, query) || strings.Contains(query, phrase) {
		candidates = append(candidates, Candidate{Heuristic: Containment, Score: length})
	}

	queryWords := strings.Fields(query)
	if overlap := countOverlap(queryWords, strings.Fields(phrase)); overlap > 0 {
		ratio := float64(overlap) / float64(max(len(queryWords), 1))
		candidates = append(candidates, Candidate{Heuristic: WordOverlap, Score: ratio * length})
	}

	return candidates
}

// countOverlap counts query words that are a substring of, or contain, some
// phrase word. Each query word counts at most once.
func countOverlap(queryWords, phraseWords []string) int {
	overlap := 0
	for _, w := range queryWords {
		for _, kw := range phraseWords {
			if strings.Contains(kw, w) || strings.Contains(w, kw) {
				overlap++
				break
			}
		}
	}
	return overlap
}
