// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoEntries is returned when a knowledge base is built from nothing.
	ErrNoEntries = errors.New("knowledge base has no entries")
	// ErrNoKeywords is returned for an entry without trigger phrases.
	ErrNoKeywords = errors.New("entry has no keywords")
	// ErrEmptyKeyword is returned for a phrase that is blank after trimming.
	ErrEmptyKeyword = errors.New("keyword is empty")
	// ErrEmptyAnswer is returned for an entry without an answer.
	ErrEmptyAnswer = errors.New("entry has no answer")
)

// KnowledgeEntry pairs trigger phrases with one canned answer.
// Topic is a label for reporting only and never takes part in matching.
type KnowledgeEntry struct {
	Topic    string
	Keywords []string
	Answer   string
}

// KnowledgeBase is an ordered, immutable list of entries plus the fallback
// answer. Declaration order decides score ties: earlier entries win.
type KnowledgeBase struct {
	entries  []KnowledgeEntry
	fallback string
}

// NewKnowledgeBase validates and copies entries into a new base.
// Keywords are trimmed and lowercased.
func NewKnowledgeBase(entries []KnowledgeEntry, fallback string) (*KnowledgeBase, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	if strings.TrimSpace(fallback) == "" {
		return nil, fmt.Errorf("fallback: %w", ErrEmptyAnswer)
	}

	copied := make([]KnowledgeEntry, len(entries))
	for i, e := range entries {
		if len(e.Keywords) == 0 {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNoKeywords)
		}
		if strings.TrimSpace(e.Answer) == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyAnswer)
		}

		keywords := make([]string, len(e.Keywords))
		for j, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("entry %d keyword %d: %w", i, j, ErrEmptyKeyword)
			}
			keywords[j] = kw
		}

		copied[i] = KnowledgeEntry{
			Topic:    strings.TrimSpace(e.Topic),
			Keywords: keywords,
			Answer:   e.Answer,
		}
	}

	return &KnowledgeBase{entries: copied, fallback: fallback}, nil
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	return len(kb.entries)
}

// Entry returns a copy of the entry at index i.
func (kb *KnowledgeBase) Entry(i int) KnowledgeEntry {
	e := kb.entries[i]
	e.Keywords = append([]string(nil), e.Keywords...)
	return e
}

// Each calls fn for every entry in declaration order until fn returns false.
// The entry passed to fn shares storage with the base and must not be modified.
func (kb *KnowledgeBase) Each(fn func(index int, entry KnowledgeEntry) bool) {
	for i, e := range kb.entries {
		if !fn(i, e) {
			return
		}
	}
}

// Fallback returns the answer used when nothing matches.
func (kb *KnowledgeBase) Fallback() string {
	return kb.fallback
}

// MatchOutcome is the result of one query against a knowledge base.
type MatchOutcome struct {
	Answer   string
	Score    float64
	Entry    int // Index of the winning entry, -1 on fallback
	Topic    string
	Fallback bool
}

// ChatRequest represents a single question from the user.
type ChatRequest struct {
	Query string
}

// ChatResponse represents the answer sent back for a ChatRequest.
type ChatResponse struct {
	ID       string
	Answer   string
	Topic    string
	Fallback bool
}
