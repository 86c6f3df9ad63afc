// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/matching"
	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/ports"
)

// QueryUseCase answers questions from the current knowledge base.
// Single Responsibility: Only query/response logic.
type QueryUseCase struct {
	store    ports.KnowledgeStore
	recorder ports.MatchRecorder
}

// NewQueryUseCase creates a QueryUseCase with injected dependencies.
// recorder may be nil.
func NewQueryUseCase(store ports.KnowledgeStore, recorder ports.MatchRecorder) *QueryUseCase {
	return &QueryUseCase{
		store:    store,
		recorder: recorder,
	}
}

// Match selects the best answer for a raw query. The knowledge base snapshot
// is read once, so a concurrent reload never mixes two bases in one call.
func (uc *QueryUseCase) Match(query string) entities.MatchOutcome {
	start := time.Now()
	outcome := matching.Select(uc.store.Current(), query)
	if uc.recorder != nil {
		uc.recorder.RecordMatch(outcome, time.Since(start))
	}
	return outcome
}

// Query answers a chat request. Matching itself never fails; the only error
// is a context that is already done.
func (uc *QueryUseCase) Query(ctx context.Context, req *entities.ChatRequest) (*entities.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := uc.Match(req.Query)
	return &entities.ChatResponse{
		ID:       uuid.NewString(),
		Answer:   outcome.Answer,
		Topic:    outcome.Topic,
		Fallback: outcome.Fallback,
	}, nil
}

// Explain lists every scoring proposal for a query against the current base.
func (uc *QueryUseCase) Explain(query string) []matching.Proposal {
	return matching.Explain(uc.store.Current(), query)
}

// KnowledgeBase returns the snapshot currently used for matching.
func (uc *QueryUseCase) KnowledgeBase() *entities.KnowledgeBase {
	return uc.store.Current()
}
