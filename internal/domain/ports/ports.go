// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"
	"time"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
)

// KnowledgeSource produces a complete knowledge base.
type KnowledgeSource interface {
	// Load builds a fresh, validated knowledge base.
	Load(ctx context.Context) (*entities.KnowledgeBase, error)

	// Name describes where the knowledge comes from (file path or "builtin").
	Name() string
}

// KnowledgeStore holds the knowledge base currently used for matching.
// Snapshots are immutable; Replace swaps the whole snapshot.
type KnowledgeStore interface {
	Current() *entities.KnowledgeBase
	Replace(kb *entities.KnowledgeBase)
}

// MatchRecorder observes match outcomes (metrics, logging).
type MatchRecorder interface {
	RecordMatch(outcome entities.MatchOutcome, elapsed time.Duration)
}

// FileWatcher monitors a single file for changes.
type FileWatcher interface {
	// Watch emits events for path only. The channel closes when ctx is done
	// or the watcher stops.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
