package usecases

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/ports"
)

// ReloadUseCase replaces the knowledge base from its source.
// A failed load keeps the previous snapshot in place.
type ReloadUseCase struct {
	source ports.KnowledgeSource
	store  ports.KnowledgeStore
}

// NewReloadUseCase creates a ReloadUseCase with injected dependencies.
func NewReloadUseCase(source ports.KnowledgeSource, store ports.KnowledgeStore) *ReloadUseCase {
	return &ReloadUseCase{
		source: source,
		store:  store,
	}
}

// Reload loads a fresh knowledge base and swaps it in.
func (uc *ReloadUseCase) Reload(ctx context.Context) error {
	kb, err := uc.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading knowledge from %s: %w", uc.source.Name(), err)
	}

	uc.store.Replace(kb)
	klog.Infof("knowledge base loaded from %s: %d entries", uc.source.Name(), kb.Len())
	return nil
}

// Watch reloads whenever the file at path is created or modified.
// It blocks until ctx is done or the watcher closes its channel.
func (uc *ReloadUseCase) Watch(ctx context.Context, watcher ports.FileWatcher, path string) error {
	events, err := watcher.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}

			klog.V(2).Infof("knowledge file %s %s", event.Path, event.Operation)
			if event.Operation == ports.FileDeleted {
				klog.Warningf("knowledge file %s removed, keeping current entries", event.Path)
				continue
			}

			if err := uc.Reload(ctx); err != nil {
				klog.Errorf("reload failed, keeping current entries: %v", err)
			}
		}
	}
}
