// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.FileWatcher.
package filewatcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/ports"
)

// FSNotifyWatcher follows one knowledge file through fsnotify.
//
// The parent directory is watched rather than the file itself, so the watch
// survives editors that save by writing a temp file and renaming it over the
// original. That save shows up as a create event for the knowledge file.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
}

// NewFSNotifyWatcher creates a new file watcher.
func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{watcher: w}, nil
}

// Watch emits created, modified and deleted events for path. Events for
// other files in the same directory are dropped.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileEvent, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := w.watcher.Add(filepath.Dir(target)); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)
	go w.forward(ctx, target, events)
	return events, nil
}

func (w *FSNotifyWatcher) forward(ctx context.Context, target string, events chan<- ports.FileEvent) {
	defer close(events)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op, relevant := classify(event, target)
			if !relevant {
				continue
			}
			select {
			case events <- ports.FileEvent{Path: event.Name, Operation: op}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			klog.Errorf("watching %s: %v", target, err)
		}
	}
}

// classify maps an fsnotify event on target to a FileOperation. Chmod and
// events on other paths are not relevant. A rename moves the file away, so
// it counts as a delete.
func classify(event fsnotify.Event, target string) (ports.FileOperation, bool) {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return 0, false
	}
	switch {
	case event.Has(fsnotify.Create):
		return ports.FileCreated, true
	case event.Has(fsnotify.Write):
		return ports.FileModified, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return ports.FileDeleted, true
	}
	return 0, false
}

// Stop stops the watcher and closes every channel returned by Watch.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}
