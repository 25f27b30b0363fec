package crawler

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a LocalExtractor whenever files under its root change.
// Events are debounced so a burst of writes triggers one extraction.
type Watcher struct {
	extractor    *LocalExtractor
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	startOnce    sync.Once
	stopOnce     sync.Once
	started      bool
}

// NewWatcher creates a file watcher over the extractor's root directory.
func NewWatcher(extractor *LocalExtractor) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		extractor:    extractor,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(extractor.rootDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes. Calling it more than once has no
// effect. Start and Stop must come from the same goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		w.started = true
		go w.watch(ctx)
	})
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.started {
			<-w.doneCh
		}
		w.watcher.Close()
	})
}

// watch is the event loop with debouncing.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounce *time.Timer
	rerunCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounceTime, func() {
				select {
				case rerunCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)

		case <-rerunCh:
			stats, err := w.extractor.Run(ctx)
			if err != nil {
				log.Printf("Re-extraction failed: %v", err)
				continue
			}
			log.Printf("Re-extracted %d files, %d new samples", stats.FilesProcessed, stats.SamplesKept)
		}
	}
}

// relevant filters events down to matching files and new directories.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	// Newly created directories must join the watch set.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirectoriesRecursively(event.Name); err != nil {
				log.Printf("Warning: failed to watch %s: %v", event.Name, err)
			}
			return false
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.extractor.rootDir, event.Name)
	if err != nil {
		return false
	}
	return w.extractor.discovery.Matches(relPath)
}

// addDirectoriesRecursively watches dir and every directory below it.
func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}
