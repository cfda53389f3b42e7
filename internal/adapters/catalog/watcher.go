package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher triggers a callback when any of a set of files changes.
//
// Parent directories are watched rather than the files themselves so that
// editors and deploy tools that replace files via rename are still noticed.
// Bursts of events within the debounce window produce a single callback.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
}

func NewFileWatcher(paths []string, debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("file watcher: create: %w", err)
	}

	fw := &FileWatcher{
		watcher:  w,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
	}

	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("file watcher: resolve %q: %w", p, err)
		}
		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("file watcher: watch %q: %w", dir, err)
		}
	}

	return fw, nil
}

// Run delivers change notifications to onChange until ctx is done.
// The watcher is closed when Run returns.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(context.Context)) error {
	defer fw.watcher.Close()

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			onChange(ctx)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	_, ok := fw.files[filepath.Clean(ev.Name)]
	return ok
}
