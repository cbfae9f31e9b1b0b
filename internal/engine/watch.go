package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-tokenizes each of paths whenever it is written and passes the
// new result to onResult. Calls to onResult are serialized. Watch blocks
// until ctx is cancelled, and no call to onResult starts or is still
// running once it has returned.
func (e *Engine) Watch(ctx context.Context, paths []string, debounce time.Duration, onResult func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories: editors often replace a file on save,
	// which drops a watch placed on the file itself.
	targets := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		targets[abs] = path
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var (
		mu       sync.Mutex // serializes onResult
		inflight sync.WaitGroup
		timers   = make(map[string]*time.Timer)
	)
	defer func() {
		for _, t := range timers {
			if t.Stop() {
				inflight.Done()
			}
		}
		inflight.Wait()
	}()

	rescan := func(path string) {
		defer inflight.Done()
		if ctx.Err() != nil {
			return
		}
		res, err := e.ScanFile(path)
		if err != nil {
			e.logger.Warn("rescan failed", "input", path, "error", err)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onResult(res)
	}

	e.logger.Debug("watching inputs", "count", len(targets))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only handle write/create events for watched files
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			path, ok := targets[abs]
			if !ok {
				continue
			}

			// Debounce rescans per file
			if t, ok := timers[abs]; ok && t.Stop() {
				inflight.Done()
			}
			inflight.Add(1)
			timers[abs] = time.AfterFunc(debounce, func() { rescan(path) })

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}
