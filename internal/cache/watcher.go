package cache

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// WatchFile reports external edits of the cache file. The invite-link key is
// maintained by hand, so edits are logged (and counted by the caller) instead
// of silently coexisting with bot writes. The parent directory is watched, not
// the file, so temp+rename replace sequences are still observed; the store's
// own saves are filtered out so only foreign edits fire the callback. Events
// are debounced to coalesce write+chmod/rename bursts.
func (s *Store) WatchFile(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}

	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return errors.Wrap(err, "watch cache dir")
	}

	// Saves made before the watcher existed were never observed; start clean.
	s.mu.Lock()
	s.selfWrites = 0
	s.mu.Unlock()

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		schedule := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, onChange)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if s.consumeSelfWrite() {
					continue
				}
				schedule()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("cache watcher error: %v", err)
			}
		}
	}()

	return nil
}
