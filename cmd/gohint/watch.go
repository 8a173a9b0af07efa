package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// watch re-checks files as they change until ctx is cancelled. Directories
// are watched rather than files so that atomic saves (write to a temp file,
// rename over the original) are still seen.
func (r *checkRun) watch(ctx context.Context, files []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		if f == "-" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}
	r.log.Info("watching for changes", slog.Int("files", len(watched)))

	pending := map[string]bool{}
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for _, f := range files {
				abs, _ := filepath.Abs(f)
				for p := range pending {
					if pa, _ := filepath.Abs(p); pa == abs {
						changed = append(changed, f)
						break
					}
				}
			}
			clear(pending)
			if len(changed) == 0 {
				continue
			}
			if _, err := r.checkAll(ctx, changed); err != nil {
				return err
			}
		}
	}
}
