package ingest

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"benchscope/internal/util/logx"
)

// Watch reports changes to local source files. Parent directories are
// watched rather than the files themselves so editors that replace a file
// by rename are still seen. Bursts of events within debounce collapse into
// one notification carrying the last changed path. The channel closes when
// ctx is done.
func Watch(ctx context.Context, paths []string, debounce time.Duration) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		if !IsLocal(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			logx.Warnf("watch: cannot watch %s: %v", d, err)
		}
	}
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer w.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		pending := ""
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(ev.Name)] {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				logx.Debugf("watch: %s %s", ev.Op, ev.Name)
				pending = filepath.Clean(ev.Name)
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case out <- pending:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logx.Warnf("watch: %v", err)
			}
		}
	}()
	return out, nil
}
