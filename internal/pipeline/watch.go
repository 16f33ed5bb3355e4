package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/reoring/goswitch/internal/config"
)

// Watch runs the generator once and then again whenever a Go source file in
// a configured package or a schema file changes. Bursts of events within the
// debounce window trigger a single run. Watch returns when ctx is done.
func Watch(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	g := New(cfg, logger)
	w, err := newWatcher(cfg, g.Suffix)
	if err != nil {
		return err
	}
	defer w.Close()

	runOnce := func() {
		if _, err := g.Run(ctx); err != nil && ctx.Err() == nil {
			g.Logger.Warn("run finished with errors", zap.Error(err))
		}
	}
	runOnce()
	return w.loop(ctx, cfg.Watch.Debounce, g.Logger, runOnce)
}

type watcher struct {
	fs      *fsnotify.Watcher
	schemas map[string]bool
	suffix  string
}

func newWatcher(cfg *config.Config, suffix string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &watcher{fs: fw, schemas: map[string]bool{}, suffix: suffix}
	dirs := map[string]bool{}
	for _, p := range cfg.Packages {
		dirs[filepath.Clean(p.Dir)] = true
	}
	// Schema files are watched through their directory.
	for _, s := range cfg.Schemas {
		w.schemas[filepath.Clean(s)] = true
		dirs[filepath.Dir(filepath.Clean(s))] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}
	return w, nil
}

func (w *watcher) Close() error { return w.fs.Close() }

// relevant reports whether a change of name should trigger a run. Generated
// and test files never do.
func (w *watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if w.schemas[name] {
		return true
	}
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, w.suffix) &&
		!strings.HasSuffix(name, "_test.go")
}

func (w *watcher) loop(ctx context.Context, debounce time.Duration, logger *zap.Logger, run func()) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("source changed",
				zap.String("event", event.Op.String()),
				zap.String("file", event.Name))
			timer.Reset(debounce)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", zap.Error(err))
		case <-timer.C:
			run()
		}
	}
}
