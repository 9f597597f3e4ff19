package fs

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/smartymode/folio/pkg/core"
)

// DefaultWatchPattern matches every document the file sources can read.
const DefaultWatchPattern = "**/*.{md,mdx}"

// WatchOptions configures Watch.
type WatchOptions struct {
	Pattern  string        // doublestar pattern relative to each root
	Debounce time.Duration // quiet period before a batch is flushed
	Logger   *slog.Logger
}

// Watch observes the given content roots and emits one event per changed
// document once the tree has been quiet for the debounce period.
// Missing roots are skipped. The returned channel is closed when ctx ends.
func Watch(ctx context.Context, roots []string, opts WatchOptions) (<-chan core.Event, error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultWatchPattern
	}
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", opts.Pattern)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	var active []string
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			opts.Logger.Debug("watch root missing, skipping", "root", root)
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		if err := addRecursive(watcher, abs); err != nil {
			_ = watcher.Close()
			return nil, err
		}
		active = append(active, abs)
	}

	w := &treeWatcher{
		watcher: watcher,
		roots:   active,
		opts:    opts,
		out:     make(chan core.Event),
		pending: make(map[string]core.Event),
	}
	go w.run(ctx)
	return w.out, nil
}

type treeWatcher struct {
	watcher *fsnotify.Watcher
	roots   []string
	opts    WatchOptions
	out     chan core.Event
	pending map[string]core.Event
}

func (w *treeWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer w.watcher.Close()

	var timer *time.Timer
	var flush <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.handle(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Stop()
				timer.Reset(w.opts.Debounce)
			}
			flush = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.opts.Logger.Error("fsnotify error", "error", err)

		case <-flush:
			flush = nil
			if !w.emit(ctx) {
				return
			}
		}
	}
}

// handle filters and records a raw event. It reports whether something was queued.
func (w *treeWatcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(w.watcher, event.Name); err != nil {
				w.opts.Logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return false
		}
	}

	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	rel, ok := w.relative(event.Name)
	if !ok {
		return false
	}
	if match, err := doublestar.Match(w.opts.Pattern, rel); err != nil || !match {
		return false
	}

	w.opts.Logger.Debug("content changed", "path", rel, "type", string(eType))
	w.pending[rel] = core.Event{Type: eType, Path: rel, Timestamp: time.Now().Unix()}
	return true
}

// emit flushes pending events in path order. It returns false if ctx ended mid-flush.
func (w *treeWatcher) emit(ctx context.Context) bool {
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		select {
		case w.out <- w.pending[p]:
			delete(w.pending, p)
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func (w *treeWatcher) relative(path string) (string, bool) {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
