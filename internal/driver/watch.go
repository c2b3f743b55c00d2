package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"cci/internal/trace"
)

// DefaultDebounce is how long a burst of writes must settle before re-lexing.
const DefaultDebounce = 100 * time.Millisecond

// ResultFunc receives each (re)tokenized file. err is non-nil when the file
// could not be loaded (e.g. deleted between the event and the read).
type ResultFunc func(path string, res *TokenizeResult, err error)

// Watcher re-tokenizes C sources when they change on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	opts     Options
	onResult ResultFunc
	files    map[string]bool // явно переданные файлы
	roots    []string        // каталоги, отслеживаемые рекурсивно
	Debounce time.Duration
}

// NewWatcher subscribes to paths: a file is watched on its own, a directory
// with all its subdirectories (hidden ones skipped).
func NewWatcher(paths []string, opts Options, fn ResultFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		opts:     opts,
		onResult: fn,
		files:    make(map[string]bool),
		Debounce: DefaultDebounce,
	}
	for _, p := range paths {
		p = filepath.Clean(p)
		st, err := os.Stat(p)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		if st.IsDir() {
			w.roots = append(w.roots, p)
			err = w.watchDirRecursive(p)
		} else {
			// fsnotify следит за каталогом: редакторы пишут через rename
			w.files[p] = true
			err = fsw.Add(filepath.Dir(p))
		}
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
	}
	return w, nil
}

// Close releases the underlying OS watches.
func (w *Watcher) Close() error { return w.fsw.Close() }

// watchDirRecursive adds a directory and its subdirectories to the watch list
func (w *Watcher) watchDirRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // каталог исчез во время обхода
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// wants reports whether a change to path should trigger a re-lex.
func (w *Watcher) wants(path string) bool {
	path = filepath.Clean(path)
	if w.files[path] {
		return true
	}
	if !IsSourceFile(path) {
		return false
	}
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// initial lists the files tokenized before any event arrives.
func (w *Watcher) initial() ([]string, error) {
	var out []string
	for p := range w.files {
		out = append(out, p)
	}
	for _, root := range w.roots {
		files, err := ListSourceFiles(root)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	sort.Strings(out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, path string) {
	res, err := Tokenize(ctx, path, w.opts)
	if w.onResult != nil {
		w.onResult(path, res, err)
	}
}

// Run tokenizes every watched file once, then again after each settled change,
// until ctx is cancelled. Cancellation is not an error.
func (w *Watcher) Run(ctx context.Context) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "watch", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files, err := w.initial()
	if err != nil {
		return err
	}
	for _, p := range files {
		w.run(ctx, p)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && len(w.roots) > 0 {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() && w.wantsDir(ev.Name) {
					if err := w.watchDirRecursive(ev.Name); err != nil {
						trace.Point(tracer, trace.ScopeDriver, "watch-error", err.Error(), span.ID())
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.wants(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			clear(pending)
			sort.Strings(batch)
			for _, p := range batch {
				w.run(ctx, p)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			// переполнение очереди и т.п. не фатально
			trace.Point(tracer, trace.ScopeDriver, "watch-error", err.Error(), span.ID())
		}
	}
}

func (w *Watcher) wantsDir(dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return false
	}
	for _, root := range w.roots {
		if rel, err := filepath.Rel(root, dir); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// Watch is NewWatcher + Run + Close.
func Watch(ctx context.Context, paths []string, opts Options, fn ResultFunc) error {
	w, err := NewWatcher(paths, opts, fn)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.Run(ctx)
}
