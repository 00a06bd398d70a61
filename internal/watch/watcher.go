// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

// DefaultDebounce is used when Config.Debounce is zero or negative.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")

	// contentPatterns match lesson directories and their data files,
	// relative to the content root.
	contentPatterns = []string{
		"*",
		"*/" + lesson.LessonFileName,
		"*/" + lesson.TrainingFileName,
	}

	// defaultIgnores cover hidden entries and editor scratch files.
	defaultIgnores = []string{
		".*",
		"**/.*",
		"**/*.swp",
		"**/*~",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Root is the content root. Required.
		Root types.FilesystemPath

		// Patterns are doublestar globs relative to Root selecting the paths
		// that count as changes. Empty means ContentPatterns().
		Patterns []string

		// Ignore are extra doublestar globs merged with the built-in ignores.
		Ignore []string

		// Debounce is the quiet period after the last event before OnChange
		// fires.
		Debounce time.Duration

		// Logger receives watcher events. nil discards them.
		Logger *slog.Logger

		// OnChange is called once per debounce window. A nil callback is a
		// no-op.
		OnChange func(ctx context.Context, change Change) error
	}

	// Change is the coalesced set of paths that changed during one debounce
	// window.
	Change struct {
		// Lessons are the affected lesson IDs, sorted and deduplicated.
		Lessons []types.LessonID
		// Paths are the changed paths relative to the root, sorted.
		Paths []string
	}

	// Watcher monitors a content root and fires a debounced callback when a
	// lesson directory or data file changes. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		root     string
		patterns []string
		ignores  []string
		debounce time.Duration
		logger   *slog.Logger
		started  atomic.Bool
	}
)

// ContentPatterns returns a copy of the default watch patterns.
func ContentPatterns() []string {
	return slices.Clone(contentPatterns)
}

// New validates cfg, creates the fsnotify watcher, and registers the root and
// each lesson directory below it.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Root.Validate(); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	root, err := filepath.Abs(string(cfg.Root))
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = contentPatterns
	}
	if err := validatePatterns(patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		patterns: patterns,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		debounce: debounce,
		logger:   logger,
	}

	if err := w.addLessonDirs(); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return w, nil
}

// Run processes events until ctx is canceled. It returns nil on cancellation
// and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu       sync.Mutex
		pending  = make(map[string]struct{})
		timer    *time.Timer
		stopped  bool
		busy     atomic.Bool
		inflight sync.WaitGroup
	)

	// fire runs on the timer goroutine. A callback that outlives the debounce
	// window causes the next window to be rescheduled instead of overlapping.
	fire := func() {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		if !busy.CompareAndSwap(false, true) {
			w.logger.Debug("previous change handler still running, rescheduling")
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		if len(pending) == 0 {
			busy.Store(false)
			mu.Unlock()
			return
		}
		// registered under mu so the cleanup's Wait cannot miss it
		inflight.Add(1)
		change := newChange(slices.Collect(maps.Keys(pending)))
		clear(pending)
		mu.Unlock()

		defer func() {
			busy.Store(false)
			inflight.Done()
		}()

		w.logger.Info("content changed", "lessons", len(change.Lessons), "paths", len(change.Paths))
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, change); err != nil {
				w.logger.Error("change handler failed", "err", err)
			}
		}
	}

	// Run returns only after an in-flight callback has finished.
	defer func() {
		mu.Lock()
		stopped = true
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		inflight.Wait()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close watcher", "err", err)
		}
	}()

	w.logger.Info("watching content root", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed unexpectedly")
			}
			rel, err := filepath.Rel(w.root, evt.Name)
			if err != nil || !w.relevant(rel) {
				continue
			}

			if evt.Has(fsnotify.Create) && !strings.ContainsRune(filepath.ToSlash(rel), '/') {
				w.addDir(evt.Name)
			}

			w.logger.Debug("content event", "path", rel, "op", evt.Op.String())

			mu.Lock()
			pending[filepath.ToSlash(rel)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed unexpectedly")
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addLessonDirs registers the root and every non-ignored directory directly
// below it. Deeper levels never hold lesson data.
func (w *Watcher) addLessonDirs() error {
	if err := w.fsw.Add(w.root); err != nil {
		return fmt.Errorf("watch: add root %q: %w", w.root, err)
	}
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return fmt.Errorf("watch: read root %q: %w", w.root, err)
	}
	for _, e := range entries {
		if !e.IsDir() || w.isIgnored(e.Name()) {
			continue
		}
		if err := w.fsw.Add(filepath.Join(w.root, e.Name())); err != nil {
			return fmt.Errorf("watch: add lesson directory %q: %w", e.Name(), err)
		}
	}
	return nil
}

// addDir registers a lesson directory created after startup.
func (w *Watcher) addDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("add new lesson directory", "path", path, "err", err)
	}
}

// relevant reports whether a root-relative path matches a watch pattern and
// no ignore pattern.
func (w *Watcher) relevant(rel string) bool {
	normalized := filepath.ToSlash(rel)
	if normalized == "." || strings.HasPrefix(normalized, "../") {
		return false
	}
	return !w.isIgnored(normalized) && matchAny(w.patterns, normalized)
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, filepath.ToSlash(rel))
}

func matchAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, path); err == nil && matched {
			return true
		}
	}
	return false
}

// validatePatterns rejects malformed doublestar globs up front.
func validatePatterns(patterns []string, label string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("watch: invalid %s pattern %q: %w", label, pat, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// newChange groups changed paths by the lesson directory they belong to.
func newChange(paths []string) Change {
	slices.Sort(paths)
	ids := make([]types.LessonID, 0, len(paths))
	for _, p := range paths {
		id, _, _ := strings.Cut(p, "/")
		ids = append(ids, types.LessonID(id))
	}
	slices.Sort(ids)
	return Change{Lessons: slices.Compact(ids), Paths: paths}
}
