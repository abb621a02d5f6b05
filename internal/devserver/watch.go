package devserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits for events to settle.
const DefaultDebounce = 150 * time.Millisecond

// ErrWatch reports a failure to watch the source tree.
var ErrWatch = errors.New("failed to watch sources")

// Watcher reports changes below a directory tree. fsnotify watches single
// directories, so new directories are added as they appear.
type Watcher struct {
	root     string
	skip     func(path string) bool
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher watches root and every directory below it for which skip
// returns false. A nil skip watches everything.
func NewWatcher(root string, skip func(path string) bool, debounce time.Duration) (*Watcher, error) {
	if skip == nil {
		skip = func(string) bool { return false }
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatch, err)
	}
	root = filepath.Clean(root)
	w := &Watcher{root: root, skip: skip, debounce: debounce, fsw: fsw}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.skip(p) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWatch, p, err)
		}
		return nil
	})
}

// Run calls onChange once per burst of events until ctx is done.
// onChange runs on the Run goroutine, so a slow rebuild delays the next one
// instead of overlapping it. Watch errors are passed to onError.
func (w *Watcher) Run(ctx context.Context, onChange func(), onError func(error)) error {
	defer func() { _ = w.fsw.Close() }()

	// Stopped until the first event; Reset never delivers a stale tick.
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// A new directory may already hold files; they show up
				// in the rebuild even if their events were missed.
				if err := w.addIfDir(ev.Name); err != nil && onError != nil {
					onError(err)
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// relevant drops chmod-only events, hidden files such as editor swap
// files, and paths below skipped directories.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	for dir := filepath.Dir(ev.Name); len(dir) > len(w.root); dir = filepath.Dir(dir) {
		if w.skip(dir) {
			return false
		}
	}
	return !(isDir(ev.Name) && w.skip(ev.Name))
}

func (w *Watcher) addIfDir(p string) error {
	if !isDir(p) || w.skip(p) {
		return nil
	}
	return w.addTree(p)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Close stops watching. Run returns once its loop notices.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
