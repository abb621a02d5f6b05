package devserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Notes:
// - These tests use the real file system notifier; waits are bounded so a
//   missing event fails instead of hanging.

func skipUnderscore(p string) bool {
	return strings.HasPrefix(filepath.Base(p), "_")
}

func startWatcher(t *testing.T, root string) <-chan struct{} {
	t.Helper()
	w, err := NewWatcher(root, skipUnderscore, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() { changes <- struct{}{} }, nil)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return changes
}

func expectChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func expectQuiet(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
		t.Fatal("unexpected change notification")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_FileChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	changes := startWatcher(t, root)

	// A burst of writes collapses into one notification.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(root, "index.md"), []byte("# v"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	expectChange(t, changes)
	expectQuiet(t, changes)
}

func TestWatcher_NewDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	changes := startWatcher(t, root)

	dir := filepath.Join(root, "guide")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changes)

	// Give the watcher a moment to add the directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "install.md"), []byte("# Install"), 0o644); err != nil {
		t.Fatal(err)
	}
	expectChange(t, changes)
}

func TestWatcher_SkipsIgnoredPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	drafts := filepath.Join(root, "_drafts")
	if err := os.Mkdir(drafts, 0o755); err != nil {
		t.Fatal(err)
	}
	changes := startWatcher(t, root)

	if err := os.WriteFile(filepath.Join(drafts, "wip.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".index.md.swp"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	expectQuiet(t, changes)
}

func TestWatcher_Relevant(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w := &Watcher{root: root, skip: skipUnderscore}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: filepath.Join(root, "a.md"), Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: filepath.Join(root, "a.md"), Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(root, ".a.md.swp"), Op: fsnotify.Create}, false},
		{"below skipped dir", fsnotify.Event{Name: filepath.Join(root, "_drafts", "a.md"), Op: fsnotify.Write}, false},
		{"underscore file", fsnotify.Event{Name: filepath.Join(root, "_index.md"), Op: fsnotify.Write}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := w.relevant(tt.ev); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil, 0); err == nil {
		t.Error("expected error for missing root")
	}
}
