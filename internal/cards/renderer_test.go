package cards

// Notes:
// - Renderer logic is tested with a fake capturer; launching Chrome is
//   covered by TestRodCapturer_Integration, skipped in -short mode
// - The fake records the HTML it was asked to capture so tests can check
//   the temp file round trip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

type fakeCapturer struct {
	mu      sync.Mutex
	png     []byte
	err     error
	seen    []string
	closed  bool
	closeEr error
}

func (f *fakeCapturer) CaptureFile(ctx context.Context, filePath string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	f.seen = append(f.seen, string(content))
	if f.err != nil {
		return nil, f.err
	}
	return f.png, nil
}

func (f *fakeCapturer) Close() error {
	f.closed = true
	return f.closeEr
}

// ---------------------------------------------------------------------------
// TestRenderer_Render
// ---------------------------------------------------------------------------

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("writes captured png", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCapturer{png: []byte("\x89PNG fake")}
		r := &Renderer{capturer: fake}
		out := filepath.Join(t.TempDir(), "cards", "guide", "install.png")

		if err := r.Render(context.Background(), "<h1>Install</h1>", out); err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading card: %v", err)
		}
		if string(got) != "\x89PNG fake" {
			t.Errorf("card content = %q, want captured bytes", got)
		}
		if len(fake.seen) != 1 || !strings.Contains(fake.seen[0], "<h1>Install</h1>") {
			t.Errorf("capturer saw %v, want the card HTML", fake.seen)
		}
	})

	t.Run("capture error propagates", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCapturer{err: ErrScreenshot}
		r := &Renderer{capturer: fake}
		out := filepath.Join(t.TempDir(), "card.png")

		err := r.Render(context.Background(), "<p>x</p>", out)
		if !errors.Is(err, ErrScreenshot) {
			t.Errorf("Render() error = %v, want ErrScreenshot", err)
		}
		if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
			t.Error("no card should be written on capture error")
		}
	})
}

func TestRenderer_Close(t *testing.T) {
	t.Parallel()

	fake := &fakeCapturer{closeEr: ErrBrowserConnect}
	r := &Renderer{capturer: fake}

	if err := r.Close(); !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Close() error = %v, want ErrBrowserConnect", err)
	}
	if !fake.closed {
		t.Error("Close() should close the capturer")
	}
}

func TestRodCapturer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	c := &rodCapturer{timeout: time.Second}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unused capturer error = %v", err)
	}
}

func TestRodCapturer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &rodCapturer{timeout: time.Second}
	if _, err := c.CaptureFile(ctx, "/nonexistent.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("CaptureFile() error = %v, want context.Canceled", err)
	}
	if c.browser != nil {
		t.Error("browser should not launch for a canceled context")
	}
}

func TestRodCapturer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	t.Parallel()

	r := NewRenderer(DefaultTimeout)
	defer func() { _ = r.Close() }()

	out := filepath.Join(t.TempDir(), "card.png")
	if err := r.Render(context.Background(), "<html><body><h1>Card</h1></body></html>", out); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading card: %v", err)
	}
	if !strings.HasPrefix(string(got), "\x89PNG") {
		t.Error("card should be a PNG image")
	}
}

// ---------------------------------------------------------------------------
// TestKillLauncher - Cleanup without a running browser
// ---------------------------------------------------------------------------

func TestKillLauncher_Nil(t *testing.T) {
	t.Parallel()

	killLauncher(nil)
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	// PID 0 would signal our own process group; use one that cannot exist.
	killTree(999999999)
}
