package cards

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docsite/internal/fileutil"
)

// Card dimensions in CSS pixels.
const (
	Width  = 1200
	Height = 630
)

// DefaultTimeout bounds the load of one card page.
const DefaultTimeout = 30 * time.Second

// capturer abstracts the browser so the renderer can be tested without Chrome.
type capturer interface {
	CaptureFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ capturer = (*rodCapturer)(nil)

// Renderer turns card HTML into PNG files.
// Calls are serialized; use a Pool for parallelism.
type Renderer struct {
	mu       sync.Mutex
	capturer capturer
}

// NewRenderer creates a Renderer backed by headless Chrome.
// The browser is not started until the first Render.
func NewRenderer(timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Renderer{capturer: &rodCapturer{timeout: timeout}}
}

// Render screenshots htmlContent and writes the PNG to outPath.
func (r *Renderer) Render(ctx context.Context, htmlContent, outPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	png, err := r.capturer.CaptureFile(ctx, tmpPath)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFile(outPath, png); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteCard, err)
	}
	return nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.capturer.Close()
}

// rodCapturer implements capturer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodCapturer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// ensureBrowser lazily launches and connects to the browser.
func (c *rodCapturer) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	c.launcher = l
	c.browser = browser
	return nil
}

// CaptureFile opens a local HTML file and screenshots the card viewport.
func (c *rodCapturer) CaptureFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             Width,
		Height:            Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return png, nil
}

// Close closes the browser and kills its process tree.
func (c *rodCapturer) Close() error {
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	killLauncher(c.launcher)
	c.browser = nil
	c.launcher = nil
	return err
}

// killLauncher makes sure no Chrome child process outlives the renderer.
func killLauncher(l *launcher.Launcher) {
	if l == nil {
		return
	}
	if pid := l.PID(); pid > 0 {
		killTree(pid)
	}
	l.Kill()
	l.Cleanup()
}
