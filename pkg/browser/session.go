package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session is the handle to one launched browser and its board tab. It is
// owned by the caller that launched it and must not be shared between
// concurrent gestures.
type Session struct {
	mu sync.Mutex

	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cdp     playwright.CDPSession
	proc    *process

	// Executable is the path of the started browser binary
	Executable string

	// Port is the remote-debugging port
	Port int

	// StartedAt is when the session connected
	StartedAt time.Time

	// LastUsedAt is the time of the last operation on this session
	LastUsedAt time.Time

	closed bool
}

// Info summarises a session for display.
type Info struct {
	Executable string        `json:"executable"`
	Port       int           `json:"port"`
	PID        int           `json:"pid"`
	URL        string        `json:"url"`
	Uptime     time.Duration `json:"uptime"`
	Connected  bool          `json:"connected"`
}

// activePage returns the page for an operation, or ErrSessionClosed.
func (s *Session) activePage(ctx context.Context) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.page == nil || s.page.IsClosed() || !s.browser.IsConnected() {
		return nil, ErrSessionClosed
	}
	s.LastUsedAt = time.Now()
	return s.page, nil
}

// Evaluate runs a JavaScript expression in the board tab.
func (s *Session) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	page, err := s.activePage(ctx)
	if err != nil {
		return nil, err
	}

	var result any
	if arg == nil {
		result, err = page.Evaluate(script)
	} else {
		result, err = page.Evaluate(script, arg)
	}
	if err != nil {
		return nil, fmt.Errorf("evaluate failed: %w", err)
	}
	return result, nil
}

// MouseMove moves the pointer to (x, y) in steps interpolated moves.
func (s *Session) MouseMove(ctx context.Context, x, y float64, steps int) error {
	page, err := s.activePage(ctx)
	if err != nil {
		return err
	}

	opts := playwright.MouseMoveOptions{}
	if steps > 1 {
		opts.Steps = playwright.Int(steps)
	}
	if err := page.Mouse().Move(x, y, opts); err != nil {
		return fmt.Errorf("mouse move failed: %w", err)
	}
	return nil
}

// MouseDown presses the left button.
func (s *Session) MouseDown(ctx context.Context) error {
	page, err := s.activePage(ctx)
	if err != nil {
		return err
	}
	if err := page.Mouse().Down(); err != nil {
		return fmt.Errorf("mouse down failed: %w", err)
	}
	return nil
}

// MouseUp releases the left button.
func (s *Session) MouseUp(ctx context.Context) error {
	page, err := s.activePage(ctx)
	if err != nil {
		return err
	}
	if err := page.Mouse().Up(); err != nil {
		return fmt.Errorf("mouse up failed: %w", err)
	}
	return nil
}

// Click clicks the first element matching selector, waiting up to timeout
// for it to become actionable.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	page, err := s.activePage(ctx)
	if err != nil {
		return err
	}

	opts := playwright.LocatorClickOptions{}
	if timeout > 0 {
		opts.Timeout = playwright.Float(float64(timeout.Milliseconds()))
	}
	if err := page.Locator(selector).First().Click(opts); err != nil {
		return fmt.Errorf("click %s failed: %w", selector, err)
	}
	return nil
}

// URL returns the board tab's current URL, or "" once closed.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.page == nil {
		return ""
	}
	return s.page.URL()
}

// BringToFront activates the board tab.
func (s *Session) BringToFront(ctx context.Context) error {
	page, err := s.activePage(ctx)
	if err != nil {
		return err
	}
	if err := page.BringToFront(); err != nil {
		return fmt.Errorf("bring to front failed: %w", err)
	}
	return nil
}

// Alive performs a lightweight round trip to the page.
func (s *Session) Alive(ctx context.Context) bool {
	page, err := s.activePage(ctx)
	if err != nil {
		return false
	}

	done := make(chan error, 1)
	go func() {
		_, err := page.Evaluate("1")
		done <- err
	}()

	select {
	case err := <-done:
		return err == nil
	case <-time.After(aliveTimeout):
		return false
	case <-ctx.Done():
		return false
	}
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		Executable: s.Executable,
		Port:       s.Port,
		PID:        s.proc.PID(),
		Uptime:     time.Since(s.StartedAt).Round(time.Second),
	}
	if !s.closed && s.browser != nil {
		info.Connected = s.browser.IsConnected()
	}
	if !s.closed && s.page != nil {
		info.URL = s.page.URL()
	}
	return info
}

// Closed reports whether close has run.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close disconnects Playwright and terminates the browser process.
func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.cdp != nil {
		_ = s.cdp.Detach() // Ignore errors, continue cleanup
	}
	if s.browser != nil {
		_ = s.browser.Close() // Ignore errors, continue cleanup
	}
	if s.proc != nil {
		if err := s.proc.Terminate(terminateGrace); err != nil {
			return err
		}
	}
	return nil
}
