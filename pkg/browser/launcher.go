package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/entrhq/tilted/pkg/logging"
	"github.com/playwright-community/playwright-go"
)

// Launcher owns the Playwright driver and at most one browser session.
type Launcher struct {
	mu          sync.Mutex
	settings    Settings
	pages       *PageMatcher
	logger      *logging.Logger
	locate      locator
	playwright  *playwright.Playwright
	session     *Session
	initialized bool
}

// NewLauncher creates a launcher. pages picks which restored tab to keep and
// may be nil.
func NewLauncher(settings Settings, pages *PageMatcher, logger *logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Launcher{
		settings: settings.withDefaults(),
		pages:    pages,
		logger:   logger,
		locate:   systemLocator(),
	}
}

// Settings returns the effective launch settings.
func (l *Launcher) Settings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// Initialize starts the Playwright driver. The user's installed browser is
// used, so no browser download takes place.
func (l *Launcher) Initialize() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.initialized {
		return nil
	}

	// Discard driver output to avoid interfering with the terminal
	opts := &playwright.RunOptions{
		SkipInstallBrowsers: true,
		Verbose:             false,
		Stdout:              io.Discard,
		Stderr:              io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright driver: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	l.playwright = pw
	l.initialized = true
	l.logger.Debugf("playwright driver started")
	return nil
}

// Session returns the current session, or nil.
func (l *Launcher) Session() *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}

// Launch starts the browser and connects to it. A second Launch while a
// session is open is an error; use Reconnect to replace it.
func (l *Launcher) Launch(ctx context.Context) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return nil, ErrNotInitialized
	}
	if l.session != nil && !l.session.Closed() {
		return nil, fmt.Errorf("browser session already open on port %d", l.session.Port)
	}

	session, err := l.launch(ctx)
	if err != nil {
		return nil, err
	}
	l.session = session
	return session, nil
}

func (l *Launcher) launch(ctx context.Context) (*Session, error) {
	s := l.settings

	path, err := l.locate.resolve(s.Flavor, s.Executable)
	if err != nil {
		return nil, err
	}
	l.logger.Infof("found browser at %s", path)

	if err := CheckPortFree(s.Port); err != nil {
		return nil, err
	}

	l.logger.Infof("launching browser with debugging on port %d", s.Port)
	proc, err := startProcess(path, buildArgs(s), l.logger.Writer())
	if err != nil {
		return nil, err
	}

	browser, err := l.connect(ctx, proc)
	if err != nil {
		_ = proc.Terminate(terminateGrace)
		return nil, err
	}

	bctx, page, err := l.selectPage(browser)
	if err != nil {
		_ = browser.Close()
		_ = proc.Terminate(terminateGrace)
		return nil, err
	}

	now := time.Now()
	session := &Session{
		browser:    browser,
		context:    bctx,
		page:       page,
		proc:       proc,
		Executable: path,
		Port:       s.Port,
		StartedAt:  now,
		LastUsedAt: now,
	}
	session.cdp = l.keepAwake(bctx, page)

	l.logger.Infof("connected to browser (pid %d), board tab %s", proc.PID(), page.URL())
	return session, nil
}

// connect retries the CDP connection until the endpoint answers, the
// process dies, or the startup timeout elapses.
func (l *Launcher) connect(ctx context.Context, proc *process) (playwright.Browser, error) {
	endpoint := endpointURL(l.settings.Port)
	deadline := time.Now().Add(l.settings.StartupTimeout)
	attempt := 0

	for {
		attempt++
		browser, err := l.playwright.Chromium.ConnectOverCDP(endpoint, playwright.BrowserTypeConnectOverCDPOptions{
			Timeout: playwright.Float(float64(l.settings.StartupTimeout.Milliseconds())),
		})
		if err == nil {
			l.logger.Debugf("CDP connected after %d attempt(s)", attempt)
			return browser, nil
		}
		l.logger.Debugf("CDP connect attempt %d failed: %v", attempt, err)

		if proc.Exited() {
			return nil, fmt.Errorf("browser exited before the debugging port opened (is another instance already running?): %w", err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("failed to connect to %s within %v: %w", endpoint, l.settings.StartupTimeout, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
}

// selectPage keeps one tab, preferring a board page, and closes the tabs the
// browser restored from its previous session.
func (l *Launcher) selectPage(browser playwright.Browser) (playwright.BrowserContext, playwright.Page, error) {
	contexts := browser.Contexts()
	if len(contexts) == 0 {
		return nil, nil, ErrNoPage
	}
	bctx := contexts[0]

	pages := bctx.Pages()
	if len(pages) == 0 {
		page, err := bctx.NewPage()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrNoPage, err)
		}
		if _, err := page.Goto(l.settings.StartURL); err != nil {
			l.logger.Warnf("failed to open %s: %v", l.settings.StartURL, err)
		}
		return bctx, page, nil
	}

	urls := make([]string, len(pages))
	for i, p := range pages {
		urls[i] = p.URL()
	}
	keep := l.pages.choosePage(urls)

	closed := 0
	for i, p := range pages {
		if i == keep {
			continue
		}
		if err := p.Close(); err != nil {
			l.logger.Warnf("failed to close restored tab %s: %v", urls[i], err)
			continue
		}
		closed++
	}
	if closed > 0 {
		l.logger.Infof("closed %d restored tab(s)", closed)
	}

	return bctx, pages[keep], nil
}

// keepAwake enables focus emulation and pins the page visibility so the site
// keeps running when the window is covered. Failures are logged only.
func (l *Launcher) keepAwake(bctx playwright.BrowserContext, page playwright.Page) playwright.CDPSession {
	cdp, err := bctx.NewCDPSession(page)
	if err != nil {
		l.logger.Warnf("CDP session unavailable, focus emulation skipped: %v", err)
	} else if _, err := cdp.Send("Emulation.setFocusEmulationEnabled", map[string]interface{}{"enabled": true}); err != nil {
		l.logger.Warnf("focus emulation failed: %v", err)
	}

	if err := bctx.AddInitScript(playwright.Script{Content: playwright.String(visibilityOverride)}); err != nil {
		l.logger.Warnf("visibility override not installed: %v", err)
	}
	if _, err := page.Evaluate(visibilityOverride); err != nil {
		l.logger.Debugf("visibility override on current document failed: %v", err)
	}

	return cdp
}

// Reconnect closes the current session, if any, and launches a new one.
func (l *Launcher) Reconnect(ctx context.Context) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.initialized {
		return nil, ErrNotInitialized
	}

	if l.session != nil {
		l.logger.Infof("closing previous browser session")
		if err := l.session.close(); err != nil {
			l.logger.Warnf("previous session did not close cleanly: %v", err)
		}
		l.session = nil
	}

	session, err := l.launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconnect failed: %w", err)
	}
	l.session = session
	return session, nil
}

// Shutdown closes the session, terminates the browser and stops Playwright.
func (l *Launcher) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.session != nil {
		if err := l.session.close(); err != nil {
			errs = append(errs, err)
		}
		l.session = nil
	}

	if l.initialized && l.playwright != nil {
		if err := l.playwright.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		l.initialized = false
	}

	return errors.Join(errs...)
}
