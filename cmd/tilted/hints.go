package main

import (
	"errors"
	"fmt"

	"github.com/entrhq/tilted/pkg/browser"
	"github.com/entrhq/tilted/pkg/logging"
)

// troubleshootingHints suggests fixes for a fatal error.
func troubleshootingHints(err error) []string {
	switch {
	case errors.Is(err, browser.ErrBrowserNotFound):
		return []string{
			"Install Microsoft Edge, or point tilted at another Chromium-based browser",
			fmt.Sprintf("Use -browser <path> or set %s", browser.EnvBrowserPath),
		}
	case errors.Is(err, browser.ErrPortInUse):
		return []string{
			"Another browser or tilted instance is already using the debugging port",
			"Close every window of that browser, or pick another port with -port",
		}
	case errors.Is(err, browser.ErrNoPage), errors.Is(err, browser.ErrNotInitialized):
		return []string{
			"Close all browser windows and start tilted again",
		}
	}

	var hints []string
	if dir, derr := logging.GetLogDirectory(); derr == nil {
		hints = append(hints, "Details are in the log files under "+dir)
	}
	return hints
}
