// Package browser starts the user's Chromium-family browser with remote
// debugging enabled and attaches to it through Playwright.
//
// Unlike a Playwright-launched browser, the process is an ordinary desktop
// browser: it keeps the user's profile, extensions and login, and the board
// tab is a normal tab the user can also click in.
//
// # Lifecycle
//
//  1. Initialize starts the Playwright driver (no browser download).
//  2. Launch resolves the executable, checks the debugging port is free,
//     starts the process and connects over CDP.
//  3. The returned Session is handed to the board package, which drives it.
//  4. Reconnect replaces a dead session; Shutdown tears everything down.
//
// After connecting, restored tabs are closed so a single board tab remains,
// focus emulation is switched on, and the Page Visibility API is pinned to
// "visible" so the site keeps animating when the window is covered.
//
// # Example Usage
//
//	launcher := browser.NewLauncher(settings, patterns, logger)
//	if err := launcher.Initialize(); err != nil {
//	    return err
//	}
//	defer launcher.Shutdown()
//
//	session, err := launcher.Launch(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(session.URL())
package browser
