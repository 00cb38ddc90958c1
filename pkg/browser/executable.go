package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Browser flavors with known install locations.
const (
	FlavorEdge     = "edge"
	FlavorChrome   = "chrome"
	FlavorChromium = "chromium"
)

// EnvBrowserPath overrides the executable for a single run.
const EnvBrowserPath = "TILTED_BROWSER_PATH"

// candidatePaths lists well-known install locations for a flavor on goos.
func candidatePaths(flavor, goos string) []string {
	switch goos {
	case "windows":
		programFiles := []string{`C:\Program Files (x86)`, `C:\Program Files`}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			programFiles = append(programFiles, local)
		}
		var rel string
		switch flavor {
		case FlavorChrome:
			rel = `Google\Chrome\Application\chrome.exe`
		case FlavorChromium:
			rel = `Chromium\Application\chrome.exe`
		default:
			rel = `Microsoft\Edge\Application\msedge.exe`
		}
		paths := make([]string, 0, len(programFiles))
		for _, dir := range programFiles {
			paths = append(paths, dir+`\`+rel)
		}
		return paths

	case "darwin":
		switch flavor {
		case FlavorChrome:
			return []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"}
		case FlavorChromium:
			return []string{"/Applications/Chromium.app/Contents/MacOS/Chromium"}
		default:
			return []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}
		}

	default:
		switch flavor {
		case FlavorChrome:
			return []string{"google-chrome", "google-chrome-stable", "/usr/bin/google-chrome", "/opt/google/chrome/chrome"}
		case FlavorChromium:
			return []string{"chromium", "chromium-browser", "/usr/bin/chromium", "/snap/bin/chromium"}
		default:
			return []string{
				"/usr/bin/microsoft-edge",
				"/usr/bin/microsoft-edge-stable",
				"/usr/bin/microsoft-edge-beta",
				"/usr/bin/microsoft-edge-dev",
				"microsoft-edge",
			}
		}
	}
}

// locator abstracts the filesystem so resolution can be tested.
type locator struct {
	goos     string
	getenv   func(string) string
	exists   func(string) bool
	lookPath func(string) (string, error)
}

func systemLocator() locator {
	return locator{
		goos:   runtime.GOOS,
		getenv: os.Getenv,
		exists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
		lookPath: exec.LookPath,
	}
}

// resolve picks the executable: environment override, then configured path,
// then the flavor's well-known locations.
func (l locator) resolve(flavor, configured string) (string, error) {
	if env := l.getenv(EnvBrowserPath); env != "" {
		configured = env
	}

	if configured != "" {
		if l.exists(configured) {
			return configured, nil
		}
		if path, err := l.lookPath(configured); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %s", ErrBrowserNotFound, configured)
	}

	candidates := candidatePaths(flavor, l.goos)
	for _, candidate := range candidates {
		if filepath.IsAbs(candidate) || l.goos == "windows" {
			if l.exists(candidate) {
				return candidate, nil
			}
			continue
		}
		if path, err := l.lookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: no %s install found (tried %d locations); set %s or browser.executable",
		ErrBrowserNotFound, flavor, len(candidates), EnvBrowserPath)
}

// FindExecutable locates the browser binary for flavor, honoring the
// TILTED_BROWSER_PATH environment variable and an explicit path.
func FindExecutable(flavor, configured string) (string, error) {
	return systemLocator().resolve(flavor, configured)
}
