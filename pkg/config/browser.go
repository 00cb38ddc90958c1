package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDBrowser is the identifier for the browser launch section
	SectionIDBrowser = "browser"

	DefaultDebuggingPort  = 9223
	DefaultStartURL       = "https://www.chess.com/variants"
	DefaultStartupTimeout = 10 * time.Second
	DefaultBrowserFlavor  = "edge"
)

// BrowserSection holds how the browser process is found, started and
// reached over its remote-debugging port.
type BrowserSection struct {
	Flavor         string        `json:"flavor"`
	Executable     string        `json:"executable"`
	Port           int           `json:"port"`
	StartURL       string        `json:"start_url"`
	StartupTimeout time.Duration `json:"startup_timeout"`
	UserDataDir    string        `json:"user_data_dir"`
	ExtraArgs      []string      `json:"extra_args"`
	mu             sync.RWMutex
}

// NewBrowserSection creates a browser section with default settings.
func NewBrowserSection() *BrowserSection {
	s := &BrowserSection{}
	s.Reset()
	return s
}

func (s *BrowserSection) ID() string { return SectionIDBrowser }

func (s *BrowserSection) Title() string { return "Browser" }

func (s *BrowserSection) Description() string {
	return "Browser executable, remote-debugging port and start page."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"flavor":          s.Flavor,
		"executable":      s.Executable,
		"port":            s.Port,
		"start_url":       s.StartURL,
		"startup_timeout": s.StartupTimeout.String(),
		"user_data_dir":   s.UserDataDir,
		"extra_args":      stringsToInterfaces(s.ExtraArgs),
	}
}

// SetData updates the configuration from the provided data. Unknown keys are
// ignored for forward compatibility.
//
//nolint:gocyclo
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	for key, value := range data {
		switch key {
		case "flavor":
			s.Flavor, err = toString(key, value)
		case "executable":
			s.Executable, err = toString(key, value)
		case "port":
			s.Port, err = toInt(key, value)
		case "start_url":
			s.StartURL, err = toString(key, value)
		case "startup_timeout":
			s.StartupTimeout, err = toDuration(key, value)
		case "user_data_dir":
			s.UserDataDir, err = toString(key, value)
		case "extra_args":
			s.ExtraArgs, err = toStringSlice(key, value)
		default:
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.Flavor {
	case "edge", "chrome", "chromium":
	default:
		return fmt.Errorf("flavor must be edge, chrome or chromium, got %q", s.Flavor)
	}
	if s.Port < 1024 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1024 and 65535, got %d", s.Port)
	}
	if s.StartURL == "" {
		return fmt.Errorf("start_url is required")
	}
	if s.StartupTimeout < time.Second || s.StartupTimeout > 2*time.Minute {
		return fmt.Errorf("startup_timeout must be between 1s and 2m, got %v", s.StartupTimeout)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Flavor = DefaultBrowserFlavor
	s.Executable = ""
	s.Port = DefaultDebuggingPort
	s.StartURL = DefaultStartURL
	s.StartupTimeout = DefaultStartupTimeout
	s.UserDataDir = ""
	s.ExtraArgs = nil
}

// Snapshot returns a copy of the settings that is safe to use without locking.
func (s *BrowserSection) Snapshot() BrowserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return BrowserSettings{
		Flavor:         s.Flavor,
		Executable:     s.Executable,
		Port:           s.Port,
		StartURL:       s.StartURL,
		StartupTimeout: s.StartupTimeout,
		UserDataDir:    s.UserDataDir,
		ExtraArgs:      append([]string(nil), s.ExtraArgs...),
	}
}

// Override applies non-zero command-line values on top of stored settings.
func (s *BrowserSection) Override(executable string, port int, startURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if executable != "" {
		s.Executable = executable
	}
	if port != 0 {
		s.Port = port
	}
	if startURL != "" {
		s.StartURL = startURL
	}
}

// BrowserSettings is an immutable copy of BrowserSection.
type BrowserSettings struct {
	Flavor         string
	Executable     string
	Port           int
	StartURL       string
	StartupTimeout time.Duration
	UserDataDir    string
	ExtraArgs      []string
}
