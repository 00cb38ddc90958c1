package config

import (
	"fmt"
	"sync"

	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	defaultColor          = true
	defaultTUI            = false
	defaultHighlightStyle = "monokai"
	defaultLogLevel       = "info"
	defaultClipboard      = true
)

// UISection manages terminal presentation settings.
type UISection struct {
	Color          bool   `json:"color"`
	TUI            bool   `json:"tui"`
	HighlightStyle string `json:"highlight_style"`
	LogLevel       string `json:"log_level"`
	Clipboard      bool   `json:"clipboard"`
	mu             sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	s := &UISection{}
	s.Reset()
	return s
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Terminal colors, interactive mode, debug output highlighting and log verbosity."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"color":           s.Color,
		"tui":             s.TUI,
		"highlight_style": s.HighlightStyle,
		"log_level":       s.LogLevel,
		"clipboard":       s.Clipboard,
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	for key, value := range data {
		switch key {
		case "color":
			s.Color, err = toBool(key, value)
		case "tui":
			s.TUI, err = toBool(key, value)
		case "highlight_style":
			s.HighlightStyle, err = toString(key, value)
		case "log_level":
			s.LogLevel, err = toString(key, value)
		case "clipboard":
			s.Clipboard, err = toBool(key, value)
		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := styles.Registry[s.HighlightStyle]; !ok {
		return fmt.Errorf("unknown highlight_style %q", s.HighlightStyle)
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "error", "verbose", "normal", "quiet":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", s.LogLevel)
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Color = defaultColor
	s.TUI = defaultTUI
	s.HighlightStyle = defaultHighlightStyle
	s.LogLevel = defaultLogLevel
	s.Clipboard = defaultClipboard
}

// ColorEnabled reports whether styled output is on.
func (s *UISection) ColorEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Color
}

// SetColor enables or disables styled output.
func (s *UISection) SetColor(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Color = enabled
}

// TUIEnabled reports whether the interactive front-end is the default.
func (s *UISection) TUIEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TUI
}

// SetTUI selects the interactive front-end.
func (s *UISection) SetTUI(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TUI = enabled
}

// Style returns the chroma style used for debug output.
func (s *UISection) Style() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.HighlightStyle
}

// Level returns the configured log level name.
func (s *UISection) Level() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LogLevel
}

// ClipboardEnabled reports whether `debug copy` may write the clipboard.
func (s *UISection) ClipboardEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Clipboard
}
