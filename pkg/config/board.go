package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDBoard is the identifier for the board interaction section
	SectionIDBoard = "board"

	DefaultDragSteps        = 3
	DefaultPromotionTimeout = 2 * time.Second
	DefaultConfirmTimeout   = 1500 * time.Millisecond
	DefaultOrientation      = "auto"
)

// DefaultBoardSelectors are tried in order until one matches the board.
var DefaultBoardSelectors = []string{
	".TheBoard-squares",
	`[class*="Board-squares"]`,
	".board",
	`[class*="board"]`,
}

// DefaultPagePatterns match URLs on which a board is expected.
var DefaultPagePatterns = []string{
	"https://www.chess.com/*",
	"https://chess.com/*",
}

// BoardSection controls how moves are played on the web board.
type BoardSection struct {
	Selectors        []string      `json:"selectors"`
	DragSteps        int           `json:"drag_steps"`
	PromotionTimeout time.Duration `json:"promotion_timeout"`
	ConfirmMoves     bool          `json:"confirm_moves"`
	ConfirmTimeout   time.Duration `json:"confirm_timeout"`
	Orientation      string        `json:"orientation"`
	PagePatterns     []string      `json:"page_patterns"`
	RequireBoardPage bool          `json:"require_board_page"`
	mu               sync.RWMutex
}

// NewBoardSection creates a board section with default settings.
func NewBoardSection() *BoardSection {
	s := &BoardSection{}
	s.Reset()
	return s
}

func (s *BoardSection) ID() string { return SectionIDBoard }

func (s *BoardSection) Title() string { return "Board" }

func (s *BoardSection) Description() string {
	return "Board selectors, drag gesture, promotion and move confirmation."
}

// Data returns the current configuration data.
func (s *BoardSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"selectors":          stringsToInterfaces(s.Selectors),
		"drag_steps":         s.DragSteps,
		"promotion_timeout":  s.PromotionTimeout.String(),
		"confirm_moves":      s.ConfirmMoves,
		"confirm_timeout":    s.ConfirmTimeout.String(),
		"orientation":        s.Orientation,
		"page_patterns":      stringsToInterfaces(s.PagePatterns),
		"require_board_page": s.RequireBoardPage,
	}
}

// SetData updates the configuration from the provided data.
//
//nolint:gocyclo
func (s *BoardSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	for key, value := range data {
		switch key {
		case "selectors":
			s.Selectors, err = toStringSlice(key, value)
		case "drag_steps":
			s.DragSteps, err = toInt(key, value)
		case "promotion_timeout":
			s.PromotionTimeout, err = toDuration(key, value)
		case "confirm_moves":
			s.ConfirmMoves, err = toBool(key, value)
		case "confirm_timeout":
			s.ConfirmTimeout, err = toDuration(key, value)
		case "orientation":
			s.Orientation, err = toString(key, value)
		case "page_patterns":
			s.PagePatterns, err = toStringSlice(key, value)
		case "require_board_page":
			s.RequireBoardPage, err = toBool(key, value)
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
func (s *BoardSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.Selectors) == 0 {
		return fmt.Errorf("at least one board selector is required")
	}
	for i, sel := range s.Selectors {
		if sel == "" {
			return fmt.Errorf("selector %d is empty", i)
		}
	}
	if s.DragSteps < 1 || s.DragSteps > 50 {
		return fmt.Errorf("drag_steps must be between 1 and 50, got %d", s.DragSteps)
	}
	if s.PromotionTimeout <= 0 {
		return fmt.Errorf("promotion_timeout must be positive")
	}
	if s.ConfirmMoves && s.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm_timeout must be positive when confirm_moves is enabled")
	}
	switch s.Orientation {
	case "auto", "white", "black":
	default:
		return fmt.Errorf("orientation must be auto, white or black, got %q", s.Orientation)
	}
	if s.RequireBoardPage && len(s.PagePatterns) == 0 {
		return fmt.Errorf("require_board_page needs at least one page pattern")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BoardSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Selectors = append([]string(nil), DefaultBoardSelectors...)
	s.DragSteps = DefaultDragSteps
	s.PromotionTimeout = DefaultPromotionTimeout
	s.ConfirmMoves = true
	s.ConfirmTimeout = DefaultConfirmTimeout
	s.Orientation = DefaultOrientation
	s.PagePatterns = append([]string(nil), DefaultPagePatterns...)
	s.RequireBoardPage = false
}

// Snapshot returns a copy of the settings that is safe to use without locking.
func (s *BoardSection) Snapshot() BoardSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return BoardSettings{
		Selectors:        append([]string(nil), s.Selectors...),
		DragSteps:        s.DragSteps,
		PromotionTimeout: s.PromotionTimeout,
		ConfirmMoves:     s.ConfirmMoves,
		ConfirmTimeout:   s.ConfirmTimeout,
		Orientation:      s.Orientation,
		PagePatterns:     append([]string(nil), s.PagePatterns...),
		RequireBoardPage: s.RequireBoardPage,
	}
}

// BoardSettings is an immutable copy of BoardSection.
type BoardSettings struct {
	Selectors        []string
	DragSteps        int
	PromotionTimeout time.Duration
	ConfirmMoves     bool
	ConfirmTimeout   time.Duration
	Orientation      string
	PagePatterns     []string
	RequireBoardPage bool
}
