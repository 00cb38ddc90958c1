package browser

import (
	"fmt"

	"github.com/gobwas/glob"
)

// PageMatcher recognises board page URLs by glob pattern.
type PageMatcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewPageMatcher compiles patterns such as "https://www.chess.com/*".
func NewPageMatcher(patterns []string) (*PageMatcher, error) {
	m := &PageMatcher{patterns: append([]string(nil), patterns...)}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid page pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether url matches any pattern. A nil or empty matcher
// matches nothing.
func (m *PageMatcher) Match(url string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.globs {
		if g.Match(url) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (m *PageMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}

// choosePage returns the index of the tab to keep: the last board page if
// any, otherwise the last tab. It returns -1 for no tabs.
func (m *PageMatcher) choosePage(urls []string) int {
	for i := len(urls) - 1; i >= 0; i-- {
		if m.Match(urls[i]) {
			return i
		}
	}
	return len(urls) - 1
}
