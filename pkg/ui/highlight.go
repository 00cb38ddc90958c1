package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// HighlightJSON colours a JSON document for a 256-colour terminal. It
// returns src unchanged when color is off or highlighting fails.
func HighlightJSON(src, style string, p Painter) string {
	if !p.Color() {
		return src
	}
	if style == "" {
		style = DefaultHighlightStyle
	}

	var b strings.Builder
	if err := quick.Highlight(&b, src, "json", "terminal256", style); err != nil {
		return src
	}
	return b.String()
}
