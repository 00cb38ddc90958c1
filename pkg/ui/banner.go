package ui

import (
	"fmt"
	"strings"
)

// AppName is rendered in the start-up banner.
const AppName = "tilted"

// Banner returns the start-up banner with version and usage tips.
func Banner(version string, p Painter) string {
	var b strings.Builder
	b.WriteString(p.Paint(HeaderStyle, GenerateASCIIArt(AppName)))
	b.WriteString("\n\n")
	b.WriteString(p.Paint(TipsStyle, fmt.Sprintf("\t%s %s: type moves in UCI notation (e2e4, e7e8q).", AppName, version)))
	b.WriteString("\n")
	b.WriteString(p.Paint(TipsStyle, "\tType 'help' for commands, 'quit' to exit."))
	b.WriteString("\n")
	return b.String()
}
