package ui

import (
	"strings"
	"time"

	"github.com/entrhq/tilted/pkg/controller"
)

// FormatResult renders a controller result for the terminal. KindNone
// renders as the empty string.
func FormatResult(r controller.Result, p Painter, style string) string {
	var b strings.Builder

	switch r.Kind {
	case controller.KindNone:
		return ""
	case controller.KindMove:
		b.WriteString(p.Paint(MoveStyle, "✓ "+r.Message))
		if r.Elapsed > 0 {
			b.WriteString(" ")
			b.WriteString(p.Paint(DetailStyle, r.Elapsed.Round(time.Millisecond).String()))
		}
	case controller.KindInputError:
		b.WriteString(p.Paint(InputErrorStyle, "✗ "+r.Message))
	case controller.KindAutomationError:
		b.WriteString(p.Paint(ErrorStyle, "✗ "+r.Message))
		if r.Err != nil {
			b.WriteString("\n")
			b.WriteString(p.Paint(DetailStyle, "  "+r.Err.Error()))
		}
	default:
		b.WriteString(p.Paint(InfoStyle, r.Message))
	}

	if r.Detail != "" {
		b.WriteString("\n")
		if r.DetailJSON {
			b.WriteString(HighlightJSON(r.Detail, style, p))
		} else {
			b.WriteString(p.Paint(DetailStyle, r.Detail))
		}
	}
	return b.String()
}
