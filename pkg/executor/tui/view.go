package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/tilted/pkg/ui"
)

// View renders the entire TUI interface.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	parts := []string{
		m.buildHeader(),
		m.buildTips(),
		"",
		m.viewport.View(),
	}
	if loading := m.buildLoadingIndicator(); loading != "" {
		parts = append(parts, loading)
	}
	parts = append(parts, m.buildInputBox(), m.buildBottomBar())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// buildHeader renders the ASCII art header
func (m *model) buildHeader() string {
	return m.painter.Paint(ui.HeaderStyle, ui.GenerateASCIIArt(ui.AppName))
}

func (m *model) buildTips() string {
	return m.painter.Paint(ui.TipsStyle, "  Tips: type moves in UCI notation (e2e4, e7e8q) • 'debug' dumps the board • 'help' lists commands")
}

// buildLoadingIndicator renders the spinner while a line is being handled
func (m *model) buildLoadingIndicator() string {
	if !m.busy {
		return ""
	}
	return loadingStyle.Padding(0, 2).Render(fmt.Sprintf("%s %s", m.spinner.View(), m.pending))
}

func (m *model) buildInputBox() string {
	return inputBoxStyle.Width(m.width - 4).Render(m.input.View())
}

// buildBottomBar renders the key hints and version
func (m *model) buildBottomBar() string {
	left := ui.AppName + " " + m.version
	right := "Enter to play • ↑/↓ history • PgUp/PgDn scroll • Ctrl+C to exit"

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		gap = 2
	}
	return statusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}
