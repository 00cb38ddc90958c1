package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/tilted/pkg/ui"
)

// Container styles. Text styles come from pkg/ui so both executors look alike.
var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(ui.MutedGray).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.SalmonPink).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(ui.SalmonPink)
)
