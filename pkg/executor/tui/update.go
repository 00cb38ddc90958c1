package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/ui"
)

// Init starts the cursor blinking.
func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles all state updates for the TUI model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.shouldQuit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case lineResultMsg:
		return m.handleLineResult(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.shouldQuit = true
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		m.recall(-1)
		return m, nil

	case tea.KeyDown:
		m.recall(1)
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit echoes the input line and hands it to the controller.
func (m *model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histIdx = len(m.history)
	m.appendLine(m.painter.Paint(ui.PromptStyle, controllerPrompt) + line)

	m.busy = true
	m.pending = line
	m.recalculateLayout()
	return m, tea.Batch(m.spinner.Tick, m.runLine(line))
}

// runLine calls the controller outside the UI goroutine.
func (m *model) runLine(line string) tea.Cmd {
	ctx, handler := m.ctx, m.handler
	return func() tea.Msg {
		return lineResultMsg{line: line, result: handler.Handle(ctx, line)}
	}
}

func (m *model) handleLineResult(msg lineResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.pending = ""
	m.recalculateLayout()

	if out := ui.FormatResult(msg.result, m.painter, m.style); out != "" {
		m.appendLine(out)
	}
	if msg.result.IsError() {
		m.logger.Debugf("%s: %s", msg.line, msg.result.Message)
	}

	if msg.result.Kind == controller.KindQuit {
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

// recall walks the submitted-line history by delta.
func (m *model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.histIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.histIdx = len(m.history)
		m.input.Reset()
		return
	}
	m.histIdx = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

// calculateViewportHeight computes the viewport height for the current state.
func (m *model) calculateViewportHeight() int {
	headerHeight := 9 // ASCII art (7) + tips (1) + blank line (1)
	inputHeight := 3  // input line + border
	statusBarHeight := 1
	loadingHeight := 0
	if m.busy {
		loadingHeight = 1
	}

	viewportHeight := m.height - headerHeight - inputHeight - statusBarHeight - loadingHeight
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	return viewportHeight
}

func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.viewport.Width = m.width - 4
	m.input.Width = m.width - 10
	m.ready = true
	m.recalculateLayout()
	return m, nil
}

func (m *model) recalculateLayout() {
	if !m.ready {
		return
	}
	m.viewport.Height = m.calculateViewportHeight()
	m.viewport.SetContent(m.content.String())
	m.viewport.GotoBottom()
}
