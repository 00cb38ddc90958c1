package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/ui"
)

// model represents the state of the TUI application.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	ctx     context.Context
	handler Handler
	logger  *logging.Logger

	painter ui.Painter
	style   string
	version string

	// Transcript shown in the viewport
	content *strings.Builder

	// Submitted lines, oldest first; histIdx == len(history) means "new line"
	history []string
	histIdx int

	// busy is set while a line is being handled; input is ignored meanwhile
	busy    bool
	pending string

	width  int
	height int
	ready  bool

	shouldQuit bool
}

// lineResultMsg carries the controller's answer for a submitted line.
type lineResultMsg struct {
	line   string
	result controller.Result
}

func newModel(ctx context.Context, handler Handler, painter ui.Painter, style, version string) *model {
	ti := textinput.New()
	ti.Placeholder = "e2e4, e7e8q, help, quit"
	ti.Prompt = controllerPrompt
	ti.CharLimit = 64
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return &model{
		viewport: viewport.New(80, 10),
		input:    ti,
		spinner:  sp,
		ctx:      ctx,
		handler:  handler,
		logger:   logging.Nop(),
		painter:  painter,
		style:    style,
		version:  version,
		content:  &strings.Builder{},
	}
}

// controllerPrompt precedes the input and every echoed line.
const controllerPrompt = "> "

// appendLine adds text to the transcript and keeps the view at the bottom.
func (m *model) appendLine(text string) {
	if m.content.Len() > 0 {
		m.content.WriteString("\n")
	}
	m.content.WriteString(text)
	m.viewport.SetContent(m.content.String())
	m.viewport.GotoBottom()
}

// transcript returns the plain transcript text.
func (m *model) transcript() string {
	return m.content.String()
}
