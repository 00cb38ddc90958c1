package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/entrhq/tilted/pkg/board"
	"github.com/entrhq/tilted/pkg/browser"
)

// CommandHandler runs a command with its arguments.
type CommandHandler func(ctx context.Context, c *Controller, args []string) Result

// Command is a reserved word typed instead of a move.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Handler     CommandHandler
	MinArgs     int
	MaxArgs     int // -1 for unlimited
}

// commandRegistry holds the built-in commands by name and alias
var commandRegistry map[string]*Command

func init() {
	commandRegistry = make(map[string]*Command)

	registerCommand(&Command{
		Name:        "help",
		Aliases:     []string{"?"},
		Description: "List commands",
		Handler:     handleHelp,
	})

	registerCommand(&Command{
		Name:        "quit",
		Aliases:     []string{"exit"},
		Description: "Close the browser and exit",
		Handler:     handleQuit,
	})

	registerCommand(&Command{
		Name:        "debug",
		Usage:       "debug [copy]",
		Description: "Dump the board structure (copy: also to clipboard)",
		Handler:     handleDebug,
		MaxArgs:     1,
	})

	registerCommand(&Command{
		Name:        "movelist",
		Aliases:     []string{"moves"},
		Description: "List the moves played this session",
		Handler:     handleMoveList,
	})

	registerCommand(&Command{
		Name:        "orientation",
		Description: "Show which side is at the bottom of the board",
		Handler:     handleOrientation,
	})

	registerCommand(&Command{
		Name:        "focus",
		Description: "Bring the board tab to the front",
		Handler:     handleFocus,
	})

	registerCommand(&Command{
		Name:        "status",
		Description: "Show browser session details",
		Handler:     handleStatus,
	})

	registerCommand(&Command{
		Name:        "reconnect",
		Description: "Relaunch the browser after the session was lost",
		Handler:     handleReconnect,
	})
}

// registerCommand adds a command under its name and aliases
func registerCommand(cmd *Command) {
	commandRegistry[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		commandRegistry[alias] = cmd
	}
}

// lookupCommand finds a command by case-insensitive name or alias
func lookupCommand(name string) (*Command, bool) {
	cmd, ok := commandRegistry[strings.ToLower(name)]
	return cmd, ok
}

// Commands returns each command once, sorted by name.
func Commands() []*Command {
	seen := make(map[*Command]bool)
	commands := make([]*Command, 0, len(commandRegistry))
	for _, cmd := range commandRegistry {
		if seen[cmd] {
			continue
		}
		seen[cmd] = true
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})
	return commands
}

// IsReserved reports whether word is a command rather than a move.
func IsReserved(word string) bool {
	_, ok := lookupCommand(word)
	return ok
}

func (cmd *Command) usage() string {
	if cmd.Usage != "" {
		return cmd.Usage
	}
	return cmd.Name
}

func handleHelp(_ context.Context, _ *Controller, _ []string) Result {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "<move>\tPlay a move in UCI notation, e.g. e2e4 or e7e8q")
	for _, cmd := range Commands() {
		name := cmd.usage()
		if len(cmd.Aliases) > 0 {
			name += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, cmd.Description)
	}
	w.Flush()

	return Result{Kind: KindInfo, Message: "Commands", Detail: strings.TrimRight(b.String(), "\n")}
}

func handleQuit(_ context.Context, _ *Controller, _ []string) Result {
	return Result{Kind: KindQuit, Message: "Goodbye"}
}

// debugReport is what `debug` prints.
type debugReport struct {
	Session *browser.Info     `json:"session,omitempty"`
	Board   *board.Inspection `json:"board"`
}

func handleDebug(ctx context.Context, c *Controller, args []string) Result {
	copyOut := false
	if len(args) == 1 {
		if !strings.EqualFold(args[0], "copy") {
			return Result{Kind: KindInputError, Message: "usage: debug [copy]"}
		}
		copyOut = true
	}

	var report debugReport
	err := c.withSession(ctx, false, func(s Session, b Board) error {
		info := s.Info()
		report.Session = &info

		insp, err := b.Inspect(ctx)
		if err != nil {
			return err
		}
		report.Board = insp
		return nil
	})
	if err != nil {
		return c.automationError("failed to inspect board", err)
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return c.automationError("failed to encode board report", err)
	}

	result := Result{Kind: KindInfo, Message: "Board structure", Detail: string(raw), DetailJSON: true}
	if copyOut {
		if c.clipboard == nil {
			result.Message += " (clipboard disabled)"
		} else if err := c.clipboard(string(raw)); err != nil {
			c.logger.Warnf("debug copy failed: %v", err)
			result.Message += fmt.Sprintf(" (copy failed: %v)", err)
		} else {
			result.Message += " (copied to clipboard)"
		}
	}
	return result
}

func handleMoveList(_ context.Context, c *Controller, _ []string) Result {
	played := c.Played()
	if len(played) == 0 {
		return Result{Kind: KindInfo, Message: "No moves played yet"}
	}

	moves := make([]string, len(played))
	for i, m := range played {
		moves[i] = m.String()
	}
	return Result{
		Kind:    KindInfo,
		Message: fmt.Sprintf("%d moves played", len(played)),
		Detail:  strings.Join(moves, " "),
	}
}

func handleOrientation(ctx context.Context, c *Controller, _ []string) Result {
	var o board.Orientation
	err := c.withSession(ctx, false, func(_ Session, b Board) error {
		var err error
		o, err = b.Orientation(ctx)
		return err
	})
	if err != nil {
		return c.automationError("failed to read orientation", err)
	}
	return Result{Kind: KindInfo, Message: fmt.Sprintf("Playing with %s at the bottom", o)}
}

func handleFocus(ctx context.Context, c *Controller, _ []string) Result {
	err := c.withSession(ctx, false, func(s Session, _ Board) error {
		return s.BringToFront(ctx)
	})
	if err != nil {
		return c.automationError("failed to focus board tab", err)
	}
	return Result{Kind: KindInfo, Message: "Board tab focused"}
}

func handleStatus(ctx context.Context, c *Controller, _ []string) Result {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()

	if s == nil {
		return Result{Kind: KindInfo, Message: "No browser session (type 'reconnect')"}
	}

	info := s.Info()
	alive := s.Alive(ctx)
	state := "alive"
	if !alive {
		state = "lost (type 'reconnect')"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "state\t%s\n", state)
	fmt.Fprintf(w, "url\t%s\n", info.URL)
	fmt.Fprintf(w, "board page\t%t\n", c.pages == nil || c.pages.Match(info.URL))
	fmt.Fprintf(w, "browser\t%s (pid %d)\n", info.Executable, info.PID)
	fmt.Fprintf(w, "port\t%d\n", info.Port)
	fmt.Fprintf(w, "uptime\t%s\n", info.Uptime)
	w.Flush()

	return Result{Kind: KindInfo, Message: "Session", Detail: strings.TrimRight(b.String(), "\n")}
}

func handleReconnect(ctx context.Context, c *Controller, _ []string) Result {
	if c.reconnect == nil {
		return c.automationError("failed to reconnect", ErrReconnectUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	session, b, err := c.reconnect(ctx)
	if err != nil {
		c.session, c.board = nil, nil
		return c.automationError("failed to reconnect", err)
	}
	c.session, c.board = session, b
	c.logger.Infof("reconnected: %s", session.URL())
	return Result{Kind: KindInfo, Message: "Reconnected to " + session.URL()}
}
