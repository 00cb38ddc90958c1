// Package main provides the tilted binary: it launches the user's browser on
// the chess.com board and relays moves typed in UCI notation as pointer drags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/tilted/pkg/board"
	"github.com/entrhq/tilted/pkg/browser"
	appconfig "github.com/entrhq/tilted/pkg/config"
	"github.com/entrhq/tilted/pkg/controller"
	"github.com/entrhq/tilted/pkg/executor/cli"
	"github.com/entrhq/tilted/pkg/executor/headless"
	"github.com/entrhq/tilted/pkg/executor/tui"
	"github.com/entrhq/tilted/pkg/logging"
	"github.com/entrhq/tilted/pkg/ui"
)

const version = "0.1.0" // Version of tilted

// Config holds the command-line configuration
type Config struct {
	ConfigPath  string
	Port        int
	Browser     string
	StartURL    string
	TUI         bool
	NoColor     bool
	Script      string
	WriteConfig bool
	ShowVersion bool
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("%s v%s\n", ui.AppName, version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nShutting down gracefully...")
		cancel()
	}()

	if runErr := run(ctx, config); runErr != nil {
		cancel()
		for _, hint := range troubleshootingHints(runErr) {
			fmt.Fprintf(os.Stderr, "  • %s\n", hint)
		}
		log.Fatalf("Application error: %v", runErr)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "config", "", "Configuration file, .json or .yaml (default: ~/.tilted/config.json)")
	flag.IntVar(&config.Port, "port", 0, fmt.Sprintf("Remote-debugging port (default %d)", appconfig.DefaultDebuggingPort))
	flag.StringVar(&config.Browser, "browser", "", "Browser executable (or set "+browser.EnvBrowserPath+")")
	flag.StringVar(&config.StartURL, "url", "", "Page opened at start-up (default "+appconfig.DefaultStartURL+")")
	flag.BoolVar(&config.TUI, "tui", false, "Use the interactive full-screen interface")
	flag.BoolVar(&config.NoColor, "no-color", false, "Disable colored output")
	flag.StringVar(&config.Script, "script", "", "Play the moves of a YAML script instead of reading the terminal")
	flag.BoolVar(&config.WriteConfig, "write-config", false, "Write the effective configuration file and exit")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tilted - play chess.com moves typed in UCI notation\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tilted [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s  Browser executable, overrides configuration\n", browser.EnvBrowserPath)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tilted                                   # Launch Edge on chess.com/variants\n")
		fmt.Fprintf(os.Stderr, "  tilted -browser /usr/bin/google-chrome -port 9333\n")
		fmt.Fprintf(os.Stderr, "  tilted -tui -config ~/.tilted/config.yaml\n")
		fmt.Fprintf(os.Stderr, "  tilted -script italian.yaml              # Play a prepared line\n")
	}

	flag.Parse()
	return config
}

// applyFlags layers command-line values over the loaded configuration and
// validates the result.
func applyFlags(config *Config) error {
	appconfig.GetBrowser().Override(config.Browser, config.Port, config.StartURL)

	uiSection := appconfig.GetUI()
	if config.NoColor {
		uiSection.SetColor(false)
	}
	if config.TUI {
		uiSection.SetTUI(true)
	}

	if err := appconfig.Global().ValidateAll(); err != nil {
		return fmt.Errorf("invalid command-line options: %w", err)
	}
	return nil
}

// run executes the main application logic
func run(ctx context.Context, config *Config) error {
	if err := appconfig.Initialize(config.ConfigPath); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlags(config); err != nil {
		return err
	}
	browserSection := appconfig.GetBrowser()
	uiSection := appconfig.GetUI()

	if config.WriteConfig {
		if err := appconfig.Global().SaveAll(); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		if store, ok := appconfig.Global().Store().(*appconfig.FileStore); ok {
			fmt.Printf("Configuration written to %s\n", store.Path())
		}
		return nil
	}

	level, _ := logging.ParseLevel(uiSection.Level())
	logging.SetLevel(level)
	logger, err := logging.NewLogger("tilted")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()
	logger.Infof("tilted v%s starting", version)

	var script *headless.Config
	if config.Script != "" {
		if script, err = headless.LoadConfig(config.Script); err != nil {
			return err
		}
	}

	boardSettings := appconfig.GetBoard().Snapshot()
	pages, err := browser.NewPageMatcher(boardSettings.PagePatterns)
	if err != nil {
		return err
	}

	launcher := browser.NewLauncher(launchSettings(browserSection.Snapshot()), pages, logger.With("browser"))
	if err := launcher.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := launcher.Shutdown(); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
	}()

	painter := ui.NewPainter(uiSection.ColorEnabled())
	fmt.Println(painter.Paint(ui.TipsStyle, "Launching browser..."))

	session, err := launcher.Launch(ctx)
	if err != nil {
		return ignoreCancel(err)
	}
	logger.Infof("connected to %s on port %d", session.Executable, session.Port)

	playOptions := boardOptions(boardSettings)
	newBoard := func(s *browser.Session) controller.Board {
		return board.NewChessCom(s, playOptions, logger.With("board"))
	}

	opts := []controller.Option{
		controller.WithPageMatcher(pages, boardSettings.RequireBoardPage),
		controller.WithLogger(logger.With("controller")),
		controller.WithReconnect(func(ctx context.Context) (controller.Session, controller.Board, error) {
			s, err := launcher.Reconnect(ctx)
			if err != nil {
				return nil, nil, err
			}
			return s, newBoard(s), nil
		}),
	}
	if uiSection.ClipboardEnabled() {
		opts = append(opts, controller.WithClipboard(ui.CopyToClipboard))
	}
	ctrl := controller.New(session, newBoard(session), opts...)

	if script != nil {
		executor, err := headless.NewExecutor(ctrl, script,
			headless.WithPainter(painter),
			headless.WithLogger(logger.With("script")),
		)
		if err != nil {
			return err
		}
		_, err = executor.Run(ctx)
		return ignoreCancel(err)
	}

	if uiSection.TUIEnabled() {
		executor := tui.NewExecutor(ctrl,
			tui.WithHighlightStyle(uiSection.Style()),
			tui.WithVersion("v"+version),
			tui.WithLogger(logger.With("tui")),
		)
		return ignoreCancel(executor.Run(ctx))
	}

	executor := cli.NewExecutor(ctrl,
		cli.WithPainter(painter),
		cli.WithHighlightStyle(uiSection.Style()),
		cli.WithBanner(ui.Banner("v"+version, painter)),
		cli.WithLogger(logger.With("cli")),
	)
	return ignoreCancel(executor.Run(ctx))
}

// launchSettings converts the stored browser section into launcher settings.
func launchSettings(s appconfig.BrowserSettings) browser.Settings {
	return browser.Settings{
		Flavor:         s.Flavor,
		Executable:     s.Executable,
		Port:           s.Port,
		StartURL:       s.StartURL,
		StartupTimeout: s.StartupTimeout,
		UserDataDir:    s.UserDataDir,
		ExtraArgs:      s.ExtraArgs,
	}
}

func boardOptions(s appconfig.BoardSettings) board.Options {
	return board.Options{
		Selectors:        s.Selectors,
		DragSteps:        s.DragSteps,
		PromotionTimeout: s.PromotionTimeout,
		ConfirmMoves:     s.ConfirmMoves,
		ConfirmTimeout:   s.ConfirmTimeout,
		Orientation:      s.Orientation,
	}
}

// ignoreCancel treats Ctrl+C as a clean exit.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
