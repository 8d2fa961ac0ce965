// Package main is the entry point for the ProMaster dashboard TUI.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/app"
	"github.com/j-veylop/promaster-tui/internal/config"
	"github.com/j-veylop/promaster-tui/internal/logger"
	"github.com/j-veylop/promaster-tui/internal/services"
	"github.com/j-veylop/promaster-tui/internal/services/session"
	"github.com/j-veylop/promaster-tui/internal/ui/login"
	"github.com/j-veylop/promaster-tui/internal/ui/tabs/dashboard"
	"github.com/j-veylop/promaster-tui/internal/ui/tabs/info"
	"github.com/j-veylop/promaster-tui/internal/ui/tabs/showcase"
	"github.com/j-veylop/promaster-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--logout":
			if err := logout(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Signed out")
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logout removes the stored session without starting the UI.
func logout() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := session.New(cfg.SessionPath)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer func() { _ = store.Close() }()

	return store.Clear()
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// stderr belongs to the TUI, logs go to a file.
	logCloser, err := logger.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	logger.Info("starting", "version", version.GetVersion(), "server", cfg.BaseURL)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Error("error closing services", "error", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	state := model.GetState()
	commands := model.GetCommands()

	// The last signed-in user prefills the form.
	lastUser, lastLanguage := cfg.UserName, cfg.LanguageID
	if sess := svcManager.Session().Current(); sess != nil {
		lastUser = sess.UserName
		if sess.LanguageID != 0 {
			lastLanguage = sess.LanguageID
		}
	}
	model.SetLogin(login.New(state, commands, lastUser, lastLanguage))

	model.SetTabs([]app.Tab{
		dashboard.New(state, commands), // Tab 0: Dashboard
		showcase.New(state, commands),  // Tab 1: Showcase
		info.New(state, cfg),           // Tab 2: Info
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`ProMaster TUI - sales dashboard for ProMaster real-estate projects

Usage:
  pmt [flag]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information
  --logout        Remove the stored session and exit

Keyboard Shortcuts:
  1-3             Switch between tabs (Dashboard, Showcase, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  t / f           Project tag / activity filter
  c / g           Chart / identity filter
  a, [ ]          Cycle statistics axis
  n/p, e          Select series, export it as PNG
  r               Refresh data
  X               Sign out
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  PROMASTER_BASE_URL          Backend base URL
  PROMASTER_USER              User name prefilled on the sign-in form
  SESSION_PATH                Stored session file
  DATABASE_PATH               SQLite cache path
  IMAGE_CACHE_DIR             Extracted project photos
  EXPORT_DIR                  Chart PNG export directory
  LOG_PATH, LOG_LEVEL         Log file and level
  REQUEST_TIMEOUT             Per-request timeout (default: 15s)
  DASHBOARD_REFRESH_INTERVAL  Dashboard polling interval, 0 disables (default: 60s)
  LANGUAGE_ID, PLATFORM_ID    Sign-in language (1-4) and platform
  DESKTOP_NOTIFICATIONS       Notify on new activities (default: true)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/promaster-tui/.env
  - Parent directories of the current directory`)
}
