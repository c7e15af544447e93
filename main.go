// tastebud - a terminal client for a recipe recommendation backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tastebud-tui/internal/api"
	"github.com/jeranaias/tastebud-tui/internal/cli"
	"github.com/jeranaias/tastebud-tui/internal/config"
	"github.com/jeranaias/tastebud-tui/internal/session"
	"github.com/jeranaias/tastebud-tui/internal/ui/chat"
	"github.com/jeranaias/tastebud-tui/internal/ui/components"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdBrowse:
		cli.HandleBrowse(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	}
}

// =============================================================================
// TUI ENTRY POINT
// =============================================================================

// runTUI starts the full-screen interface.
func runTUI(args cli.Args) {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "tastebud needs a terminal; try `tastebud chat` or `tastebud browse` when piping")
		os.Exit(1)
	}

	cfg := config.Global()
	if args.URL != "" {
		cfg.Backend.URL = args.URL
	}
	if args.APIKey != "" {
		cfg.Backend.APIKey = args.APIKey
	}

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:           cfg.Backend.URL,
		APIKey:            cfg.Backend.APIKey,
		Timeout:           time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Backend.RequestsPerMinute,
	})

	theme := styles.NewTheme()
	m := NewModel(theme, client, cfg)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Reload the config file while running; edits to ui.* take effect
	// without a restart.
	watcher, err := config.Watch(func(updated *config.Config) {
		config.SetGlobal(updated)
		p.Send(configReloadedMsg{cfg: updated})
	})
	if err == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running tastebud: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// configReloadedMsg carries a freshly loaded config into the event loop.
type configReloadedMsg struct {
	cfg *config.Config
}

// State represents the current application state.
type State int

const (
	StateWelcome State = iota // Welcome screen
	StateChat                 // Chat view
)

// Model is the main Bubble Tea model for the application.
type Model struct {
	state State

	theme *styles.Theme

	width  int
	height int

	chatModel chat.Model
	welcome   components.Welcome
}

// NewModel creates the application model.
func NewModel(theme *styles.Theme, client *api.Client, cfg *config.Config) Model {
	ctrl := session.NewController(client)
	chatModel := chat.New(ctrl, client, theme, cfg)

	welcome := components.NewWelcome(theme)
	welcome.SetVersion(Version)
	welcome.SetBackendURL(cfg.Backend.URL)

	return Model{
		state:     StateWelcome,
		theme:     theme,
		chatModel: chatModel,
		welcome:   welcome,
	}
}

// Init starts the chat model's background commands.
func (m Model) Init() tea.Cmd {
	return m.chatModel.Init()
}

// Update routes messages to the active state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.welcome, _ = m.welcome.Update(msg)
		var cmd tea.Cmd
		m.chatModel, cmd = m.chatModel.Update(msg)
		return m, cmd

	case configReloadedMsg:
		m.chatModel.SetShowSuggestions(msg.cfg.UI.ShowSuggestions)
		return m, nil

	case tea.KeyMsg:
		if m.state == StateWelcome {
			if msg.Type == tea.KeyCtrlC {
				return m, tea.Quit
			}
			// Any key leaves the welcome screen.
			m.state = StateChat
			return m, nil
		}
	}

	if m.state == StateWelcome {
		return m, nil
	}

	var cmd tea.Cmd
	m.chatModel, cmd = m.chatModel.Update(msg)
	return m, cmd
}

// View renders the active state.
func (m Model) View() string {
	switch m.state {
	case StateWelcome:
		return m.welcome.View()
	default:
		return m.chatModel.View()
	}
}
