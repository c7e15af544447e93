// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tastebud-tui/internal/config"
	"github.com/jeranaias/tastebud-tui/internal/session"
	"github.com/jeranaias/tastebud-tui/internal/ui/components"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Focus identifies which part of the chat view receives keyboard input.
type Focus int

const (
	FocusInput       Focus = iota // Message input field
	FocusSuggestions              // Quick-reply suggestion bar
	FocusRecipes                  // Recipe list cursor
	FocusDetail                   // Recipe detail view
	FocusFeedback                 // Star rating form
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the session
// controller and translates key presses and completed network calls into
// controller operations.
type Model struct {
	// Session
	ctrl    *session.Controller
	backend session.Backend

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Input routing
	focus  Focus
	keyMap KeyMap

	// Turn in flight
	waiting bool

	// UI components
	viewport    viewport.Model
	input       textinput.Model
	spin        spinner.Model
	suggestions components.SuggestionBar
	recipeList  components.RecipeList
	detail      components.RecipeDetail
	feedback    components.FeedbackForm

	// Behaviour from config
	showSuggestions bool
	requestTimeout  time.Duration

	// Transient status bar text. statusID invalidates stale expiry ticks.
	statusText string
	statusID   int
}

// New creates the chat view around an existing session controller. The
// backend is the same client the controller was built with; the view calls it
// directly so requests run off the event loop.
func New(ctrl *session.Controller, backend session.Backend, theme *styles.Theme, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "What are you craving?"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	m := Model{
		ctrl:            ctrl,
		backend:         backend,
		theme:           theme,
		keyMap:          DefaultKeyMap(),
		viewport:        vp,
		input:           ti,
		spin:            sp,
		suggestions:     components.NewSuggestionBar(theme),
		recipeList:      components.NewRecipeList(theme),
		detail:          components.NewRecipeDetail(theme, cfg.UI.WordWrap),
		showSuggestions: cfg.UI.ShowSuggestions,
		requestTimeout:  time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
	}
	m.refreshFromSession()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// CurrentFocus returns the part of the view that currently receives keys.
func (m Model) CurrentFocus() Focus {
	return m.focus
}

// Waiting reports whether a turn is in flight.
func (m Model) Waiting() bool {
	return m.waiting
}

// SetShowSuggestions toggles the quick-reply bar, e.g. after a config reload.
func (m *Model) SetShowSuggestions(show bool) {
	m.showSuggestions = show
	if !show && m.focus == FocusSuggestions {
		m.focus = FocusInput
		m.suggestions.Blur()
		m.input.Focus()
	}
}

// =============================================================================
// SESSION SYNC
// =============================================================================

// refreshFromSession pulls transcript, recipes and suggestions out of the
// controller into the UI components. Called after every controller mutation.
func (m *Model) refreshFromSession() {
	m.suggestions.SetEntries(m.ctrl.Suggestions())
	m.recipeList.SetRecipes(m.ctrl.Recipes())
	m.refreshViewport()
}

// refreshViewport re-renders the transcript and pins the view to the latest
// message.
func (m *Model) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(components.RenderTranscript(m.theme, m.ctrl.Messages(), width))
	m.viewport.GotoBottom()
}

// handleResize recomputes component dimensions for a new terminal size.
func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)

	m.viewport.Width = width

	// Fixed chrome: header, input block, status bar, plus whichever footer
	// panel is showing. The estimate errs small; View clamps the remainder.
	chrome := 7
	if m.showSuggestions {
		chrome += 3
	}
	if m.recipeList.Len() > 0 {
		chrome += m.recipeList.Len() + 4
	}
	vpHeight := height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Height = vpHeight

	if width > 12 {
		m.input.Width = width - 8
	}
	m.suggestions.SetSize(width)
	m.recipeList.SetSize(width)
	m.feedback.SetSize(width)

	m.refreshViewport()
}

// setStatus shows a transient status bar message and schedules its expiry.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusID++
	id := m.statusID
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}
