// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tastebud-tui/internal/api"
	"github.com/jeranaias/tastebud-tui/internal/session"
	"github.com/jeranaias/tastebud-tui/internal/ui/components"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// chatTurnCmd creates a command that sends one chat turn to the backend. The
// controller has already recorded the outgoing message; the outcome comes
// back as a TurnCompleteMsg and is folded in with ApplyTurn.
func chatTurnCmd(backend session.Backend, timeout time.Duration, conversationID string, seq uint64, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := backend.Chat(ctx, conversationID, text)
		return TurnCompleteMsg{Seq: seq, Result: result, Err: err}
	}
}

// clearPreferencesCmd creates a command that asks the backend to drop its
// server-side preference context. The local session is reset before this
// command is issued.
func clearPreferencesCmd(backend session.Backend, timeout time.Duration, conversationID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ClearDoneMsg{Err: backend.ClearPreferences(ctx, conversationID)}
	}
}

// submitFeedbackCmd creates a command that delivers a staged feedback draft.
func submitFeedbackCmd(backend session.Backend, timeout time.Duration, fb api.FeedbackRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return FeedbackSubmittedMsg{Err: backend.SubmitFeedback(ctx, fb)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case TurnCompleteMsg:
		return m.handleTurnComplete(msg)

	case ClearDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus(styles.RenderError("preferences cleared locally; backend unreachable"))
		}
		return m, m.setStatus(styles.RenderSuccess("preferences cleared"))

	case FeedbackSubmittedMsg:
		return m.handleFeedbackSubmitted(msg)

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.statusText = ""
		}
		return m, nil
	}

	return m, nil
}

// handleTurnComplete folds a finished turn into the session and refreshes
// every component that mirrors controller state.
func (m Model) handleTurnComplete(msg TurnCompleteMsg) (Model, tea.Cmd) {
	m.waiting = false
	m.ctrl.ApplyTurn(msg.Seq, msg.Result, msg.Err)
	m.refreshFromSession()

	// A formatted turn replaces the collection, which closes any detail or
	// feedback view the user had open.
	if msg.Err == nil && msg.Result != nil && msg.Result.Shape == api.ShapeFormatted {
		if m.focus == FocusDetail || m.focus == FocusFeedback {
			m.focus = FocusInput
			m.input.Focus()
		}
	}
	m.handleResize(m.width, m.height)

	if msg.Err != nil {
		return m, m.setStatus(styles.RenderError(friendlyError(msg.Err)))
	}
	return m, nil
}

// handleFeedbackSubmitted closes the form on success and keeps the draft for
// a retry on failure.
func (m Model) handleFeedbackSubmitted(msg FeedbackSubmittedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.setStatus(styles.RenderError("feedback not sent; press Enter to retry"))
	}

	m.ctrl.FeedbackDelivered()
	m.focus = FocusDetail
	return m, m.setStatus(styles.RenderSuccess("thanks for the rating!"))
}

// =============================================================================
// KEY DISPATCH
// =============================================================================

// handleKey routes a key press to the focused part of the view.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Global bindings work regardless of focus.
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Clear):
		m.ctrl.BeginClear()
		m.refreshFromSession()
		m.focus = FocusInput
		m.input.Focus()
		m.handleResize(m.width, m.height)
		return m, clearPreferencesCmd(m.backend, m.requestTimeout, m.ctrl.ID())

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	switch m.focus {
	case FocusInput:
		return m.handleInputKey(msg)
	case FocusSuggestions:
		return m.handleSuggestionKey(msg)
	case FocusRecipes:
		return m.handleRecipeListKey(msg)
	case FocusDetail:
		return m.handleDetailKey(msg)
	case FocusFeedback:
		return m.handleFeedbackKey(msg)
	}
	return m, nil
}

// handleInputKey handles keys while the message input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Next):
		if m.showSuggestions && m.suggestions.Len() > 0 {
			m.focus = FocusSuggestions
			m.input.Blur()
			m.suggestions.Focus()
			return m, nil
		}
		if m.recipeList.Len() > 0 {
			m.focus = FocusRecipes
			m.input.Blur()
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput starts a turn with the input field's content.
func (m Model) submitInput() (Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}

	seq, text, err := m.ctrl.BeginTurn(m.input.Value())
	if err != nil {
		// Empty input is a silent no-op.
		return m, nil
	}

	m.input.Reset()
	m.waiting = true
	m.refreshViewport()
	return m, tea.Batch(
		m.spin.Tick,
		chatTurnCmd(m.backend, m.requestTimeout, m.ctrl.ID(), seq, text),
	)
}

// sendSuggestion starts a turn with a picked suggestion.
func (m Model) sendSuggestion(text string) (Model, tea.Cmd) {
	if m.waiting {
		return m, nil
	}

	seq, trimmed, err := m.ctrl.BeginTurn(text)
	if err != nil {
		return m, nil
	}

	m.focus = FocusInput
	m.suggestions.Blur()
	m.input.Focus()
	m.waiting = true
	m.refreshViewport()
	return m, tea.Batch(
		m.spin.Tick,
		chatTurnCmd(m.backend, m.requestTimeout, m.ctrl.ID(), seq, trimmed),
	)
}

// handleSuggestionKey handles keys while the suggestion bar has focus.
func (m Model) handleSuggestionKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Next):
		m.suggestions.Next()
		return m, nil

	case key.Matches(msg, m.keyMap.Prev):
		m.suggestions.Prev()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if text, ok := m.suggestions.Selected(); ok {
			return m.sendSuggestion(text)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Back):
		m.focus = FocusInput
		m.suggestions.Blur()
		m.input.Focus()
		return m, nil
	}

	switch msg.String() {
	case "left":
		m.suggestions.Prev()
	case "right":
		m.suggestions.Next()
	}
	return m, nil
}

// handleRecipeListKey handles keys while the recipe list has focus.
func (m Model) handleRecipeListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.recipeList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.recipeList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		if err := m.ctrl.SelectRecipe(m.recipeList.Cursor()); err != nil {
			return m, nil
		}
		recipe, _ := m.ctrl.SelectedRecipe()
		m.detail.SetRecipe(recipe)
		m.focus = FocusDetail
		return m, nil

	case key.Matches(msg, m.keyMap.Back), key.Matches(msg, m.keyMap.Next):
		m.focus = FocusInput
		m.input.Focus()
		return m, nil
	}
	return m, nil
}

// handleDetailKey handles keys while the recipe detail view has focus.
func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		if err := m.ctrl.Back(); err == nil {
			m.focus = FocusRecipes
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Rate):
		m.feedback = components.NewFeedbackForm(m.theme, m.detail.Recipe().Name)
		m.feedback.SetSize(m.width)
		m.focus = FocusFeedback
		return m, nil
	}
	return m, nil
}

// handleFeedbackKey handles keys while the star rating form has focus.
func (m Model) handleFeedbackKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Back) {
		m.focus = FocusDetail
		return m, nil
	}

	if m.feedback.Stage() == components.StageRating {
		switch msg.String() {
		case "left", "down":
			m.feedback.FewerStars()
		case "right", "up":
			m.feedback.MoreStars()
		case "enter":
			m.feedback.NextStage()
		}
		return m, nil
	}

	if key.Matches(msg, m.keyMap.Submit) {
		return m.submitFeedback()
	}

	var cmd tea.Cmd
	*m.feedback.CommentInput(), cmd = m.feedback.CommentInput().Update(msg)
	return m, cmd
}

// submitFeedback stages the form values on the controller and delivers them.
func (m Model) submitFeedback() (Model, tea.Cmd) {
	if err := m.ctrl.SetRating(m.feedback.Rating()); err != nil {
		return m, m.setStatus(styles.RenderError(err.Error()))
	}
	if err := m.ctrl.SetComment(m.feedback.Comment()); err != nil {
		return m, m.setStatus(styles.RenderError(err.Error()))
	}

	fb, err := m.ctrl.BuildFeedback()
	if err != nil {
		return m, m.setStatus(styles.RenderError(err.Error()))
	}
	return m, submitFeedbackCmd(m.backend, m.requestTimeout, fb)
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// friendlyError maps client errors onto short status bar text.
func friendlyError(err error) string {
	switch {
	case api.IsRateLimited(err):
		return "slow down a little; the kitchen is rate limiting us"
	case api.IsUnauthorized(err):
		return "backend rejected the API key"
	case api.IsTimeout(err):
		return "backend took too long to answer"
	case api.IsMalformedResponse(err):
		return "backend sent a response we could not read"
	default:
		return "could not reach the backend"
	}
}
