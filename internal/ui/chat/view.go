// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the rendering logic for the chat interface: the header,
// the transcript viewport, the recipe list and detail panels, the suggestion
// bar, the input row and the status bar.
package chat

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/model"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat view.
// Layout: header + main area (transcript or recipe detail) + recipe list +
// suggestion bar + input row + status bar. The main area absorbs whatever
// height the fixed parts leave over.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	recipes := m.renderRecipePanel()
	suggestions := m.renderSuggestions()
	input := m.renderInput()
	status := m.renderStatusBar()

	fixed := lipgloss.Height(header) + lipgloss.Height(input) + lipgloss.Height(status)
	if recipes != "" {
		fixed += lipgloss.Height(recipes)
	}
	if suggestions != "" {
		fixed += lipgloss.Height(suggestions)
	}

	available := m.height - fixed
	if available < 1 {
		available = 1
	}

	main := m.renderMainArea()
	main = lipgloss.NewStyle().
		Height(available).
		MaxHeight(available).
		Width(m.width).
		Render(main)

	parts := []string{header, main}
	if recipes != "" {
		parts = append(parts, recipes)
	}
	if suggestions != "" {
		parts = append(parts, suggestions)
	}
	parts = append(parts, input, status)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// SECTIONS
// =============================================================================

// renderHeader renders the one-line title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("tastebud")
	subtitle := m.theme.HeaderSubtitle.Render(" recipe chat")
	return m.theme.Header.Width(m.width).Render(title + subtitle)
}

// renderMainArea renders the transcript, or the recipe detail when one is
// open. The feedback form overlays the bottom of the detail card.
func (m Model) renderMainArea() string {
	if m.ctrl.ViewMode() == model.ViewDetail {
		out := m.detail.View()
		if m.focus == FocusFeedback {
			out = lipgloss.JoinVertical(lipgloss.Left, out, m.feedback.View())
		}
		return out
	}
	return m.viewport.View()
}

// renderRecipePanel renders the recipe list below the transcript. Hidden
// while the detail view has the main area.
func (m Model) renderRecipePanel() string {
	if m.recipeList.Len() == 0 || m.ctrl.ViewMode() == model.ViewDetail {
		return ""
	}
	return m.recipeList.View()
}

// renderSuggestions renders the quick-reply bar.
func (m Model) renderSuggestions() string {
	if !m.showSuggestions || m.ctrl.ViewMode() == model.ViewDetail {
		return ""
	}
	return m.suggestions.View()
}

// renderInput renders the input row, or the thinking indicator while a turn
// is in flight.
func (m Model) renderInput() string {
	if m.waiting {
		row := m.spin.View() + " " + m.theme.ThinkingText.Render("Chef is thinking...")
		return m.theme.InputContainer.Width(m.width - 2).Render(row)
	}

	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Width(m.width - 2).Render(prompt + m.input.View())
}

// renderStatusBar renders transient status text, falling back to the
// shortcuts for the focused part of the view.
func (m Model) renderStatusBar() string {
	if m.statusText != "" {
		return m.theme.StatusBar.Width(m.width).Render(m.statusText)
	}
	return m.theme.StatusBar.Width(m.width).Render(m.shortcutHints())
}

// shortcutHints returns the key hints for the current focus.
func (m Model) shortcutHints() string {
	key := func(k, desc string) string {
		return m.theme.ShortcutKey.Render(k) + m.theme.ShortcutDesc.Render(" "+desc+"  ")
	}

	switch m.focus {
	case FocusSuggestions:
		return key("Tab", "next") + key("Enter", "send") + key("Esc", "back")
	case FocusRecipes:
		return key("up/down", "move") + key("Enter", "view") + key("Esc", "back")
	case FocusDetail:
		return key("r", "rate") + key("Esc", "back") + key("C-r", "clear prefs")
	case FocusFeedback:
		return key("left/right", "stars") + key("Enter", "next") + key("Esc", "cancel")
	default:
		return key("Enter", "send") + key("Tab", "suggestions") + key("C-r", "clear prefs") + key("C-c", "quit")
	}
}
