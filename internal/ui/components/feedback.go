// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// FEEDBACK FORM
// =============================================================================

// FeedbackStage tracks which field of the form has focus.
type FeedbackStage int

const (
	// StageRating is the star picker.
	StageRating FeedbackStage = iota
	// StageComment is the optional free-text comment.
	StageComment
)

// FeedbackForm collects a 1-5 star rating and an optional comment for the
// recipe open in the detail view.
type FeedbackForm struct {
	recipeName string
	rating     int
	stage      FeedbackStage
	comment    textinput.Model

	width int
	theme *styles.Theme
}

// NewFeedbackForm creates a feedback form for the named recipe.
func NewFeedbackForm(theme *styles.Theme, recipeName string) FeedbackForm {
	ti := textinput.New()
	ti.Placeholder = "Optional comment..."
	ti.CharLimit = 280
	ti.Width = 50

	return FeedbackForm{
		recipeName: recipeName,
		rating:     3,
		comment:    ti,
		theme:      theme,
	}
}

// SetSize updates the form width.
func (f *FeedbackForm) SetSize(width int) {
	f.width = width
	if width > 20 {
		f.comment.Width = width - 10
	}
}

// Stage returns the focused field.
func (f *FeedbackForm) Stage() FeedbackStage {
	return f.stage
}

// Rating returns the currently picked star value.
func (f *FeedbackForm) Rating() int {
	return f.rating
}

// Comment returns the trimmed comment text.
func (f *FeedbackForm) Comment() string {
	return strings.TrimSpace(f.comment.Value())
}

// RecipeName returns the name of the recipe being rated.
func (f *FeedbackForm) RecipeName() string {
	return f.recipeName
}

// MoreStars raises the rating, capped at five.
func (f *FeedbackForm) MoreStars() {
	if f.stage == StageRating && f.rating < 5 {
		f.rating++
	}
}

// FewerStars lowers the rating, floored at one.
func (f *FeedbackForm) FewerStars() {
	if f.stage == StageRating && f.rating > 1 {
		f.rating--
	}
}

// NextStage advances from the star picker to the comment field. Returns true
// when the form is complete and ready to submit.
func (f *FeedbackForm) NextStage() bool {
	if f.stage == StageRating {
		f.stage = StageComment
		f.comment.Focus()
		return false
	}
	return true
}

// CommentInput exposes the comment text input for Update wiring.
func (f *FeedbackForm) CommentInput() *textinput.Model {
	return &f.comment
}

// View renders the form.
func (f FeedbackForm) View() string {
	title := f.theme.FeedbackTitle.Render("Rate: " + f.recipeName)

	var stars strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= f.rating {
			stars.WriteString(f.theme.StarFilled.Render("*"))
		} else {
			stars.WriteString(f.theme.StarEmpty.Render("-"))
		}
		stars.WriteString(" ")
	}
	starRow := stars.String()
	if f.stage == StageRating {
		starRow += f.theme.ShortcutDesc.Render(" left/right adjust, enter next")
	}

	lines := []string{title, "", starRow}
	if f.stage == StageComment {
		lines = append(lines, "", f.comment.View(),
			f.theme.ShortcutDesc.Render("enter submit - esc cancel"))
	}

	return f.theme.FeedbackBox.Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
