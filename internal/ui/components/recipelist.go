// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/model"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
	"github.com/jeranaias/tastebud-tui/internal/util"
)

// =============================================================================
// RECIPE LIST
// =============================================================================

// RecipeList renders the ranked recipe collection for the latest turn. The
// cursor picks the recipe opened when the user confirms.
type RecipeList struct {
	recipes []model.Recipe
	cursor  int

	width int
	theme *styles.Theme
}

// NewRecipeList creates an empty recipe list.
func NewRecipeList(theme *styles.Theme) RecipeList {
	return RecipeList{theme: theme}
}

// SetRecipes replaces the listed recipes and resets the cursor.
func (l *RecipeList) SetRecipes(recipes []model.Recipe) {
	l.recipes = recipes
	l.cursor = 0
}

// SetSize updates the list width.
func (l *RecipeList) SetSize(width int) {
	l.width = width
}

// CursorUp moves the cursor up one entry.
func (l *RecipeList) CursorUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// CursorDown moves the cursor down one entry.
func (l *RecipeList) CursorDown() {
	if l.cursor < len(l.recipes)-1 {
		l.cursor++
	}
}

// Cursor returns the current cursor index.
func (l *RecipeList) Cursor() int {
	return l.cursor
}

// Len returns the number of listed recipes.
func (l *RecipeList) Len() int {
	return len(l.recipes)
}

// View renders the list.
func (l RecipeList) View() string {
	if len(l.recipes) == 0 {
		return ""
	}

	width := l.width
	if width <= 0 {
		width = 80
	}
	nameWidth := width - 12
	if nameWidth < 20 {
		nameWidth = 20
	}

	title := l.theme.RecipeName.Render("Recipes")
	lines := []string{title}
	for i, r := range l.recipes {
		index := l.theme.RecipeIndex.Render(strconv.Itoa(i+1) + ".")
		name := util.TruncateWidth(r.Name, nameWidth)

		row := index + " " + name
		if i == l.cursor {
			row = l.theme.RecipeItemSelected.Render(row)
		} else {
			row = l.theme.RecipeItem.Render(row)
		}
		lines = append(lines, row)

		if r.Description != "" && i == l.cursor {
			desc := util.TruncateWidth(r.Description, nameWidth)
			lines = append(lines, l.theme.RecipeMeta.Render("     "+desc))
		}
	}

	hint := l.theme.ShortcutDesc.Render("enter view - up/down move")
	lines = append(lines, hint)

	return l.theme.RecipeList.Width(width - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
