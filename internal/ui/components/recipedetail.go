// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tastebud-tui/internal/model"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// RECIPE DETAIL
// =============================================================================

// RecipeDetail renders a single recipe as styled markdown.
type RecipeDetail struct {
	recipe   model.Recipe
	rendered string

	wordWrap int
	theme    *styles.Theme
	renderer *glamour.TermRenderer
}

// NewRecipeDetail creates a recipe detail view.
func NewRecipeDetail(theme *styles.Theme, wordWrap int) RecipeDetail {
	if wordWrap <= 0 {
		wordWrap = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		// Fall back to raw markdown rendering below.
		renderer = nil
	}
	return RecipeDetail{
		wordWrap: wordWrap,
		theme:    theme,
		renderer: renderer,
	}
}

// SetRecipe sets the displayed recipe and re-renders its markdown.
func (d *RecipeDetail) SetRecipe(recipe model.Recipe) {
	d.recipe = recipe
	d.rendered = d.render()
}

// Recipe returns the displayed recipe.
func (d *RecipeDetail) Recipe() model.Recipe {
	return d.recipe
}

func (d *RecipeDetail) render() string {
	md := d.recipe.Markdown()
	if d.renderer == nil {
		return md
	}
	out, err := d.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// View renders the detail view with its footer hint.
func (d RecipeDetail) View() string {
	if d.recipe.Name == "" {
		return ""
	}
	hint := d.theme.ShortcutDesc.Render("esc back - r rate this recipe")
	return d.theme.RecipeDetail.Render(d.rendered) + "\n" + hint
}
