// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/jeranaias/tastebud-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// FeedbackRequest is the body of POST /feedback. Rating is a 1-5 star value;
// Message carries the optional free-text comment.
type FeedbackRequest struct {
	ConversationID string `json:"conversation_id"`
	Rating         int    `json:"rating"`
	Message        string `json:"message"`
	RecipeID       string `json:"recipe_id"`
}

// clearRequest is the body of POST /clear_preferences.
type clearRequest struct {
	ConversationID string `json:"conversation_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// chatEnvelope covers both response shapes the backend has shipped: the
// structured formatted_response object, and the legacy flat response array.
// Exactly one of the two fields is expected to be present.
type chatEnvelope struct {
	FormattedResponse *formattedResponse `json:"formatted_response"`
	Response          []legacyEntry      `json:"response"`
}

// formattedResponse is the structured shape: bot messages plus the full
// recipe and suggestion refresh for the turn.
type formattedResponse struct {
	Messages    []wireMessage `json:"messages"`
	Recipes     []RecipeDTO   `json:"recipes"`
	Suggestions []string      `json:"suggestions"`
}

// wireMessage is a single bot message in the formatted shape.
type wireMessage struct {
	Content string `json:"content"`
}

// legacyEntry is a single bot message in the legacy flat shape.
type legacyEntry struct {
	Text string `json:"text"`
}

// RecipeDTO is the backend's recipe document. The backend has emitted two
// field spellings over time (RecipeName vs name, id vs _id), so decoding
// accepts both and prefers the newer spelling when both appear.
type RecipeDTO struct {
	ID           string
	Name         string
	Description  string
	Ingredients  []string
	Instructions []string
}

// UnmarshalJSON resolves the field aliases before filling the DTO.
func (r *RecipeDTO) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string   `json:"id"`
		MongoID      string   `json:"_id"`
		Name         string   `json:"name"`
		RecipeName   string   `json:"RecipeName"`
		Description  string   `json:"Description"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.ID = aux.ID
	if r.ID == "" {
		r.ID = aux.MongoID
	}
	r.Name = aux.Name
	if r.Name == "" {
		r.Name = aux.RecipeName
	}
	r.Description = aux.Description
	r.Ingredients = aux.Ingredients
	r.Instructions = aux.Instructions
	return nil
}

// toModel converts the DTO to the internal recipe type.
func (r RecipeDTO) toModel() model.Recipe {
	return model.Recipe{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// recipeListResponse is the body of GET /recipes.
type recipeListResponse struct {
	Recipes []RecipeDTO `json:"recipes"`
}

// =============================================================================
// NORMALIZED TURN RESULT
// =============================================================================

// ResponseShape records which wire shape a turn result was decoded from.
// The session layer uses it to decide whether the turn carries a recipe and
// suggestion refresh (formatted) or only bot text (legacy).
type ResponseShape int

const (
	// ShapeFormatted is the structured formatted_response object.
	ShapeFormatted ResponseShape = iota
	// ShapeLegacy is the flat array of {text} entries. Legacy turns never
	// carry recipes or suggestions.
	ShapeLegacy
)

// String returns a human-readable shape name.
func (s ResponseShape) String() string {
	switch s {
	case ShapeFormatted:
		return "formatted"
	case ShapeLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// TurnResult is the single normalized form every chat response is reduced to
// before the session layer sees it.
type TurnResult struct {
	Shape       ResponseShape
	Messages    []string
	Recipes     []model.Recipe
	Suggestions []string
}
