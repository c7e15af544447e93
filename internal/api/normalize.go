// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/jeranaias/tastebud-tui/internal/model"
)

// =============================================================================
// RESPONSE NORMALIZATION
// =============================================================================

// normalizeChatResponse decodes a raw /chat body and reduces either known
// shape to a TurnResult. A body matching neither shape fails with
// ErrMalformedResponse.
func normalizeChatResponse(body []byte) (*TurnResult, error) {
	var env chatEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ClientError{Type: ErrTypeMalformed, Message: "failed to decode chat response", Cause: err}
	}

	switch {
	case env.FormattedResponse != nil:
		return normalizeFormatted(env.FormattedResponse), nil
	case env.Response != nil:
		return normalizeLegacy(env.Response), nil
	default:
		return nil, ErrMalformedResponse
	}
}

func normalizeFormatted(fr *formattedResponse) *TurnResult {
	result := &TurnResult{
		Shape:       ShapeFormatted,
		Messages:    make([]string, 0, len(fr.Messages)),
		Recipes:     make([]model.Recipe, 0, len(fr.Recipes)),
		Suggestions: make([]string, 0, len(fr.Suggestions)),
	}
	for _, m := range fr.Messages {
		result.Messages = append(result.Messages, m.Content)
	}
	for _, dto := range fr.Recipes {
		result.Recipes = append(result.Recipes, dto.toModel())
	}
	result.Suggestions = append(result.Suggestions, fr.Suggestions...)
	return result
}

func normalizeLegacy(entries []legacyEntry) *TurnResult {
	result := &TurnResult{
		Shape:    ShapeLegacy,
		Messages: make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		result.Messages = append(result.Messages, e.Text)
	}
	return result
}
