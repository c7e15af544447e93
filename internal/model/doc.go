// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the recipe chat session.
//
// This package defines the core domain types used throughout the
// application: transcript messages, recipes, the recipe view state machine,
// and the quick-reply suggestion set. The types enforce the session's
// structural invariants (append-only transcript, bounds-checked detail
// selection, wholesale replacement of recipes and suggestions) so the
// packages above them cannot violate those rules by accident.
//
// # Key Types
//
//   - Message: single transcript entry with sender, text, and timestamp
//   - Transcript: append-only ordered log of the conversation
//   - Recipe: immutable recipe snapshot from the backend
//   - ViewState: list/detail state machine over the recipe collection
//   - SuggestionSet: ordered quick-reply strings, replaced wholesale
//
// # Usage
//
// Create a transcript and append a turn:
//
//	tr := model.NewTranscript()
//	tr.Append(model.NewUserMessage("Show me pasta recipes"))
//	tr.Append(model.NewBotMessage("Here are two I like..."))
//
// Drive the recipe view:
//
//	var view model.ViewState
//	if err := view.Select(0, len(recipes)); err != nil {
//	    // index rejected, state unchanged
//	}
package model
