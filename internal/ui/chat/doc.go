// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view owns a session.Controller and keeps the event loop free of
// network calls: key presses run the controller's local phase (BeginTurn,
// BeginClear, the feedback draft), a tea.Cmd performs the request off the
// loop, and the completion message folds the outcome back in (ApplyTurn,
// FeedbackDelivered).
//
// Keyboard focus moves between the input field, the suggestion bar, the
// recipe list, the recipe detail card and the star rating form; the Focus
// type in model.go tracks which one receives keys.
package chat
