// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session manages the lifecycle of one recipe chat conversation.
//
// The Controller is the single owner of all per-conversation state: the
// conversation id, the transcript, the recipe collection and its list/detail
// view, the suggestion bar, and the feedback draft. Higher layers never
// mutate that state directly; they go through the controller's operations so
// every invariant lives in one place.
//
// # Turn Lifecycle
//
// A turn is split in two so an event loop can stay responsive while the
// request is in flight:
//
//	seq, text, err := ctrl.BeginTurn(input)   // validates, appends user msg
//	result, err := backend.Chat(ctx, id, text) // off the loop
//	ctrl.ApplyTurn(seq, result, err)           // folds outcome back in
//
// SendTurn composes the three steps for synchronous callers.
//
// Sequence numbers make Clear safe against slow turns: ApplyTurn drops any
// result issued before the most recent Clear, so cleared context never leaks
// back into the transcript.
//
// Clear and feedback follow the same split: BeginClear and BuildFeedback run
// on the loop, the backend call runs off it, and FeedbackDelivered confirms a
// successful submission. Clear and SubmitFeedback compose the phases for
// synchronous callers.
package session
