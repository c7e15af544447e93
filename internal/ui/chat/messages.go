// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat view:
//   - Turn messages (chat request lifecycle)
//   - Clear messages (preference reset)
//   - Feedback messages (star rating submission)
//   - Status messages (transient status bar text)
package chat

import (
	"github.com/jeranaias/tastebud-tui/internal/api"
)

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnCompleteMsg carries the outcome of a chat request back into the event
// loop. Seq is the number handed out by BeginTurn; the session controller uses
// it to discard turns that resolved after a clear.
type TurnCompleteMsg struct {
	Seq    uint64
	Result *api.TurnResult
	Err    error
}

// =============================================================================
// CLEAR MESSAGES
// =============================================================================

// ClearDoneMsg signals that the backend was asked to drop its server-side
// preference context. The local session is already reset by the time this
// message arrives.
type ClearDoneMsg struct {
	Err error
}

// =============================================================================
// FEEDBACK MESSAGES
// =============================================================================

// FeedbackSubmittedMsg signals the outcome of a star rating submission.
type FeedbackSubmittedMsg struct {
	Err error
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// statusExpiredMsg clears a transient status bar message after its display
// window elapses.
type statusExpiredMsg struct {
	id int
}
