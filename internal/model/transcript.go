// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// WelcomeText is the canonical welcome message. It is the only message in a
// fresh transcript and the only message left after a clear.
const WelcomeText = "Hi! I'm your recipe assistant. Tell me what you're craving " +
	"or what's in your fridge, and I'll find something you can cook."

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only ordered log of the conversation. The only
// permitted mutations are Append and ClearToWelcome, which guarantees the
// displayed history is always a prefix-consistent record of what was sent
// and received.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript containing only the welcome message.
func NewTranscript() *Transcript {
	return &Transcript{
		messages: []Message{NewBotMessage(WelcomeText)},
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// ClearToWelcome discards the whole history and leaves exactly the canonical
// welcome message.
func (t *Transcript) ClearToWelcome() {
	t.messages = []Message{NewBotMessage(WelcomeText)}
}

// Messages returns a copy of the transcript in insertion order. Callers get
// their own slice so they cannot mutate the log out from under the session.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message and true, or a zero message and false
// when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
