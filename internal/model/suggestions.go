// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// defaultSuggestions is the fixed starter set shown at session start and
// after a clear. The entries mirror the backend's generic suggestion list so
// a fresh session and a context-free turn offer the same chips.
var defaultSuggestions = []string{
	"Show me vegetarian recipes",
	"What can I make in 30 minutes?",
	"I want Italian food",
	"Show me dessert recipes",
	"What can I cook with chicken and rice?",
	"Clear my preferences",
}

// DefaultSuggestions returns a fresh copy of the starter suggestion set.
func DefaultSuggestions() []string {
	out := make([]string, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}

// =============================================================================
// SUGGESTION SET
// =============================================================================

// SuggestionSet holds the current quick-reply strings in display order.
// Each bot turn replaces the set wholesale; there is no merging or
// de-duplication against prior turns.
type SuggestionSet struct {
	entries []string
}

// NewSuggestionSet creates a suggestion set holding the default entries.
func NewSuggestionSet() *SuggestionSet {
	return &SuggestionSet{entries: DefaultSuggestions()}
}

// Replace overwrites the previous entries with the given ones.
func (s *SuggestionSet) Replace(entries []string) {
	s.entries = make([]string, len(entries))
	copy(s.entries, entries)
}

// ResetToDefault restores the fixed starter set.
func (s *SuggestionSet) ResetToDefault() {
	s.entries = DefaultSuggestions()
}

// Entries returns a copy of the current suggestions in display order.
func (s *SuggestionSet) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of suggestions.
func (s *SuggestionSet) Len() int {
	return len(s.entries)
}
