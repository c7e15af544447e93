// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
	"github.com/jeranaias/tastebud-tui/internal/util"
)

// =============================================================================
// SUGGESTION BAR
// =============================================================================

// maxChipWidth keeps a single long suggestion from swallowing the whole bar.
const maxChipWidth = 36

// SuggestionBar renders the current quick-reply suggestions as a row of
// chips. One chip can be focused; Enter on a focused chip sends its text as
// the next turn.
type SuggestionBar struct {
	entries []string
	cursor  int
	focused bool

	width int
	theme *styles.Theme
}

// NewSuggestionBar creates a suggestion bar with no entries.
func NewSuggestionBar(theme *styles.Theme) SuggestionBar {
	return SuggestionBar{theme: theme}
}

// SetEntries replaces the chips. The cursor is clamped to the new length.
func (s *SuggestionBar) SetEntries(entries []string) {
	s.entries = entries
	if s.cursor >= len(entries) {
		s.cursor = 0
	}
}

// SetSize updates the bar width.
func (s *SuggestionBar) SetSize(width int) {
	s.width = width
}

// Focus gives the bar keyboard focus.
func (s *SuggestionBar) Focus() {
	s.focused = true
}

// Blur removes keyboard focus.
func (s *SuggestionBar) Blur() {
	s.focused = false
}

// Focused reports whether the bar has keyboard focus.
func (s *SuggestionBar) Focused() bool {
	return s.focused
}

// Next moves the cursor to the next chip, wrapping around.
func (s *SuggestionBar) Next() {
	if len(s.entries) == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % len(s.entries)
}

// Prev moves the cursor to the previous chip, wrapping around.
func (s *SuggestionBar) Prev() {
	if len(s.entries) == 0 {
		return
	}
	s.cursor = (s.cursor - 1 + len(s.entries)) % len(s.entries)
}

// Selected returns the focused chip's text and true when the bar is focused
// and non-empty.
func (s *SuggestionBar) Selected() (string, bool) {
	if !s.focused || len(s.entries) == 0 {
		return "", false
	}
	return s.entries[s.cursor], true
}

// Len returns the number of chips.
func (s *SuggestionBar) Len() int {
	return len(s.entries)
}

// View renders the chips. Chips that would overflow the width wrap to the
// next row.
func (s SuggestionBar) View() string {
	if len(s.entries) == 0 {
		return ""
	}

	width := s.width
	if width <= 0 {
		width = 80
	}

	chips := make([]string, 0, len(s.entries))
	for i, entry := range s.entries {
		text := util.TruncateWidth(entry, maxChipWidth)
		style := s.theme.SuggestionChip
		if s.focused && i == s.cursor {
			style = s.theme.SuggestionChipSelected
		}
		chips = append(chips, style.Render(text))
	}

	// Greedy row wrap.
	var rows []string
	var row string
	for _, chip := range chips {
		if row != "" && lipgloss.Width(row)+lipgloss.Width(chip) > width {
			rows = append(rows, row)
			row = ""
		}
		if row == "" {
			row = chip
		} else {
			row = lipgloss.JoinHorizontal(lipgloss.Top, row, chip)
		}
	}
	if row != "" {
		rows = append(rows, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
