// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/model"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE RENDERING
// =============================================================================

// RenderMessage renders a single transcript message as a chat bubble. User
// messages hug the right edge, bot messages the left, matching the usual
// messenger layout.
func RenderMessage(theme *styles.Theme, msg model.Message, width int) string {
	if width <= 0 {
		width = 80
	}

	// Bubbles take at most three quarters of the row.
	maxBubble := width * 3 / 4
	if maxBubble < 20 {
		maxBubble = 20
	}

	label := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(msg.Sender.DisplayName())

	switch msg.Sender {
	case model.SenderUser:
		bubble := theme.UserBubble.MaxWidth(maxBubble).Render(msg.Text)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	default:
		bubble := theme.BotBubble.MaxWidth(maxBubble).Render(msg.Text)
		return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
	}
}

// RenderTranscript renders the full transcript, most recent message last.
func RenderTranscript(theme *styles.Theme, msgs []model.Message, width int) string {
	if len(msgs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(msgs))
	for _, m := range msgs {
		blocks = append(blocks, RenderMessage(theme, m, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
