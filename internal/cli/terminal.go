// terminal.go - Terminal detection and handling for the tastebud CLI.
//
// Provides TTY detection, terminal width detection and color output control
// so the CLI behaves sensibly when piped or run under CI (respects NO_COLOR).
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal. Interactive prompts are only
// possible when this holds.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal. Colored output should be
// limited to a real terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const defaultTermWidth = 80

// TerminalWidth returns the current terminal width, falling back to 80 when
// stdout is not a terminal or the size cannot be read.
func TerminalWidth() int {
	if !IsStdoutTTY() {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

// ColorEnabled reports whether colored output should be produced. Respects
// the NO_COLOR convention and falls back to plain text when piped.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsStdoutTTY() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}
