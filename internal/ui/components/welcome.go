// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN MODEL
// =============================================================================

// Welcome is the welcome screen component.
type Welcome struct {
	version    string
	backendURL string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates a new welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetBackendURL sets the backend URL shown on the screen.
func (w *Welcome) SetBackendURL(url string) {
	w.backendURL = url
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the welcome screen.
func (w Welcome) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (w Welcome) Update(msg tea.Msg) (Welcome, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

// View renders the welcome screen centered in the terminal.
func (w Welcome) View() string {
	width := w.width
	if width == 0 {
		width = 80
	}
	height := w.height
	if height == 0 {
		height = 24
	}

	content := w.renderLogo()
	content += "\n\n" + w.theme.WelcomeVersion.Render("Recipe Chat v"+w.version)
	if w.backendURL != "" {
		content += "\n" + w.theme.WelcomeInfo.Render("Backend: "+w.backendURL)
	}
	content += "\n\n" + w.renderQuickStart()
	content += "\n\n" + w.theme.WelcomePressKey.Render("Press any key to start cooking...")

	boxWidth := 56
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	box := w.theme.WelcomeBox.Width(boxWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// =============================================================================
// RENDER HELPERS
// =============================================================================

// renderLogo renders the ASCII logo. ASCII only for maximum compatibility.
func (w Welcome) renderLogo() string {
	if w.width >= 54 {
		return w.theme.WelcomeLogo.Render(` _            _       _               _
| |_ __ _ ___| |_ ___| |__  _   _  __| |
| __/ _' / __| __/ _ \ '_ \| | | |/ _' |
| || (_| \__ \ ||  __/ |_) | |_| | (_| |
 \__\__,_|___/\__\___|_.__/ \__,_|\__,_|`)
	}
	return w.theme.WelcomeLogo.Render("tastebud - Recipe Chat")
}

// renderQuickStart renders the quick start tips.
func (w Welcome) renderQuickStart() string {
	tips := []string{
		"- Type what you're craving and press Enter",
		"- Tab cycles the quick-reply suggestions",
		"- Enter on a listed recipe opens the full card",
		"- Ctrl+R clears your preferences",
	}
	lines := make([]string, len(tips))
	for i, tip := range tips {
		lines[i] = w.theme.WelcomeInfo.Render(tip)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
