// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the tastebud TUI.
//
// Each component is a small Bubble Tea model owned by the chat screen:
// message bubbles, the quick-reply suggestion bar, the recipe list and
// detail views, the star-rating feedback form, and the welcome screen.
// Components render with the shared styles.Theme so the whole application
// keeps one visual language.
package components
