// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the tastebud command line interface: argument
// parsing, the line-oriented chat REPL, recipe browsing, and configuration
// management. The TUI itself lives in internal/ui; this package covers
// everything reachable without a full-screen terminal.
package cli
