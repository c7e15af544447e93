// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// browse.go - Recipe browsing command handler for the tastebud CLI.
//
// Handles "tastebud browse", which fetches recipes outside any conversation,
// optionally filtered by diet and cuisine.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/tastebud-tui/internal/config"
)

// HandleBrowse implements "tastebud browse [--diet D] [--cuisine C] [--json]".
func HandleBrowse(args Args) {
	cfg := config.Global()
	client := newBackendClient(cfg, args)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Backend.TimeoutSecs)*time.Second)
	defer cancel()

	recipes, err := client.ListRecipes(ctx, args.Diet, args.Cuisine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recipes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(recipes) == 0 {
		fmt.Println(infoStyle.Render("No recipes matched those filters."))
		return
	}

	var renderer *glamour.TermRenderer
	if ColorEnabled() {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(TerminalWidth(), cfg.UI.WordWrap)),
		)
	}

	for _, recipe := range recipes {
		md := recipe.Markdown()
		if renderer != nil {
			if out, err := renderer.Render(md); err == nil {
				fmt.Print(out)
				continue
			}
		}
		fmt.Println(md)
		fmt.Println("---")
	}
}
