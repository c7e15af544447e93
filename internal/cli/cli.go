// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for tastebud.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jeranaias/tastebud-tui/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdBrowse
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	URL    string // Backend URL override
	APIKey string // API key override
	Quiet  bool
	JSON   bool

	// browse
	Diet    string
	Cuisine string

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args after the command word
	Raw []string
}

const usageText = `tastebud - conversational recipe finder

Tastebud is a terminal client for a recipe recommendation backend.
Chat about what you feel like eating, browse the suggested recipes,
and rate the ones you try so the recommendations improve.

Usage:
  tastebud                   Start the TUI (default)
  tastebud chat              Line-oriented chat REPL (for dumb terminals)
  tastebud browse            Browse recipes without a conversation
    --diet DIET              Filter by diet (e.g. vegetarian, vegan)
    --cuisine CUISINE        Filter by cuisine (e.g. italian, thai)
    --json                   Print the raw recipe list as JSON
  tastebud config [show|set|path]
                             Show or change configuration
  tastebud version, -v       Show version information
  tastebud help, -h          Show this help

Global flags:
  --url URL                  Backend URL (overrides config)
  --api-key KEY              API key for the backend (overrides config)
  -q, --quiet                Minimal output

Chat REPL commands:
  /recipes                   List the recipes from the latest turn
  /select N                  Open recipe N from the list
  /back                      Return from a recipe to the list
  /rate N                    Stage a 1-5 star rating for the open recipe
  /comment TEXT              Stage an optional comment
  /feedback                  Send the staged rating and comment
  /suggest                   Show the current quick replies
  /clear                     Clear preferences and start over
  /quit                      Exit

Configuration:
  tastebud config show       Print the active configuration
  tastebud config set KEY VALUE
                             Set a value (backend.url, backend.api_key,
                             backend.timeout_secs, ui.theme, ui.word_wrap,
                             ui.show_suggestions)
  tastebud config path       Print the config file location

Environment:
  TASTEBUD_URL               Backend URL override
  TASTEBUD_API_KEY           API key override
  NO_COLOR                   Disable colored output
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out of Parse for testing.
func ParseArgs(raw []string) (Command, Args) {
	parser := NewArgParser(raw)

	args := Args{
		URL:    parser.Flag("url"),
		APIKey: parser.Flag("api-key"),
		Quiet:  parser.BoolFlag("quiet") || parser.BoolFlag("q"),
		JSON:   parser.BoolFlag("json"),
		Raw:    raw,
	}

	if parser.BoolFlag("help") || parser.BoolFlag("h") {
		return CmdHelp, args
	}
	if parser.BoolFlag("version") || parser.BoolFlag("v") {
		return CmdVersion, args
	}

	switch parser.Subcommand() {
	case "":
		return CmdTUI, args
	case "chat":
		return CmdChat, args
	case "browse":
		args.Diet = parser.Flag("diet")
		args.Cuisine = parser.Flag("cuisine")
		return CmdBrowse, args
	case "config":
		args.Subcommand = parser.Positional(1)
		args.ConfigKey = parser.Positional(2)
		args.ConfigVal = parser.Positional(3)
		return CmdConfig, args
	case "version":
		return CmdVersion, args
	case "help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", parser.Subcommand())
		return CmdHelp, args
	}
}

// =============================================================================
// SIMPLE HANDLERS
// =============================================================================

// HandleHelp prints usage information.
func HandleHelp(_ Args) {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion(_ Args) {
	fmt.Printf("tastebud %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// HandleConfig implements "tastebud config [show|set|path]".
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		cfg := config.Global()
		fmt.Printf("backend.url             = %s\n", cfg.Backend.URL)
		fmt.Printf("backend.api_key         = %s\n", maskKey(cfg.Backend.APIKey))
		fmt.Printf("backend.timeout_secs    = %d\n", cfg.Backend.TimeoutSecs)
		fmt.Printf("backend.requests_per_minute = %d\n", cfg.Backend.RequestsPerMinute)
		fmt.Printf("ui.theme                = %s\n", cfg.UI.Theme)
		fmt.Printf("ui.word_wrap            = %d\n", cfg.UI.WordWrap)
		fmt.Printf("ui.show_suggestions     = %v\n", cfg.UI.ShowSuggestions)

	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			fmt.Fprintln(os.Stderr, "Usage: tastebud config set KEY VALUE")
			os.Exit(1)
		}
		if err := setConfigValue(args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Set %s = %s\n", args.ConfigKey, args.ConfigVal)

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		os.Exit(1)
	}
}

// setConfigValue updates one key in the config file.
func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return config.Save(cfg)
}

// maskKey hides all but the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(unset)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
