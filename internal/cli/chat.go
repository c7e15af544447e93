// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the tastebud CLI.
//
// Handles the "tastebud chat" command, a line-oriented REPL over the same
// session controller the TUI uses. Meant for dumb terminals and scripting;
// the TUI is the primary interface.
//
// Interactive commands (during chat):
//   /recipes            List the recipes from the latest turn
//   /select N           Open recipe N
//   /back               Return from a recipe to the list
//   /rate N             Stage a 1-5 star rating for the open recipe
//   /comment TEXT       Stage an optional comment
//   /feedback           Send the staged rating and comment
//   /suggest            Show the current quick replies
//   /clear              Clear preferences and start over
//   /help               Show available commands
//   /quit               Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/tastebud-tui/internal/api"
	"github.com/jeranaias/tastebud-tui/internal/config"
	"github.com/jeranaias/tastebud-tui/internal/model"
	"github.com/jeranaias/tastebud-tui/internal/session"
	"github.com/jeranaias/tastebud-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Arrow keys navigate
// the history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// chatSession holds the state for one interactive REPL session.
type chatSession struct {
	ctrl     *session.Controller
	cfg      *config.Config
	input    *ChatCLI
	renderer *glamour.TermRenderer
	quiet    bool
}

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) {
	cfg := config.Global()
	client := newBackendClient(cfg, args)

	var renderer *glamour.TermRenderer
	if ColorEnabled() {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(TerminalWidth(), cfg.UI.WordWrap)),
		)
	}

	s := &chatSession{
		ctrl:     session.NewController(client),
		cfg:      cfg,
		input:    NewChatCLI(),
		renderer: renderer,
		quiet:    args.Quiet,
	}
	defer s.input.Close()

	if !s.quiet {
		fmt.Println(commandStyle.Render("tastebud chat") + infoStyle.Render("  ("+cfg.Backend.URL+")"))
		fmt.Println(infoStyle.Render("Type what you're craving, or /help for commands."))
		fmt.Println()
		s.printBotText(model.WelcomeText)
	}

	s.loop()
}

// loop reads and dispatches input until the user quits.
func (s *chatSession) loop() {
	for {
		input, err := s.input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(infoStyle.Render("(/quit to exit)"))
				continue
			}
			// io.EOF on Ctrl+D
			fmt.Println()
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "/") {
			if quit := s.dispatchCommand(trimmed); quit {
				return
			}
			continue
		}

		s.sendTurn(trimmed)
	}
}

// requestCtx returns a context bounded by the configured request timeout.
func (s *chatSession) requestCtx() (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.Backend.TimeoutSecs) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

// sendTurn runs one full turn and prints whatever the session gained.
func (s *chatSession) sendTurn(text string) {
	before := len(s.ctrl.Messages())

	ctx, cancel := s.requestCtx()
	err := s.ctrl.SendTurn(ctx, text)
	cancel()
	if errors.Is(err, session.ErrEmptyMessage) {
		return
	}

	// The transcript already holds the bot reply or the apology.
	msgs := s.ctrl.Messages()
	for _, msg := range msgs[before:] {
		if msg.Sender == model.SenderBot {
			s.printBotText(msg.Text)
		}
	}

	if recipes := s.ctrl.Recipes(); err == nil && len(recipes) > 0 {
		fmt.Println(infoStyle.Render(fmt.Sprintf("%d recipes on offer; /recipes to list them", len(recipes))))
	}
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// dispatchCommand handles a slash command. Returns true when the REPL should
// exit.
func (s *chatSession) dispatchCommand(input string) bool {
	parts := strings.SplitN(input, " ", 2)
	cmd := strings.ToLower(parts[0])
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "/quit", "/q", "/exit":
		return true

	case "/help", "/h":
		s.printHelp()

	case "/recipes", "/r":
		s.printRecipes()

	case "/select", "/s":
		s.selectRecipe(rest)

	case "/back", "/b":
		if err := s.ctrl.Back(); err != nil {
			fmt.Println(warningStyle.Render("Not viewing a recipe right now."))
		} else {
			s.printRecipes()
		}

	case "/rate":
		s.stageRating(rest)

	case "/comment":
		if err := s.ctrl.SetComment(rest); err != nil {
			fmt.Println(warningStyle.Render("Open a recipe with /select before commenting."))
		} else {
			fmt.Println(infoStyle.Render("Comment staged; /feedback to send."))
		}

	case "/feedback", "/f":
		s.submitFeedback()

	case "/suggest":
		s.printSuggestions()

	case "/clear", "/c":
		s.clear()

	default:
		fmt.Println(warningStyle.Render("Unknown command: " + cmd + " (/help for commands)"))
	}
	return false
}

// printHelp lists the REPL commands.
func (s *chatSession) printHelp() {
	rows := [][2]string{
		{"/recipes", "list the recipes from the latest turn"},
		{"/select N", "open recipe N"},
		{"/back", "return from a recipe to the list"},
		{"/rate N", "stage a 1-5 star rating for the open recipe"},
		{"/comment TEXT", "stage an optional comment"},
		{"/feedback", "send the staged rating and comment"},
		{"/suggest", "show the current quick replies"},
		{"/clear", "clear preferences and start over"},
		{"/quit", "exit"},
	}
	for _, row := range rows {
		fmt.Printf("  %s %s\n",
			commandStyle.Render(fmt.Sprintf("%-14s", row[0])),
			infoStyle.Render(row[1]))
	}
}

// printRecipes lists the current recipe collection.
func (s *chatSession) printRecipes() {
	recipes := s.ctrl.Recipes()
	if len(recipes) == 0 {
		fmt.Println(infoStyle.Render("No recipes yet; ask for something first."))
		return
	}
	for i, r := range recipes {
		line := fmt.Sprintf("%2d. %s", i+1, r.Name)
		if r.Description != "" {
			line += infoStyle.Render(" - " + r.Description)
		}
		fmt.Println(line)
	}
	fmt.Println(infoStyle.Render("/select N to open one"))
}

// selectRecipe opens the detail view for a 1-based index.
func (s *chatSession) selectRecipe(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println(warningStyle.Render("Usage: /select N"))
		return
	}
	if err := s.ctrl.SelectRecipe(n - 1); err != nil {
		fmt.Println(warningStyle.Render("No recipe with that number."))
		return
	}

	recipe, _ := s.ctrl.SelectedRecipe()
	s.printMarkdown(recipe.Markdown())
	fmt.Println(infoStyle.Render("/rate N to rate it, /back for the list"))
}

// stageRating stages a star rating for the open recipe.
func (s *chatSession) stageRating(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println(warningStyle.Render("Usage: /rate N  (1-5)"))
		return
	}
	switch err := s.ctrl.SetRating(n); {
	case errors.Is(err, session.ErrNoRecipeSelected):
		fmt.Println(warningStyle.Render("Open a recipe with /select before rating."))
	case errors.Is(err, session.ErrRatingOutOfRange):
		fmt.Println(warningStyle.Render("Ratings go from 1 to 5."))
	case err == nil:
		fmt.Println(infoStyle.Render(fmt.Sprintf("Staged %d star(s); /feedback to send.", n)))
	}
}

// submitFeedback sends the staged draft.
func (s *chatSession) submitFeedback() {
	ctx, cancel := s.requestCtx()
	err := s.ctrl.SubmitFeedback(ctx)
	cancel()

	switch {
	case errors.Is(err, session.ErrNoRecipeSelected):
		fmt.Println(warningStyle.Render("Open a recipe with /select first."))
	case errors.Is(err, session.ErrRatingUnset):
		fmt.Println(warningStyle.Render("Stage a rating with /rate first."))
	case err != nil:
		fmt.Println(styles.RenderError("Could not send feedback; your draft is kept, try /feedback again."))
	default:
		fmt.Println(styles.RenderSuccess("Thanks for the rating!"))
	}
}

// printSuggestions shows the current quick replies.
func (s *chatSession) printSuggestions() {
	for _, sug := range s.ctrl.Suggestions() {
		fmt.Println("  " + commandStyle.Render(sug))
	}
}

// clear resets the session locally and notifies the backend.
func (s *chatSession) clear() {
	ctx, cancel := s.requestCtx()
	err := s.ctrl.Clear(ctx)
	cancel()

	if err != nil {
		fmt.Println(warningStyle.Render("Preferences cleared locally; the backend could not be reached."))
	} else {
		fmt.Println(styles.RenderSuccess("Preferences cleared."))
	}
	s.printBotText(model.WelcomeText)
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

// printBotText prints a bot message with the chef prefix.
func (s *chatSession) printBotText(text string) {
	prefix := botStyle.Render(model.SenderBot.DisplayName() + "> ")
	fmt.Println(prefix + text)
}

// printMarkdown renders markdown through glamour when the terminal supports
// it, raw otherwise.
func (s *chatSession) printMarkdown(md string) {
	if s.renderer != nil {
		if out, err := s.renderer.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(md)
}

// newBackendClient builds the API client from config plus CLI overrides.
func newBackendClient(cfg *config.Config, args Args) *api.Client {
	clientCfg := &api.ClientConfig{
		BaseURL:           cfg.Backend.URL,
		APIKey:            cfg.Backend.APIKey,
		Timeout:           time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.Backend.RequestsPerMinute,
	}
	if args.URL != "" {
		clientCfg.BaseURL = args.URL
	}
	if args.APIKey != "" {
		clientCfg.APIKey = args.APIKey
	}
	return api.NewClientWithConfig(clientCfg)
}
