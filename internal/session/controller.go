// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/tastebud-tui/internal/api"
	"github.com/jeranaias/tastebud-tui/internal/model"
)

// ApologyText is appended as a bot message when a turn fails. The session
// stays usable; recipes and suggestions are left exactly as they were.
const ApologyText = "Sorry, I'm having trouble reaching the kitchen right now. Please try again."

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// Validation errors are rejected before any network call and never become
// transcript messages.
var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrRatingUnset      = errors.New("no rating selected")
	ErrNoRecipeSelected = errors.New("no recipe selected")
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the slice of the API client the controller needs. Tests swap in
// a fake; production passes *api.Client.
type Backend interface {
	Chat(ctx context.Context, conversationID, message string) (*api.TurnResult, error)
	SubmitFeedback(ctx context.Context, fb api.FeedbackRequest) error
	ClearPreferences(ctx context.Context, conversationID string) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns all conversational state for one session: the conversation
// id, the transcript, the recipe collection with its view state, the
// suggestion bar, and the in-progress feedback draft.
//
// The controller is not safe for concurrent use. It is designed to be owned
// by a single event loop; network calls happen between BeginTurn and
// ApplyTurn so the loop is never blocked while a request is in flight.
type Controller struct {
	id      string
	backend Backend

	transcript  *model.Transcript
	recipes     []model.Recipe
	view        model.ViewState
	suggestions *model.SuggestionSet

	// Turn sequence numbers. Each BeginTurn hands out the next number;
	// Clear records a watermark and ApplyTurn discards any result whose
	// number predates it, so a turn that was in flight when the user
	// cleared cannot resurrect pre-clear context in the transcript.
	nextSeq      uint64
	lastClearSeq uint64

	// Feedback draft for the currently selected recipe.
	rating    int
	ratingSet bool
	comment   string
}

// NewController starts a fresh session with a newly generated conversation id.
func NewController(backend Backend) *Controller {
	return &Controller{
		id:          uuid.NewString(),
		backend:     backend,
		transcript:  model.NewTranscript(),
		suggestions: model.NewSuggestionSet(),
	}
}

// ID returns the conversation id sent with every backend call.
func (c *Controller) ID() string {
	return c.id
}

// =============================================================================
// TURNS
// =============================================================================

// BeginTurn validates and records the outgoing user message and returns the
// turn's sequence number together with the text to send. Empty or
// whitespace-only input fails with ErrEmptyMessage and issues no request.
//
// The caller performs the network call itself and feeds the outcome to
// ApplyTurn with the same sequence number.
func (c *Controller) BeginTurn(text string) (uint64, string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, "", ErrEmptyMessage
	}

	c.nextSeq++
	seq := c.nextSeq
	c.transcript.Append(model.NewUserMessage(trimmed))
	return seq, trimmed, nil
}

// ApplyTurn folds a completed turn into the session. Results whose sequence
// number predates the last clear are dropped without touching any state.
//
// On error the transcript gains a single apology message and the recipe
// collection and suggestion bar are left unchanged. On success the bot
// messages are appended; a formatted result additionally replaces the recipe
// collection (resetting the view to the list and discarding any feedback
// draft) and replaces the suggestion bar. A legacy result carries text only
// and leaves recipes and suggestions untouched.
func (c *Controller) ApplyTurn(seq uint64, result *api.TurnResult, turnErr error) {
	if seq <= c.lastClearSeq {
		return
	}

	if turnErr != nil {
		c.transcript.Append(model.NewBotMessage(ApologyText))
		return
	}

	for _, text := range result.Messages {
		c.transcript.Append(model.NewBotMessage(text))
	}

	if result.Shape == api.ShapeFormatted {
		c.recipes = result.Recipes
		c.view.Reset()
		c.resetFeedbackDraft()
		c.suggestions.Replace(result.Suggestions)
	}
}

// SendTurn runs a complete synchronous turn: BeginTurn, the backend call,
// and ApplyTurn. The event-driven UI uses the two-phase form directly; this
// is the convenience path for the line-oriented CLI.
func (c *Controller) SendTurn(ctx context.Context, text string) error {
	seq, trimmed, err := c.BeginTurn(text)
	if err != nil {
		return err
	}

	result, turnErr := c.backend.Chat(ctx, c.id, trimmed)
	c.ApplyTurn(seq, result, turnErr)
	return turnErr
}

// =============================================================================
// CLEAR
// =============================================================================

// BeginClear resets the local session to its starting point: the transcript
// holds only the welcome message, the recipe collection is empty, the view is
// back on the list, the suggestion bar shows the default set, and any
// feedback draft is discarded. Turns still in flight are discarded when they
// resolve.
//
// The caller still owes the backend a ClearPreferences call so the
// server-side context is dropped too; the event-driven UI issues that off the
// loop, while Clear composes both for the line-oriented CLI.
func (c *Controller) BeginClear() {
	c.transcript.ClearToWelcome()
	c.recipes = nil
	c.view.Reset()
	c.suggestions.ResetToDefault()
	c.resetFeedbackDraft()
	c.lastClearSeq = c.nextSeq
}

// Clear runs BeginClear and then asks the backend to drop its server-side
// context. The local reset holds even when that request fails; the error is
// returned so the caller can report it.
func (c *Controller) Clear(ctx context.Context) error {
	c.BeginClear()
	return c.backend.ClearPreferences(ctx, c.id)
}

// =============================================================================
// RECIPE VIEW
// =============================================================================

// SelectRecipe opens the detail view for the recipe at the given index in
// the current collection.
func (c *Controller) SelectRecipe(index int) error {
	return c.view.Select(index, len(c.recipes))
}

// Back returns from the detail view to the list.
func (c *Controller) Back() error {
	return c.view.Back()
}

// SelectedRecipe returns the recipe shown in the detail view, if any.
func (c *Controller) SelectedRecipe() (model.Recipe, bool) {
	idx, ok := c.view.SelectedIndex()
	if !ok {
		return model.Recipe{}, false
	}
	return c.recipes[idx], true
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SetRating stages a 1-5 star rating for the selected recipe.
func (c *Controller) SetRating(rating int) error {
	if _, ok := c.view.SelectedIndex(); !ok {
		return ErrNoRecipeSelected
	}
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	c.rating = rating
	c.ratingSet = true
	return nil
}

// SetComment stages an optional free-text comment for the selected recipe.
func (c *Controller) SetComment(comment string) error {
	if _, ok := c.view.SelectedIndex(); !ok {
		return ErrNoRecipeSelected
	}
	c.comment = comment
	return nil
}

// Rating returns the staged rating and whether one has been set.
func (c *Controller) Rating() (int, bool) {
	return c.rating, c.ratingSet
}

// Comment returns the staged comment.
func (c *Controller) Comment() string {
	return c.comment
}

// BuildFeedback validates the staged draft and returns the request to send.
// A rating must be staged first; the comment is optional. The draft stays in
// place until FeedbackDelivered confirms the submission, so a failed send can
// be retried without re-entering anything.
func (c *Controller) BuildFeedback() (api.FeedbackRequest, error) {
	recipe, ok := c.SelectedRecipe()
	if !ok {
		return api.FeedbackRequest{}, ErrNoRecipeSelected
	}
	if !c.ratingSet {
		return api.FeedbackRequest{}, ErrRatingUnset
	}

	return api.FeedbackRequest{
		ConversationID: c.id,
		Rating:         c.rating,
		Message:        c.comment,
		RecipeID:       recipe.ID,
	}, nil
}

// FeedbackDelivered clears the staged draft after a successful submission.
func (c *Controller) FeedbackDelivered() {
	c.resetFeedbackDraft()
}

// SubmitFeedback sends the staged rating and comment for the selected recipe:
// BuildFeedback, the backend call, and FeedbackDelivered on success.
func (c *Controller) SubmitFeedback(ctx context.Context) error {
	fb, err := c.BuildFeedback()
	if err != nil {
		return err
	}
	if err := c.backend.SubmitFeedback(ctx, fb); err != nil {
		return err
	}

	c.FeedbackDelivered()
	return nil
}

func (c *Controller) resetFeedbackDraft() {
	c.rating = 0
	c.ratingSet = false
	c.comment = ""
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns the transcript in insertion order.
func (c *Controller) Messages() []model.Message {
	return c.transcript.Messages()
}

// Recipes returns a copy of the current recipe collection.
func (c *Controller) Recipes() []model.Recipe {
	out := make([]model.Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// ViewMode returns the current recipe view mode.
func (c *Controller) ViewMode() model.ViewMode {
	return c.view.Mode()
}

// Suggestions returns the current quick-reply suggestions.
func (c *Controller) Suggestions() []string {
	return c.suggestions.Entries()
}
