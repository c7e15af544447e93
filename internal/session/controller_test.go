// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/tastebud-tui/internal/api"
	"github.com/jeranaias/tastebud-tui/internal/model"
)

// =============================================================================
// FAKE BACKEND
// =============================================================================

// fakeBackend scripts chat responses and records every call.
type fakeBackend struct {
	chatResult *api.TurnResult
	chatErr    error

	feedbackErr error
	clearErr    error

	chatCalls     []api.ChatRequest
	feedbackCalls []api.FeedbackRequest
	clearCalls    []string
}

func (f *fakeBackend) Chat(_ context.Context, conversationID, message string) (*api.TurnResult, error) {
	f.chatCalls = append(f.chatCalls, api.ChatRequest{Message: message, ConversationID: conversationID})
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.chatResult, nil
}

func (f *fakeBackend) SubmitFeedback(_ context.Context, fb api.FeedbackRequest) error {
	f.feedbackCalls = append(f.feedbackCalls, fb)
	return f.feedbackErr
}

func (f *fakeBackend) ClearPreferences(_ context.Context, conversationID string) error {
	f.clearCalls = append(f.clearCalls, conversationID)
	return f.clearErr
}

func formattedResult(messages []string, recipes []model.Recipe, suggestions []string) *api.TurnResult {
	return &api.TurnResult{
		Shape:       api.ShapeFormatted,
		Messages:    messages,
		Recipes:     recipes,
		Suggestions: suggestions,
	}
}

func twoRecipes() []model.Recipe {
	return []model.Recipe{
		{ID: "r1", Name: "Tomato Pasta"},
		{ID: "r2", Name: "Minestrone"},
	}
}

// =============================================================================
// SESSION CREATION TESTS
// =============================================================================

func TestNewController(t *testing.T) {
	c := NewController(&fakeBackend{})

	if c.ID() == "" {
		t.Error("Conversation id should not be empty")
	}
	if len(c.Messages()) != 1 {
		t.Errorf("Fresh session should hold only the welcome message, got %d", len(c.Messages()))
	}
	if len(c.Recipes()) != 0 {
		t.Error("Fresh session should have no recipes")
	}
	if len(c.Suggestions()) != len(model.DefaultSuggestions()) {
		t.Error("Fresh session should show the default suggestions")
	}
}

func TestNewController_DistinctIDs(t *testing.T) {
	a := NewController(&fakeBackend{})
	b := NewController(&fakeBackend{})
	if a.ID() == b.ID() {
		t.Error("Two sessions must not share a conversation id")
	}
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestSendTurn_FormattedResponse(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult(
			[]string{"Here are two I like."},
			twoRecipes(),
			[]string{"More pasta", "Something lighter", "Under 30 minutes"},
		),
	}
	c := NewController(backend)

	if err := c.SendTurn(context.Background(), "Show me vegetarian pasta recipes"); err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Expected welcome + user + bot, got %d messages", len(msgs))
	}
	if msgs[1].Sender != model.SenderUser || msgs[1].Text != "Show me vegetarian pasta recipes" {
		t.Errorf("User message = %+v", msgs[1])
	}
	if msgs[2].Sender != model.SenderBot {
		t.Errorf("Bot message = %+v", msgs[2])
	}
	if len(c.Recipes()) != 2 {
		t.Errorf("Recipes = %d, want 2", len(c.Recipes()))
	}
	if got := c.Suggestions(); len(got) != 3 || got[0] != "More pasta" {
		t.Errorf("Suggestions = %v", got)
	}
	if len(backend.chatCalls) != 1 || backend.chatCalls[0].ConversationID != c.ID() {
		t.Errorf("Chat calls = %+v", backend.chatCalls)
	}
}

func TestSendTurn_SameIDAcrossTurns(t *testing.T) {
	backend := &fakeBackend{chatResult: formattedResult([]string{"ok"}, nil, nil)}
	c := NewController(backend)

	c.SendTurn(context.Background(), "first")
	c.SendTurn(context.Background(), "second")

	if len(backend.chatCalls) != 2 {
		t.Fatalf("Expected 2 chat calls, got %d", len(backend.chatCalls))
	}
	if backend.chatCalls[0].ConversationID != backend.chatCalls[1].ConversationID {
		t.Error("Conversation id must be stable across turns")
	}
}

func TestSendTurn_EmptyInputIsNoOp(t *testing.T) {
	backend := &fakeBackend{chatResult: formattedResult([]string{"ok"}, nil, nil)}
	c := NewController(backend)

	for _, input := range []string{"", "   ", "\t\n"} {
		if err := c.SendTurn(context.Background(), input); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("SendTurn(%q) err = %v, want ErrEmptyMessage", input, err)
		}
	}

	if len(backend.chatCalls) != 0 {
		t.Error("Empty input must not issue a request")
	}
	if len(c.Messages()) != 1 {
		t.Error("Empty input must not touch the transcript")
	}
}

func TestSendTurn_LegacyResponseLeavesRecipesAlone(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), []string{"s1"}),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")

	backend.chatResult = &api.TurnResult{Shape: api.ShapeLegacy, Messages: []string{"Hi"}}
	c.SendTurn(context.Background(), "hello")

	last, _ := lastMessage(c.Messages())
	if last.Text != "Hi" || last.Sender != model.SenderBot {
		t.Errorf("Last message = %+v", last)
	}
	if len(c.Recipes()) != 2 {
		t.Error("Legacy response must not replace the recipe collection")
	}
	if got := c.Suggestions(); len(got) != 1 || got[0] != "s1" {
		t.Errorf("Legacy response must not replace suggestions, got %v", got)
	}
}

func TestSendTurn_NetworkFailureAppendsApology(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), []string{"s1"}),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")
	before := len(c.Messages())

	backend.chatErr = api.ErrUnreachable
	err := c.SendTurn(context.Background(), "more please")
	if err == nil {
		t.Fatal("Expected an error from the failed turn")
	}

	msgs := c.Messages()
	if len(msgs) != before+2 {
		t.Fatalf("Expected user message + one apology, got %d new messages", len(msgs)-before)
	}
	lastMsg := msgs[len(msgs)-1]
	if lastMsg.Text != ApologyText || lastMsg.Sender != model.SenderBot {
		t.Errorf("Last message = %+v", lastMsg)
	}
	if len(c.Recipes()) != 2 || len(c.Suggestions()) != 1 {
		t.Error("Failed turn must leave recipes and suggestions unchanged")
	}

	// Session stays usable.
	backend.chatErr = nil
	if err := c.SendTurn(context.Background(), "try again"); err != nil {
		t.Errorf("Session unusable after failure: %v", err)
	}
}

func TestSendTurn_MalformedResponseTreatedLikeNetworkFailure(t *testing.T) {
	backend := &fakeBackend{chatErr: api.ErrMalformedResponse}
	c := NewController(backend)

	c.SendTurn(context.Background(), "hello")

	lastMsg, _ := lastMessage(c.Messages())
	if lastMsg.Text != ApologyText {
		t.Errorf("Last message = %+v, want apology", lastMsg)
	}
}

func TestSendTurn_CollectionReplacementResetsView(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), nil),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")

	if err := c.SelectRecipe(1); err != nil {
		t.Fatalf("SelectRecipe failed: %v", err)
	}
	if c.ViewMode() != model.ViewDetail {
		t.Fatal("Expected detail view")
	}

	c.SendTurn(context.Background(), "different recipes")

	if c.ViewMode() != model.ViewList {
		t.Error("Replacing the collection must reset the view to the list")
	}
}

// =============================================================================
// STALE TURN TESTS
// =============================================================================

func TestApplyTurn_StaleResponseAfterClearIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend)

	seq, text, err := c.BeginTurn("slow question")
	if err != nil {
		t.Fatalf("BeginTurn failed: %v", err)
	}
	if text != "slow question" {
		t.Errorf("BeginTurn text = %q", text)
	}

	// The user clears while the turn is still in flight.
	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	// The slow turn resolves afterwards.
	c.ApplyTurn(seq, formattedResult([]string{"stale"}, twoRecipes(), []string{"old"}), nil)

	if len(c.Messages()) != 1 {
		t.Errorf("Stale response leaked into the transcript: %d messages", len(c.Messages()))
	}
	if len(c.Recipes()) != 0 {
		t.Error("Stale response must not populate recipes")
	}
	if len(c.Suggestions()) != len(model.DefaultSuggestions()) {
		t.Error("Stale response must not replace the default suggestions")
	}
}

func TestApplyTurn_TurnIssuedAfterClearStillLands(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend)

	c.Clear(context.Background())
	seq, _, err := c.BeginTurn("fresh question")
	if err != nil {
		t.Fatalf("BeginTurn failed: %v", err)
	}
	c.ApplyTurn(seq, &api.TurnResult{Shape: api.ShapeLegacy, Messages: []string{"fresh answer"}}, nil)

	lastMsg, _ := lastMessage(c.Messages())
	if lastMsg.Text != "fresh answer" {
		t.Errorf("Last message = %+v", lastMsg)
	}
}

// =============================================================================
// CLEAR TESTS
// =============================================================================

func TestClear_ResetsEverything(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), []string{"s1", "s2"}),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")
	c.SelectRecipe(0)
	c.SetRating(4)

	if err := c.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Text != model.WelcomeText {
		t.Errorf("Transcript after clear = %+v", msgs)
	}
	if len(c.Recipes()) != 0 {
		t.Error("Recipes should be empty after clear")
	}
	if c.ViewMode() != model.ViewList {
		t.Error("View should be back on the list after clear")
	}
	if len(c.Suggestions()) != len(model.DefaultSuggestions()) {
		t.Error("Suggestions should be the default set after clear")
	}
	if _, ok := c.Rating(); ok {
		t.Error("Feedback draft should be discarded by clear")
	}
	if len(backend.clearCalls) != 1 || backend.clearCalls[0] != c.ID() {
		t.Errorf("ClearPreferences calls = %v", backend.clearCalls)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend)

	c.Clear(context.Background())
	c.Clear(context.Background())

	if len(c.Messages()) != 1 {
		t.Errorf("Double clear left %d messages", len(c.Messages()))
	}
	if len(backend.clearCalls) != 2 {
		t.Errorf("Each clear should notify the backend, got %d calls", len(backend.clearCalls))
	}
}

func TestClear_LocalResetHoldsWhenBackendFails(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), nil),
		clearErr:   api.ErrUnreachable,
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")

	err := c.Clear(context.Background())
	if err == nil {
		t.Fatal("Expected the backend error to surface")
	}
	if len(c.Messages()) != 1 || len(c.Recipes()) != 0 {
		t.Error("Local reset must hold even when the backend call fails")
	}
}

// =============================================================================
// RECIPE VIEW TESTS
// =============================================================================

func TestSelectRecipe_Bounds(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), nil),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")

	if err := c.SelectRecipe(2); !errors.Is(err, model.ErrIndexOutOfRange) {
		t.Errorf("SelectRecipe(2) err = %v, want ErrIndexOutOfRange", err)
	}
	if c.ViewMode() != model.ViewList {
		t.Error("Failed select must leave the view unchanged")
	}

	if err := c.SelectRecipe(1); err != nil {
		t.Fatalf("SelectRecipe(1) failed: %v", err)
	}
	recipe, ok := c.SelectedRecipe()
	if !ok || recipe.ID != "r2" {
		t.Errorf("SelectedRecipe = (%+v, %v)", recipe, ok)
	}
}

func TestBack_OnlyFromDetail(t *testing.T) {
	backend := &fakeBackend{
		chatResult: formattedResult([]string{"here"}, twoRecipes(), nil),
	}
	c := NewController(backend)
	c.SendTurn(context.Background(), "recipes please")

	if err := c.Back(); !errors.Is(err, model.ErrNotInDetail) {
		t.Errorf("Back from list err = %v, want ErrNotInDetail", err)
	}

	c.SelectRecipe(0)
	if err := c.Back(); err != nil {
		t.Fatalf("Back from detail failed: %v", err)
	}
	if _, ok := c.SelectedRecipe(); ok {
		t.Error("SelectedRecipe should be unset after Back")
	}
}

// =============================================================================
// FEEDBACK TESTS
// =============================================================================

func setupDetailView(t *testing.T, backend *fakeBackend) *Controller {
	t.Helper()
	backend.chatResult = formattedResult([]string{"here"}, twoRecipes(), nil)
	c := NewController(backend)
	if err := c.SendTurn(context.Background(), "recipes please"); err != nil {
		t.Fatalf("SendTurn failed: %v", err)
	}
	if err := c.SelectRecipe(0); err != nil {
		t.Fatalf("SelectRecipe failed: %v", err)
	}
	return c
}

func TestSetRating_Validation(t *testing.T) {
	c := setupDetailView(t, &fakeBackend{})

	for _, bad := range []int{0, -1, 6, 100} {
		if err := c.SetRating(bad); !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("SetRating(%d) err = %v, want ErrRatingOutOfRange", bad, err)
		}
	}
	if _, ok := c.Rating(); ok {
		t.Error("Rejected rating must not be staged")
	}

	for _, good := range []int{1, 3, 5} {
		if err := c.SetRating(good); err != nil {
			t.Errorf("SetRating(%d) failed: %v", good, err)
		}
	}
}

func TestSetRating_RequiresSelection(t *testing.T) {
	c := NewController(&fakeBackend{})
	if err := c.SetRating(3); !errors.Is(err, ErrNoRecipeSelected) {
		t.Errorf("SetRating without selection err = %v, want ErrNoRecipeSelected", err)
	}
}

func TestSubmitFeedback_Success(t *testing.T) {
	backend := &fakeBackend{}
	c := setupDetailView(t, backend)
	c.SetRating(5)
	c.SetComment("loved it")

	if err := c.SubmitFeedback(context.Background()); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}

	if len(backend.feedbackCalls) != 1 {
		t.Fatalf("Expected 1 feedback call, got %d", len(backend.feedbackCalls))
	}
	fb := backend.feedbackCalls[0]
	if fb.ConversationID != c.ID() || fb.Rating != 5 || fb.Message != "loved it" || fb.RecipeID != "r1" {
		t.Errorf("Feedback payload = %+v", fb)
	}
	if _, ok := c.Rating(); ok || c.Comment() != "" {
		t.Error("Draft should be cleared after a successful submit")
	}
	if len(c.Messages()) != 3 {
		t.Error("Feedback must not touch the transcript")
	}
}

func TestSubmitFeedback_RequiresRating(t *testing.T) {
	backend := &fakeBackend{}
	c := setupDetailView(t, backend)
	c.SetComment("nice")

	if err := c.SubmitFeedback(context.Background()); !errors.Is(err, ErrRatingUnset) {
		t.Errorf("SubmitFeedback err = %v, want ErrRatingUnset", err)
	}
	if len(backend.feedbackCalls) != 0 {
		t.Error("Missing rating must not issue a request")
	}
}

func TestSubmitFeedback_RequiresSelection(t *testing.T) {
	c := NewController(&fakeBackend{})
	if err := c.SubmitFeedback(context.Background()); !errors.Is(err, ErrNoRecipeSelected) {
		t.Errorf("SubmitFeedback err = %v, want ErrNoRecipeSelected", err)
	}
}

func TestSubmitFeedback_NetworkFailurePreservesDraft(t *testing.T) {
	backend := &fakeBackend{feedbackErr: api.ErrUnreachable}
	c := setupDetailView(t, backend)
	c.SetRating(2)
	c.SetComment("too salty")

	if err := c.SubmitFeedback(context.Background()); err == nil {
		t.Fatal("Expected the backend error to surface")
	}

	rating, ok := c.Rating()
	if !ok || rating != 2 || c.Comment() != "too salty" {
		t.Error("Draft must survive a failed submit")
	}

	// Retry succeeds without re-entering the draft.
	backend.feedbackErr = nil
	if err := c.SubmitFeedback(context.Background()); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if backend.feedbackCalls[len(backend.feedbackCalls)-1].Rating != 2 {
		t.Error("Retry should resend the preserved draft")
	}
}

func TestFeedbackDraft_DiscardedOnCollectionReplacement(t *testing.T) {
	backend := &fakeBackend{}
	c := setupDetailView(t, backend)
	c.SetRating(4)

	backend.chatResult = formattedResult([]string{"new set"}, twoRecipes(), nil)
	c.SendTurn(context.Background(), "other recipes")

	if _, ok := c.Rating(); ok {
		t.Error("Draft should not survive a recipe collection replacement")
	}
}

func lastMessage(msgs []model.Message) (model.Message, bool) {
	if len(msgs) == 0 {
		return model.Message{}, false
	}
	return msgs[len(msgs)-1], true
}
