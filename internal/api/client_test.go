// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestClient_ChatSendsConversationID(t *testing.T) {
	var got ChatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("Path = %q, want /chat", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("Missing or wrong X-API-Key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"response": [{"text": "ok"}]}`))
	})

	result, err := client.Chat(context.Background(), "conv-1", "hello")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got.ConversationID != "conv-1" || got.Message != "hello" {
		t.Errorf("Request = %+v", got)
	}
	if result.Shape != ShapeLegacy {
		t.Errorf("Shape = %v, want legacy", result.Shape)
	}
}

func TestClient_ChatServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Chat(context.Background(), "conv-1", "hello")
	if !IsNetworkError(err) {
		t.Errorf("err = %v, want network error", err)
	}
	if IsMalformedResponse(err) {
		t.Error("Non-success status must not be reported as malformed")
	}
}

func TestClient_ChatUnreachable(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		// Reserved TEST-NET-1 address, nothing listens there.
		BaseURL: "http://192.0.2.1:1",
		Timeout: 200 * time.Millisecond,
	})

	_, err := client.Chat(context.Background(), "conv-1", "hello")
	if !IsNetworkError(err) {
		t.Errorf("err = %v, want network error", err)
	}
}

func TestClient_ChatUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Chat(context.Background(), "conv-1", "hello")
	if !IsNetworkError(err) {
		t.Errorf("err = %v, want network error", err)
	}
}

func TestClient_ChatRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Chat(context.Background(), "conv-1", "hello")
	if !IsNetworkError(err) {
		t.Errorf("err = %v, want network error", err)
	}
}

func TestClient_SubmitFeedback(t *testing.T) {
	var got FeedbackRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feedback" {
			t.Errorf("Path = %q, want /feedback", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"status": "ok"}`))
	})

	fb := FeedbackRequest{
		ConversationID: "conv-1",
		Rating:         4,
		Message:        "great",
		RecipeID:       "r1",
	}
	if err := client.SubmitFeedback(context.Background(), fb); err != nil {
		t.Fatalf("SubmitFeedback failed: %v", err)
	}
	if got != fb {
		t.Errorf("Request = %+v, want %+v", got, fb)
	}
}

func TestClient_ClearPreferences(t *testing.T) {
	var gotPath string
	var got clearRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	})

	if err := client.ClearPreferences(context.Background(), "conv-1"); err != nil {
		t.Fatalf("ClearPreferences failed: %v", err)
	}
	if gotPath != "/clear_preferences" {
		t.Errorf("Path = %q, want /clear_preferences", gotPath)
	}
	if got.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %q", got.ConversationID)
	}
}

func TestClient_ListRecipes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recipes" {
			t.Errorf("Path = %q, want /recipes", r.URL.Path)
		}
		if r.URL.Query().Get("diet") != "vegetarian" {
			t.Errorf("diet = %q", r.URL.Query().Get("diet"))
		}
		if r.URL.Query().Get("cuisine") != "italian" {
			t.Errorf("cuisine = %q", r.URL.Query().Get("cuisine"))
		}
		w.Write([]byte(`{"recipes": [{"_id": "x", "RecipeName": "Caprese"}]}`))
	})

	recipes, err := client.ListRecipes(context.Background(), "vegetarian", "italian")
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != "x" || recipes[0].Name != "Caprese" {
		t.Errorf("Recipes = %+v", recipes)
	}
}

func TestClient_ListRecipesOmitsEmptyFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("Query = %q, want empty", r.URL.RawQuery)
		}
		w.Write([]byte(`{"recipes": []}`))
	})

	if _, err := client.ListRecipes(context.Background(), "", ""); err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	cfg := client.GetConfig()
	if cfg.BaseURL == "" || cfg.Timeout == 0 || cfg.RequestsPerMinute == 0 {
		t.Errorf("Defaults not filled: %+v", cfg)
	}
}
