// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the recipe chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/tastebud-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNetwork
	ErrTypeTimeout
	ErrTypeMalformed
	ErrTypeRateLimited
	ErrTypeUnauthorized
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable       = &ClientError{Type: ErrTypeNetwork, Message: "backend is unreachable"}
	ErrTimeout           = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrMalformedResponse = &ClientError{Type: ErrTypeMalformed, Message: "response matches no known shape"}
	ErrRateLimited       = &ClientError{Type: ErrTypeRateLimited, Message: "backend rate limit exceeded"}
	ErrUnauthorized      = &ClientError{Type: ErrTypeUnauthorized, Message: "API key rejected"}
)

// IsNetworkError reports whether the error is a transport-level failure:
// unreachable backend, timeout, or a non-success HTTP status.
func IsNetworkError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case ErrTypeNetwork, ErrTypeTimeout, ErrTypeRateLimited, ErrTypeUnauthorized:
			return true
		}
	}
	return false
}

// IsMalformedResponse reports whether the error is an unrecognized response
// shape.
func IsMalformedResponse(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeMalformed
	}
	return errors.Is(err, ErrMalformedResponse)
}

// IsTimeout reports whether the error is a timeout.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsRateLimited reports whether the backend refused the request with a 429.
func IsRateLimited(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeRateLimited
	}
	return errors.Is(err, ErrRateLimited)
}

// IsUnauthorized reports whether the backend rejected the API key.
func IsUnauthorized(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnauthorized
	}
	return errors.Is(err, ErrUnauthorized)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:5000)
	BaseURL string

	// APIKey is sent in the X-API-Key header on every request. Empty means
	// the header is omitted, for backends running without the key guard.
	APIKey string

	// Timeout per request (default: 30s)
	Timeout time.Duration

	// RequestsPerMinute caps outgoing calls to stay under the backend's
	// limiter (default: 60, matching the server side).
	RequestsPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:5000",
		Timeout:           30 * time.Second,
		RequestsPerMinute: 60,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the recipe chat backend.
//
// The Client is thread-safe for concurrent use. Outgoing requests share a
// token-bucket limiter so a burst of turns cannot trip the backend's
// per-minute cap.
//
// Example:
//
//	client := api.NewClient()
//	result, err := client.Chat(ctx, convID, "Show me pasta recipes")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RequestsPerMinute == 0 {
		config.RequestsPerMinute = 60
	}

	perSecond := rate.Limit(float64(config.RequestsPerMinute) / 60.0)

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(perSecond, config.RequestsPerMinute),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one conversational turn and returns the normalized result.
func (c *Client) Chat(ctx context.Context, conversationID, message string) (*TurnResult, error) {
	reqBody := ChatRequest{
		Message:        message,
		ConversationID: conversationID,
	}

	body, err := c.post(ctx, "/chat", reqBody)
	if err != nil {
		return nil, err
	}
	return normalizeChatResponse(body)
}

// =============================================================================
// FEEDBACK
// =============================================================================

// SubmitFeedback sends a star rating with an optional comment for a recipe.
func (c *Client) SubmitFeedback(ctx context.Context, fb FeedbackRequest) error {
	_, err := c.post(ctx, "/feedback", fb)
	return err
}

// =============================================================================
// PREFERENCES
// =============================================================================

// ClearPreferences asks the backend to drop the server-side context for the
// conversation.
func (c *Client) ClearPreferences(ctx context.Context, conversationID string) error {
	_, err := c.post(ctx, "/clear_preferences", clearRequest{ConversationID: conversationID})
	return err
}

// =============================================================================
// RECIPE BROWSING
// =============================================================================

// ListRecipes fetches recipes outside any conversation, optionally filtered
// by diet and cuisine. Empty filters are omitted from the query.
func (c *Client) ListRecipes(ctx context.Context, diet, cuisine string) ([]model.Recipe, error) {
	q := url.Values{}
	if diet != "" {
		q.Set("diet", diet)
	}
	if cuisine != "" {
		q.Set("cuisine", cuisine)
	}
	endpoint := "/recipes"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result recipeListResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ClientError{Type: ErrTypeMalformed, Message: "failed to decode recipe list", Cause: err}
	}

	recipes := make([]model.Recipe, 0, len(result.Recipes))
	for _, dto := range result.Recipes {
		recipes = append(recipes, dto.toModel())
	}
	return recipes, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeMalformed, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+endpoint, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to create request", Cause: err}
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}

	if err := c.limiter.Wait(req.Context()); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "request canceled", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, &ClientError{
			Type:    ErrTypeNetwork,
			Message: "request failed: " + resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNetwork, Message: "failed to read response", Cause: err}
	}
	return body, nil
}
