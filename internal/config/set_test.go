// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_KnownKeys(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("backend.url", "http://10.0.0.5:5000"))
	assert.Equal(t, "http://10.0.0.5:5000", cfg.Backend.URL)

	require.NoError(t, cfg.Set("backend.api_key", "k-123"))
	assert.Equal(t, "k-123", cfg.Backend.APIKey)

	require.NoError(t, cfg.Set("backend.timeout_secs", "45"))
	assert.Equal(t, 45, cfg.Backend.TimeoutSecs)

	require.NoError(t, cfg.Set("backend.requests_per_minute", "30"))
	assert.Equal(t, 30, cfg.Backend.RequestsPerMinute)

	require.NoError(t, cfg.Set("ui.theme", "light"))
	assert.Equal(t, "light", cfg.UI.Theme)

	require.NoError(t, cfg.Set("ui.word_wrap", "120"))
	assert.Equal(t, 120, cfg.UI.WordWrap)

	require.NoError(t, cfg.Set("ui.show_suggestions", "false"))
	assert.False(t, cfg.UI.ShowSuggestions)

	require.NoError(t, cfg.Set("ui.show_suggestions", "on"))
	assert.True(t, cfg.UI.ShowSuggestions)
}

func TestSet_KeyIsCaseInsensitive(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("UI.Theme", "dark"))
	assert.Equal(t, "dark", cfg.UI.Theme)
}

func TestSet_Rejections(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "backend.nope", "x"},
		{"non-numeric timeout", "backend.timeout_secs", "soon"},
		{"non-numeric wrap", "ui.word_wrap", "wide"},
		{"non-boolean suggestions", "ui.show_suggestions", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			require.Error(t, err)

			var verr ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestSet_LeavesValidationToValidate(t *testing.T) {
	cfg := Default()

	// Set accepts out-of-range values; Validate is the gate before saving.
	require.NoError(t, cfg.Set("backend.timeout_secs", "9999"))
	assert.Error(t, cfg.Validate())
}
