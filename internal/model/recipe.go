// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"strconv"
	"strings"
)

// =============================================================================
// RECIPE TYPE
// =============================================================================

// Recipe is an immutable snapshot of a recipe as returned by the backend.
// A new turn's recipe set fully replaces the previous one; recipes are never
// merged across turns.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Markdown renders the recipe as a markdown document for display.
func (r Recipe) Markdown() string {
	var b strings.Builder
	b.WriteString("# " + r.Name + "\n\n")
	if r.Description != "" {
		b.WriteString(r.Description + "\n\n")
	}
	if len(r.Ingredients) > 0 {
		b.WriteString("## Ingredients\n\n")
		for _, ing := range r.Ingredients {
			b.WriteString("- " + ing + "\n")
		}
		b.WriteString("\n")
	}
	if len(r.Instructions) > 0 {
		b.WriteString("## Instructions\n\n")
		for i, step := range r.Instructions {
			b.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
		}
	}
	return b.String()
}

// =============================================================================
// VIEW STATE MACHINE
// =============================================================================

// ErrIndexOutOfRange is returned when a detail selection does not address a
// recipe in the current collection.
var ErrIndexOutOfRange = errors.New("recipe index out of range")

// ErrNotInDetail is returned when Back is called from the list view.
var ErrNotInDetail = errors.New("not viewing a recipe detail")

// ViewMode enumerates the two recipe view modes.
type ViewMode int

const (
	// ViewList shows the ranked recipe list. Initial mode, and re-entered
	// whenever the collection is replaced.
	ViewList ViewMode = iota
	// ViewDetail shows a single selected recipe.
	ViewDetail
)

// String returns a human-readable view mode.
func (m ViewMode) String() string {
	switch m {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ViewState tracks whether the user sees the recipe list or a single recipe's
// detail. Whenever the mode is ViewDetail the selected index is a valid index
// into the collection the state was validated against; replacing the
// collection always forces the state back to ViewList so a detail view can
// never be bound to stale data.
type ViewState struct {
	mode     ViewMode
	selected int
}

// Mode returns the current view mode.
func (v ViewState) Mode() ViewMode {
	return v.mode
}

// SelectedIndex returns the selected index and true when in detail mode.
func (v ViewState) SelectedIndex() (int, bool) {
	if v.mode != ViewDetail {
		return 0, false
	}
	return v.selected, true
}

// Select transitions to Detail(index). The index must address a recipe in a
// collection of the given size; otherwise ErrIndexOutOfRange is returned and
// the state is left unchanged.
func (v *ViewState) Select(index, collectionSize int) error {
	if index < 0 || index >= collectionSize {
		return ErrIndexOutOfRange
	}
	v.mode = ViewDetail
	v.selected = index
	return nil
}

// Back returns from Detail to List. Valid only from Detail.
func (v *ViewState) Back() error {
	if v.mode != ViewDetail {
		return ErrNotInDetail
	}
	v.mode = ViewList
	v.selected = 0
	return nil
}

// Reset forces the state back to List. Called whenever the recipe collection
// is replaced, regardless of the new collection's size.
func (v *ViewState) Reset() {
	v.mode = ViewList
	v.selected = 0
}
