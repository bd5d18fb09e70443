// Copyright (c) 2026 D42X. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting page envelope is delivered in the API response. The
// envelope field names are part of the wire (and cache) contract.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultSize is the number of items per page if not specified.
	DefaultSize = 10
	// MaxSize is the upper bound for items per page to prevent system abuse.
	MaxSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and size from a request's query string.
type Params struct {
	Page int
	Size int
}

// Offset returns the SQL OFFSET value derived from Page and Size.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// Page is the paginated list envelope.
//
// Total counts pages, not rows. The same serialized form is stored in the
// read cache, so changing a field name invalidates every cached page.
type Page[T any] struct {
	Page  int `json:"page"`
	Total int `json:"total"`
	Size  int `json:"size"`
	List  []T `json:"list"`
}

// NewPage constructs a page envelope, deriving the page count from the
// total row count.
func NewPage[T any](page, size, totalRows int, list []T) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = (totalRows + size - 1) / size
	}

	return Page[T]{
		Page:  page,
		Total: totalPages,
		Size:  size,
		List:  list,
	}
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultSize], or [MaxSize].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	size := parseIntParam(r, "size", DefaultSize)

	if page < 1 {
		page = DefaultPage
	}

	if size < 1 || size > MaxSize {
		size = DefaultSize
	}

	return Params{Page: page, Size: size}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
