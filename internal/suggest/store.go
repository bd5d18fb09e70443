// Copyright (c) 2026 D42X. All rights reserved.

package suggest

import (
	"context"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/pkg/pagination"
)

// Repository defines persistence operations for suggestions.
type Repository interface {
	// Create inserts a pending suggestion.
	Create(ctx context.Context, suggestion *Suggestion) error

	// GetByID returns one suggestion.
	GetByID(ctx context.Context, id uuid.UUID) (*Suggestion, error)

	// ListPaginated returns one page of suggestions, newest first. An empty
	// status matches everything.
	ListPaginated(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Suggestion], error)

	// SetStatus resolves a suggestion, recording the operating admin.
	SetStatus(ctx context.Context, id uuid.UUID, status Status, operator uuid.UUID) error
}
