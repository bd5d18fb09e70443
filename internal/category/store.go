// Copyright (c) 2026 D42X. All rights reserved.

package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the category taxonomy.
type Repository interface {
	// ListCategories returns top-level categories ordered by name, each with
	// its published-meme count.
	ListCategories(ctx context.Context) ([]*Category, error)

	// AppendCategories inserts any names not already present. Existing names
	// are left untouched.
	AppendCategories(ctx context.Context, names []string) error

	// UpdateCategories rewrites the category list of one meme.
	UpdateCategories(ctx context.Context, memeID uuid.UUID, names []string) error
}
