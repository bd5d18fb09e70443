// Copyright (c) 2026 D42X. All rights reserved.

package meme

import (
	"context"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/pkg/pagination"
)

// PublicPageSize is the fixed page size of the public listing; part of the
// cache key contract, so it is not client-tunable.
const PublicPageSize = 10

// Repository defines persistence operations for the meme catalog.
type Repository interface {
	// ListPublished returns one page of published memes whose show time has
	// passed, newest first. An empty category matches everything.
	ListPublished(ctx context.Context, page int, category string) (pagination.Page[*Meme], error)

	// ListAll returns one page of memes in any status, for the admin panel.
	// An empty status matches everything.
	ListAll(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Meme], error)

	// GetByID returns one meme regardless of status.
	GetByID(ctx context.Context, id uuid.UUID) (*Meme, error)

	// Interactions returns live vote counts for the given memes.
	Interactions(ctx context.Context, ids []uuid.UUID) ([]*Interaction, error)

	// PostMemes inserts submissions and their URLs in one transaction.
	// An empty slice is an error; a partial insert never survives.
	PostMemes(ctx context.Context, posts []PostMeme) error

	// Delete soft-deletes a meme by flipping its status.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncreaseLike adds one like.
	IncreaseLike(ctx context.Context, id uuid.UUID) error

	// IncreaseUnlike adds one unlike.
	IncreaseUnlike(ctx context.Context, id uuid.UUID) error
}
