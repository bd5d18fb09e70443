// Copyright (c) 2026 D42X. All rights reserved.

package suggest

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/validate"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// MemeReader looks up the meme a suggestion targets.
type MemeReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*meme.Meme, error)
}

// CategoryUpdater rewrites a meme's category list when a suggestion is
// applied; backed by the cached category repository so the rewrite carries
// its invalidations.
type CategoryUpdater interface {
	UpdateCategories(ctx context.Context, memeID uuid.UUID, names []string) error
}

// Service implements the suggestion workflow.
type Service struct {
	repo       Repository
	memes      MemeReader
	categories CategoryUpdater
	logger     *slog.Logger
}

// NewService constructs a new suggest Service.
func NewService(repo Repository, memes MemeReader, categories CategoryUpdater, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		memes:      memes,
		categories: categories,
		logger:     logger,
	}
}

// CreateInput is a visitor's recategorization proposal.
type CreateInput struct {
	MemeID     uuid.UUID `json:"meme_id"`
	Categories []string  `json:"categories"`
}

// Create records a pending suggestion, capturing the meme's current
// categories as the before-image.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Suggestion, error) {
	v := &validate.Validator{}
	v.Custom("meme_id", input.MemeID == uuid.Nil, "Must reference a meme")
	v.NotEmptySlice("categories", len(input.Categories))
	for _, name := range input.Categories {
		v.Required("categories", name).MaxLen("categories", name, 64)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	target, err := service.memes.GetByID(ctx, input.MemeID)
	if err != nil {
		return nil, err
	}

	suggestion := &Suggestion{
		ID:     uuid.New(),
		MemeID: input.MemeID,
		Before: target.Categories,
		After:  input.Categories,
		Status: StatusPending,
	}
	if err := service.repo.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "suggestion_created",
		slog.String("suggestion_id", suggestion.ID.String()),
		slog.String("meme_id", input.MemeID.String()),
	)
	return suggestion, nil
}

// List returns one page of suggestions for the admin queue.
func (service *Service) List(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Suggestion], error) {
	if status != "" {
		v := &validate.Validator{}
		if err := v.OneOf("status", status, Statuses...).Err(); err != nil {
			return pagination.Page[*Suggestion]{}, err
		}
	}
	return service.repo.ListPaginated(ctx, params, status)
}

// Resolve applies or rejects a pending suggestion.
//
// Applying rewrites the target meme's categories through the cached category
// repository, so cache invalidation piggybacks on the normal write path.
func (service *Service) Resolve(ctx context.Context, id uuid.UUID, status Status, operator uuid.UUID) error {
	if status != StatusApplied && status != StatusRejected {
		return apperr.ValidationError("Status must be applied or rejected")
	}

	suggestion, err := service.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if suggestion.Status != StatusPending {
		return apperr.Conflict("Suggestion is already resolved")
	}

	if status == StatusApplied {
		if err := service.categories.UpdateCategories(ctx, suggestion.MemeID, suggestion.After); err != nil {
			return err
		}
	}

	if err := service.repo.SetStatus(ctx, id, status, operator); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "suggestion_resolved",
		slog.String("suggestion_id", id.String()),
		slog.String("status", string(status)),
		slog.String("admin_id", operator.String()),
	)
	return nil
}
