// Copyright (c) 2026 D42X. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/validate"
)

// Service implements category use cases on top of the (cached) repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new category Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.repo.ListCategories(ctx)
}

// UpdateCategories replaces one meme's category list with validated names.
func (service *Service) UpdateCategories(ctx context.Context, memeID uuid.UUID, names []string) error {
	v := &validate.Validator{}
	v.NotEmptySlice("categories", len(names))
	for _, name := range names {
		v.Required("categories", name).MaxLen("categories", name, 64)
	}
	if err := v.Err(); err != nil {
		return err
	}

	// Unseen names become new categories before the meme row points at them.
	if err := service.repo.AppendCategories(ctx, names); err != nil {
		return err
	}

	if err := service.repo.UpdateCategories(ctx, memeID, names); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "meme_categories_updated",
		slog.String("meme_id", memeID.String()),
		slog.Int("category_count", len(names)),
	)
	return nil
}
