// Copyright (c) 2026 D42X. All rights reserved.

package meme

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/validate"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// CategoryAppender is the slice of the category repository the meme service
// needs: posting a meme with unseen category names creates them.
type CategoryAppender interface {
	AppendCategories(ctx context.Context, names []string) error
}

// Service implements meme use cases on top of the (cached) repository.
type Service struct {
	repo       Repository
	categories CategoryAppender
	logger     *slog.Logger
}

// NewService constructs a new meme Service.
func NewService(repo Repository, categories CategoryAppender, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

// # Public Reads

func (service *Service) ListPublished(ctx context.Context, page int, category string) (pagination.Page[*Meme], error) {
	if page < 1 {
		page = 1
	}
	return service.repo.ListPublished(ctx, page, category)
}

func (service *Service) GetByID(ctx context.Context, id uuid.UUID) (*Meme, error) {
	return service.repo.GetByID(ctx, id)
}

func (service *Service) Interactions(ctx context.Context, ids []uuid.UUID) ([]*Interaction, error) {
	return service.repo.Interactions(ctx, ids)
}

// # Voting

func (service *Service) Like(ctx context.Context, id uuid.UUID) error {
	return service.repo.IncreaseLike(ctx, id)
}

func (service *Service) Unlike(ctx context.Context, id uuid.UUID) error {
	return service.repo.IncreaseUnlike(ctx, id)
}

// # Moderation

func (service *Service) ListAll(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Meme], error) {
	if status != "" {
		v := &validate.Validator{}
		if err := v.OneOf("status", status, Statuses...).Err(); err != nil {
			return pagination.Page[*Meme]{}, err
		}
	}
	return service.repo.ListAll(ctx, params, status)
}

// PostMemes validates and inserts a batch of submissions, creating any
// unseen categories first.
func (service *Service) PostMemes(ctx context.Context, posts []PostMeme) error {
	v := &validate.Validator{}
	v.NotEmptySlice("memes", len(posts))
	for _, post := range posts {
		v.Required("nickname", post.Nickname).
			MaxLen("nickname", post.Nickname, 64).
			MaxLen("message", post.Message, 1024).
			NotEmptySlice("urls", len(post.URLs))
		for _, postURL := range post.URLs {
			v.Required("url", postURL.URL).
				OneOf("format", string(postURL.Format), Formats...)
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	names := collectCategoryNames(posts)
	if err := service.categories.AppendCategories(ctx, names); err != nil {
		return err
	}

	if err := service.repo.PostMemes(ctx, posts); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "memes_posted",
		slog.Int("count", len(posts)),
		slog.Int("new_category_candidates", len(names)),
	)
	return nil
}

func (service *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "meme_deleted", slog.String("meme_id", id.String()))
	return nil
}

// collectCategoryNames deduplicates category names across a batch.
func collectCategoryNames(posts []PostMeme) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, post := range posts {
		for _, name := range post.Categories {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
