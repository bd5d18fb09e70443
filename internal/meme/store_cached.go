// Copyright (c) 2026 D42X. All rights reserved.

package meme

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/cache"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// pageKey derives the cache key for one public listing page.
func pageKey(page int, category string) string {
	return fmt.Sprintf("memes:page:%d:category:%s", page, category)
}

// CachedRepository serves the public listing read-through from a cache.
//
// # Invalidation
//
// Listing pages are keyed by page number and category, so a bulk insert has
// no cleanly expressible blast radius: a new row can shift every downstream
// page of every category. Writes therefore clear the whole cache rather than
// chase individual keys. PostMemes clears both before and after the
// transaction; the pre-clear bounds staleness if the post-clear is never
// reached, the post-clear evicts pages a concurrent reader repopulated with
// pre-insert data while the transaction was open.
//
// Vote counters bypass the cache entirely: cached pages may carry stale
// counts, and the interactions endpoint reads fresh ones from the store.
type CachedRepository struct {
	inner  Repository
	cache  cache.Cache
	logger *slog.Logger
}

// NewCachedRepository wraps a repository with the read cache.
func NewCachedRepository(inner Repository, cacheFront cache.Cache, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		inner:  inner,
		cache:  cacheFront,
		logger: logger,
	}
}

// Clear drops every cached listing page. The category repository calls this
// when a meme's categorization changes under it.
func (repository *CachedRepository) Clear(ctx context.Context) {
	repository.cache.Clear(ctx)
}

func (repository *CachedRepository) ListPublished(ctx context.Context, page int, category string) (pagination.Page[*Meme], error) {
	key := pageKey(page, category)

	if serialized, found := repository.cache.Get(ctx, key); found {
		var cached pagination.Page[*Meme]
		if err := json.Unmarshal([]byte(serialized), &cached); err == nil {
			return cached, nil
		}

		// Corrupt entries self-heal: drop and refetch, never error out.
		repository.logger.WarnContext(ctx, "meme_cache_corrupt_entry_removed",
			slog.String("key", key),
		)
		repository.cache.Remove(ctx, key)
	}

	result, err := repository.inner.ListPublished(ctx, page, category)
	if err != nil {
		return result, err
	}

	if serialized, err := json.Marshal(result); err == nil {
		repository.cache.Put(ctx, key, string(serialized))
	}

	return result, nil
}

func (repository *CachedRepository) ListAll(ctx context.Context, params pagination.Params, status string) (pagination.Page[*Meme], error) {
	// Admin listings must see pending and deleted rows immediately; never cached.
	return repository.inner.ListAll(ctx, params, status)
}

func (repository *CachedRepository) GetByID(ctx context.Context, id uuid.UUID) (*Meme, error) {
	return repository.inner.GetByID(ctx, id)
}

func (repository *CachedRepository) Interactions(ctx context.Context, ids []uuid.UUID) ([]*Interaction, error) {
	return repository.inner.Interactions(ctx, ids)
}

func (repository *CachedRepository) PostMemes(ctx context.Context, posts []PostMeme) error {
	repository.cache.Clear(ctx)

	if err := repository.inner.PostMemes(ctx, posts); err != nil {
		return err
	}

	repository.cache.Clear(ctx)
	return nil
}

func (repository *CachedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repository.inner.Delete(ctx, id); err != nil {
		return err
	}

	repository.cache.Clear(ctx)
	return nil
}

func (repository *CachedRepository) IncreaseLike(ctx context.Context, id uuid.UUID) error {
	return repository.inner.IncreaseLike(ctx, id)
}

func (repository *CachedRepository) IncreaseUnlike(ctx context.Context, id uuid.UUID) error {
	return repository.inner.IncreaseUnlike(ctx, id)
}
