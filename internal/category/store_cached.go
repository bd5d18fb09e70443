// Copyright (c) 2026 D42X. All rights reserved.

package category

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/cache"
)

// categoriesKey is the single cache key for the public category listing.
const categoriesKey = "categories"

// MemeCacheClearer is the slice of the meme cache this repository needs.
// Rewriting a meme's categories moves it between cached listing pages, so
// the whole meme-page cache must go.
type MemeCacheClearer interface {
	Clear(ctx context.Context)
}

// CachedRepository serves the category listing read-through from a cache and
// invalidates it on every write.
//
// # Invalidation
//
// The listing lives under one key, so point invalidation suffices: the key
// is removed both before and after each write. The pre-write removal bounds
// the staleness window if the post-write removal is never reached; the
// post-write removal evicts any entry a concurrent reader repopulated with
// pre-write data mid-flight.
type CachedRepository struct {
	inner     Repository
	cache     cache.Cache
	memeCache MemeCacheClearer
	logger    *slog.Logger
}

// NewCachedRepository wraps a repository with the read cache.
func NewCachedRepository(inner Repository, cacheFront cache.Cache, memeCache MemeCacheClearer, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		inner:     inner,
		cache:     cacheFront,
		memeCache: memeCache,
		logger:    logger,
	}
}

func (repository *CachedRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	if serialized, found := repository.cache.Get(ctx, categoriesKey); found {
		categories := make([]*Category, 0)
		if err := json.Unmarshal([]byte(serialized), &categories); err == nil {
			return categories, nil
		}

		// A cached entry that no longer deserializes (schema drift) heals
		// itself: drop it and fall through to the store.
		repository.logger.WarnContext(ctx, "category_cache_corrupt_entry_removed",
			slog.String("key", categoriesKey),
		)
		repository.cache.Remove(ctx, categoriesKey)
	}

	categories, err := repository.inner.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if serialized, err := json.Marshal(categories); err == nil {
		repository.cache.Put(ctx, categoriesKey, string(serialized))
	}

	return categories, nil
}

func (repository *CachedRepository) AppendCategories(ctx context.Context, names []string) error {
	repository.cache.Remove(ctx, categoriesKey)

	if err := repository.inner.AppendCategories(ctx, names); err != nil {
		return err
	}

	repository.cache.Remove(ctx, categoriesKey)
	return nil
}

func (repository *CachedRepository) UpdateCategories(ctx context.Context, memeID uuid.UUID, names []string) error {
	repository.cache.Remove(ctx, categoriesKey)

	if err := repository.inner.UpdateCategories(ctx, memeID, names); err != nil {
		return err
	}

	repository.cache.Remove(ctx, categoriesKey)
	repository.memeCache.Clear(ctx)
	return nil
}
