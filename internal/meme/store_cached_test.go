// Copyright (c) 2026 D42X. All rights reserved.

package meme_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/platform/cache"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// countingRepository records store traffic per operation.
type countingRepository struct {
	listPublishedCalls int
	postCalls          int
	deleteCalls        int
	memes              []*meme.Meme
}

func (r *countingRepository) ListPublished(_ context.Context, page int, _ string) (pagination.Page[*meme.Meme], error) {
	r.listPublishedCalls++
	return pagination.NewPage(page, meme.PublicPageSize, len(r.memes), r.memes), nil
}

func (r *countingRepository) ListAll(_ context.Context, params pagination.Params, _ string) (pagination.Page[*meme.Meme], error) {
	return pagination.NewPage(params.Page, params.Size, len(r.memes), r.memes), nil
}

func (r *countingRepository) GetByID(_ context.Context, _ uuid.UUID) (*meme.Meme, error) {
	return r.memes[0], nil
}

func (r *countingRepository) Interactions(_ context.Context, _ []uuid.UUID) ([]*meme.Interaction, error) {
	return []*meme.Interaction{}, nil
}

func (r *countingRepository) PostMemes(_ context.Context, _ []meme.PostMeme) error {
	r.postCalls++
	return nil
}

func (r *countingRepository) Delete(_ context.Context, _ uuid.UUID) error {
	r.deleteCalls++
	return nil
}

func (r *countingRepository) IncreaseLike(_ context.Context, _ uuid.UUID) error   { return nil }
func (r *countingRepository) IncreaseUnlike(_ context.Context, _ uuid.UUID) error { return nil }

func newCachedRepository(t *testing.T) (*meme.CachedRepository, *countingRepository, *cache.Stub) {
	t.Helper()

	inner := &countingRepository{memes: []*meme.Meme{{
		ID:         uuid.New(),
		Categories: []string{"classics"},
		Nickname:   "visitor",
		Message:    "first",
		ShowAt:     time.Now().Add(-time.Hour).UTC().Truncate(time.Second),
		Status:     meme.StatusPublished,
	}}}

	stub := cache.NewStub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return meme.NewCachedRepository(inner, stub, logger), inner, stub
}

/*
TestCachedRepository_ReadThrough verifies the same page+category is served
from cache on the second read, while a different key misses.
*/
func TestCachedRepository_ReadThrough(t *testing.T) {
	repository, inner, _ := newCachedRepository(t)
	ctx := context.Background()

	first, err := repository.ListPublished(ctx, 1, "classics")
	require.NoError(t, err)
	second, err := repository.ListPublished(ctx, 1, "classics")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.listPublishedCalls)
	require.Len(t, second.List, 1)
	assert.Equal(t, first.List[0].ID, second.List[0].ID)
	assert.Equal(t, first.Total, second.Total)

	// Different page and different category are distinct keys.
	_, err = repository.ListPublished(ctx, 2, "classics")
	require.NoError(t, err)
	_, err = repository.ListPublished(ctx, 1, "animals")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.listPublishedCalls)
}

/*
TestCachedRepository_CorruptEntrySelfHeals verifies a bad cached page is
removed and refetched without surfacing an error.
*/
func TestCachedRepository_CorruptEntrySelfHeals(t *testing.T) {
	repository, inner, stub := newCachedRepository(t)
	ctx := context.Background()

	stub.Seed("memes:page:1:category:", "][ broken")

	result, err := repository.ListPublished(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, result.List, 1)
	assert.Equal(t, 1, inner.listPublishedCalls)
	assert.Equal(t, 1, stub.Removes)
}

/*
TestCachedRepository_PostClearsTwice verifies a bulk insert clears every
cached page before and after the write.
*/
func TestCachedRepository_PostClearsTwice(t *testing.T) {
	repository, inner, stub := newCachedRepository(t)
	ctx := context.Background()

	// Warm two pages.
	_, err := repository.ListPublished(ctx, 1, "")
	require.NoError(t, err)
	_, err = repository.ListPublished(ctx, 2, "")
	require.NoError(t, err)
	require.Equal(t, 2, stub.Len())

	require.NoError(t, repository.PostMemes(ctx, []meme.PostMeme{{Nickname: "visitor"}}))
	assert.Equal(t, 1, inner.postCalls)
	assert.Equal(t, 2, stub.Clears, "clear before and after the transaction")
	assert.Equal(t, 0, stub.Len())

	// Post-write reads must refetch.
	_, err = repository.ListPublished(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 3, inner.listPublishedCalls)
}

/*
TestCachedRepository_DeleteClears verifies a soft delete drops cached pages.
*/
func TestCachedRepository_DeleteClears(t *testing.T) {
	repository, inner, stub := newCachedRepository(t)
	ctx := context.Background()

	_, err := repository.ListPublished(ctx, 1, "")
	require.NoError(t, err)
	require.Equal(t, 1, stub.Len())

	require.NoError(t, repository.Delete(ctx, uuid.New()))
	assert.Equal(t, 1, inner.deleteCalls)
	assert.Equal(t, 0, stub.Len())
}

/*
TestCachedRepository_VotesBypassCache verifies like/unlike touch neither the
cache nor its counters.
*/
func TestCachedRepository_VotesBypassCache(t *testing.T) {
	repository, _, stub := newCachedRepository(t)
	ctx := context.Background()

	_, err := repository.ListPublished(ctx, 1, "")
	require.NoError(t, err)

	require.NoError(t, repository.IncreaseLike(ctx, uuid.New()))
	require.NoError(t, repository.IncreaseUnlike(ctx, uuid.New()))

	assert.Equal(t, 0, stub.Clears)
	assert.Equal(t, 1, stub.Len(), "cached page must survive votes")
}
