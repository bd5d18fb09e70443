// Copyright (c) 2026 D42X. All rights reserved.

package suggest_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/suggest"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// stubRepository keeps suggestions in memory.
type stubRepository struct {
	suggestions map[uuid.UUID]*suggest.Suggestion
}

func newStubRepository() *stubRepository {
	return &stubRepository{suggestions: make(map[uuid.UUID]*suggest.Suggestion)}
}

func (r *stubRepository) Create(_ context.Context, s *suggest.Suggestion) error {
	copied := *s
	r.suggestions[s.ID] = &copied
	return nil
}

func (r *stubRepository) GetByID(_ context.Context, id uuid.UUID) (*suggest.Suggestion, error) {
	if s, ok := r.suggestions[id]; ok {
		return s, nil
	}
	return nil, assert.AnError
}

func (r *stubRepository) ListPaginated(_ context.Context, params pagination.Params, _ string) (pagination.Page[*suggest.Suggestion], error) {
	list := make([]*suggest.Suggestion, 0, len(r.suggestions))
	for _, s := range r.suggestions {
		list = append(list, s)
	}
	return pagination.NewPage(params.Page, params.Size, len(list), list), nil
}

func (r *stubRepository) SetStatus(_ context.Context, id uuid.UUID, status suggest.Status, operator uuid.UUID) error {
	s := r.suggestions[id]
	s.Status = status
	s.ApplyUserID = uuid.NullUUID{UUID: operator, Valid: true}
	return nil
}

// stubMemes serves one fixed meme.
type stubMemes struct {
	meme *meme.Meme
}

func (s *stubMemes) GetByID(_ context.Context, _ uuid.UUID) (*meme.Meme, error) {
	return s.meme, nil
}

// recordingUpdater captures applied category rewrites.
type recordingUpdater struct {
	updates map[uuid.UUID][]string
}

func (u *recordingUpdater) UpdateCategories(_ context.Context, memeID uuid.UUID, names []string) error {
	if u.updates == nil {
		u.updates = make(map[uuid.UUID][]string)
	}
	u.updates[memeID] = names
	return nil
}

func newSuggestService(t *testing.T) (*suggest.Service, *stubRepository, *recordingUpdater, uuid.UUID) {
	t.Helper()

	memeID := uuid.New()
	repo := newStubRepository()
	updater := &recordingUpdater{}
	memes := &stubMemes{meme: &meme.Meme{ID: memeID, Categories: []string{"classics"}}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return suggest.NewService(repo, memes, updater, logger), repo, updater, memeID
}

/*
TestService_Create captures the meme's current categories as the
before-image of a pending suggestion.
*/
func TestService_Create(t *testing.T) {
	service, repo, _, memeID := newSuggestService(t)

	created, err := service.Create(context.Background(), suggest.CreateInput{
		MemeID:     memeID,
		Categories: []string{"animals", "fresh"},
	})

	require.NoError(t, err)
	assert.Equal(t, suggest.StatusPending, created.Status)
	assert.Equal(t, []string{"classics"}, created.Before)
	assert.Equal(t, []string{"animals", "fresh"}, created.After)
	assert.Len(t, repo.suggestions, 1)
}

/*
TestService_Create_Validation rejects empty proposals.
*/
func TestService_Create_Validation(t *testing.T) {
	service, repo, _, memeID := newSuggestService(t)

	_, err := service.Create(context.Background(), suggest.CreateInput{MemeID: memeID})
	require.Error(t, err)

	_, err = service.Create(context.Background(), suggest.CreateInput{Categories: []string{"x"}})
	require.Error(t, err)

	assert.Empty(t, repo.suggestions)
}

/*
TestService_Resolve_Apply rewrites the meme's categories and stamps the
operator.
*/
func TestService_Resolve_Apply(t *testing.T) {
	service, repo, updater, memeID := newSuggestService(t)
	operator := uuid.New()

	created, err := service.Create(context.Background(), suggest.CreateInput{
		MemeID:     memeID,
		Categories: []string{"animals"},
	})
	require.NoError(t, err)

	require.NoError(t, service.Resolve(context.Background(), created.ID, suggest.StatusApplied, operator))

	assert.Equal(t, []string{"animals"}, updater.updates[memeID])
	resolved := repo.suggestions[created.ID]
	assert.Equal(t, suggest.StatusApplied, resolved.Status)
	assert.Equal(t, operator, resolved.ApplyUserID.UUID)
}

/*
TestService_Resolve_Reject leaves the meme untouched.
*/
func TestService_Resolve_Reject(t *testing.T) {
	service, repo, updater, memeID := newSuggestService(t)

	created, err := service.Create(context.Background(), suggest.CreateInput{
		MemeID:     memeID,
		Categories: []string{"animals"},
	})
	require.NoError(t, err)

	require.NoError(t, service.Resolve(context.Background(), created.ID, suggest.StatusRejected, uuid.New()))

	assert.Empty(t, updater.updates)
	assert.Equal(t, suggest.StatusRejected, repo.suggestions[created.ID].Status)
}

/*
TestService_Resolve_Conflicts rejects double resolution and pending verdicts.
*/
func TestService_Resolve_Conflicts(t *testing.T) {
	service, _, _, memeID := newSuggestService(t)

	created, err := service.Create(context.Background(), suggest.CreateInput{
		MemeID:     memeID,
		Categories: []string{"animals"},
	})
	require.NoError(t, err)

	// "pending" is not a verdict.
	require.Error(t, service.Resolve(context.Background(), created.ID, suggest.StatusPending, uuid.New()))

	require.NoError(t, service.Resolve(context.Background(), created.ID, suggest.StatusRejected, uuid.New()))
	require.Error(t, service.Resolve(context.Background(), created.ID, suggest.StatusApplied, uuid.New()))
}
