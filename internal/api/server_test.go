// Copyright (c) 2026 D42X. All rights reserved.

package api_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d42x/d42x-api/internal/account"
	"github.com/d42x/d42x-api/internal/api"
	"github.com/d42x/d42x-api/internal/category"
	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/platform/cache"
	"github.com/d42x/d42x-api/internal/platform/config"
	"github.com/d42x/d42x-api/internal/platform/sec"
	"github.com/d42x/d42x-api/internal/suggest"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// # Store Stubs

type categoryStore struct {
	listCalls int
}

func (s *categoryStore) ListCategories(_ context.Context) ([]*category.Category, error) {
	s.listCalls++
	return []*category.Category{{ID: uuid.New(), Name: "classics", MemeCount: 3}}, nil
}

func (s *categoryStore) AppendCategories(_ context.Context, _ []string) error { return nil }

func (s *categoryStore) UpdateCategories(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

type memeStore struct {
	postCalls int
}

func (s *memeStore) ListPublished(_ context.Context, page int, _ string) (pagination.Page[*meme.Meme], error) {
	return pagination.NewPage[*meme.Meme](page, meme.PublicPageSize, 0, nil), nil
}

func (s *memeStore) ListAll(_ context.Context, params pagination.Params, _ string) (pagination.Page[*meme.Meme], error) {
	return pagination.NewPage[*meme.Meme](params.Page, params.Size, 0, nil), nil
}

func (s *memeStore) GetByID(_ context.Context, id uuid.UUID) (*meme.Meme, error) {
	return &meme.Meme{ID: id, Status: meme.StatusPublished}, nil
}

func (s *memeStore) Interactions(_ context.Context, _ []uuid.UUID) ([]*meme.Interaction, error) {
	return []*meme.Interaction{}, nil
}

func (s *memeStore) PostMemes(_ context.Context, _ []meme.PostMeme) error {
	s.postCalls++
	return nil
}

func (s *memeStore) Delete(_ context.Context, _ uuid.UUID) error         { return nil }
func (s *memeStore) IncreaseLike(_ context.Context, _ uuid.UUID) error   { return nil }
func (s *memeStore) IncreaseUnlike(_ context.Context, _ uuid.UUID) error { return nil }

type accountStore struct{}

func (accountStore) FindAdminByUsername(_ context.Context, _ string) (*account.Account, error) {
	return nil, assert.AnError
}

func (accountStore) FindAdminByID(_ context.Context, _ uuid.UUID) (*account.Account, error) {
	return nil, assert.AnError
}

func (accountStore) UpdatePassword(_ context.Context, _ uuid.UUID, _ string) error { return nil }
func (accountStore) UpdateActivity(_ context.Context, _ uuid.UUID, _ string) error { return nil }

type suggestStore struct{}

func (suggestStore) Create(_ context.Context, _ *suggest.Suggestion) error { return nil }

func (suggestStore) GetByID(_ context.Context, _ uuid.UUID) (*suggest.Suggestion, error) {
	return nil, assert.AnError
}

func (suggestStore) ListPaginated(_ context.Context, params pagination.Params, _ string) (pagination.Page[*suggest.Suggestion], error) {
	return pagination.NewPage[*suggest.Suggestion](params.Page, params.Size, 0, nil), nil
}

func (suggestStore) SetStatus(_ context.Context, _ uuid.UUID, _ suggest.Status, _ uuid.UUID) error {
	return nil
}

// # Test Rig

type pipelineRig struct {
	handler    http.Handler
	bodyCipher *sec.BodyCipher
	tokens     *sec.TokenService
	memes      *memeStore
	categories *categoryStore
}

func newPipelineRig(t *testing.T) *pipelineRig {
	t.Helper()

	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "test",
		CORSOrigins: "*",
	}

	tokens := sec.NewTokenService([]byte("pipeline-secret"), "d42x", "admin-ui", time.Hour)
	bodyCipher, err := sec.NewBodyCipher([]byte("0123456789abcdef"), []byte("fedcba9876543210"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	memes := &memeStore{}
	categories := &categoryStore{}

	memeRepo := meme.NewCachedRepository(memes, cache.NewStub(), logger)
	categoryRepo := category.NewCachedRepository(categories, cache.NewStub(), memeRepo, logger)

	accountService := account.NewService(accountStore{}, tokens, logger)
	categoryService := category.NewService(categoryRepo, logger)
	memeService := meme.NewService(memeRepo, categoryRepo, logger)
	suggestService := suggest.NewService(suggestStore{}, memeService, categoryService, logger)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	server := api.NewServer(context.Background(), cfg, logger, tokens, bodyCipher, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService),
		Category:  category.NewHandler(categoryService),
		Meme:      meme.NewHandler(memeService),
		MemeAdmin: meme.NewAdminHandler(memeService),
		Suggest:   suggest.NewHandler(suggestService),
	})

	return &pipelineRig{
		handler:    server.Handler(),
		bodyCipher: bodyCipher,
		tokens:     tokens,
		memes:      memes,
		categories: categories,
	}
}

func (rig *pipelineRig) adminToken(t *testing.T) string {
	t.Helper()

	token, err := rig.tokens.Issue(uuid.New(), "admin")
	require.NoError(t, err)
	return token
}

func (rig *pipelineRig) encrypt(t *testing.T, plaintext string) string {
	t.Helper()

	envelope, err := rig.bodyCipher.Encrypt([]byte(plaintext))
	require.NoError(t, err)
	return string(envelope)
}

func (rig *pipelineRig) decrypt(t *testing.T, envelope string) string {
	t.Helper()

	plaintext, err := rig.bodyCipher.Decrypt([]byte(envelope))
	require.NoError(t, err)
	return string(plaintext)
}

// # End-to-End Scenarios

/*
TestPipeline_EncryptedAdminPost walks the full happy path: a valid token and
an encrypted JSON body produce a 200 with an empty body, and the insert
happened exactly once.
*/
func TestPipeline_EncryptedAdminPost(t *testing.T) {
	rig := newPipelineRig(t)

	body := `{"memes":[{"nickname":"visitor","categories":["classics"],"message":"hi",` +
		`"urls":[{"url":"https://cdn.example.com/a.webp","format":"webp","sort":1}]}]}`

	request := httptest.NewRequest(http.MethodPost, "/api/admin/post-memes", strings.NewReader(rig.encrypt(t, body)))
	request.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	request.Header.Set("Authorization", "Bearer "+rig.adminToken(t))
	recorder := httptest.NewRecorder()

	rig.handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes(), "empty bodies pass the gate unciphered")
	assert.Equal(t, 1, rig.memes.postCalls)
}

/*
TestPipeline_SecondCategoryReadIsCached verifies the public category listing
hits the store once across two requests, and both responses decrypt to the
same payload.
*/
func TestPipeline_SecondCategoryReadIsCached(t *testing.T) {
	rig := newPipelineRig(t)

	fetch := func() string {
		request := httptest.NewRequest(http.MethodGet, "/api/client/categories", nil)
		recorder := httptest.NewRecorder()
		rig.handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "text/plain;charset=UTF-8", recorder.Header().Get("Content-Type"))
		return rig.decrypt(t, recorder.Body.String())
	}

	first := fetch()
	second := fetch()

	assert.Equal(t, 1, rig.categories.listCalls, "second read must be served from cache")
	assert.JSONEq(t, first, second)
	assert.Contains(t, first, "classics")
}

/*
TestPipeline_UnauthenticatedAdminRequest verifies a missing Authorization
header answers 401 before any handler side effect.
*/
func TestPipeline_UnauthenticatedAdminRequest(t *testing.T) {
	rig := newPipelineRig(t)

	body := `{"memes":[{"nickname":"visitor","urls":[{"url":"u","format":"png"}]}]}`
	request := httptest.NewRequest(http.MethodPost, "/api/admin/post-memes", strings.NewReader(rig.encrypt(t, body)))
	request.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	recorder := httptest.NewRecorder()

	rig.handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Zero(t, rig.memes.postCalls, "handler must never run")

	// The rejection itself leaves the gate ciphered.
	decrypted := rig.decrypt(t, recorder.Body.String())
	assert.Contains(t, decrypted, "UNAUTHORIZED")
}

/*
TestPipeline_NonCanonicalPathsStayGated verifies duplicate-slash path forms
are normalized before the gates match, so they cannot route around
authentication or leave a response unciphered.
*/
func TestPipeline_NonCanonicalPathsStayGated(t *testing.T) {
	rig := newPipelineRig(t)

	t.Run("unauthenticated admin mutation", func(t *testing.T) {
		body := `{"memes":[{"nickname":"visitor","urls":[{"url":"u","format":"png"}]}]}`
		request := httptest.NewRequest(http.MethodPost, "//api/admin/post-memes", strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json;charset=UTF-8")
		recorder := httptest.NewRecorder()

		rig.handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Zero(t, rig.memes.postCalls, "handler must never run")
	})

	t.Run("public read stays ciphered", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "//api/client/categories", nil)
		recorder := httptest.NewRecorder()

		rig.handler.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "text/plain;charset=UTF-8", recorder.Header().Get("Content-Type"))
		assert.Contains(t, rig.decrypt(t, recorder.Body.String()), "classics")
	})
}

/*
TestPipeline_InvalidHexBody verifies an undecryptable mutation body answers
a server error with no partial insert.
*/
func TestPipeline_InvalidHexBody(t *testing.T) {
	rig := newPipelineRig(t)

	request := httptest.NewRequest(http.MethodPost, "/api/admin/post-memes", strings.NewReader("zz-not-hex"))
	request.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	request.Header.Set("Authorization", "Bearer "+rig.adminToken(t))
	recorder := httptest.NewRecorder()

	rig.handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Zero(t, rig.memes.postCalls, "handler must never run")
}

/*
TestPipeline_HealthProbesBypassGates verifies probes outside /api are
neither ciphered nor gated.
*/
func TestPipeline_HealthProbesBypassGates(t *testing.T) {
	rig := newPipelineRig(t)

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	rig.handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ok"`)
}
