// Copyright (c) 2026 D42X. All rights reserved.

package meme

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	requestutil "github.com/d42x/d42x-api/internal/platform/request"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/validate"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// Handler exposes the public meme endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a meme HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterClientRoutes mounts the public browsing and voting endpoints.
func (handler *Handler) RegisterClientRoutes(router chi.Router) {
	router.Get("/memes", handler.listPublished)
	router.Get("/memes/{id}", handler.getMeme)
	router.Post("/memes/interactions", handler.interactions)
	router.Put("/memes/{id}/like", handler.like)
	router.Put("/memes/{id}/unlike", handler.unlike)
}

func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	page, _ := strconv.Atoi(request.URL.Query().Get("page"))
	category := request.URL.Query().Get("category")

	result, err := handler.service.ListPublished(request.Context(), page, category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) getMeme(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// interactionsInput carries the meme IDs the site is currently showing.
type interactionsInput struct {
	IDs []uuid.UUID `json:"ids"`
}

func (handler *Handler) interactions(writer http.ResponseWriter, request *http.Request) {
	var input interactionsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	counts, err := handler.service.Interactions(request.Context(), input.IDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, counts)
}

func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, handler.service.Like)
}

func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, handler.service.Unlike)
}

func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request, apply func(context.Context, uuid.UUID) error) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := apply(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoBody(writer, http.StatusOK)
}

// # Admin Surface

// AdminHandler exposes the moderation endpoints.
type AdminHandler struct {
	service *Service
}

// NewAdminHandler creates the moderation HTTP handler.
func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes mounts the moderation endpoints on the admin router.
func (handler *AdminHandler) RegisterRoutes(router chi.Router) {
	router.Get("/memes", handler.listAll)
	router.Post("/post-memes", handler.postMemes)
	router.Delete("/memes/{id}", handler.deleteMeme)
}

func (handler *AdminHandler) listAll(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := request.URL.Query().Get("status")

	result, err := handler.service.ListAll(request.Context(), params, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// postMemesInput is the body of the bulk submission endpoint.
type postMemesInput struct {
	Memes []PostMeme `json:"memes"`
}

func (handler *AdminHandler) postMemes(writer http.ResponseWriter, request *http.Request) {
	var input postMemesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.PostMemes(request.Context(), input.Memes); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Bare 200 with an empty body; empty bodies pass the cipher gate unciphered.
	respond.NoBody(writer, http.StatusOK)
}

func (handler *AdminHandler) deleteMeme(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoBody(writer, http.StatusOK)
}
