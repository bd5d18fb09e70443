// Copyright (c) 2026 D42X. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/d42x/d42x-api/internal/platform/request"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/validate"
)

// Handler exposes category endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a category HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterClientRoutes mounts the public endpoints.
func (handler *Handler) RegisterClientRoutes(router chi.Router) {
	router.Get("/categories", handler.listCategories)
}

// RegisterAdminRoutes mounts the admin-panel endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/categories", handler.listCategories)
	router.Put("/categories/{memeID}", handler.updateCategories)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

// updateCategoriesInput is the body of the admin category rewrite.
type updateCategoriesInput struct {
	Categories []string `json:"categories"`
}

func (handler *Handler) updateCategories(writer http.ResponseWriter, request *http.Request) {
	memeID, err := requestutil.UUIDParam(request, "memeID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCategoriesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.UpdateCategories(request.Context(), memeID, input.Categories); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoBody(writer, http.StatusOK)
}
