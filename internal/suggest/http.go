// Copyright (c) 2026 D42X. All rights reserved.

package suggest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/d42x/d42x-api/internal/platform/request"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/validate"
	"github.com/d42x/d42x-api/pkg/pagination"
)

// Handler exposes the suggestion endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a suggest HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterClientRoutes mounts the public submission endpoint.
func (handler *Handler) RegisterClientRoutes(router chi.Router) {
	router.Post("/suggests", handler.create)
}

// RegisterAdminRoutes mounts the review queue endpoints.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/suggests", handler.list)
	router.Put("/suggests/{id}", handler.resolve)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	suggestion, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, suggestion)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	status := request.URL.Query().Get("status")

	result, err := handler.service.List(request.Context(), params, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// resolveInput carries the admin's verdict.
type resolveInput struct {
	Status Status `json:"status"`
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.UUIDParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Resolve(request.Context(), id, input.Status, identity.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoBody(writer, http.StatusOK)
}
