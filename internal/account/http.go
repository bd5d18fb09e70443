// Copyright (c) 2026 D42X. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/d42x/d42x-api/internal/platform/middleware"
	requestutil "github.com/d42x/d42x-api/internal/platform/request"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/validate"
)

// Handler exposes the admin session endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the session endpoints on the admin router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
	router.Put("/change-password", handler.changePassword)
	router.Get("/check-logged-in", handler.checkLoggedIn)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.service.Login(request.Context(), input, middleware.RealIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ChangePasswordInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.ChangePassword(request.Context(), identity.ID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoBody(writer, http.StatusOK)
}

// checkLoggedIn answers 200 for any request that survived the auth gate.
// The admin UI polls it to decide whether to show the login screen.
func (handler *Handler) checkLoggedIn(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"username": identity.Username})
}
