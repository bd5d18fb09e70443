// Copyright (c) 2026 D42X. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/ctxutil"
	"github.com/d42x/d42x-api/internal/platform/sec"
	"github.com/d42x/d42x-api/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
UUIDParam retrieves a named URL parameter and parses it as a UUID.

Returns:
  - uuid.UUID: The parsed identifier
  - error: apperr.ValidationError if the value is not a valid UUID
*/
func UUIDParam(request *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(request, name))
	if err != nil {
		return uuid.Nil, apperr.ValidationError("Invalid " + name)
	}
	return id, nil
}

/*
Identity extracts the authenticated administrator from the request context.

Returns nil if the request is not authenticated.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the identity.

The authentication middleware guarantees an identity for every gated path,
so a nil here means a routing mistake rather than a client error; it is
still answered with 401 rather than a panic.

Returns:
  - *sec.Identity: The authenticated administrator
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {
	identity := ctxutil.GetIdentity(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return identity, nil
}
