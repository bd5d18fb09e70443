// Copyright (c) 2026 D42X. All rights reserved.

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/d42x/d42x-api/internal/platform/apperr"
	"github.com/d42x/d42x-api/internal/platform/constants"
	"github.com/d42x/d42x-api/internal/platform/respond"
	"github.com/d42x/d42x-api/internal/platform/sec"
)

// mutationMethods are the methods whose request bodies arrive ciphered.
var mutationMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
}

// Cipher is the body protection gate for the /api/ surface.
//
// # Inbound
//
// A mutation (POST/PUT/DELETE) on an /api/ path whose Content-Type is the
// ciphered sentinel has its body hex-decoded and AES-decrypted before the
// handler runs; the Content-Type is rewritten to JSON so downstream decoding
// works unmodified. A mutation with any other Content-Type passes through
// untouched. A body that fails to decrypt answers 500 and the handler never
// runs.
//
// # Outbound
//
// The response body is encrypted and the Content-Type set to the ciphered
// sentinel when the request was a gated mutation, or any GET on an /api/
// path. Empty bodies stay empty. Non-/api/ traffic (health probes) is never
// touched in either direction.
func Cipher(bodyCipher *sec.BodyCipher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			isAPI := strings.HasPrefix(request.URL.Path, constants.APIPrefix)
			isMutation := isAPI && mutationMethods[request.Method]

			// ── 1. Inbound Decryption ─────────────────────────────────────────
			if isMutation && request.Header.Get(constants.HeaderContentType) == constants.ContentTypeCiphered {
				envelope, err := io.ReadAll(request.Body)
				if err != nil {
					respond.Error(writer, request, apperr.Internal(err))
					return
				}
				_ = request.Body.Close()

				plaintext, err := bodyCipher.Decrypt(envelope)
				if err != nil {
					respond.Error(writer, request, apperr.Internal(err))
					return
				}

				request.Body = io.NopCloser(bytes.NewReader(plaintext))
				request.ContentLength = int64(len(plaintext))
				request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
			}

			// ── 2. Outbound Encryption ────────────────────────────────────────
			if !isMutation && !(isAPI && request.Method == http.MethodGet) {
				next.ServeHTTP(writer, request)
				return
			}

			recorder := &bodyRecorder{header: writer.Header()}
			next.ServeHTTP(recorder, request)

			envelope, err := bodyCipher.Encrypt(recorder.body.Bytes())
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			writer.Header().Set(constants.HeaderContentType, constants.ContentTypeCiphered)
			writer.Header().Set("Content-Length", strconv.Itoa(len(envelope)))
			writer.WriteHeader(recorder.statusCode())
			_, _ = writer.Write(envelope)
		})
	}
}

// bodyRecorder buffers a handler's response so the gate can cipher it before
// anything reaches the wire.
type bodyRecorder struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (recorder *bodyRecorder) Header() http.Header {
	return recorder.header
}

func (recorder *bodyRecorder) Write(data []byte) (int, error) {
	return recorder.body.Write(data)
}

// WriteHeader records the status without flushing it; headers must stay open
// until the ciphered body length is known.
func (recorder *bodyRecorder) WriteHeader(code int) {
	if recorder.status == 0 {
		recorder.status = code
	}
}

func (recorder *bodyRecorder) statusCode() int {
	if recorder.status == 0 {
		return http.StatusOK
	}
	return recorder.status
}
