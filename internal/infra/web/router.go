// Package web serves the provisioning form and the health endpoint.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers the HTTP routes and middleware stack.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/", handler.index)
	r.Post("/", handler.push)
	r.Get("/healthz", handler.healthz)

	return r
}
