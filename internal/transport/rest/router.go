package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the webhook, probe and index routes.
func NewRouter(webhook *WebhookHandler, health *HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", Index)

	r.Get("/webhook", webhook.Verify)
	r.Post("/webhook", webhook.Receive)

	r.Get("/live", health.Live)
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)

	return r
}
