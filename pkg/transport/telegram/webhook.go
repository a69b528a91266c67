package telegram

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// WebhookHandler decodes webhook updates and hands them to the binding.
// The Bot API expects a quick 200; the turn itself runs on a separate
// goroutine.
type WebhookHandler struct {
	binding *Binding
	logger  *slog.Logger
}

// NewWebhookHandler creates a webhook handler over the binding.
func NewWebhookHandler(binding *Binding) *WebhookHandler {
	return &WebhookHandler{
		binding: binding,
		logger:  slog.Default().With("component", "telegram.webhook"),
	}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("failed to decode webhook update", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Acknowledge immediately; Telegram retries slow webhooks. The turn
	// outlives the request, so it gets a fresh context.
	go h.binding.HandleUpdate(context.Background(), update)

	w.WriteHeader(http.StatusOK)
}
