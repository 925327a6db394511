package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hprasetyo/finbot/internal/api/middleware"
	"github.com/hprasetyo/finbot/internal/messenger"
)

// MessageHandler is the conversation engine as seen by the webhook.
type MessageHandler interface {
	HandleMessage(ctx context.Context, sender, text string) error
}

// WebhookHandler receives inbound WhatsApp messages from the transport.
type WebhookHandler struct {
	engine    MessageHandler
	validator messenger.Validator
	log       zerolog.Logger
}

// NewWebhookHandler creates the webhook handler.
func NewWebhookHandler(engine MessageHandler, validator messenger.Validator, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{engine: engine, validator: validator, log: log}
}

// Receive handles POST /webhook. The signature is validated against the
// raw request before any state-machine logic runs.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	signature := r.Header.Get("X-Twilio-Signature")
	if !h.validator.Validate(signature, requestURL(r), r.PostForm) {
		h.log.Error().Str("remote_addr", r.RemoteAddr).Msg("Invalid webhook signature")
		middleware.WriteError(w, http.StatusForbidden, "Invalid signature")
		return
	}

	body := r.PostForm.Get("Body")
	if body == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message body is required")
		return
	}

	from := r.PostForm.Get("From")
	if from == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Sender is required")
		return
	}
	sender := strings.TrimPrefix(from, "whatsapp:")

	if err := h.engine.HandleMessage(r.Context(), sender, body); err != nil {
		h.log.Error().Err(err).Str("sender", sender).Msg("Error processing webhook")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Message processed successfully",
	})
}

// Health handles GET /webhook/health.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// requestURL reconstructs the public URL the transport signed.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
