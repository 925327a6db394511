package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hprasetyo/finbot/internal/api/middleware"
	"github.com/hprasetyo/finbot/internal/chatlog"
)

const defaultLogLimit = 50

// DashboardHandler serves the chat log and service status views.
type DashboardHandler struct {
	chat     chatlog.Log
	services map[string]string
	started  time.Time
	log      zerolog.Logger
}

// NewDashboardHandler creates the dashboard handler. services maps each
// collaborator name to its resolved variant ("live" or "mock").
func NewDashboardHandler(chat chatlog.Log, services map[string]string, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		chat:     chat,
		services: services,
		started:  time.Now(),
		log:      log,
	}
}

// Logs handles GET /dashboard/logs.
func (h *DashboardHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.chat.Recent(r.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch chat logs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch chat logs")
		return
	}
	if entries == nil {
		entries = []chatlog.Entry{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   entries,
	})
}

// Status handles GET /dashboard/status.
func (h *DashboardHandler) Status(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"uptime":    time.Since(h.started).Seconds(),
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  h.services,
		},
	})
}
