package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hprasetyo/finbot/internal/chatlog"
	"github.com/hprasetyo/finbot/internal/logger"
)

func TestDashboard_Logs(t *testing.T) {
	chat := chatlog.NewMemory(0)
	for i := 0; i < 3; i++ {
		if err := chat.Record(context.Background(), chatlog.Entry{
			Timestamp: time.Now(),
			Sender:    "+62811",
			Message:   "balance",
			Response:  "Rp0",
		}); err != nil {
			t.Fatal(err)
		}
	}

	h := NewDashboardHandler(chat, map[string]string{"whatsapp": "mock"}, logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/logs?limit=2", nil)
	rec := httptest.NewRecorder()
	h.Logs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Status string          `json:"status"`
		Data   []chatlog.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || len(body.Data) != 2 {
		t.Errorf("body = %+v", body)
	}
}

func TestDashboard_LogsEmpty(t *testing.T) {
	h := NewDashboardHandler(chatlog.NewMemory(0), nil, logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/logs", nil)
	rec := httptest.NewRecorder()
	h.Logs(rec, req)

	var body struct {
		Data []chatlog.Entry `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data == nil {
		t.Error("data should be an empty array, not null")
	}
}

func TestDashboard_Status(t *testing.T) {
	h := NewDashboardHandler(chatlog.NewMemory(0), map[string]string{
		"whatsapp": "live",
		"ledger":   "mock",
		"gemini":   "mock",
	}, logger.NewWithWriter(io.Discard))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	var body struct {
		Data struct {
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Services["whatsapp"] != "live" || body.Data.Services["ledger"] != "mock" {
		t.Errorf("services = %v", body.Data.Services)
	}
}
