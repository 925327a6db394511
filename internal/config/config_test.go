package config

import (
	"testing"
	"time"

	"github.com/hprasetyo/finbot/internal/logger"
)

func TestLoad_Defaults(t *testing.T) {
	log := logger.New()

	cfg := Load(log)

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want default 8000", cfg.Port)
	}
	if cfg.Gemini.Model == "" {
		t.Error("expected a default Gemini model name")
	}
	if cfg.PendingTTL != 0 {
		t.Errorf("PendingTTL = %v, want 0 (no expiry)", cfg.PendingTTL)
	}
}

func TestLoad_CollaboratorSelection(t *testing.T) {
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_WHATSAPP_NUMBER", "+14155238886")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load(logger.New())

	if !cfg.Twilio.Configured() {
		t.Error("Twilio should report configured with all three variables set")
	}
	if cfg.Gemini.Configured() {
		t.Error("Gemini should not report configured without an API key")
	}
	if cfg.Sheets.Configured() {
		t.Error("Sheets should not report configured without credentials")
	}
}

func TestLoad_PendingTTL(t *testing.T) {
	t.Setenv("PENDING_TTL", "15m")

	cfg := Load(logger.New())

	if cfg.PendingTTL != 15*time.Minute {
		t.Errorf("PendingTTL = %v, want 15m", cfg.PendingTTL)
	}
}

func TestLoad_InvalidPendingTTL(t *testing.T) {
	t.Setenv("PENDING_TTL", "soon")

	cfg := Load(logger.New())

	if cfg.PendingTTL != 0 {
		t.Errorf("PendingTTL = %v, want fallback 0", cfg.PendingTTL)
	}
}
