package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all process configuration, loaded from environment
// variables (optionally seeded from a .env file).
type Config struct {
	Port      string
	LogLevel  string
	PublicDir string

	// PendingTTL bounds how long an unconfirmed proposal may stay pending.
	// Zero means pending entries never expire.
	PendingTTL time.Duration

	Twilio TwilioConfig
	Sheets SheetsConfig
	Gemini GeminiConfig
}

// TwilioConfig carries the WhatsApp transport credentials. When incomplete
// the messenger runs as the mock variant.
type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string
}

// Configured reports whether live Twilio delivery can be set up.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.WhatsAppNumber != ""
}

// SheetsConfig carries the Google Sheets service-account credentials. When
// incomplete the ledger and chat log run in memory.
type SheetsConfig struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
}

// Configured reports whether the spreadsheet-backed ledger can be set up.
func (c SheetsConfig) Configured() bool {
	return c.SpreadsheetID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}

// GeminiConfig carries the generative backend settings. Without an API key
// extraction falls back to the heuristic strategy.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Configured reports whether the AI extraction strategy can be set up.
func (c GeminiConfig) Configured() bool {
	return c.APIKey != ""
}

// Load reads configuration from the environment, trying a .env file first.
// Missing collaborator credentials are warnings, not errors: the caller
// resolves the corresponding mock variant at startup.
func Load(log zerolog.Logger) Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file, relying on OS environment")
	}

	cfg := Config{
		Port:       envOr("PORT", "8000"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		PublicDir:  os.Getenv("PUBLIC_DIR"),
		PendingTTL: envDuration(log, "PENDING_TTL", 0),
		Twilio: TwilioConfig{
			AccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
			WhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
			ClientEmail:   os.Getenv("GOOGLE_SHEETS_CLIENT_EMAIL"),
			PrivateKey:    os.Getenv("GOOGLE_SHEETS_PRIVATE_KEY"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		},
	}

	for _, name := range []string{
		"TWILIO_ACCOUNT_SID",
		"TWILIO_AUTH_TOKEN",
		"TWILIO_WHATSAPP_NUMBER",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_CLIENT_EMAIL",
		"GOOGLE_SHEETS_PRIVATE_KEY",
		"GEMINI_API_KEY",
	} {
		if os.Getenv(name) == "" {
			log.Warn().Str("var", name).Msg("Environment variable is not set")
		}
	}

	return cfg
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envDuration(log zerolog.Logger, name string, fallback time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("var", name).Msg(fmt.Sprintf("Invalid duration, using %s", fallback))
		return fallback
	}
	return d
}
