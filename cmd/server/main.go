package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/hprasetyo/finbot/internal/api/handlers"
	"github.com/hprasetyo/finbot/internal/api/middleware"
	"github.com/hprasetyo/finbot/internal/chatlog"
	"github.com/hprasetyo/finbot/internal/config"
	"github.com/hprasetyo/finbot/internal/conversation"
	"github.com/hprasetyo/finbot/internal/extract"
	"github.com/hprasetyo/finbot/internal/ledger"
	"github.com/hprasetyo/finbot/internal/logger"
	"github.com/hprasetyo/finbot/internal/messenger"
	"github.com/hprasetyo/finbot/internal/report"
)

func main() {
	var (
		port = flag.String("port", "", "HTTP server port (overrides PORT env)")
	)
	flag.Parse()

	log := logger.New()
	cfg := config.Load(log)
	log = logger.NewWithLevel(cfg.LogLevel)

	if *port != "" {
		cfg.Port = *port
	}

	ctx := context.Background()
	services := make(map[string]string)

	// Resolve each collaborator variant once at startup. Credentials
	// missing or broken means the mock variant, not per-call branching.
	var (
		msgr      messenger.Messenger
		validator messenger.Validator
	)
	if cfg.Twilio.Configured() {
		tw := messenger.NewTwilio(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppNumber, log)
		msgr, validator = tw, tw
		services["whatsapp"] = "live"
	} else {
		log.Warn().Msg("Twilio credentials not set, WhatsApp transport running in mock mode")
		mock := messenger.NewMock(log)
		msgr, validator = mock, mock
		services["whatsapp"] = "mock"
	}

	var (
		book ledger.Ledger
		chat chatlog.Log
	)
	if cfg.Sheets.Configured() {
		sheetsLedger, err := ledger.NewSheets(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.ClientEmail, cfg.Sheets.PrivateKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Sheets ledger")
		}
		book = ledger.NewBuffered(sheetsLedger, log)
		services["ledger"] = "live"

		sheetsLog, err := chatlog.NewSheets(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.ClientEmail, cfg.Sheets.PrivateKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Sheets chat log")
		}
		chat = sheetsLog
	} else {
		log.Warn().Msg("Google Sheets credentials not set, ledger running in memory")
		book = ledger.NewMemory()
		chat = chatlog.NewMemory(500)
		services["ledger"] = "mock"
	}

	var extractor extract.Extractor = extract.NewHeuristic()
	var narrator report.Narrator
	if cfg.Gemini.Configured() {
		gemini, err := extract.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		extractor = extract.NewFallback(gemini, extract.NewHeuristic(), log)
		narrator = gemini
		services["gemini"] = "live"
	} else {
		log.Warn().Msg("Gemini API key not set, extraction running on the keyword heuristic")
		services["gemini"] = "mock"
	}

	engine := conversation.New(conversation.Deps{
		Store:     conversation.NewMemoryStore(cfg.PendingTTL),
		Ledger:    book,
		Messenger: msgr,
		Extractor: extractor,
		Budget:    report.NewGenerator(narrator, log),
		ChatLog:   chat,
		Log:       log,
	})

	webhookHandler := handlers.NewWebhookHandler(engine, validator, log)
	dashboardHandler := handlers.NewDashboardHandler(chat, services, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			webhookHandler.Receive(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/webhook/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			webhookHandler.Health(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/dashboard/logs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.Logs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/dashboard/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.Status(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	if cfg.PublicDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDir)))
	}

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.RateLimit(rate.Limit(5), 10)(
					middleware.CORS(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		log.Info().Str("webhook", "/webhook").Str("dashboard", "/dashboard").Msg("Endpoints registered")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
