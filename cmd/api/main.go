package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pennywise-ai/pennywise/internal/api/handlers"
	"github.com/pennywise-ai/pennywise/internal/api/middleware"
	"github.com/pennywise-ai/pennywise/internal/classifier"
	"github.com/pennywise-ai/pennywise/internal/config"
	"github.com/pennywise-ai/pennywise/internal/gemini"
	"github.com/pennywise-ai/pennywise/internal/insights"
	"github.com/pennywise-ai/pennywise/internal/jobs"
	jobsqueue "github.com/pennywise-ai/pennywise/internal/jobs/inmemory"
	"github.com/pennywise-ai/pennywise/internal/logger"
	"github.com/pennywise-ai/pennywise/internal/pipeline"
	"github.com/pennywise-ai/pennywise/internal/store"
	"github.com/pennywise-ai/pennywise/internal/store/boltstore"
	storemem "github.com/pennywise-ai/pennywise/internal/store/inmemory"
)

func main() {
	// Load .env for local development; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	// Transaction storage
	var txStore store.Store
	switch cfg.Backend {
	case config.BackendBolt:
		bs, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.BoltPath).Msg("Failed to open bolt store")
		}
		defer bs.Close()
		txStore = bs
	default:
		txStore = storemem.New()
	}

	if cfg.SeedDemoData {
		n, err := store.SeedIfEmpty(ctx, txStore)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		if n > 0 {
			log.Info().Int("rows", n).Msg("Seeded demo ledger")
		}
	}

	// Keyword rule table
	rules := classifier.New()
	if cfg.RulesPath != "" {
		loaded, err := classifier.LoadRules(cfg.RulesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RulesPath).Msg("Failed to load rules file")
		}
		rules, err = classifier.NewWithRules(loaded)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RulesPath).Msg("Invalid rules file")
		}
		log.Info().Str("path", cfg.RulesPath).Int("rules", len(loaded)).Msg("Loaded keyword rules")
	}

	// Gemini client; nil means rule-only categorization and static insights
	var ai *gemini.Client
	if cfg.GeminiAPIKey != "" {
		ai, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
	} else {
		log.Warn().Msg("No Gemini API key configured - running with rules and static fallbacks only")
	}

	var categorizer pipeline.Categorizer
	var generator insights.Generator
	if ai != nil {
		categorizer = ai
		generator = ai
	}

	categorization := pipeline.NewService(categorizer, rules, log)
	insightSvc := insights.NewService(generator, log)

	// Job infrastructure for background insight refreshes
	jobQueue := jobsqueue.NewQueue(100, 2)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		refreshJob, ok := job.(*jobs.RefreshInsightsJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", refreshJob.JobID).
			Str("reason", refreshJob.Reason).
			Msg("Refreshing insights")

		txs, err := txStore.List(ctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		insightSvc.RefreshAll(ctx, txs)

		log.Info().Str("job_id", refreshJob.JobID).Msg("Insight refresh completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting insight refresh worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job worker stopped with error")
		}
	}()

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(txStore, categorization, jobQueue, log)
	insightsHandler := handlers.NewInsightsHandler(insightSvc, jobQueue, log)
	chatHandler := handlers.NewChatHandler(insightSvc, txStore, log)
	summaryHandler := handlers.NewSummaryHandler(txStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodPatch:
			transactionsHandler.UpdateTransaction(w, r, id)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.GetInsights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			insightsHandler.RefreshInsights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			summaryHandler.GetSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("backend", cfg.Backend).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
