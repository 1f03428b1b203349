package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foxowl-ops/digital-twin/internal/api/handlers"
	"github.com/foxowl-ops/digital-twin/internal/api/middleware"
	"github.com/foxowl-ops/digital-twin/internal/gateway"
	"github.com/foxowl-ops/digital-twin/internal/logger"
	"github.com/foxowl-ops/digital-twin/internal/store"
	boltstore "github.com/foxowl-ops/digital-twin/internal/store/bolt"
	"github.com/foxowl-ops/digital-twin/internal/store/inmemory"
	"github.com/foxowl-ops/digital-twin/internal/store/sqlite"
)

func main() {
	// Parse command-line flags
	var (
		port    = flag.String("port", "8080", "HTTP server port")
		dbPath  = flag.String("db", envOr("GATEWAY_DB", "transactions.db"), "path to the transaction log file (or set GATEWAY_DB env)")
		backend = flag.String("backend", envOr("GATEWAY_BACKEND", "sqlite"), "store backend: sqlite, bolt or memory")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	// Open the transaction store
	var (
		st  store.Store
		err error
	)
	switch *backend {
	case "sqlite":
		st, err = sqlite.New(*dbPath)
	case "bolt":
		st, err = boltstore.New(*dbPath)
	case "memory":
		log.Warn().Msg("Using in-memory store - transactions will not survive a restart")
		st = inmemory.New()
	default:
		log.Fatal().Str("backend", *backend).Msg("Unknown store backend")
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", *backend).Msg("Failed to open transaction store")
	}
	defer st.Close()

	// Initialize the processing pipeline and handlers
	processor := gateway.NewProcessor(st, log)

	paymentsHandler := handlers.NewPaymentsHandler(processor, log)
	transactionsHandler := handlers.NewTransactionsHandler(st, log)
	analyticsHandler := handlers.NewAnalyticsHandler(st, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/payments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			paymentsHandler.ProcessPayment(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.GetAnalytics(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
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

	// Create HTTP server. The write timeout leaves room for the worst-case
	// simulated gateway delay on top of request handling.
	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Str("backend", *backend).Msg("Starting payment gateway API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown; in-flight payments run out their simulated latency.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
