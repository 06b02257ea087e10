package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/handler"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/ledger.db")
	port := getEnv("PORT", "8080")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	api := http.NewServeMux()
	handler.New(store).RegisterRoutes(api)

	var apiHandler http.Handler = api

	// Tokens are minted by the external identity provider; the server only
	// validates them, and only when a secret is configured.
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		apiHandler = middleware.RequireAuth(auth.NewJWTManager(secret, 24*time.Hour))(apiHandler)
		slog.Info("Bearer-token auth enabled")
	} else {
		slog.Warn("AUTH_SECRET not set, requests are unauthenticated")
	}

	// Probes and metrics stay outside the auth wrapper.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/", apiHandler)

	h := middleware.Metrics(middleware.Logging(middleware.CORS(mux)))

	// h2c for HTTP/2 without TLS; TLS termination belongs to the proxy.
	h2cHandler := h2c.NewHandler(h, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
