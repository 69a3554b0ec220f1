package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Plan               string
	WebhookSecret      string
	MaxRequestBodySize int64
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type healthResponse struct {
	OK   bool   `json:"ok"`
	Plan string `json:"plan"`
}

// NewRouter wires the webhook and health routes.
func NewRouter(cfg RouterConfig, engine Engine, out Dispatcher, logger *zap.Logger) http.Handler {
	webhook := NewWebhookHandler(engine, out, cfg.WebhookSecret, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(MaxBodyMiddleware(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, healthResponse{OK: true, Plan: cfg.Plan})
	})

	for _, path := range []string{"/telegram", "/webhook/telegram"} {
		r.Get(path, webhook.Ping)
		r.Post(path, webhook.Receive)
	}

	return otelhttp.NewHandler(r, "storebot")
}

// NewServer returns an http.Server with the usual timeouts.
func NewServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func respondOK(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
