package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/brier-terminal/backend/internal/api/handlers"
	"github.com/wonny/brier-terminal/backend/pkg/logger"
)

// Handlers bundles every API handler the router mounts
type Handlers struct {
	Leaderboard *handlers.LeaderboardHandler
	Cron        *handlers.CronHandler
	Whales      *handlers.WhaleHandler
	Markets     *handlers.MarketHandler
	Portfolio   *handlers.PortfolioHandler
	Scheduler   *handlers.SchedulerHandler

	// WhaleStream upgrades /ws/whales; nil disables the stream
	WhaleStream http.Handler
}

// RouterConfig holds router-level settings
type RouterConfig struct {
	AllowedOrigin string
	CronSecret    string
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, cfg RouterConfig, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Leaderboard
	api.HandleFunc("/leaderboard", h.Leaderboard.GetLeaderboard).Methods("GET")

	// Cron triggers
	cron := api.PathPrefix("/cron").Subrouter()
	cron.HandleFunc("/rank-update", h.Cron.RankUpdate).Methods("GET")
	cron.HandleFunc("/whale-scan", h.Cron.WhaleScan).Methods("GET")
	cron.Use(cronAuthMiddleware(cfg.CronSecret))

	// Whales
	api.HandleFunc("/whales", h.Whales.GetWhales).Methods("GET")
	api.HandleFunc("/wallets/{address}", h.Whales.GetWallet).Methods("GET")

	// Markets
	api.HandleFunc("/markets", h.Markets.GetMarkets).Methods("GET")

	// Portfolio
	api.HandleFunc("/user/portfolio", h.Portfolio.GetPortfolio).Methods("GET")
	api.HandleFunc("/user/portfolio", h.Portfolio.OpenPosition).Methods("POST")
	api.HandleFunc("/user/portfolio/cashout", h.Portfolio.Cashout).Methods("POST")

	// Scheduler
	api.HandleFunc("/scheduler/jobs", h.Scheduler.GetJobs).Methods("GET")

	// Realtime
	if h.WhaleStream != nil {
		r.Handle("/ws/whales", h.WhaleStream).Methods("GET")
	}

	// Unmatched paths and methods answer with the same {error} body as handlers
	r.NotFoundHandler = jsonErrorHandler(http.StatusNotFound, "Not found")
	r.MethodNotAllowedHandler = jsonErrorHandler(http.StatusMethodNotAllowed, "Method not allowed")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	// CORS wraps the whole router so preflights never reach route matching
	return corsMiddleware(cfg.AllowedOrigin)(r)
}

// jsonErrorHandler writes a fixed {error} response
func jsonErrorHandler(status int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	})
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "brier-terminal-api",
	})
}

// statusRecorder captures the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the hijacker for websockets
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Websocket upgrades need the raw writer
			if r.Header.Get("Upgrade") != "" {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware allows the dashboard origin to call the API
func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if allowedOrigin != "*" {
				w.Header().Add("Vary", "Origin")
			}

			// Preflight
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// cronAuthMiddleware requires "Authorization: Bearer <secret>" when a secret
// is configured
func cronAuthMiddleware(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		want := []byte("Bearer " + secret)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, want) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Unauthorized",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
