package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"telegram-appointment-monitor/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the read-only ops API: liveness, Prometheus metrics,
// and the current registry state behind a static bearer key.
type Server struct {
	registry  usecase.PatternRegistryUseCase
	channel   string
	apiKey    string
	startedAt time.Time
	log       *zerolog.Logger
}

func NewServer(registry usecase.PatternRegistryUseCase, channel, apiKey string, logger *zerolog.Logger) *Server {
	return &Server{
		registry:  registry,
		channel:   strings.TrimPrefix(channel, "@"),
		apiKey:    apiKey,
		startedAt: time.Now(),
		log:       logger,
	}
}

// Router builds the chi mux. /healthz and /metrics are public; the
// /api/v1 group requires the configured bearer key.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Recover(s.log), TraceID(), RequestLog(s.log), Timeout(10*time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(s.authMiddleware)
		api.Get("/patterns", s.handlePatterns)
		api.Get("/status", s.handleStatus)
	})
	return r
}

// authMiddleware provides simple Bearer token authentication for the
// ops API. An unset key keeps the protected routes forbidden.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.apiKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.registry.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	items := make([]string, len(patterns))
	for i, p := range patterns {
		items[i] = p.Raw
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.registry.Count(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"running":        true,
		"channel":        s.channel,
		"patterns":       count,
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
