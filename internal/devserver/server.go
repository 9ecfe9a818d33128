// Package devserver is a local stand-in for the game backend. It serves the
// endpoints the economy engine consumes over an in-memory ledger so the
// client can be run and tested without the production API.
package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/palemoky/infinity-box/internal/api"
	"github.com/palemoky/infinity-box/internal/logger"
)

type ctxKey struct{}

// Server is the development backend.
type Server struct {
	ledger *Ledger
	tokens *TokenIssuer

	limiter *RateLimiter

	mu        sync.Mutex
	summaries []map[string]any

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimiter throttles every route per client address.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) { s.limiter = rl }
}

// New creates a server backed by ledger and tokens.
func New(ledger *Ledger, tokens *TokenIssuer, opts ...Option) *Server {
	s := &Server{ledger: ledger, tokens: tokens}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Ledger returns the backing ledger.
func (s *Server) Ledger() *Ledger {
	return s.ledger
}

// Login opens (or reuses) an account and returns a bearer token for it.
func (s *Server) Login(username string) (string, error) {
	s.ledger.Open(username, username)
	return s.tokens.Issue(username)
}

// Summaries returns the session summaries received so far.
func (s *Server) Summaries() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.summaries))
	copy(out, s.summaries)
	return out
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/dev/login", s.handleLogin)

	r.Group(func(rr chi.Router) {
		rr.Use(s.requireAuth)
		rr.Get(api.PathProfile, s.handleProfile)
		rr.Post(api.PathUpdateBalance, s.handleUpdateBalance)
		rr.Post(api.PathSessionEnd, s.handleSessionEnd)
		rr.Get(api.PathPlayerStats, s.handlePlayerStats)
	})

	return r
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		playerID, err := s.tokens.Verify(token)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, playerID)))
	})
}

func playerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.LogError("Failed to write response: %v", err)
	}
}
