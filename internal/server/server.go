// Package server exposes the HTTP API.
package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"draftforge/internal/app"
	"draftforge/internal/metrics"
	"draftforge/internal/ratelimit"
	"draftforge/internal/util"
	"draftforge/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App

	// Limiter guards register and login; nil disables rate limiting.
	Limiter *ratelimit.FixedWindow

	// TrustedProxies controls which peers may set forwarded headers.
	TrustedProxies *util.ProxyTrust
}

// Server exposes the document authoring HTTP endpoints.
type Server struct {
	app     *app.App
	limiter *ratelimit.FixedWindow
	trusted *util.ProxyTrust
	mux     *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:     cfg.App,
		limiter: cfg.Limiter,
		trusted: cfg.TrustedProxies,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the handler with the middleware chain applied.
func (s *Server) Router() http.Handler {
	var handler http.Handler = s.mux
	handler = util.WithRequestLog(handler)
	handler = util.WithSecurityHeaders(handler)
	handler = util.WithCORS(handler)
	handler = util.WithRequestID(handler)
	return handler
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	// auth
	s.mux.Handle("/api/v1/auth/register", s.rateLimited("register", http.HandlerFunc(s.handleRegister)))
	s.mux.Handle("/api/v1/auth/login", s.rateLimited("login", http.HandlerFunc(s.handleLogin)))
	s.mux.Handle("/api/v1/auth/logout", s.authenticated(s.handleLogout))
	s.mux.Handle("/api/v1/auth/me", s.authenticated(s.handleMe))
	s.mux.Handle("/api/v1/auth/profile", s.authenticated(s.handleProfile))

	// projects
	s.mux.Handle("/api/v1/projects", s.authenticated(s.handleProjects))
	s.mux.Handle("/api/v1/projects/", s.authenticated(s.handleProjectByID))

	// generation
	s.mux.Handle("/api/v1/generation/outline/", s.authenticated(s.handleGenerateOutline))
	s.mux.Handle("/api/v1/generation/section/", s.authenticated(s.handleGenerateContent))
	s.mux.Handle("/api/v1/generation/slide/", s.authenticated(s.handleGenerateContent))
	s.mux.Handle("/api/v1/generation/all/", s.authenticated(s.handleGenerateAll))

	// refinement
	s.mux.Handle("/api/v1/refinement/refine/", s.authenticated(s.handleRefine))
	s.mux.Handle("/api/v1/refinement/accept/", s.authenticated(s.handleAccept))
	s.mux.Handle("/api/v1/refinement/reject/", s.authenticated(s.handleReject))
	s.mux.Handle("/api/v1/refinement/feedback/", s.authenticated(s.handleFeedback))
	s.mux.Handle("/api/v1/refinement/pending/", s.authenticated(s.handlePending))
	s.mux.Handle("/api/v1/refinement/history/", s.authenticated(s.handleHistory))

	// export
	s.mux.Handle("/api/v1/export/", s.authenticated(s.handleExport))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w, r)
			return
		}
		user, ok := s.app.UserFromToken(r.Context(), token)
		if !ok {
			unauthorized(w, r)
			return
		}
		next(w, r, user)
	})
}

func (s *Server) rateLimited(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil {
			key := endpoint + ":" + util.ClientIP(r, s.trusted)
			if !s.limiter.Allow(r.Context(), key) {
				metrics.RateLimitRejected.WithLabelValues(endpoint).Inc()
				writeError(w, r, http.StatusTooManyRequests, codeRateLimited, "too many requests, slow down")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

// pathTail returns the path segments after the given route prefix.
func pathTail(r *http.Request, prefix string) []string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// projectItemIDs extracts "{projectId}/{itemId}" after the prefix.
func projectItemIDs(r *http.Request, prefix string) (string, string, bool) {
	parts := pathTail(r, prefix)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
