package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/scoutai/scout/internal/handler"
	"github.com/scoutai/scout/internal/middleware"
	"github.com/scoutai/scout/internal/security"
)

func (s *Server) setupRoutes() (http.Handler, error) {
	cfg := s.cfg
	a := s.app

	log.Info().
		Str("provider", cfg.Provider).
		Str("model", a.Provider.Model()).
		Bool("elasticsearch_enabled", a.Archive != nil).
		Bool("postgres_enabled", a.Store != nil).
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Bool("pii_detection", cfg.EnablePIIDetection).
		Strs("tools", a.Registry.Names()).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	// ─── Security ───────────────────────────────────────────────────────────────
	piiKeywords := cfg.PIIKeywords
	if !cfg.EnablePIIDetection {
		piiKeywords = nil
	}
	piiDetector := security.NewPIIDetector(piiKeywords)
	promptVal := security.NewPromptValidator()
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)

	// ─── Handlers ────────────────────────────────────────────────────────────────
	var archiveChk, storeChk handler.HealthChecker
	if a.Archive != nil {
		archiveChk = a.Archive
	}
	if a.Store != nil {
		storeChk = a.Store
	}
	healthH := handler.NewHealthHandler(archiveChk, storeChk)

	researchH := handler.NewResearchHandler(
		a.Orchestrator, a.Search, a.Reasoning, a.Solo,
		a.Router, promptVal, piiDetector, auditLogger,
		a.Store, a.Archive,
	)
	historyH := handler.NewHistoryHandler(a.Store, a.Archive)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	// Auth + rate limiting for API routes
	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, m := range apiMiddleware {
			r.Use(m)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/research", researchH.Research)
			r.Get("/history", historyH.List)
			r.Get("/history/search", historyH.Search)
		})
	})

	return r, nil
}
