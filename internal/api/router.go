// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jparkin/motodex/internal/admin"
	"github.com/jparkin/motodex/internal/analytics"
	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/interaction"
	"github.com/jparkin/motodex/internal/metrics"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/query"
	"github.com/jparkin/motodex/internal/seed"
	"github.com/jparkin/motodex/internal/store"
	"github.com/jparkin/motodex/internal/updater"
)

// Server bundles the engines behind the HTTP surface.
type Server struct {
	cfg          *config.Config
	store        *store.Store
	auth         *auth.Service
	query        *query.Engine
	interactions *interaction.Service
	admin        *admin.Service
	updater      *updater.Scheduler
	analytics    *analytics.Recorder
	mw           *Middleware
}

// NewServer wires the HTTP surface.
func NewServer(
	cfg *config.Config,
	st *store.Store,
	authSvc *auth.Service,
	qe *query.Engine,
	inter *interaction.Service,
	adm *admin.Service,
	upd *updater.Scheduler,
	rec *analytics.Recorder,
) *Server {
	return &Server{
		cfg:          cfg,
		store:        st,
		auth:         authSvc,
		query:        qe,
		interactions: inter,
		admin:        adm,
		updater:      upd,
		analytics:    rec,
		mw:           NewMiddleware(&cfg.Security),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(RequestContext)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.Server.Timeout))
	r.Use(s.mw.CORS())
	r.Use(SecurityHeaders)
	r.Use(AccessLog)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/health", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/health"))
			r.Get("/live", s.handleHealthLive)
			r.Get("/ready", s.handleHealthReady)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/auth"))
			r.Use(s.mw.RateLimitAuth())
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/profile", s.handleExternalProfile)
			r.With(s.auth.Middleware(true)).Get("/me", s.handleMe)
			r.With(s.auth.Middleware(true)).Post("/logout", s.handleLogout)
		})

		r.Route("/motorcycles", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/motorcycles"))

			// Reads: anonymous allowed, identity attached when present.
			r.Group(func(r chi.Router) {
				r.Use(s.mw.RateLimitReads())
				r.Use(s.auth.Middleware(false))
				r.Get("/", s.handleListMotorcycles)
				r.Get("/categories/summary", s.handleCategorySummary)
				r.Get("/filters/options", s.handleFilterOptions)
				r.Get("/filters/features", s.handleFilterFeatures)
				r.Get("/search/suggestions", s.handleSuggestions)
				r.Post("/compare", s.handleCompare)
				r.Get("/{id}", s.handleGetMotorcycle)
				r.Get("/{id}/pricing", s.handlePricing)
				r.With(s.auth.Middleware(true)).Get("/{id}/ratings", s.handleGetRatings)
				r.With(s.auth.Middleware(true)).Get("/{id}/comments", s.handleGetComments)
			})

			// Writes: authenticated, rate limited per user.
			r.Group(func(r chi.Router) {
				r.Use(s.auth.Middleware(true))
				r.Use(s.mw.RateLimitWrites())
				r.Get("/favorites", s.handleListFavorites)
				r.Post("/{id}/favorite", s.handleFavorite)
				r.Delete("/{id}/favorite", s.handleUnfavorite)
				r.Post("/{id}/rate", s.handleRate)
				r.Post("/{id}/comment", s.handleComment)
			})

			r.With(
				s.auth.Middleware(true),
				s.auth.RequireRoleMiddleware(models.RoleModerator),
			).Post("/seed", s.handleSeed)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/comments"))
			r.Use(s.auth.Middleware(true))
			r.Use(s.mw.RateLimitWrites())
			r.Post("/{id}/like", s.handleLikeComment)
			r.Post("/{id}/flag", s.handleFlagComment)
			r.Delete("/{id}", s.handleDeleteComment)
		})

		r.With(
			metrics.Middleware("/api/banners"),
			s.mw.RateLimitReads(),
		).Get("/banners", s.handleLiveBanners)

		r.Route("/garage", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/garage"))
			r.Use(s.auth.Middleware(true))
			r.Use(s.mw.RateLimitWrites())
			r.Get("/", s.handleListGarage)
			r.Post("/", s.handleAddGarageItem)
			r.Put("/{id}", s.handleUpdateGarageItem)
			r.Delete("/{id}", s.handleRemoveGarageItem)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/groups"))
			r.Use(s.auth.Middleware(true))
			r.Use(s.mw.RateLimitWrites())
			r.Get("/", s.handleListGroups)
			r.Post("/", s.handleCreateGroup)
			r.Get("/{id}", s.handleGetGroup)
			r.Post("/{id}/join", s.handleJoinGroup)
			r.Post("/{id}/leave", s.handleLeaveGroup)
		})

		r.With(
			metrics.Middleware("/api/achievements"),
			s.auth.Middleware(true),
		).Get("/achievements", s.handleListAchievements)

		r.Route("/requests", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/requests"))
			r.Use(s.auth.Middleware(true))
			r.Use(s.mw.RateLimitWrites())
			r.Get("/", s.handleListMyRequests)
			r.Post("/", s.handleCreateRequest)
		})

		r.With(
			metrics.Middleware("/api/analytics"),
			s.auth.Middleware(false),
		).Post("/analytics/events", s.handleAnalyticsEvent)

		r.Route("/admin", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/admin"))
			r.Use(s.auth.Middleware(true))

			r.Group(func(r chi.Router) {
				r.Use(s.auth.RequireRoleMiddleware(models.RoleModerator))
				r.Get("/banners", s.handleAdminListBanners)
				r.Post("/banners", s.handleCreateBanner)
				r.Put("/banners/{id}", s.handleUpdateBanner)
				r.Delete("/banners/{id}", s.handleDeleteBanner)
				r.Get("/requests", s.handleAdminListRequests)
				r.Put("/requests/{id}", s.handleResolveRequest)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.auth.RequireRoleMiddleware(models.RoleAdmin))
				r.Get("/stats", s.handleStats)
				r.Get("/users", s.handleAdminListUsers)
				r.Put("/users/{id}/role", s.handleSetUserRole)
			})
		})

		r.Route("/update-system", func(r chi.Router) {
			r.Use(metrics.Middleware("/api/update-system"))
			r.Use(s.auth.Middleware(true))
			r.Use(s.auth.RequireRoleMiddleware(models.RoleAdmin))
			r.Post("/run-daily-update", s.handleRunUpdate)
			r.Post("/cancel", s.handleCancelUpdate)
			r.Get("/job-status/{id}", s.handleJobStatus)
			r.Get("/update-history", s.handleUpdateHistory)
			r.Get("/regional-customizations", s.handleRegionalCustomizations)
		})
	})

	return r
}

// seedCatalog loads the generated corpus and rebuilds derived state.
func (s *Server) seedCatalog(r *http.Request) (int, error) {
	n, err := seed.Load(r.Context(), s.store)
	if err != nil {
		return 0, err
	}
	s.query.Invalidate(r.Context())
	return n, nil
}
