// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/logging"
)

// Middleware bundles the cross-cutting HTTP middleware configured from
// SecurityConfig.
type Middleware struct {
	cfg *config.SecurityConfig
}

// NewMiddleware builds the middleware set.
func NewMiddleware(cfg *config.SecurityConfig) *Middleware {
	return &Middleware{cfg: cfg}
}

// CORS returns the cross-origin policy. An empty origin list allows any
// origin, which suits local development.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	origins := m.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// noopMiddleware passes requests through untouched.
func noopMiddleware(next http.Handler) http.Handler { return next }

// RateLimitReads limits anonymous read traffic per client IP.
func (m *Middleware) RateLimitReads() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return noopMiddleware
	}
	return httprate.LimitByRealIP(m.cfg.RateLimitReads, time.Minute)
}

// RateLimitWrites limits mutations, keyed by user when authenticated and
// by IP otherwise.
func (m *Middleware) RateLimitWrites() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return noopMiddleware
	}
	return httprate.Limit(
		m.cfg.RateLimitWrites,
		time.Minute,
		httprate.WithKeyFuncs(keyByUserOrIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

// RateLimitAuth is the tight limit on credential endpoints.
func (m *Middleware) RateLimitAuth() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return noopMiddleware
	}
	return httprate.Limit(
		10,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(rateLimited),
	)
}

func keyByUserOrIP(r *http.Request) (string, error) {
	if u := auth.UserFromContext(r.Context()); u != nil {
		return "user:" + u.ID, nil
	}
	return httprate.KeyByRealIP(r)
}

func rateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
}

// RequestContext assigns a request ID and correlation ID to every request
// and echoes the request ID back in the response headers.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = logging.GenerateRequestID()
		}
		ctx := logging.ContextWithRequestID(r.Context(), reqID)
		ctx = logging.ContextWithNewCorrelationID(ctx)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLog emits one structured line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logging.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// SecurityHeaders sets the standard hardening headers on API responses.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
