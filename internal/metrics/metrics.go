// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

// Package metrics provides Prometheus instrumentation: HTTP request
// metrics plus domain counters for catalog and community activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motodex_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "motodex_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "motodex_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	// Domain metrics
	RatingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motodex_ratings_submitted_total",
			Help: "Ratings created or updated",
		},
	)

	FavoritesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motodex_favorites_toggled_total",
			Help: "Favorite and unfavorite operations",
		},
		[]string{"direction"},
	)

	CommentsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motodex_comments_posted_total",
			Help: "Comments and replies created",
		},
	)

	AchievementsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motodex_achievements_earned_total",
			Help: "Achievements newly earned by users",
		},
	)

	UpdateJobsRun = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motodex_update_jobs_total",
			Help: "Daily update jobs by terminal status",
		},
		[]string{"status"},
	)

	UpdateRecordsChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motodex_update_records_changed_total",
			Help: "Catalog records changed by the update job",
		},
		[]string{"kind"},
	)

	AnalyticsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "motodex_analytics_events_dropped_total",
			Help: "Analytics events dropped because the queue was full",
		},
	)

	SuggestionIndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "motodex_suggestion_index_terms",
			Help: "Terms currently in the suggestion index",
		},
	)
)

// statusRecorder captures the response status for metric labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments handlers with request count, latency, and
// in-flight metrics. The route label is the registered pattern, not the
// raw path, to keep cardinality bounded.
func Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			HTTPInFlight.Inc()
			defer HTTPInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
