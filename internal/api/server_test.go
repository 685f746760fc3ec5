// Motodex - Motorcycle Catalog and Rider Community
// Copyright 2026 J. Parkin (jparkin)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jparkin/motodex

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparkin/motodex/internal/admin"
	"github.com/jparkin/motodex/internal/analytics"
	"github.com/jparkin/motodex/internal/auth"
	"github.com/jparkin/motodex/internal/config"
	"github.com/jparkin/motodex/internal/interaction"
	"github.com/jparkin/motodex/internal/models"
	"github.com/jparkin/motodex/internal/query"
	"github.com/jparkin/motodex/internal/store"
	"github.com/jparkin/motodex/internal/updater"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Timeout: 30 * time.Second},
		Security: config.SecurityConfig{
			JWTSecret:         "0123456789abcdef0123456789abcdef",
			TokenLifetime:     7 * 24 * time.Hour,
			Argon2Time:        1,
			Argon2MemoryKiB:   8 * 1024,
			RateLimitDisabled: true,
		},
		API:     config.APIConfig{DefaultPageSize: 25, MaxPageSize: 3000},
		Updater: config.UpdaterConfig{Interval: time.Hour, Workers: 1},
	}

	jwtMgr, err := auth.NewJWTManager(&cfg.Security)
	require.NoError(t, err)
	authSvc := auth.NewService(st, jwtMgr, auth.NewPasswordHasher(cfg.Security.Argon2Time, cfg.Security.Argon2MemoryKiB))

	qe := query.NewEngine(st, &cfg.API)
	sched := updater.NewScheduler(st, updater.NewFeedClient(0), qe, &cfg.Updater)
	srv := NewServer(cfg, st, authSvc, qe, interaction.NewService(st), admin.NewService(st), sched, analytics.NewRecorder(st, 16, false))

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, st
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, APIResponse) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func registerUser(t *testing.T, base, email string) string {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, base+"/api/auth/register", "", models.RegisterRequest{
		Email: email, Password: "passw0rd!", Name: "Rider",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	return data["token"].(string)
}

func seedBike(t *testing.T, st *store.Store, id string) {
	t.Helper()
	require.NoError(t, st.PutMotorcycle(context.Background(), &models.Motorcycle{
		ID: id, Manufacturer: "Honda", Model: id, Year: 2024,
		Category: models.CategoryNaked, PriceUSD: 9000,
		Availability: models.AvailabilityAvailable, CreatedAt: time.Now(),
	}))
}

func TestHealthEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/health/live", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterLoginMe(t *testing.T) {
	ts, _ := newTestServer(t)

	token := registerUser(t, ts.URL, "rider@example.com")

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", models.LoginRequest{
		Email: "rider@example.com", Password: "passw0rd!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	user := env.Data.(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "rider@example.com", user["email"])
}

func TestRegisterDuplicateConflict(t *testing.T) {
	ts, _ := newTestServer(t)

	registerUser(t, ts.URL, "rider@example.com")
	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", models.RegisterRequest{
		Email: "rider@example.com", Password: "passw0rd!", Name: "Other",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeConflict, env.Error.Code)
}

func TestRegisterValidationFailure(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", models.RegisterRequest{
		Email: "not-an-email", Password: "short", Name: "",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeValidationFailed, env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestListMotorcyclesEnvelope(t *testing.T) {
	ts, st := newTestServer(t)
	seedBike(t, st, "cb650r")
	seedBike(t, st, "cb1000r")

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/motorcycles/", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)

	data := env.Data.(map[string]interface{})
	assert.Len(t, data["motorcycles"], 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["total_count"])
	require.NotNil(t, env.Meta)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestListMotorcyclesBadFilter(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/motorcycles/?category=Hoverbike", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeInvalidInput, env.Error.Code)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/motorcycles/?page=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetMotorcycleNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/motorcycles/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestFavoriteRequiresAuth(t *testing.T) {
	ts, st := newTestServer(t)
	seedBike(t, st, "cb650r")

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/cb650r/favorite", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeUnauthenticated, env.Error.Code)

	token := registerUser(t, ts.URL, "rider@example.com")
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/cb650r/favorite", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSeedRequiresModerator(t *testing.T) {
	ts, st := newTestServer(t)

	token := registerUser(t, ts.URL, "rider@example.com")
	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/seed", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, CodeForbidden, env.Error.Code)

	// Promote the account; role checks re-read the stored user.
	ctx := context.Background()
	u, err := st.GetUserByEmail(ctx, "rider@example.com")
	require.NoError(t, err)
	u.Role = models.RoleModerator
	require.NoError(t, st.UpdateUser(ctx, u))

	resp, env = doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/seed", token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	data := env.Data.(map[string]interface{})
	assert.Positive(t, data["seeded"])
}

func TestRateAndComment(t *testing.T) {
	ts, st := newTestServer(t)
	seedBike(t, st, "cb650r")
	token := registerUser(t, ts.URL, "rider@example.com")

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/cb650r/rate", token, models.RateRequest{
		Rating: 4, ReviewText: "planted and smooth",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/motorcycles/cb650r/comment", token, models.CommentRequest{
		Content: "Great commuter.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/motorcycles/cb650r/ratings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ratings := env.Data.(map[string]interface{})["ratings"].([]interface{})
	require.Len(t, ratings, 1)
	assert.Equal(t, float64(4), ratings[0].(map[string]interface{})["stars"])

	got, err := st.GetMotorcycle(context.Background(), "cb650r")
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.AverageRating)
}

func TestMalformedBodyRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/auth/register", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLiveBannersPublic(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/banners", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestAdminEndpointsGated(t *testing.T) {
	ts, st := newTestServer(t)
	token := registerUser(t, ts.URL, "rider@example.com")

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	ctx := context.Background()
	u, err := st.GetUserByEmail(ctx, "rider@example.com")
	require.NoError(t, err)
	u.Role = models.RoleAdmin
	require.NoError(t, st.UpdateUser(ctx, u))

	resp, env := doJSON(t, http.MethodGet, ts.URL+"/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestUpdateSystemRunAndStatus(t *testing.T) {
	ts, st := newTestServer(t)
	seedBike(t, st, "cb650r")
	token := registerUser(t, ts.URL, "admin@example.com")

	ctx := context.Background()
	u, err := st.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	u.Role = models.RoleAdmin
	require.NoError(t, st.UpdateUser(ctx, u))

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/update-system/run-daily-update", token, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	data := env.Data.(map[string]interface{})
	jobID := data["job_id"].(string)
	require.NotEmpty(t, jobID)

	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, env = doJSON(t, http.MethodGet, ts.URL+"/api/update-system/job-status/"+jobID, token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		job := env.Data.(map[string]interface{})
		if job["status"] != models.JobRunning {
			assert.Equal(t, models.JobCompleted, job["status"])
			break
		}
		require.True(t, time.Now().Before(deadline), "job did not finish")
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAnalyticsEventAccepted(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/analytics/events", "", models.AnalyticsEventRequest{
		Kind: models.EventSearch, Payload: map[string]string{"q": "honda"},
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, env := doJSON(t, http.MethodPost, ts.URL+"/api/analytics/events", "", models.AnalyticsEventRequest{
		Kind: "made_up_kind",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
}
