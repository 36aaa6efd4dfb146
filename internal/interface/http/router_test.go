package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/dashboard"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/domain/session"
	"github.com/lequoctrung8581/weather-app-group-project-asm3/internal/infra/config"
	apperrors "github.com/lequoctrung8581/weather-app-group-project-asm3/pkg/errors"
)

type stubDashboard struct {
	lastSessionID string
	lastQuery     string
	lastLat       float64
	lastLon       float64
	snapshot      dashboard.Snapshot
	historyTags   []string
	err           error
}

func (s *stubDashboard) SubmitCity(_ context.Context, sessionID, query string) (dashboard.Snapshot, error) {
	s.lastSessionID = sessionID
	s.lastQuery = query
	return s.snapshot, s.err
}

func (s *stubDashboard) UseMyLocation(_ context.Context, sessionID string, lat, lon float64) (dashboard.Snapshot, error) {
	s.lastSessionID = sessionID
	s.lastLat = lat
	s.lastLon = lon
	return s.snapshot, s.err
}

func (s *stubDashboard) ToggleUnits(_ context.Context, sessionID string) (dashboard.Snapshot, error) {
	s.lastSessionID = sessionID
	return s.snapshot, s.err
}

func (s *stubDashboard) ToggleTheme(_ context.Context, sessionID string) (dashboard.Snapshot, error) {
	s.lastSessionID = sessionID
	return s.snapshot, s.err
}

func (s *stubDashboard) Snapshot(_ context.Context, sessionID string) (dashboard.Snapshot, error) {
	s.lastSessionID = sessionID
	return s.snapshot, s.err
}

func (s *stubDashboard) History(_ context.Context, sessionID string) ([]string, error) {
	s.lastSessionID = sessionID
	return s.historyTags, s.err
}

func newTestServer(t *testing.T, dashboardSvc dashboard.Service) (http.Handler, session.Service) {
	t.Helper()
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address: ":0",
			Retry: config.RetryConfig{
				Enabled:     true,
				MaxAttempts: 2,
				BaseBackoff: time.Millisecond,
				Exclude:     []string{"/api/v1/dashboard/units/toggle", "/api/v1/dashboard/theme/toggle"},
			},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessionSvc := session.NewService(session.Config{Secret: "test-secret", TokenTTL: time.Hour})
	handler := NewHandler(dashboardSvc, sessionSvc, logger)
	return NewRouter(cfg, handler).Handler, sessionSvc
}

func authHeader(t *testing.T, sessionSvc session.Service) (string, string) {
	t.Helper()
	token, err := sessionSvc.Create()
	require.NoError(t, err)
	return "Bearer " + token.Token, token.SessionID
}

func doRequest(handler http.Handler, method, target, auth string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateSessionIssuesToken(t *testing.T) {
	handler, _ := newTestServer(t, &stubDashboard{})

	rec := doRequest(handler, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var token session.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.NotEmpty(t, token.Token)
	require.NotEmpty(t, token.SessionID)
}

func TestDashboardRequiresSessionToken(t *testing.T) {
	handler, _ := newTestServer(t, &stubDashboard{})

	rec := doRequest(handler, http.MethodGet, "/api/v1/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "unauthorized", envelope.Error.Code)
}

func TestDashboardRejectsBadToken(t *testing.T) {
	handler, _ := newTestServer(t, &stubDashboard{})

	rec := doRequest(handler, http.MethodGet, "/api/v1/dashboard", "Bearer not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(handler, http.MethodGet, "/api/v1/dashboard", "Basic dXNlcg==", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchPassesSessionAndQuery(t *testing.T) {
	stub := &stubDashboard{snapshot: dashboard.Snapshot{State: dashboard.StateReady, Units: dashboard.UnitsMetric}}
	handler, sessionSvc := newTestServer(t, stub)
	auth, sessionID := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/search", auth, []byte(`{"query":"Hanoi"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, sessionID, stub.lastSessionID)
	require.Equal(t, "Hanoi", stub.lastQuery)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, dashboard.StateReady, snap.State)
}

func TestSearchRejectsMalformedJSON(t *testing.T) {
	handler, sessionSvc := newTestServer(t, &stubDashboard{})
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/search", auth, []byte(`{"query":`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_request")
}

func TestLocatePassesCoordinates(t *testing.T) {
	stub := &stubDashboard{snapshot: dashboard.Snapshot{State: dashboard.StateReady}}
	handler, sessionSvc := newTestServer(t, stub)
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/locate", auth, []byte(`{"latitude":10.78,"longitude":106.7}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 10.78, stub.lastLat)
	require.Equal(t, 106.7, stub.lastLon)
}

func TestLocateRequiresBothCoordinates(t *testing.T) {
	handler, sessionSvc := newTestServer(t, &stubDashboard{})
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/locate", auth, []byte(`{"latitude":10.78}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "latitude and longitude are required")
}

func TestLocateMapsInvalidInputTo400(t *testing.T) {
	stub := &stubDashboard{err: apperrors.Wrap("invalid_input", "coordinates out of range", nil)}
	handler, sessionSvc := newTestServer(t, stub)
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/locate", auth, []byte(`{"latitude":123,"longitude":10}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_request")
}

func TestToggleUnitsRoute(t *testing.T) {
	stub := &stubDashboard{snapshot: dashboard.Snapshot{State: dashboard.StateReady, Units: dashboard.UnitsImperial}}
	handler, sessionSvc := newTestServer(t, stub)
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/units/toggle", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Equal(t, dashboard.UnitsImperial, snap.Units)
}

func TestHistoryEnvelope(t *testing.T) {
	stub := &stubDashboard{historyTags: []string{"Hanoi, VN", "Paris, FR"}}
	handler, sessionSvc := newTestServer(t, stub)
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodGet, "/api/v1/dashboard/history", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		History []string `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, []string{"Hanoi, VN", "Paris, FR"}, envelope.History)
}

func TestDashboardErrorsUseEnvelope(t *testing.T) {
	stub := &stubDashboard{err: apperrors.Wrap("prefs_error", "failed to persist theme", nil)}
	handler, sessionSvc := newTestServer(t, stub)
	auth, _ := authHeader(t, sessionSvc)

	rec := doRequest(handler, http.MethodPost, "/api/v1/dashboard/theme/toggle", auth, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "dashboard_failed", envelope.Error.Code)
}
