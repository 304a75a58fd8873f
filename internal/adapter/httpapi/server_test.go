package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/adapter/httpapi"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/catalog"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/domain"
	"github.com/Mohamedmoufaq/Climate-credit-score-system/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockScorer struct {
	assessment domain.Assessment
	err        error
}

func (m *mockScorer) Score(_ context.Context, _ domain.Application) (domain.Assessment, error) {
	return m.assessment, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(scorer httpapi.ScoreService, readyErr error) *httpapi.Server {
	return httpapi.NewServer(":0", scorer, &mockReadiness{err: readyErr},
		catalog.New(), history.NewStore(12), testLogger())
}

func scoreBody() string {
	return `{
		"borrower_name": "A. Borrower",
		"profile": {"base_score": 750},
		"location": {"city": "Chennai"}
	}`
}

func TestScoreEndpoint_Success(t *testing.T) {
	scorer := &mockScorer{assessment: domain.Assessment{
		ID:       "abc123",
		Location: domain.Location{State: "Tamil Nadu", City: "Chennai", Lat: 13.0827, Lon: 80.2707},
		Score:    domain.ScoreResult{BaseScore: 750, Penalty: 42.5, AdjustedScore: 707.5, Category: domain.RiskLow},
	}}
	srv := newTestServer(scorer, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(scoreBody()))
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "abc123", got.ID)
	assert.Equal(t, domain.RiskLow, got.Score.Category)
	assert.Equal(t, 707.5, got.Score.AdjustedScore)
}

func TestScoreEndpoint_RecordsHistory(t *testing.T) {
	hist := history.NewStore(12)
	scorer := &mockScorer{assessment: domain.Assessment{
		ID:       "abc123",
		Location: domain.Location{State: "Tamil Nadu", City: "Chennai", Lat: 13.0827, Lon: 80.2707},
	}}
	srv := httpapi.NewServer(":0", scorer, &mockReadiness{}, catalog.New(), hist, testLogger())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(scoreBody())))
	require.Equal(t, http.StatusOK, rec.Code)

	recent := hist.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, "Chennai, Tamil Nadu", recent[0].Place)
}

func TestScoreEndpoint_ErrorMapping(t *testing.T) {
	tests := []struct {
		kind       domain.ErrorKind
		wantStatus int
	}{
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindLocation, http.StatusBadRequest},
		{domain.KindProviderUnavailable, http.StatusBadGateway},
		{domain.KindDataValidation, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			scorer := &mockScorer{err: domain.Errorf(tt.kind, "boom")}
			srv := newTestServer(scorer, nil)

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(scoreBody())))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Error struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, string(tt.kind), body.Error.Kind)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestScoreEndpoint_UnclassifiedErrorIs500(t *testing.T) {
	scorer := &mockScorer{err: fmt.Errorf("wiring snapped")}
	srv := newTestServer(scorer, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(scoreBody())))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "wiring snapped", "internal detail stays out of the response")
}

func TestScoreEndpoint_InvalidJSON(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation")
}

func TestLocationsEndpoint(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		States map[string][]catalog.City `json:"states"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.States, 6)
	assert.Len(t, body.States["Gujarat"], 5)
}

func TestHistoryEndpoints(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	// Add.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/history",
		strings.NewReader(`{"place":"Chennai","lat":13.0827,"lon":80.2707}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	// List.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []history.Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Chennai", body.Items[0].Place)

	// Clear.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/history/clear", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}

func TestHistoryAdd_RequiresPlace(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/history",
		strings.NewReader(`{"place":"  ","lat":1,"lon":2}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(&mockScorer{}, fmt.Errorf("catalog not loaded"))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "catalog not loaded", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockScorer{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
