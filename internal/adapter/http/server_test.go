package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfieprojectsdev/har-automation/internal/engine"
	"github.com/alfieprojectsdev/har-automation/internal/observability"
	"github.com/alfieprojectsdev/har-automation/internal/pipeline"
	"github.com/alfieprojectsdev/har-automation/internal/schema"
)

const sampleTable = `Hazard Assessment
Assessment
Category
Feature Type
Location
Active Fault
Liquefaction
24918	Earthquake	Polygon	121.05,14.55	Safe; Approximately 7.1 km west of Valley Fault System	High Potential
No Files Attached
`

func newTestServer(t *testing.T, maxInputBytes int) *Server {
	t.Helper()
	rules, err := schema.LoadDefault()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	gen := pipeline.New(engine.New(rules, logger, metrics), logger, metrics)
	return NewServer(":0", gen, maxInputBytes, logger)
}

func postGenerate(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleGenerate(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	payload, err := json.Marshal(map[string]string{"summary_table": sampleTable})
	require.NoError(t, err)

	rec := postGenerate(t, srv, string(payload))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                       `json:"success"`
		HARs    []pipeline.GeneratedReport `json:"hars"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.HARs, 1)
	assert.Equal(t, 24918, resp.HARs[0].ID)
	assert.Equal(t, "Seismic", resp.HARs[0].Category)
	assert.Contains(t, resp.HARs[0].ReportText, "EARTHQUAKE HAZARD ASSESSMENT")
}

func TestHandleGenerateUnparseableInput(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	rec := postGenerate(t, srv, `{"summary_table": "nothing recognizable here"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	// Clients get the generic message, not parser internals.
	assert.Equal(t, "could not extract any assessment from the input", resp.Error)
}

func TestHandleGenerateMalformedBody(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	rec := postGenerate(t, srv, `{"summary_table": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, 64)

	payload, err := json.Marshal(map[string]string{"summary_table": sampleTable})
	require.NoError(t, err)

	rec := postGenerate(t, srv, string(payload))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHealthAndReadyEndpoints(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGenerateMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
