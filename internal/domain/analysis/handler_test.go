package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProxyRouter(gen *stubGenerator) http.Handler {
	svc, _ := newTestService(nil, gen)
	r := chi.NewRouter()
	RegisterProxyRoutes(r, svc)
	return r
}

func decodeProxy(t *testing.T, rec *httptest.ResponseRecorder) proxyResponse {
	t.Helper()
	var out proxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAnalyzeProxy_Options(t *testing.T) {
	h := newProxyRouter(&stubGenerator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAnalyzeProxy_MethodNotAllowed(t *testing.T) {
	h := newProxyRouter(&stubGenerator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", decodeProxy(t, rec).Error)
}

func TestAnalyzeProxy_EmptySymptoms(t *testing.T) {
	h := newProxyRouter(&stubGenerator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"symptoms":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeProxy(t, rec)
	assert.False(t, out.Success)
	assert.Equal(t, ErrNoSymptoms.Error(), out.Error)
}

func TestAnalyzeProxy_OK(t *testing.T) {
	gen := &stubGenerator{reply: "### 1. Severity assessment\nLow."}
	h := newProxyRouter(gen)

	body := `{
		"userInfo": {"age": 30, "gender": "female"},
		"diseaseInfo": {"diseaseName": "Migraine", "medication": "Ibuprofen"},
		"symptoms": [
			{"date": "2024-03-03", "time": "AM 07:05", "painLevel": 5, "medicationTaken": false},
			{"date": "2024-03-02", "symptomTime": "PM 03:15", "painLevel": 7, "medicationTaken": true, "details": "aura"},
			{"date": "2024-03-01", "symptomTime": "garbage", "painLevel": 3, "medicationTaken": false}
		],
		"period": {"startDate": "2024-03-01", "endDate": "2024-03-31", "totalDays": 31}
	}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeProxy(t, rec)
	assert.True(t, out.Success)
	assert.Equal(t, gen.reply, out.Analysis)

	assert.Contains(t, gen.prompt, "- Age: 30\n")
	assert.Contains(t, gen.prompt, "2024-03-02 | time: PM 03:15 | pain: 7/10")
	assert.Contains(t, gen.prompt, "2024-03-03 | time: AM 07:05 | pain: 5/10")
	assert.Contains(t, gen.prompt, "2024-03-01 | time: unrecorded")
	assert.Contains(t, gen.prompt, "- Total days: 31\n")
}

func TestAnalyzeProxy_GeneratorError(t *testing.T) {
	h := newProxyRouter(&stubGenerator{err: errors.New("upstream down")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze",
		strings.NewReader(`{"symptoms":[{"date":"2024-03-01","painLevel":3}]}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "upstream down", decodeProxy(t, rec).Error)
}
