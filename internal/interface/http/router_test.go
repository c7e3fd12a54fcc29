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

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
	"github.com/adampierre-jpg/kettlebell-vbt/internal/infra/config"
	apperrors "github.com/adampierre-jpg/kettlebell-vbt/pkg/errors"
)

type stubService struct {
	analyzeResp analysis.Response
	analyzeErr  error
	lastReq     analysis.Request
	records     []analysis.Record
	historyErr  error
	record      analysis.Record
	found       bool
}

func (s *stubService) Analyze(_ context.Context, req analysis.Request) (analysis.Response, error) {
	s.lastReq = req
	if s.analyzeErr != nil {
		return analysis.Response{}, s.analyzeErr
	}
	return s.analyzeResp, nil
}

func (s *stubService) History(context.Context) ([]analysis.Record, error) {
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.records, nil
}

func (s *stubService) HistoryByID(context.Context, uuid.UUID) (analysis.Record, bool, error) {
	if s.historyErr != nil {
		return analysis.Record{}, false, s.historyErr
	}
	return s.record, s.found, nil
}

func newTestRouter(svc analysis.Service) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	return NewRouter(cfg, NewHandler(svc, logger)).Handler
}

func performRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Message
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	svc := &stubService{
		analyzeResp: analysis.Response{
			ID: uuid.NewString(),
			Result: analysis.Result{
				Reps:      []analysis.Rep{{RepNumber: 1, Arm: "Left", Duration: 1.2, VelocityScore: 8}},
				TotalReps: 1,
			},
		},
	}
	router := newTestRouter(svc)

	payload := map[string]any{
		"video":    "aGVsbG8=",
		"mimeType": "video/mp4",
		"protocol": map[string]any{
			"exercise":   "swing",
			"weight":     16,
			"repsPerSet": 5,
			"interval":   30,
			"armPattern": "both",
		},
	}
	rec := performRequest(t, router, http.MethodPost, "/api/v1/analyses", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analysis.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, svc.analyzeResp.ID, resp.ID)
	require.Equal(t, 1, resp.TotalReps)

	require.Equal(t, "aGVsbG8=", svc.lastReq.Video)
	require.NotNil(t, svc.lastReq.Protocol)
	require.Equal(t, "swing", svc.lastReq.Protocol.Exercise)
}

func TestAnalyzeEndpointRejectsInvalidJSON(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	require.Equal(t, "invalid_request", code)
}

func TestAnalyzeEndpointMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation failure",
			err:        apperrors.Wrap("invalid_input", "protocol.weight must be positive", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "upstream model failure",
			err:        apperrors.Wrap("model_error", "video analysis request failed", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "model_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubService{analyzeErr: tt.err})
			rec := performRequest(t, router, http.MethodPost, "/api/v1/analyses", map[string]any{"video": "aGVsbG8="})
			require.Equal(t, tt.wantStatus, rec.Code)
			code, message := decodeErrorBody(t, rec)
			require.Equal(t, tt.wantCode, code)
			require.NotEmpty(t, message)
		})
	}
}

func TestAnalyzeEndpointRejectsWrongMethod(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := performRequest(t, router, http.MethodPut, "/api/v1/analyses", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	require.Equal(t, "method_not_allowed", code)
}

func TestListAnalysesEndpoint(t *testing.T) {
	svc := &stubService{
		records: []analysis.Record{
			{ID: uuid.New(), Exercise: "swing", Weight: 16},
			{ID: uuid.New(), Exercise: "snatch", Weight: 24},
		},
	}
	router := newTestRouter(svc)

	rec := performRequest(t, router, http.MethodGet, "/api/v1/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []analysis.Record `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	require.Equal(t, "swing", body.Items[0].Exercise)
}

func TestGetAnalysisEndpoint(t *testing.T) {
	id := uuid.New()
	svc := &stubService{
		record: analysis.Record{ID: id, Exercise: "jerk", Weight: 32},
		found:  true,
	}
	router := newTestRouter(svc)

	rec := performRequest(t, router, http.MethodGet, "/api/v1/analyses/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got analysis.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, id, got.ID)
	require.Equal(t, "jerk", got.Exercise)
}

func TestGetAnalysisEndpointNotFound(t *testing.T) {
	router := newTestRouter(&stubService{found: false})

	rec := performRequest(t, router, http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	require.Equal(t, "not_found", code)
}

func TestGetAnalysisEndpointInvalidID(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := performRequest(t, router, http.MethodGet, "/api/v1/analyses/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	require.Equal(t, "invalid_request", code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := performRequest(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"ok"`)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := performRequest(t, router, http.MethodOptions, "/api/v1/analyses", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddlewareBlocksAfterBurst(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	router := NewRouter(cfg, NewHandler(&stubService{}, logger)).Handler

	for i := 0; i < 2; i++ {
		rec := performRequest(t, router, http.MethodGet, "/healthz", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d inside the burst", i+1)
	}
	rec := performRequest(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	code, _ := decodeErrorBody(t, rec)
	require.Equal(t, "rate_limit_exceeded", code)
}
