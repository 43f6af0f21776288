package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/truthlenz/truthlenz/src/verifier/config"
	"github.com/truthlenz/truthlenz/src/verifier/engine"
	"github.com/truthlenz/truthlenz/src/verifier/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier scripts the engine surface for handler tests.
type stubVerifier struct {
	body   json.RawMessage
	err    error
	review engine.CorrectionReview

	lastReq types.VerificationRequest
}

func (s *stubVerifier) Verify(ctx context.Context, req types.VerificationRequest) (json.RawMessage, error) {
	s.lastReq = req
	return s.body, s.err
}

func (s *stubVerifier) ReviewCorrection(ctx context.Context, fb types.FeedbackSubmission) (engine.CorrectionReview, error) {
	return s.review, s.err
}

func testConfig() config.Config {
	return config.Config{
		MaxPayloadBytes: 7 * 1024 * 1024,
		RateLimit:       100,
		RateWindow:      time.Minute,
	}
}

func newTestRouter(cfg config.Config, v Verifier) *gin.Engine {
	return New(cfg, v, nil, nil, nil)
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyHappyPath(t *testing.T) {
	stub := &stubVerifier{body: json.RawMessage(`{"id":"abc","verdict":"reliable","credibilityScore":90}`)}
	r := newTestRouter(testConfig(), stub)

	w := post(r, "/v1/verify", `{"content":"The sky is blue.","type":"text"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	// The engine's body is passed through byte for byte.
	require.Equal(t, string(stub.body), w.Body.String())
	require.Equal(t, "The sky is blue.", stub.lastReq.Content)
	require.Equal(t, types.KindText, stub.lastReq.Type)
}

func TestVerifyRejectsOversizedPayload(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPayloadBytes = 256
	stub := &stubVerifier{body: json.RawMessage(`{}`)}
	r := newTestRouter(cfg, stub)

	big := `{"content":"` + strings.Repeat("a", 1024) + `","type":"text"}`
	w := post(r, "/v1/verify", big)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Contains(t, w.Body.String(), "too large")
	require.Empty(t, stub.lastReq.Content)
}

func TestVerifyValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown kind",
			body: `{"content":"x","type":"audio"}`,
			want: "unsupported content type",
		},
		{
			name: "media kind without payload is never coerced to text",
			body: `{"content":"describe this","type":"image"}`,
			want: "requires a media payload",
		},
		{
			name: "blank content",
			body: `{"content":"   ","type":"text"}`,
			want: "content must not be empty",
		},
		{
			name: "malformed json",
			body: `{"content":`,
			want: "error",
		},
	}

	stub := &stubVerifier{body: json.RawMessage(`{}`)}
	r := newTestRouter(testConfig(), stub)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, "/v1/verify", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestVerifyMapsEngineErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "bad media payload",
			err:      engine.ErrBadMedia,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "upstream rate exhaustion",
			err:      errors.New("gemini: status 429: RESOURCE_EXHAUSTED"),
			wantCode: http.StatusTooManyRequests,
		},
		{
			name:     "other upstream failure",
			err:      errors.New("gemini: status 500"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(testConfig(), &stubVerifier{err: tt.err})
			w := post(r, "/v1/verify", `{"content":"claim","type":"text"}`)
			require.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestVerifyPreflight(t *testing.T) {
	r := newTestRouter(testConfig(), &stubVerifier{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/verify", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestVerifyRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	r := newTestRouter(cfg, &stubVerifier{body: json.RawMessage(`{}`)})

	body := `{"content":"claim","type":"text"}`
	require.Equal(t, http.StatusOK, post(r, "/v1/verify", body).Code)
	require.Equal(t, http.StatusOK, post(r, "/v1/verify", body).Code)

	w := post(r, "/v1/verify", body)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Contains(t, w.Body.String(), "too many requests")
}

func TestFeedbackRejectedCorrection(t *testing.T) {
	stub := &stubVerifier{review: engine.CorrectionReview{
		IsTrue:    false,
		Reasoning: "the correction contradicts the established record",
	}}
	r := newTestRouter(testConfig(), stub)

	w := post(r, "/v1/feedback", `{
		"content": "the earth is flat",
		"contentType": "text",
		"originalVerdict": "fake",
		"originalScore": 5,
		"isCorrect": false,
		"userCorrection": "actually it is flat",
		"correctVerdict": "reliable"
	}`)

	// A rejected correction is not an HTTP error; the caller gets the reason.
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Reason  string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Reason, "established record")
}

func TestFeedbackMalformedBody(t *testing.T) {
	r := newTestRouter(testConfig(), &stubVerifier{})
	w := post(r, "/v1/feedback", `{"content":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthzWithoutBackends(t *testing.T) {
	r := newTestRouter(testConfig(), &stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}
