package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alibi/internal/catalog"
	"alibi/internal/images"
	"alibi/internal/llm"
)

const stubModelOutput = `{
  "excuse1": {"title": "Traffic Delay", "text": "The ring road was closed."},
  "excuse2": {"title": "Swan Dispute Resolution", "text": "I was mediating a territorial dispute between two swans."}
}`

type stubGenerator struct {
	textResponse string
	textErr      error
	image        llm.Image
	imageErr     error

	textCalls    int
	imageCalls   int
	lastPrompt   string
	lastHeadshot *images.Headshot
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.textCalls++
	s.lastPrompt = prompt
	if s.textErr != nil {
		return "", s.textErr
	}
	return s.textResponse, nil
}

func (s *stubGenerator) GenerateImage(_ context.Context, prompt string, headshot *images.Headshot) (llm.Image, error) {
	s.imageCalls++
	s.lastPrompt = prompt
	s.lastHeadshot = headshot
	if s.imageErr != nil {
		return llm.Image{}, s.imageErr
	}
	return s.image, nil
}

func newTestHandler(generator llm.Generator) *Handler {
	return NewHandler(generator, []string{"*"}, time.Minute, 20, 10)
}

func postJSON(t *testing.T, router http.Handler, path, clientIP string, body any) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(encoded)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", clientIP)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return payload["error"]
}

func TestGenerateExcusesHappyPath(t *testing.T) {
	stub := &stubGenerator{textResponse: stubModelOutput}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.1", map[string]string{
		"scenario": "I missed the train",
		"audience": "My manager",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var pair struct {
		Excuse1      struct{ Title, Text string } `json:"excuse1"`
		Excuse2      struct{ Title, Text string } `json:"excuse2"`
		ComedicStyle string                       `json:"comedicStyle"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if pair.Excuse1.Text == "" || pair.Excuse2.Text == "" {
		t.Fatalf("excuse texts must be non-empty: %+v", pair)
	}

	known := false
	for _, id := range catalog.StyleIDs() {
		if pair.ComedicStyle == id {
			known = true
		}
	}
	if !known {
		t.Fatalf("comedicStyle %q is not an enumerated style", pair.ComedicStyle)
	}
	if stub.textCalls != 1 {
		t.Fatalf("textCalls = %d", stub.textCalls)
	}
	if !strings.Contains(stub.lastPrompt, "I missed the train") {
		t.Fatal("scenario not interpolated into the prompt")
	}
}

func TestGenerateExcusesExplicitStyleDeterministic(t *testing.T) {
	stub := &stubGenerator{textResponse: stubModelOutput}
	router := newTestHandler(stub).Router()

	for i := 0; i < 3; i++ {
		rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.2", map[string]any{
			"scenario":      "late",
			"audience":      "My manager",
			"customOptions": map[string]any{"style": "deadpan"},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var pair struct {
			ComedicStyle string `json:"comedicStyle"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &pair)
		if pair.ComedicStyle != "Deadpan" {
			t.Fatalf("comedicStyle = %q, want Deadpan", pair.ComedicStyle)
		}
	}
}

func TestGenerateExcusesValidationRejectsBeforeUpstream(t *testing.T) {
	stub := &stubGenerator{textResponse: stubModelOutput}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.3", map[string]string{
		"scenario": "",
		"audience": "My date",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(strings.ToLower(msg), "scenario") {
		t.Fatalf("error should mention the scenario field: %q", msg)
	}
	if stub.textCalls != 0 {
		t.Fatal("upstream must not be called for invalid input")
	}
}

func TestGenerateExcusesRateLimit(t *testing.T) {
	stub := &stubGenerator{textResponse: stubModelOutput}
	router := newTestHandler(stub).Router()

	body := map[string]string{"scenario": "late", "audience": "My manager"}
	for i := 1; i <= 25; i++ {
		rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.4", body)
		if i <= 20 && rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
		if i > 20 && rec.Code != http.StatusTooManyRequests {
			t.Fatalf("request %d: status = %d, want 429", i, rec.Code)
		}
	}
	if stub.textCalls != 20 {
		t.Fatalf("limited requests must not reach upstream, textCalls = %d", stub.textCalls)
	}
}

func TestGenerateExcusesUpstreamFailures(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{llm.ErrTimeout, http.StatusGatewayTimeout},
		{llm.ErrAuth, http.StatusInternalServerError},
		{llm.ErrRateLimited, http.StatusTooManyRequests},
		{llm.ErrBadRequest, http.StatusBadRequest},
		{llm.ErrUpstream, http.StatusInternalServerError},
	}
	for i, tc := range cases {
		stub := &stubGenerator{textErr: tc.err}
		router := newTestHandler(stub).Router()
		rec := postJSON(t, router, "/api/generate-excuses", fmt.Sprintf("203.0.113.%d", 50+i), map[string]string{
			"scenario": "late",
			"audience": "My manager",
		})
		if rec.Code != tc.want {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.want)
		}
	}
}

func TestGenerateExcusesUnparsableModelOutput(t *testing.T) {
	stub := &stubGenerator{textResponse: "I refuse to answer in JSON"}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.5", map[string]string{
		"scenario": "late",
		"audience": "My manager",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); strings.Contains(msg, "refuse") {
		t.Fatal("raw model output must not leak into the response")
	}
}

func TestGenerateExcusesMissingCredentials(t *testing.T) {
	router := newTestHandler(nil).Router()

	rec := postJSON(t, router, "/api/generate-excuses", "203.0.113.6", map[string]string{
		"scenario": "late",
		"audience": "My manager",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "configuration") {
		t.Fatalf("expected configuration error, got %q", msg)
	}
}

func TestGenerateImageHappyPath(t *testing.T) {
	stub := &stubGenerator{image: llm.Image{MimeType: "image/png", Data: []byte{1, 2, 3}}}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-image", "203.0.113.7", map[string]string{
		"excuseText":   "I was mediating a swan dispute",
		"comedicStyle": "Deadpan",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(payload.ImageURL, "data:image/png;base64,") {
		t.Fatalf("imageUrl is not a data URI: %q", payload.ImageURL)
	}
	if stub.lastHeadshot != nil {
		t.Fatal("no headshot was supplied")
	}
}

func TestGenerateImageRejectsGifBeforeUpstream(t *testing.T) {
	stub := &stubGenerator{}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-image", "203.0.113.8", map[string]string{
		"excuseText":       "swan dispute",
		"comedicStyle":     "Deadpan",
		"headshotBase64":   "aGVsbG8=",
		"headshotMimeType": "image/gif",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.imageCalls != 0 {
		t.Fatal("upstream must not be called for an invalid headshot")
	}
}

func TestGenerateImageSafetyBlock(t *testing.T) {
	stub := &stubGenerator{imageErr: llm.ErrBlockedSafety}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-image", "203.0.113.9", map[string]string{
		"excuseText":   "swan dispute",
		"comedicStyle": "Deadpan",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "safety") {
		t.Fatalf("expected a safety message, got %q", msg)
	}
}

func TestGenerateImagePassesHeadshotThrough(t *testing.T) {
	stub := &stubGenerator{image: llm.Image{MimeType: "image/png", Data: []byte{1}}}
	router := newTestHandler(stub).Router()

	rec := postJSON(t, router, "/api/generate-image", "203.0.113.10", map[string]string{
		"excuseText":       "swan dispute",
		"comedicStyle":     "paranoid",
		"headshotBase64":   "aGVsbG8=",
		"headshotMimeType": "image/jpeg",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if stub.lastHeadshot == nil || stub.lastHeadshot.MimeType != "image/jpeg" {
		t.Fatalf("headshot not forwarded: %+v", stub.lastHeadshot)
	}
	if !strings.Contains(stub.lastPrompt, "RECOGNIZABLE") {
		t.Fatal("headshot variant of the prompt should be used")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestHandler(&stubGenerator{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/api/generate-excuses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestHandler(&stubGenerator{}).Router()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	degraded := newTestHandler(nil).Router()
	rec = httptest.NewRecorder()
	degraded.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("degraded status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	stub := &stubGenerator{textResponse: stubModelOutput}
	router := newTestHandler(stub).Router()

	postJSON(t, router, "/api/generate-excuses", "203.0.113.11", map[string]string{
		"scenario": "late",
		"audience": "My manager",
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alibi_excuses_served_total 1") {
		t.Fatalf("metrics missing served counter:\n%s", rec.Body.String())
	}
}
