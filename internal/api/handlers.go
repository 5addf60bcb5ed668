package api

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"alibi/internal/excuses"
	"alibi/internal/images"
	"alibi/internal/llm"
)

type Handler struct {
	generator          llm.Generator
	composer           *excuses.Composer
	corsAllowedOrigins []string
	excusesLimiter     *windowLimiter
	imagesLimiter      *windowLimiter
	metrics            *apiMetrics
	now                func() time.Time
}

func NewHandler(
	generator llm.Generator,
	corsAllowedOrigins []string,
	rateLimitWindow time.Duration,
	excusesPerWindow int,
	imagesPerWindow int,
) *Handler {
	return &Handler{
		generator:          generator,
		composer:           excuses.NewComposer(),
		corsAllowedOrigins: corsAllowedOrigins,
		excusesLimiter:     newWindowLimiter(rateLimitWindow, excusesPerWindow),
		imagesLimiter:      newWindowLimiter(rateLimitWindow, imagesPerWindow),
		metrics:            newAPIMetrics(),
		now:                time.Now,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Must outlast the longest upstream budget (image generation, 60s).
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed. Please use POST."})
	})

	r.Get("/healthz", h.healthz)
	r.Get("/metrics", h.metrics.handleMetrics)
	r.Post("/api/generate-excuses", h.generateExcuses)
	r.Post("/api/generate-image", h.generateImage)

	return r
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) generateExcuses(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	requestID := uuid.NewString()
	client := clientAddress(r)
	endpoint := "/api/generate-excuses"

	if h.excusesLimiter != nil && !h.excusesLimiter.Allow(client) {
		h.reject(w, failureRateLimited, endpoint, requestID, client, started)
		return
	}

	var req excuses.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, inputFailure("Invalid request payload. Please send a JSON body."), endpoint, requestID, client, started)
		return
	}

	validated, err := excuses.Validate(req, h.now())
	if err != nil {
		h.reject(w, classifyFailure(err), endpoint, requestID, client, started)
		return
	}

	if h.generator == nil {
		log.Printf("generation credentials are not configured requestId=%s", requestID)
		h.reject(w, failureConfig, endpoint, requestID, client, started)
		return
	}

	// Style resolution happens inside Compose, before any prompt text is
	// built: the comedic section and the output contract both depend on it.
	prompt, style := h.composer.Compose(validated)

	raw, err := h.generator.GenerateText(r.Context(), prompt)
	if err != nil {
		h.reject(w, classifyFailure(err), endpoint, requestID, client, started)
		return
	}

	pair, err := excuses.Interpret(raw, style)
	if err != nil {
		log.Printf("uninterpretable model output requestId=%s err=%v", requestID, err)
		h.reject(w, classifyFailure(err), endpoint, requestID, client, started)
		return
	}

	h.metrics.excusesServedTotal.Add(1)
	logRequest(endpoint, requestID, client, "success", started)
	writeJSON(w, http.StatusOK, pair)
}

func (h *Handler) generateImage(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	requestID := uuid.NewString()
	client := clientAddress(r)
	endpoint := "/api/generate-image"

	if h.imagesLimiter != nil && !h.imagesLimiter.Allow(client) {
		h.reject(w, failureRateLimited, endpoint, requestID, client, started)
		return
	}

	var req images.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, inputFailure("Invalid request payload. Please send a JSON body."), endpoint, requestID, client, started)
		return
	}

	style, headshot, err := images.Validate(req)
	if err != nil {
		h.reject(w, classifyFailure(err), endpoint, requestID, client, started)
		return
	}

	if h.generator == nil {
		log.Printf("generation credentials are not configured requestId=%s", requestID)
		h.reject(w, failureConfig, endpoint, requestID, client, started)
		return
	}

	prompt, ok := images.BuildPrompt(style, strings.TrimSpace(req.ExcuseText), headshot != nil)
	if !ok {
		h.reject(w, inputFailure("Invalid comedic style provided."), endpoint, requestID, client, started)
		return
	}

	img, err := h.generator.GenerateImage(r.Context(), prompt, headshot)
	if err != nil {
		h.reject(w, classifyFailure(err), endpoint, requestID, client, started)
		return
	}

	h.metrics.imagesServedTotal.Add(1)
	logRequest(endpoint, requestID, client, "success", started)
	writeJSON(w, http.StatusOK, map[string]string{
		"imageUrl": "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data),
	})
}

func (h *Handler) reject(w http.ResponseWriter, f failure, endpoint, requestID, client string, started time.Time) {
	h.metrics.recordFailure(f)
	logRequest(endpoint, requestID, client, f.tag, started)
	writeJSON(w, f.status, map[string]string{"error": f.message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type requestLogEntry struct {
	Timestamp  string `json:"timestamp"`
	RequestID  string `json:"requestId"`
	Endpoint   string `json:"endpoint"`
	ClientIP   string `json:"clientIp"`
	Status     string `json:"status"`
	DurationMs int64  `json:"durationMs"`
}

// logRequest emits one JSON line per request outcome. User-facing messages go
// in the response; anything diagnostic stays here.
func logRequest(endpoint, requestID, clientIP, status string, started time.Time) {
	entry := requestLogEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		RequestID:  requestID,
		Endpoint:   endpoint,
		ClientIP:   clientIP,
		Status:     status,
		DurationMs: time.Since(started).Milliseconds(),
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	log.Printf("%s", line)
}
