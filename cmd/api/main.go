package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"alibi/internal/api"
	"alibi/internal/config"
	"alibi/internal/llm"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	// With no API key the service still serves traffic, answering generation
	// requests with a configuration error and reporting degraded on /healthz.
	var generator llm.Generator
	if cfg.GeminiAPIKey == "" {
		log.Printf("GEMINI_API_KEY is not set, starting in degraded mode")
	} else {
		gemini, err := llm.NewGemini(ctx, llm.Options{
			APIKey:       cfg.GeminiAPIKey,
			TextModel:    cfg.TextModel,
			ImageModel:   cfg.ImageModel,
			TextTimeout:  cfg.TextTimeout,
			ImageTimeout: cfg.ImageTimeout,
			RPS:          cfg.UpstreamRPS,
			Burst:        cfg.UpstreamBurst,
		})
		if err != nil {
			log.Fatalf("generation client setup failed: %v", err)
		}
		generator = gemini
	}

	handler := api.NewHandler(generator, cfg.CORSAllowedOrigins, cfg.RateLimitWindow, cfg.ExcusesPerWindow, cfg.ImagesPerWindow)
	router := handler.Router()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("alibi listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxTimeout); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
