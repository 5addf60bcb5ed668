package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	CORSAllowedOrigins []string

	GeminiAPIKey string
	TextModel    string
	ImageModel   string

	TextTimeout  time.Duration
	ImageTimeout time.Duration

	RateLimitWindow  time.Duration
	ExcusesPerWindow int
	ImagesPerWindow  int

	// Outbound throttle towards the generation API, shared by both models.
	UpstreamRPS   float64
	UpstreamBurst int
}

func Load() Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")

	return Config{
		ListenAddr:         ":" + port,
		CORSAllowedOrigins: parseCSV(envOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		TextModel:          envOrDefault("TEXT_MODEL", "gemini-2.5-flash"),
		ImageModel:         envOrDefault("IMAGE_MODEL", "gemini-2.5-flash-image"),
		TextTimeout:        envOrDefaultSeconds("TEXT_TIMEOUT_SECONDS", 30),
		ImageTimeout:       envOrDefaultSeconds("IMAGE_TIMEOUT_SECONDS", 60),
		RateLimitWindow:    envOrDefaultSeconds("RATE_LIMIT_WINDOW_SECONDS", 60),
		ExcusesPerWindow:   envOrDefaultInt("RATE_LIMIT_EXCUSES_PER_WINDOW", 20),
		ImagesPerWindow:    envOrDefaultInt("RATE_LIMIT_IMAGES_PER_WINDOW", 10),
		UpstreamRPS:        envOrDefaultFloat("UPSTREAM_RPS", 5),
		UpstreamBurst:      envOrDefaultInt("UPSTREAM_BURST", 10),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseCSV(value string) []string {
	values := strings.Split(value, ",")
	result := make([]string, 0, len(values))
	for _, item := range values {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}

	if len(result) == 0 {
		return []string{"*"}
	}
	return result
}

func envOrDefaultInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var parsed float64
	if _, err := fmt.Sscanf(value, "%f", &parsed); err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultSeconds(key string, fallback int) time.Duration {
	return time.Duration(envOrDefaultInt(key, fallback)) * time.Second
}
