package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/artem13815/rirekisho/pkg/llm"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMAppTitle string
	LLMReferer  string
	PricingFile string

	HistoryWindow  int
	LogMode        string
	UploadMaxBytes int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "rirekisho"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),

		LLMAPIKey:   getEnv("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:    getEnv("LLM_MODEL", llm.DefaultModel),
		LLMAppTitle: os.Getenv("LLM_APP_TITLE"),
		LLMReferer:  os.Getenv("LLM_REFERER"),
		PricingFile: os.Getenv("PRICING_FILE"),

		HistoryWindow:  getEnvInt("CHAT_HISTORY_WINDOW", 10),
		LogMode:        strings.ToLower(getEnv("LOG_MODE", "dev")),
		UploadMaxBytes: getEnvInt("UPLOAD_MAX_BYTES", 10<<20),
	}
	return cfg
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("CHAT_HISTORY_WINDOW must be positive, got %d", c.HistoryWindow)
	}
	if c.JWTTTLMinutes <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive, got %d", c.JWTTTLMinutes)
	}
	if c.LogMode != "dev" && c.LogMode != "prod" {
		return fmt.Errorf("LOG_MODE must be dev or prod, got %q", c.LogMode)
	}
	if c.LogMode == "prod" && c.JWTSecret == "dev-secret-change" {
		return fmt.Errorf("JWT_SECRET must be set in prod")
	}
	return nil
}

// Pricing loads the llm pricing table, PRICING_FILE overriding the defaults.
func (c Config) Pricing() (llm.Pricing, error) {
	return llm.LoadPricing(c.PricingFile)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
