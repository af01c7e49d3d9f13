package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LLM_API_KEY", "OPENAI_API_KEY", "LLM_MODEL", "CHAT_HISTORY_WINDOW", "LOG_MODE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, 10, cfg.HistoryWindow)
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Empty(t, cfg.LLMAPIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOpenAIKeyFallback(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	assert.Equal(t, "sk-test", Load().LLMAPIKey)

	t.Setenv("LLM_API_KEY", "or-test")
	assert.Equal(t, "or-test", Load().LLMAPIKey)
}

func TestValidate(t *testing.T) {
	base := Config{HistoryWindow: 10, JWTTTLMinutes: 60, LogMode: "dev", JWTSecret: "dev-secret-change"}
	require.NoError(t, base.Validate())

	bad := base
	bad.HistoryWindow = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogMode = "verbose"
	assert.Error(t, bad.Validate())

	bad = base
	bad.LogMode = "prod"
	assert.Error(t, bad.Validate())
}

func TestPricingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  gpt-4o: {input: 2.5, output: 10}\n"), 0o600))

	p, err := Config{PricingFile: path}.Pricing()
	require.NoError(t, err)
	assert.Contains(t, p, "gpt-4o")
	assert.Contains(t, p, "gpt-4o-mini")
}
