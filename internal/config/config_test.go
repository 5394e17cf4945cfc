package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.Equal(t, "./data/tutorbot.db", cfg.Database.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"pdf", "png", "jpg", "jpeg"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 0, cfg.Session.IdleTTLMinutes)
	assert.Equal(t, 3000, cfg.Prompt.PracticeChars)
	assert.Equal(t, 4000, cfg.Prompt.ContextChars)
	assert.Equal(t, 2000, cfg.Prompt.ScoringChars)
	assert.Equal(t, "en", cfg.Locale.Default)
	assert.Equal(t, 60*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, 60*time.Second, cfg.DocStore.Timeout)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 8080
ocr:
  endpoint: http://ocr.internal/extract
  timeout_seconds: 30
session:
  idle_ttl_minutes: 45
locale:
  default: es
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
	assert.Equal(t, "http://ocr.internal/extract", cfg.OCR.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, 45, cfg.Session.IdleTTLMinutes)
	assert.Equal(t, "es", cfg.Locale.Default)

	// Untouched sections keep their defaults.
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 3000, cfg.Prompt.PracticeChars)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
