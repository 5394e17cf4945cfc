package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the chatbot backend
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	DocStore DocStoreConfig `mapstructure:"docstore"`
	OCR      OCRConfig      `mapstructure:"ocr"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Session  SessionConfig  `mapstructure:"session"`
	Prompt   PromptConfig   `mapstructure:"prompt"`
	Locale   LocaleConfig   `mapstructure:"locale"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds metadata store configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DocStoreConfig holds document store configuration
type DocStoreConfig struct {
	UploadURL      string        `mapstructure:"upload_url"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
}

// OCRConfig holds the text-extraction service configuration
type OCRConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
}

// LLMConfig holds completion API configuration
type LLMConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Temperature    float32       `mapstructure:"temperature"`
	TimeoutSeconds int           `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxUploadMB       int64    `mapstructure:"max_upload_mb"`
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	IdleTTLMinutes int `mapstructure:"idle_ttl_minutes"` // 0 = sessions never expire
}

// PromptConfig holds the per-call character caps applied when course material
// is embedded into a completion prompt
type PromptConfig struct {
	PracticeChars int `mapstructure:"practice_chars"`
	ContextChars  int `mapstructure:"context_chars"`
	ScoringChars  int `mapstructure:"scoring_chars"`
}

// LocaleConfig holds localization configuration
type LocaleConfig struct {
	Default string `mapstructure:"default"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TUTORBOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DocStore.Timeout = time.Duration(cfg.DocStore.TimeoutSeconds) * time.Second
	cfg.OCR.Timeout = time.Duration(cfg.OCR.TimeoutSeconds) * time.Second
	cfg.LLM.Timeout = time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)

	v.SetDefault("database.path", "./data/tutorbot.db")

	v.SetDefault("docstore.upload_url", "")
	v.SetDefault("docstore.timeout_seconds", 60)

	v.SetDefault("ocr.endpoint", "")
	v.SetDefault("ocr.timeout_seconds", 60)

	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.max_tokens", 1500)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetDefault("upload.allowed_extensions", []string{"pdf", "png", "jpg", "jpeg"})
	v.SetDefault("upload.max_upload_mb", 16)

	v.SetDefault("session.idle_ttl_minutes", 0)

	v.SetDefault("prompt.practice_chars", 3000)
	v.SetDefault("prompt.context_chars", 4000)
	v.SetDefault("prompt.scoring_chars", 2000)

	v.SetDefault("locale.default", "en")
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadBytes returns the request body limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Upload.MaxUploadMB << 20
}
