// Package config loads process configuration from the environment.
//
// All settings come from environment variables (a local .env file is read
// first when present, matching the deployment setup on hosted platforms).
// The Gemini credential is the only required setting and its absence is a
// configuration error raised before any network client is built.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names.
const (
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvModel   = "GEMINI_MODEL"
	EnvBaseURL = "GEMINI_BASE_URL"
	EnvDBPath  = "TARJUMAN_DB"
	EnvOllama  = "OLLAMA_URL"
)

// Defaults.
const (
	DefaultModel = "gemini-2.0-flash"
	// Gemini's OpenAI-compatible endpoint. Requests use the standard
	// chat-completions schema with a bearer API key.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultDBPath  = "./data/tarjuman.db"
	DefaultOllama  = "http://localhost:11434"
)

// ErrMissingAPIKey indicates the Gemini credential is unset or empty.
var ErrMissingAPIKey = errors.New("missing API key")

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	DBPath    string
	OllamaURL string
}

// Load reads configuration from the environment. It never performs I/O
// beyond reading an optional .env file in the working directory.
//
// The credential is not validated here; callers that need it must call
// RequireAPIKey so that services which do not use Gemini (ollama, google)
// keep working without one.
func Load() (*Config, error) {
	// Ignore a missing .env; real env vars still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(EnvModel, DefaultModel)
	v.SetDefault(EnvBaseURL, DefaultBaseURL)
	v.SetDefault(EnvDBPath, DefaultDBPath)
	v.SetDefault(EnvOllama, DefaultOllama)

	cfg := &Config{
		APIKey:    strings.TrimSpace(v.GetString(EnvAPIKey)),
		Model:     v.GetString(EnvModel),
		BaseURL:   strings.TrimRight(v.GetString(EnvBaseURL), "/"),
		DBPath:    v.GetString(EnvDBPath),
		OllamaURL: v.GetString(EnvOllama),
	}

	return cfg, nil
}

// RequireAPIKey fails fast when the Gemini credential is absent. The
// returned error names the environment variable so the fix is obvious.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: set %s in the environment or .env file", ErrMissingAPIKey, EnvAPIKey)
	}
	return nil
}
