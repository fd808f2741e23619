// Package translator defines the translation service abstraction and its
// provider backends. Exactly one backend runs per invocation; a provider
// failure propagates to the caller unchanged, with no retry or fallback.
package translator

import (
	"context"
	"time"
)

// Fixed language pair. The tool translates Urdu into simple English.
const (
	SourceLang = "ur"
	TargetLang = "en"
)

// Instruction is the system prompt sent to every LLM-backed service. The
// caller's text is passed through as the user message, byte for byte.
const Instruction = "You are a helpful translator agent. Translate the given Urdu text into simple, easy English. Only respond with the translation, nothing else."

type ServiceConfig struct {
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

type TranslateRequest struct {
	Text string `json:"text"`
}

type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Metadata       map[string]string `json:"metadata"`
	Latency        time.Duration     `json:"latency"`
	Error          string            `json:"error,omitempty"`
}

type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
}
