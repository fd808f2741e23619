/*
Copyright © 2025 The Tarjuman Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/khalidmaq/tarjuman/internal/config"
	"github.com/khalidmaq/tarjuman/internal/translator"
)

// buildService constructs the single backend for this invocation. Only the
// gemini backend needs the API key, and its absence fails here, before any
// network I/O.
func buildService(name string, cfg *config.Config) (translator.TranslationService, error) {
	switch name {
	case "gemini":
		if err := cfg.RequireAPIKey(); err != nil {
			return nil, err
		}
		return translator.NewGeminiService(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		return translator.NewOllamaTranslator(cfg.OllamaURL, ""), nil
	case "google":
		return translator.NewGoogleService(), nil
	default:
		return nil, fmt.Errorf("unknown service: %s (expected gemini, ollama, or google)", name)
	}
}
