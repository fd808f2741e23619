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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khalidmaq/tarjuman/internal"
	"github.com/khalidmaq/tarjuman/internal/config"
	"github.com/khalidmaq/tarjuman/internal/detector"
	"github.com/khalidmaq/tarjuman/internal/store"
	"github.com/khalidmaq/tarjuman/internal/translator"
)

// SampleText is translated when no input is given, so a bare
// "tarjuman translate" reproduces the original demo.
const SampleText = "مشکلات میں بھی خوشی تلاش کرو، یہ تمہیں مضبوط بنائے گا۔"

var (
	inputFile   string
	outputFile  string
	serviceName string
	modelName   string
	credentials string

	dbPath  string
	noCache bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate Urdu text to simple English",
	Long: `Translate Urdu text to simple English using one backend per run.

Input is taken from the argument, from --input (use "-" for stdin), or,
when neither is given, from a built-in sample sentence.

Available services:
  - gemini   Google Gemini via its OpenAI-compatible endpoint (default,
             requires GEMINI_API_KEY)
  - ollama   Self-hosted Ollama model
  - google   Google Cloud Translate (requires cloud credentials)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := resolveInput(args)
		if err != nil {
			return err
		}

		appCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dbPath == "" {
			dbPath = appCfg.DBPath
		}

		// Fails fast on a missing credential, before any I/O.
		svc, err := buildService(serviceName, appCfg)
		if err != nil {
			return err
		}

		if !detector.New().IsLikelyUrdu(text) {
			fmt.Fprintf(os.Stderr, "Warning: input does not look like Urdu; translating as-is\n")
		}

		ctx := context.Background()

		var db *store.Store
		if !noCache && dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if cached, found, cacheErr := db.GetCachedTranslation(ctx, text); cacheErr == nil && found {
				fmt.Fprintf(os.Stderr, "Using cached translation\n")
				return writeOutput(cached)
			}
		}

		svcCfg := translator.ServiceConfig{
			Model:       modelName,
			Credentials: credentials,
		}

		result, err := svc.Translate(ctx, svcCfg, translator.TranslateRequest{Text: text})
		if err != nil {
			return fmt.Errorf("%s: %w", svc.Name(), err)
		}

		if db != nil {
			reqID := uuid.New().String()
			_ = db.SaveRequest(ctx, internal.TranslationRequest{
				ID:         reqID,
				SourceText: text,
				Timestamp:  time.Now(),
			})
			_ = db.SaveResult(ctx, reqID, result.ServiceName, result.TranslatedText, int(result.Latency.Milliseconds()), result.Error)
			_ = db.SaveToMemory(ctx, text, result.TranslatedText, result.ServiceName)
		}

		if tokens, ok := result.Metadata["completion_tokens"]; ok {
			fmt.Fprintf(os.Stderr, "Service: %s, completion tokens: %s\n", result.ServiceName, tokens)
		}

		return writeOutput(result.TranslatedText)
	},
}

// resolveInput picks the text to translate: argument, then input file (or
// stdin via "-"), then the built-in sample.
func resolveInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if inputFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if inputFile != "" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	return SampleText, nil
}

func writeOutput(text string) error {
	if outputFile == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote translation to %s\n", outputFile)
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (\"-\" for stdin)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	translateCmd.Flags().StringVar(&serviceName, "service", "gemini", "Translation service: gemini, ollama, or google")
	translateCmd.Flags().StringVar(&modelName, "model", "", "Model override for LLM-backed services")
	translateCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials (google service only)")

	translateCmd.Flags().StringVar(&dbPath, "db", "", "Database path for translation memory (default: $TARJUMAN_DB)")
	translateCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable translation memory cache")
}
