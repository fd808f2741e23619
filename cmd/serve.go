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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/khalidmaq/tarjuman/internal/config"
	"github.com/khalidmaq/tarjuman/internal/server"
	"github.com/khalidmaq/tarjuman/internal/store"
	"github.com/khalidmaq/tarjuman/internal/translator"
)

var (
	serveAddr    string
	serveService string
	serveDBPath  string
	serveNoCache bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the browser form for interactive translation",
	Long: `Serve a one-field web form: Urdu in, simple English out.

Routes:
  GET  /               the form
  POST /api/translate  JSON API ({"text": ...})
  GET  /healthz        health check
  GET  /metrics        Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if serveDBPath == "" {
			serveDBPath = appCfg.DBPath
		}

		svc, err := buildService(serveService, appCfg)
		if err != nil {
			return err
		}

		var db *store.Store
		if !serveNoCache && serveDBPath != "" {
			if err := os.MkdirAll(filepath.Dir(serveDBPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err = store.New(serveDBPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(svc, translator.ServiceConfig{}, db)
		if err := srv.ListenAndServe(ctx, serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveService, "service", "gemini", "Translation service: gemini, ollama, or google")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Database path for translation memory (default: $TARJUMAN_DB)")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "Disable translation memory cache")
}
