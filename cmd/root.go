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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "tarjuman",
	Short: "Urdu to simple-English translator",
	Long: `Tarjuman translates Urdu text into simple English using Google Gemini
through its OpenAI-compatible chat endpoint.

Alternative backends: a self-hosted Ollama model or Google Cloud Translate.
Results are kept in a local SQLite translation memory so repeated inputs
skip the network call.

Use "tarjuman translate --help" for translation options, or
"tarjuman serve" to run the browser form instead.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
