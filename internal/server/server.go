// Package server implements the web variant: a single-page form that sends
// Urdu text to the configured translation service and shows the English
// result, plus a JSON API, health check, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khalidmaq/tarjuman/internal"
	"github.com/khalidmaq/tarjuman/internal/store"
	"github.com/khalidmaq/tarjuman/internal/translator"
)

type Server struct {
	svc translator.TranslationService
	cfg translator.ServiceConfig
	db  *store.Store // nil disables the translation memory
}

// New builds a server around one translation service. db may be nil.
func New(svc translator.TranslationService, cfg translator.ServiceConfig, db *store.Store) *Server {
	return &Server{svc: svc, cfg: cfg, db: db}
}

// Handler returns the route mux for the web UI and API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.indexHandler)
	mux.HandleFunc("POST /api/translate", s.translateHandler)
	mux.HandleFunc("GET /healthz", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

type translateRequest struct {
	Text string `json:"text"`
}

type translateResponse struct {
	Translation string `json:"translation,omitempty"`
	Service     string `json:"service,omitempty"`
	Cached      bool   `json:"cached,omitempty"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) translateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	sendResponse := func(statusCode int, resp translateResponse) {
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("translateHandler: failed to encode response: %v", err)
		}
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("translateHandler: failed to decode request body: %v", err)
		sendResponse(http.StatusBadRequest, translateResponse{Error: "invalid json body"})
		return
	}
	if req.Text == "" {
		sendResponse(http.StatusBadRequest, translateResponse{Error: "text should be non-empty"})
		return
	}

	start := time.Now()
	ctx := r.Context()

	if s.db != nil {
		if cached, found, err := s.db.GetCachedTranslation(ctx, req.Text); err == nil && found {
			cacheHitsTotal.Inc()
			translationsTotal.WithLabelValues(s.svc.Name(), "ok").Inc()
			translationLatency.WithLabelValues(s.svc.Name(), "hit").Observe(time.Since(start).Seconds())
			sendResponse(http.StatusOK, translateResponse{
				Translation: cached,
				Service:     s.svc.Name(),
				Cached:      true,
			})
			return
		}
	}

	result, err := s.svc.Translate(ctx, s.cfg, translator.TranslateRequest{Text: req.Text})
	translationLatency.WithLabelValues(s.svc.Name(), "miss").Observe(time.Since(start).Seconds())
	if err != nil {
		translationsTotal.WithLabelValues(s.svc.Name(), "error").Inc()
		log.Printf("translateHandler: %s failed: %v", s.svc.Name(), err)
		sendResponse(http.StatusBadGateway, translateResponse{Error: err.Error()})
		return
	}
	translationsTotal.WithLabelValues(s.svc.Name(), "ok").Inc()

	if s.db != nil {
		reqID := uuid.New().String()
		_ = s.db.SaveRequest(ctx, internal.TranslationRequest{
			ID:         reqID,
			SourceText: req.Text,
			Timestamp:  time.Now(),
		})
		_ = s.db.SaveResult(ctx, reqID, result.ServiceName, result.TranslatedText, int(result.Latency.Milliseconds()), result.Error)
		_ = s.db.SaveToMemory(ctx, req.Text, result.TranslatedText, result.ServiceName)
	}

	sendResponse(http.StatusOK, translateResponse{
		Translation: result.TranslatedText,
		Service:     result.ServiceName,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": s.svc.Name()})
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Tarjuman — Urdu to English</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; min-height: 6rem; font-size: 1.1rem; direction: rtl; }
#result { white-space: pre-wrap; border: 1px solid #ccc; padding: 0.8rem; min-height: 3rem; }
.error { color: #b00; }
</style>
</head>
<body>
<h1>Tarjuman</h1>
<p>Urdu in, simple English out. Powered by {{.Service}}.</p>
<textarea id="urdu" placeholder="یہاں اردو لکھیں..."></textarea>
<p><button id="go">Translate</button></p>
<div id="result"></div>
<script>
document.getElementById('go').addEventListener('click', async () => {
  const out = document.getElementById('result');
  out.textContent = '...';
  out.classList.remove('error');
  try {
    const resp = await fetch('/api/translate', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({text: document.getElementById('urdu').value})
    });
    const data = await resp.json();
    if (!resp.ok || data.error) {
      out.classList.add('error');
      out.textContent = data.error || ('request failed: ' + resp.status);
      return;
    }
    out.textContent = data.translation;
  } catch (err) {
    out.classList.add('error');
    out.textContent = String(err);
  }
});
</script>
</body>
</html>
`))

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]string{"Service": s.svc.Name()}); err != nil {
		log.Printf("indexHandler: failed to render page: %v", err)
	}
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
