package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/khalidmaq/tarjuman/internal/store"
	"github.com/khalidmaq/tarjuman/internal/translator"
)

// stubService is a canned TranslationService for handler tests.
type stubService struct {
	name   string
	text   string
	err    error
	calls  int
	gotReq translator.TranslateRequest
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) (*translator.ServiceResult, error) {
	s.calls++
	s.gotReq = req
	if s.err != nil {
		return &translator.ServiceResult{ServiceName: s.name, Error: s.err.Error()}, s.err
	}
	return &translator.ServiceResult{ServiceName: s.name, TranslatedText: s.text}, nil
}

func (s *stubService) IsAvailable(ctx context.Context) error { return nil }

func postTranslate(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, translateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/translate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp translateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return rec, resp
}

func TestTranslateHandler_Success(t *testing.T) {
	const urdu = "مشکلات میں بھی خوشی تلاش کرو، یہ تمہیں مضبوط بنائے گا۔"
	const english = "Find happiness even in difficulties, it will make you stronger."

	svc := &stubService{name: "gemini", text: english}
	s := New(svc, translator.ServiceConfig{}, nil)

	body, _ := json.Marshal(translateRequest{Text: urdu})
	rec, resp := postTranslate(t, s.Handler(), string(body))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if resp.Translation != english {
		t.Errorf("expected %q, got %q", english, resp.Translation)
	}
	if resp.Service != "gemini" {
		t.Errorf("expected service 'gemini', got %q", resp.Service)
	}
	if svc.gotReq.Text != urdu {
		t.Errorf("input mutated: %q", svc.gotReq.Text)
	}
}

func TestTranslateHandler_EmptyText(t *testing.T) {
	svc := &stubService{name: "gemini", text: "x"}
	s := New(svc, translator.ServiceConfig{}, nil)

	rec, resp := postTranslate(t, s.Handler(), `{"text":""}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if resp.Error == "" {
		t.Error("expected error message")
	}
	if svc.calls != 0 {
		t.Errorf("expected no service call, got %d", svc.calls)
	}
}

func TestTranslateHandler_InvalidJSON(t *testing.T) {
	svc := &stubService{name: "gemini", text: "x"}
	s := New(svc, translator.ServiceConfig{}, nil)

	rec, _ := postTranslate(t, s.Handler(), `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestTranslateHandler_ProviderError(t *testing.T) {
	svc := &stubService{name: "gemini", err: fmt.Errorf("API returned status 429")}
	s := New(svc, translator.ServiceConfig{}, nil)

	rec, resp := postTranslate(t, s.Handler(), `{"text":"ہیلو"}`)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(resp.Error, "429") {
		t.Errorf("expected provider error passed through, got %q", resp.Error)
	}
	if resp.Translation != "" {
		t.Error("failure must not carry a translation")
	}
}

func TestTranslateHandler_CacheHit(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer db.Close()

	if err := db.SaveToMemory(context.Background(), "ہیلو", "Hello", "gemini"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := &stubService{name: "gemini", text: "should not be used"}
	s := New(svc, translator.ServiceConfig{}, db)

	rec, resp := postTranslate(t, s.Handler(), `{"text":"ہیلو"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !resp.Cached {
		t.Error("expected cached response")
	}
	if resp.Translation != "Hello" {
		t.Errorf("expected cached text, got %q", resp.Translation)
	}
	if svc.calls != 0 {
		t.Errorf("cache hit must skip the provider, got %d calls", svc.calls)
	}
}

func TestTranslateHandler_SavesToMemory(t *testing.T) {
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer db.Close()

	svc := &stubService{name: "gemini", text: "Hello"}
	s := New(svc, translator.ServiceConfig{}, db)

	rec, _ := postTranslate(t, s.Handler(), `{"text":"ہیلو"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	got, found, err := db.GetCachedTranslation(context.Background(), "ہیلو")
	if err != nil || !found {
		t.Fatalf("expected memory entry after translation: found=%v err=%v", found, err)
	}
	if got != "Hello" {
		t.Errorf("expected 'Hello' in memory, got %q", got)
	}
}

func TestIndexHandler(t *testing.T) {
	svc := &stubService{name: "gemini", text: "x"}
	s := New(svc, translator.ServiceConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tarjuman") {
		t.Error("expected page title in body")
	}
	if !strings.Contains(rec.Body.String(), "gemini") {
		t.Error("expected service name in body")
	}
}

func TestHealthHandler(t *testing.T) {
	svc := &stubService{name: "gemini", text: "x"}
	s := New(svc, translator.ServiceConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	svc := &stubService{name: "gemini", text: "x"}
	s := New(svc, translator.ServiceConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
