package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khalidmaq/tarjuman/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveRequestAndResult(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	req := internal.TranslationRequest{
		ID:         "req-1",
		SourceText: "مشکلات میں بھی خوشی تلاش کرو",
		Timestamp:  time.Now(),
	}
	if err := s.SaveRequest(ctx, req); err != nil {
		t.Errorf("SaveRequest failed: %v", err)
	}
	if err := s.SaveResult(ctx, "req-1", "gemini", "Seek joy even in hardships", 420, ""); err != nil {
		t.Errorf("SaveResult failed: %v", err)
	}
}

func TestStore_MemoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const urdu = "مشکلات میں بھی خوشی تلاش کرو، یہ تمہیں مضبوط بنائے گا۔"
	const english = "Find happiness even in difficulties, it will make you stronger."

	if err := s.SaveToMemory(ctx, urdu, english, "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	got, found, err := s.GetCachedTranslation(ctx, urdu)
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got != english {
		t.Errorf("expected %q, got %q", english, got)
	}
}

func TestStore_GetCachedTranslation_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetCachedTranslation(context.Background(), "کچھ اور")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestStore_GetCachedTranslation_NormalizedKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "  ہیلو   دنیا ", "Hello world", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	// Same text, different whitespace.
	_, found, err := s.GetCachedTranslation(ctx, "ہیلو دنیا")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Error("expected hit for whitespace-normalized lookup")
	}
}

func TestStore_UsageCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "ہیلو", "Hello", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := s.GetCachedTranslation(ctx, "ہیلو"); err != nil {
			t.Fatalf("lookup %d failed: %v", i, err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.TotalEntries)
	}
	if stats.TotalUsage != 4 {
		t.Errorf("expected usage 4 (1 insert + 3 hits), got %d", stats.TotalUsage)
	}
}

func TestStore_SaveToMemory_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "ہیلو", "Hello", "gemini"); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := s.SaveToMemory(ctx, "ہیلو", "Hi there", "ollama"); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, found, err := s.GetCachedTranslation(ctx, "ہیلو")
	if err != nil || !found {
		t.Fatalf("lookup failed: found=%v err=%v", found, err)
	}
	if got != "Hi there" {
		t.Errorf("expected upserted text, got %q", got)
	}

	entries, err := s.ListMemory(ctx)
	if err != nil {
		t.Fatalf("ListMemory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", len(entries))
	}
	if entries[0].ServiceUsed != "ollama" {
		t.Errorf("expected service updated, got %q", entries[0].ServiceUsed)
	}
}

func TestStore_DeleteMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "ہیلو", "Hello", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("setup failed: %v", err)
	}

	if err := s.DeleteMemory(ctx, entries[0].ID); err != nil {
		t.Errorf("DeleteMemory failed: %v", err)
	}
	if err := s.DeleteMemory(ctx, "missing-id"); err == nil {
		t.Error("expected error deleting unknown id")
	}
}

func TestStore_ClearMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveToMemory(ctx, "ایک", "one", "gemini")
	_ = s.SaveToMemory(ctx, "دو", "two", "gemini")

	n, err := s.ClearMemory(ctx)
	if err != nil {
		t.Fatalf("ClearMemory failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}

	entries, err := s.ListMemory(ctx)
	if err != nil {
		t.Fatalf("ListMemory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty memory, got %d entries", len(entries))
	}
}
