// Package store implements the SQLite translation memory. A memory hit lets
// an invocation skip the provider call entirely; requests and per-service
// results are also recorded for audit.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/khalidmaq/tarjuman/internal"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS translation_requests (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS translation_results (
		id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		service_name TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		latency_ms INTEGER,
		error TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (request_id) REFERENCES translation_requests(id)
	);

	CREATE TABLE IF NOT EXISTS translation_memory (
		id TEXT PRIMARY KEY,
		source_text TEXT NOT NULL UNIQUE,
		translated_text TEXT NOT NULL,
		service_used TEXT,
		usage_count INTEGER DEFAULT 1,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) SaveRequest(ctx context.Context, req internal.TranslationRequest) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_requests (id, source_text, created_at) VALUES (?, ?, ?)`,
		req.ID, req.SourceText, req.Timestamp)
	return err
}

func (s *Store) SaveResult(ctx context.Context, requestID, serviceName, translatedText string, latencyMs int, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_results (id, request_id, service_name, translated_text, latency_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), requestID, serviceName, translatedText, latencyMs, errMsg)
	return err
}

// GetCachedTranslation looks up the memory by normalized source text. A hit
// bumps the usage counter.
func (s *Store) GetCachedTranslation(ctx context.Context, sourceText string) (string, bool, error) {
	key := normalizeText(sourceText)

	var id, translated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, translated_text FROM translation_memory WHERE source_text = ?`,
		key).Scan(&id, &translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE translation_memory SET usage_count = usage_count + 1, last_used = CURRENT_TIMESTAMP WHERE id = ?`,
		id)
	if err != nil {
		return "", false, err
	}

	return translated, true, nil
}

// SaveToMemory upserts a translation keyed by normalized source text.
func (s *Store) SaveToMemory(ctx context.Context, sourceText, translatedText, serviceUsed string) error {
	key := normalizeText(sourceText)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translation_memory (id, source_text, translated_text, service_used)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_text) DO UPDATE SET
		   translated_text = excluded.translated_text,
		   service_used = excluded.service_used,
		   last_used = CURRENT_TIMESTAMP`,
		uuid.New().String(), key, translatedText, serviceUsed)
	return err
}

type MemoryEntry struct {
	ID             string
	SourceText     string
	TranslatedText string
	ServiceUsed    string
	UsageCount     int
	LastUsed       time.Time
	CreatedAt      time.Time
}

func (s *Store) ListMemory(ctx context.Context) ([]MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_text, translated_text, COALESCE(service_used, ''), usage_count, last_used, created_at
		 FROM translation_memory ORDER BY last_used DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []MemoryEntry
	for rows.Next() {
		var e MemoryEntry
		if err := rows.Scan(&e.ID, &e.SourceText, &e.TranslatedText, &e.ServiceUsed, &e.UsageCount, &e.LastUsed, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no entry with id %s", id)
	}
	return nil
}

func (s *Store) ClearMemory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM translation_memory`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type CacheStats struct {
	TotalEntries int
	TotalUsage   int
}

func (s *Store) Stats(ctx context.Context) (*CacheStats, error) {
	stats := &CacheStats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(usage_count), 0) FROM translation_memory`).
		Scan(&stats.TotalEntries, &stats.TotalUsage)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText canonicalizes the memory key: NFC normalization (Urdu text
// mixes precomposed and combining forms) plus whitespace collapsing.
func normalizeText(text string) string {
	text = norm.NFC.String(text)
	return strings.Join(strings.Fields(text), " ")
}
