package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS script_history (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	brand TEXT NOT NULL,
	source_text TEXT NOT NULL,
	result TEXT NOT NULL,
	is_used INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_script_history_created_at ON script_history(created_at);

CREATE TABLE IF NOT EXISTS brands (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS brand_knowledge (
	id TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
	content TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_brand_knowledge_brand ON brand_knowledge(brand_id, created_at);
`

// SQLiteStore implements Store on a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite allows one writer; serialize through a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddHistory stores a new record.
func (s *SQLiteStore) AddHistory(ctx context.Context, rec *domain.HistoryRecord) error {
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO script_history (id, created_at, brand, source_text, result, is_used) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.CreatedAt.UnixNano(), rec.Brand, rec.SourceText, string(result), rec.IsUsed)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListHistory returns all records, newest first.
func (s *SQLiteStore) ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, brand, source_text, result, is_used FROM script_history ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.HistoryRecord, 0)
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return records, nil
}

// GetHistory retrieves a record by ID.
func (s *SQLiteStore) GetHistory(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, brand, source_text, result, is_used FROM script_history WHERE id = ?`, id.String())

	rec, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrHistoryNotFound
	}
	return rec, err
}

// SetUsed sets the used flag.
func (s *SQLiteStore) SetUsed(ctx context.Context, id domain.HistoryID, used bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE script_history SET is_used = ? WHERE id = ?`, used, id.String())
	if err != nil {
		return fmt.Errorf("update history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrHistoryNotFound
	}
	return nil
}

// ListBrands returns all brands ordered by name.
func (s *SQLiteStore) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate brands: %w", err)
	}

	return brands, nil
}

// CreateBrand stores a brand.
func (s *SQLiteStore) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO brands (id, name) VALUES (?, ?)`, brand.ID.String(), brand.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: brands.name") {
			return domain.ErrDuplicateBrand
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetBrand retrieves a brand by ID.
func (s *SQLiteStore) GetBrand(ctx context.Context, id domain.BrandID) (*domain.Brand, error) {
	var b domain.Brand
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM brands WHERE id = ?`, id.String()).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBrandNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// ListKnowledge returns a brand's knowledge items, newest first.
func (s *SQLiteStore) ListKnowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error) {
	if _, err := s.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, brand_id, content, created_at FROM brand_knowledge WHERE brand_id = ? ORDER BY created_at DESC, rowid DESC`,
		brandID.String())
	if err != nil {
		return nil, fmt.Errorf("query knowledge: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.BrandKnowledgeItem, 0)
	for rows.Next() {
		var item domain.BrandKnowledgeItem
		var created int64
		if err := rows.Scan(&item.ID, &item.BrandID, &item.Content, &created); err != nil {
			return nil, fmt.Errorf("scan knowledge: %w", err)
		}
		item.CreatedAt = time.Unix(0, created).UTC()
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge: %w", err)
	}

	return items, nil
}

// AddKnowledge stores a knowledge item.
func (s *SQLiteStore) AddKnowledge(ctx context.Context, item *domain.BrandKnowledgeItem) error {
	if _, err := s.GetBrand(ctx, item.BrandID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO brand_knowledge (id, brand_id, content, created_at) VALUES (?, ?, ?, ?)`,
		item.ID.String(), item.BrandID.String(), item.Content, item.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert knowledge: %w", err)
	}
	return nil
}

// DeleteKnowledge removes a knowledge item.
func (s *SQLiteStore) DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM brand_knowledge WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete knowledge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrKnowledgeNotFound
	}
	return nil
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*domain.HistoryRecord, error) {
	var (
		rec     domain.HistoryRecord
		created int64
		result  string
	)
	if err := row.Scan(&rec.ID, &created, &rec.Brand, &rec.SourceText, &result, &rec.IsUsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan history: %w", err)
	}
	rec.CreatedAt = time.Unix(0, created).UTC()
	if err := json.Unmarshal([]byte(result), &rec.Result); err != nil {
		return nil, fmt.Errorf("decode history result: %w", err)
	}
	return &rec, nil
}
