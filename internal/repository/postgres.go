package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iconidentify/scriptforge/internal/domain"
)

const uniqueViolation = "23505"

const (
	insertHistoryQuery = `
        INSERT INTO script_history (id, created_at, brand, source_text, result, is_used)
        VALUES ($1, $2, $3, $4, $5, $6)`
	listHistoryQuery = `
        SELECT id, created_at, brand, source_text, result, is_used
        FROM script_history ORDER BY created_at DESC`
	getHistoryQuery = `
        SELECT id, created_at, brand, source_text, result, is_used
        FROM script_history WHERE id = $1`
	setUsedQuery         = `UPDATE script_history SET is_used = $2 WHERE id = $1`
	listBrandsQuery      = `SELECT id, name FROM brands ORDER BY name`
	insertBrandQuery     = `INSERT INTO brands (id, name) VALUES ($1, $2)`
	getBrandQuery        = `SELECT id, name FROM brands WHERE id = $1`
	listKnowledgeQuery   = `SELECT id, brand_id, content, created_at FROM brand_knowledge WHERE brand_id = $1 ORDER BY created_at DESC`
	insertKnowledgeQuery = `INSERT INTO brand_knowledge (id, brand_id, content, created_at) VALUES ($1, $2, $3, $4)`
	deleteKnowledgeQuery = `DELETE FROM brand_knowledge WHERE id = $1`
)

type historyRow struct {
	ID         string              `db:"id"`
	CreatedAt  time.Time           `db:"created_at"`
	Brand      string              `db:"brand"`
	SourceText string              `db:"source_text"`
	Result     domain.ScriptResult `db:"result"`
	IsUsed     bool                `db:"is_used"`
}

func (r historyRow) toDomain() *domain.HistoryRecord {
	return &domain.HistoryRecord{
		ID:         domain.HistoryID(r.ID),
		CreatedAt:  r.CreatedAt.UTC(),
		Brand:      r.Brand,
		SourceText: r.SourceText,
		Result:     r.Result,
		IsUsed:     r.IsUsed,
	}
}

type brandRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type knowledgeRow struct {
	ID        string    `db:"id"`
	BrandID   string    `db:"brand_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an existing pool. Run MigratePostgres first.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// OpenPostgres connects to url with at most maxConns connections.
func OpenPostgres(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// AddHistory stores a new record.
func (s *PostgresStore) AddHistory(ctx context.Context, rec *domain.HistoryRecord) error {
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if _, err := s.pool.Exec(ctx, insertHistoryQuery,
		rec.ID.String(), rec.CreatedAt, rec.Brand, rec.SourceText, result, rec.IsUsed); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListHistory returns all records, newest first.
func (s *PostgresStore) ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	var rows []historyRow
	if err := pgxscan.Select(ctx, s.pool, &rows, listHistoryQuery); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	records := make([]*domain.HistoryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toDomain())
	}
	return records, nil
}

// GetHistory retrieves a record by ID.
func (s *PostgresStore) GetHistory(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error) {
	var row historyRow
	if err := pgxscan.Get(ctx, s.pool, &row, getHistoryQuery, id.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("get history: %w", err)
	}
	return row.toDomain(), nil
}

// SetUsed sets the used flag.
func (s *PostgresStore) SetUsed(ctx context.Context, id domain.HistoryID, used bool) error {
	tag, err := s.pool.Exec(ctx, setUsedQuery, id.String(), used)
	if err != nil {
		return fmt.Errorf("update history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHistoryNotFound
	}
	return nil
}

// ListBrands returns all brands ordered by name.
func (s *PostgresStore) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	var rows []brandRow
	if err := pgxscan.Select(ctx, s.pool, &rows, listBrandsQuery); err != nil {
		return nil, fmt.Errorf("select brands: %w", err)
	}

	brands := make([]*domain.Brand, 0, len(rows))
	for _, r := range rows {
		brands = append(brands, &domain.Brand{ID: domain.BrandID(r.ID), Name: r.Name})
	}
	return brands, nil
}

// CreateBrand stores a brand.
func (s *PostgresStore) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	if _, err := s.pool.Exec(ctx, insertBrandQuery, brand.ID.String(), brand.Name); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateBrand
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetBrand retrieves a brand by ID.
func (s *PostgresStore) GetBrand(ctx context.Context, id domain.BrandID) (*domain.Brand, error) {
	var row brandRow
	if err := pgxscan.Get(ctx, s.pool, &row, getBrandQuery, id.String()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBrandNotFound
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &domain.Brand{ID: domain.BrandID(row.ID), Name: row.Name}, nil
}

// ListKnowledge returns a brand's knowledge items, newest first.
func (s *PostgresStore) ListKnowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error) {
	if _, err := s.GetBrand(ctx, brandID); err != nil {
		return nil, err
	}

	var rows []knowledgeRow
	if err := pgxscan.Select(ctx, s.pool, &rows, listKnowledgeQuery, brandID.String()); err != nil {
		return nil, fmt.Errorf("select knowledge: %w", err)
	}

	items := make([]*domain.BrandKnowledgeItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, &domain.BrandKnowledgeItem{
			ID:        domain.KnowledgeID(r.ID),
			BrandID:   domain.BrandID(r.BrandID),
			Content:   r.Content,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return items, nil
}

// AddKnowledge stores a knowledge item.
func (s *PostgresStore) AddKnowledge(ctx context.Context, item *domain.BrandKnowledgeItem) error {
	if _, err := s.GetBrand(ctx, item.BrandID); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, insertKnowledgeQuery,
		item.ID.String(), item.BrandID.String(), item.Content, item.CreatedAt); err != nil {
		return fmt.Errorf("insert knowledge: %w", err)
	}
	return nil
}

// DeleteKnowledge removes a knowledge item.
func (s *PostgresStore) DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error {
	tag, err := s.pool.Exec(ctx, deleteKnowledgeQuery, id.String())
	if err != nil {
		return fmt.Errorf("delete knowledge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrKnowledgeNotFound
	}
	return nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
