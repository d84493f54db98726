package repository

import (
	"context"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// HistoryRepository persists generated script bundles.
type HistoryRepository interface {
	// AddHistory stores a new record.
	AddHistory(ctx context.Context, rec *domain.HistoryRecord) error

	// ListHistory returns all records, newest first.
	ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error)

	// GetHistory retrieves a record by ID.
	GetHistory(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error)

	// SetUsed sets the used flag. Setting the current value again is a no-op.
	SetUsed(ctx context.Context, id domain.HistoryID, used bool) error
}

// BrandRepository persists brands and their knowledge base.
type BrandRepository interface {
	// ListBrands returns all brands ordered by name.
	ListBrands(ctx context.Context) ([]*domain.Brand, error)

	// CreateBrand stores a brand. Names are unique.
	CreateBrand(ctx context.Context, brand *domain.Brand) error

	// GetBrand retrieves a brand by ID.
	GetBrand(ctx context.Context, id domain.BrandID) (*domain.Brand, error)

	// ListKnowledge returns a brand's knowledge items, newest first.
	ListKnowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error)

	// AddKnowledge stores a knowledge item for an existing brand.
	AddKnowledge(ctx context.Context, item *domain.BrandKnowledgeItem) error

	// DeleteKnowledge removes a knowledge item.
	DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error
}

// Store is a complete persistence backend.
type Store interface {
	HistoryRepository
	BrandRepository

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend's resources.
	Close() error
}
