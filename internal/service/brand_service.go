package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/repository"
)

// BrandService handles brands and their knowledge base.
type BrandService struct {
	repo   repository.BrandRepository
	logger *slog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(repo repository.BrandRepository, logger *slog.Logger) *BrandService {
	return &BrandService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all brands ordered by name.
func (s *BrandService) List(ctx context.Context) ([]*domain.Brand, error) {
	return s.repo.ListBrands(ctx)
}

// Create adds a brand. Names are trimmed and must be unique.
func (s *BrandService) Create(ctx context.Context, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	brand := &domain.Brand{
		ID:   domain.BrandID(uuid.NewString()),
		Name: name,
	}
	if err := s.repo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}

	s.logger.Info("created brand", "id", brand.ID, "name", brand.Name)
	return brand, nil
}

// SeedDefaults creates the default brands when none exist.
func (s *BrandService) SeedDefaults(ctx context.Context) error {
	existing, err := s.repo.ListBrands(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range domain.DefaultBrandNames {
		if _, err := s.Create(ctx, name); err != nil && !errors.Is(err, domain.ErrDuplicateBrand) {
			return err
		}
	}
	s.logger.Info("seeded default brands", "count", len(domain.DefaultBrandNames))
	return nil
}

// Knowledge returns a brand's knowledge items, newest first.
func (s *BrandService) Knowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error) {
	return s.repo.ListKnowledge(ctx, brandID)
}

// AddKnowledge stores a new fact about a brand.
func (s *BrandService) AddKnowledge(ctx context.Context, brandID domain.BrandID, content string) (*domain.BrandKnowledgeItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "must not be empty")
	}

	item := &domain.BrandKnowledgeItem{
		ID:        domain.KnowledgeID(uuid.NewString()),
		BrandID:   brandID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddKnowledge(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("added brand knowledge", "brand_id", brandID, "id", item.ID)
	return item, nil
}

// DeleteKnowledge removes a knowledge item.
func (s *BrandService) DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error {
	if err := s.repo.DeleteKnowledge(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted brand knowledge", "id", id)
	return nil
}
