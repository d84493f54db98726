package service

import (
	"context"
	"log/slog"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/repository"
)

// HistoryService handles generation history.
type HistoryService struct {
	repo   repository.HistoryRepository
	logger *slog.Logger
}

// NewHistoryService creates a new history service.
func NewHistoryService(repo repository.HistoryRepository, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all records, newest first.
func (s *HistoryService) List(ctx context.Context) ([]*domain.HistoryRecord, error) {
	return s.repo.ListHistory(ctx)
}

// Get retrieves a single record.
func (s *HistoryService) Get(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error) {
	return s.repo.GetHistory(ctx, id)
}

// SetUsed sets the used flag. Repeating the call is harmless.
func (s *HistoryService) SetUsed(ctx context.Context, id domain.HistoryID, used bool) (*domain.HistoryRecord, error) {
	if err := s.repo.SetUsed(ctx, id, used); err != nil {
		return nil, err
	}
	s.logger.Info("updated history record", "id", id, "is_used", used)
	return s.repo.GetHistory(ctx, id)
}

// Toggle sets the flag to the opposite of current, the value the caller
// last saw. Two toggles carrying the same current value agree.
func (s *HistoryService) Toggle(ctx context.Context, id domain.HistoryID, current bool) (*domain.HistoryRecord, error) {
	return s.SetUsed(ctx, id, !current)
}
