package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// InMemoryStore implements Store using in-memory storage.
// Records are copied on the way in and out.
type InMemoryStore struct {
	mu        sync.RWMutex
	history   map[domain.HistoryID]*domain.HistoryRecord
	order     []domain.HistoryID // insertion order, oldest first
	brands    map[domain.BrandID]*domain.Brand
	byName    map[string]domain.BrandID
	knowledge map[domain.KnowledgeID]*domain.BrandKnowledgeItem
	kOrder    []domain.KnowledgeID
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		history:   make(map[domain.HistoryID]*domain.HistoryRecord),
		order:     make([]domain.HistoryID, 0),
		brands:    make(map[domain.BrandID]*domain.Brand),
		byName:    make(map[string]domain.BrandID),
		knowledge: make(map[domain.KnowledgeID]*domain.BrandKnowledgeItem),
		kOrder:    make([]domain.KnowledgeID, 0),
	}
}

// AddHistory stores a new record.
func (r *InMemoryStore) AddHistory(ctx context.Context, rec *domain.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyHistory(rec)
	if _, exists := r.history[rec.ID]; !exists {
		r.order = append(r.order, rec.ID)
	}
	r.history[rec.ID] = cp

	return nil
}

// ListHistory returns all records, newest first.
func (r *InMemoryStore) ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.HistoryRecord, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		result = append(result, copyHistory(r.history[r.order[i]]))
	}
	// Insertion order breaks ties between equal timestamps.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// GetHistory retrieves a record by ID.
func (r *InMemoryStore) GetHistory(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.history[id]
	if !ok {
		return nil, domain.ErrHistoryNotFound
	}

	return copyHistory(rec), nil
}

// SetUsed sets the used flag.
func (r *InMemoryStore) SetUsed(ctx context.Context, id domain.HistoryID, used bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.history[id]
	if !ok {
		return domain.ErrHistoryNotFound
	}
	rec.IsUsed = used

	return nil
}

// ListBrands returns all brands ordered by name.
func (r *InMemoryStore) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Brand, 0, len(r.brands))
	for _, b := range r.brands {
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// CreateBrand stores a brand.
func (r *InMemoryStore) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[brand.Name]; exists {
		return domain.ErrDuplicateBrand
	}

	cp := *brand
	r.brands[brand.ID] = &cp
	r.byName[brand.Name] = brand.ID

	return nil
}

// GetBrand retrieves a brand by ID.
func (r *InMemoryStore) GetBrand(ctx context.Context, id domain.BrandID) (*domain.Brand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.brands[id]
	if !ok {
		return nil, domain.ErrBrandNotFound
	}
	cp := *b

	return &cp, nil
}

// ListKnowledge returns a brand's knowledge items, newest first.
func (r *InMemoryStore) ListKnowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.brands[brandID]; !ok {
		return nil, domain.ErrBrandNotFound
	}

	result := make([]*domain.BrandKnowledgeItem, 0)
	for i := len(r.kOrder) - 1; i >= 0; i-- {
		item := r.knowledge[r.kOrder[i]]
		if item.BrandID != brandID {
			continue
		}
		cp := *item
		result = append(result, &cp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// AddKnowledge stores a knowledge item.
func (r *InMemoryStore) AddKnowledge(ctx context.Context, item *domain.BrandKnowledgeItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.brands[item.BrandID]; !ok {
		return domain.ErrBrandNotFound
	}

	cp := *item
	if _, exists := r.knowledge[item.ID]; !exists {
		r.kOrder = append(r.kOrder, item.ID)
	}
	r.knowledge[item.ID] = &cp

	return nil
}

// DeleteKnowledge removes a knowledge item.
func (r *InMemoryStore) DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.knowledge[id]; !ok {
		return domain.ErrKnowledgeNotFound
	}
	delete(r.knowledge, id)

	for i, kid := range r.kOrder {
		if kid == id {
			r.kOrder = append(r.kOrder[:i], r.kOrder[i+1:]...)
			break
		}
	}

	return nil
}

// Ping always succeeds.
func (r *InMemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (r *InMemoryStore) Close() error {
	return nil
}

// Clear removes everything (useful for testing).
func (r *InMemoryStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = make(map[domain.HistoryID]*domain.HistoryRecord)
	r.order = make([]domain.HistoryID, 0)
	r.brands = make(map[domain.BrandID]*domain.Brand)
	r.byName = make(map[string]domain.BrandID)
	r.knowledge = make(map[domain.KnowledgeID]*domain.BrandKnowledgeItem)
	r.kOrder = make([]domain.KnowledgeID, 0)
}

func copyHistory(rec *domain.HistoryRecord) *domain.HistoryRecord {
	cp := *rec
	cp.Result.ShortScripts = append([]string(nil), rec.Result.ShortScripts...)
	return &cp
}
