package ui

import (
	"sync"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// historyState is the TUI's copy of the server history.
type historyState struct {
	mu       sync.RWMutex
	records  []*domain.HistoryRecord
	selected domain.HistoryID
}

func newHistoryState() *historyState {
	return &historyState{}
}

// Set replaces every record.
func (s *historyState) Set(records []*domain.HistoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]*domain.HistoryRecord(nil), records...)
}

// Records returns the current snapshot.
func (s *historyState) Records() []*domain.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.HistoryRecord(nil), s.records...)
}

// Get returns a copy of the record with id.
func (s *historyState) Get(id domain.HistoryID) (domain.HistoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return *rec, true
		}
	}
	return domain.HistoryRecord{}, false
}

// SetUsed updates the used flag of id in place and reports whether it was found.
func (s *historyState) SetUsed(id domain.HistoryID, used bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.ID == id {
			updated := *rec
			updated.IsUsed = used
			s.records[i] = &updated
			return true
		}
	}
	return false
}

// Select remembers the record shown in the detail panel.
func (s *historyState) Select(id domain.HistoryID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = id
}

// Selected returns the record shown in the detail panel.
func (s *historyState) Selected() (domain.HistoryRecord, bool) {
	s.mu.RLock()
	id := s.selected
	s.mu.RUnlock()
	if id == "" {
		return domain.HistoryRecord{}, false
	}
	return s.Get(id)
}

// brandState holds brands and the knowledge of the brand in focus.
type brandState struct {
	mu        sync.RWMutex
	brands    []*domain.Brand
	knowledge map[domain.BrandID][]*domain.BrandKnowledgeItem
}

func newBrandState() *brandState {
	return &brandState{knowledge: make(map[domain.BrandID][]*domain.BrandKnowledgeItem)}
}

func (s *brandState) SetBrands(brands []*domain.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = brands
}

func (s *brandState) Brands() []*domain.Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brands
}

func (s *brandState) SetKnowledge(id domain.BrandID, items []*domain.BrandKnowledgeItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knowledge[id] = items
}

func (s *brandState) Knowledge(id domain.BrandID) ([]*domain.BrandKnowledgeItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.knowledge[id]
	return items, ok
}
