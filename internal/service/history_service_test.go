package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/repository"
)

func TestHistoryService_SetUsedAndToggle(t *testing.T) {
	store := repository.NewInMemoryStore()
	ctx := context.Background()
	store.AddHistory(ctx, &domain.HistoryRecord{ID: "h-1", CreatedAt: time.Now()})
	svc := NewHistoryService(store, testLogger())

	rec, err := svc.SetUsed(ctx, "h-1", true)
	if err != nil {
		t.Fatalf("SetUsed failed: %v", err)
	}
	if !rec.IsUsed {
		t.Error("record should be used")
	}

	// Two toggles that saw the same state converge.
	for i := 0; i < 2; i++ {
		rec, err = svc.Toggle(ctx, "h-1", true)
		if err != nil {
			t.Fatalf("Toggle #%d failed: %v", i+1, err)
		}
	}
	if rec.IsUsed {
		t.Error("record should not be used after toggling from true")
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 || list[0].IsUsed {
		t.Errorf("List = %+v", list)
	}
}

func TestHistoryService_NotFound(t *testing.T) {
	svc := NewHistoryService(repository.NewInMemoryStore(), testLogger())

	if _, err := svc.Toggle(context.Background(), "missing", false); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Errorf("err = %v, want ErrHistoryNotFound", err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrHistoryNotFound) {
		t.Errorf("err = %v, want ErrHistoryNotFound", err)
	}
}
