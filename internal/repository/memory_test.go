package repository

import (
	"context"
	"testing"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
)

func TestNewInMemoryStore(t *testing.T) {
	repo := NewInMemoryStore()

	if repo == nil {
		t.Fatal("repo should not be nil")
	}
	if repo.history == nil {
		t.Error("history map should be initialized")
	}
	if repo.brands == nil {
		t.Error("brands map should be initialized")
	}
	if repo.knowledge == nil {
		t.Error("knowledge map should be initialized")
	}
}

func TestInMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewInMemoryStore()
	})
}

func TestInMemoryStore_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryStore()
	ctx := context.Background()

	rec := domain.NewHistoryRecord("h-1", domain.ScriptRequest{Brand: "eXp"}, domain.ScriptResult{ShortScripts: []string{"a"}})
	repo.AddHistory(ctx, rec)

	rec.Brand = "mutated"
	got, _ := repo.GetHistory(ctx, "h-1")
	if got.Brand != "eXp" {
		t.Errorf("stored record changed through caller pointer: %q", got.Brand)
	}

	got.Result.ShortScripts[0] = "mutated"
	again, _ := repo.GetHistory(ctx, "h-1")
	if again.Result.ShortScripts[0] != "a" {
		t.Error("stored scripts changed through returned record")
	}
}

func TestInMemoryStore_Clear(t *testing.T) {
	repo := NewInMemoryStore()
	ctx := context.Background()

	repo.AddHistory(ctx, &domain.HistoryRecord{ID: "h-1", CreatedAt: time.Now()})
	repo.CreateBrand(ctx, &domain.Brand{ID: "b-1", Name: "eXp"})

	repo.Clear()

	history, _ := repo.ListHistory(ctx)
	brands, _ := repo.ListBrands(ctx)
	if len(history) != 0 || len(brands) != 0 {
		t.Errorf("Clear left %d records and %d brands", len(history), len(brands))
	}
}
