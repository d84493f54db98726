package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// runStoreContract exercises behaviour every Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("history newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		for i, id := range []domain.HistoryID{"h-old", "h-mid", "h-new"} {
			rec := &domain.HistoryRecord{
				ID:         id,
				CreatedAt:  base.Add(time.Duration(i) * time.Minute),
				Brand:      "eXp",
				SourceText: "market update",
				Result: domain.ScriptResult{
					StrategyNote: "s",
					ShortScripts: []string{"1", "2", "3", "4", "5"},
				},
			}
			if err := s.AddHistory(ctx, rec); err != nil {
				t.Fatalf("AddHistory(%s) failed: %v", id, err)
			}
		}

		list, err := s.ListHistory(ctx)
		if err != nil {
			t.Fatalf("ListHistory failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("len = %d, want 3", len(list))
		}
		want := []domain.HistoryID{"h-new", "h-mid", "h-old"}
		for i, rec := range list {
			if rec.ID != want[i] {
				t.Errorf("list[%d] = %s, want %s", i, rec.ID, want[i])
			}
		}
		if len(list[0].Result.ShortScripts) != 5 {
			t.Errorf("result not round-tripped: %+v", list[0].Result)
		}
		if !list[2].CreatedAt.Equal(base) {
			t.Errorf("CreatedAt = %v, want %v", list[2].CreatedAt, base)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		s := newStore(t)
		list, err := s.ListHistory(context.Background())
		if err != nil {
			t.Fatalf("ListHistory failed: %v", err)
		}
		if list == nil || len(list) != 0 {
			t.Errorf("list = %v, want empty non-nil", list)
		}
	})

	t.Run("set used is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		s.AddHistory(ctx, &domain.HistoryRecord{ID: "h-1", CreatedAt: time.Now().UTC(), Brand: "eXp"})

		for i := 0; i < 2; i++ {
			if err := s.SetUsed(ctx, "h-1", true); err != nil {
				t.Fatalf("SetUsed #%d failed: %v", i+1, err)
			}
		}
		rec, err := s.GetHistory(ctx, "h-1")
		if err != nil {
			t.Fatalf("GetHistory failed: %v", err)
		}
		if !rec.IsUsed {
			t.Error("record should be used")
		}

		if err := s.SetUsed(ctx, "h-1", false); err != nil {
			t.Fatalf("SetUsed(false) failed: %v", err)
		}
		rec, _ = s.GetHistory(ctx, "h-1")
		if rec.IsUsed {
			t.Error("record should not be used")
		}
	})

	t.Run("history not found", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if _, err := s.GetHistory(ctx, "missing"); !errors.Is(err, domain.ErrHistoryNotFound) {
			t.Errorf("GetHistory err = %v, want ErrHistoryNotFound", err)
		}
		if err := s.SetUsed(ctx, "missing", true); !errors.Is(err, domain.ErrHistoryNotFound) {
			t.Errorf("SetUsed err = %v, want ErrHistoryNotFound", err)
		}
	})

	t.Run("brands ordered by name", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for i, name := range []string{"eXp", "Benjamin Stevens Lettings", "Acme"} {
			b := &domain.Brand{ID: domain.BrandID([]string{"b-1", "b-2", "b-3"}[i]), Name: name}
			if err := s.CreateBrand(ctx, b); err != nil {
				t.Fatalf("CreateBrand(%s) failed: %v", name, err)
			}
		}

		brands, err := s.ListBrands(ctx)
		if err != nil {
			t.Fatalf("ListBrands failed: %v", err)
		}
		want := []string{"Acme", "Benjamin Stevens Lettings", "eXp"}
		if len(brands) != len(want) {
			t.Fatalf("len = %d, want %d", len(brands), len(want))
		}
		for i, b := range brands {
			if b.Name != want[i] {
				t.Errorf("brands[%d] = %q, want %q", i, b.Name, want[i])
			}
		}

		got, err := s.GetBrand(ctx, "b-3")
		if err != nil || got.Name != "Acme" {
			t.Errorf("GetBrand = %+v, %v", got, err)
		}
	})

	t.Run("duplicate brand", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		s.CreateBrand(ctx, &domain.Brand{ID: "b-1", Name: "eXp"})

		err := s.CreateBrand(ctx, &domain.Brand{ID: "b-2", Name: "eXp"})
		if !errors.Is(err, domain.ErrDuplicateBrand) {
			t.Errorf("err = %v, want ErrDuplicateBrand", err)
		}
	})

	t.Run("brand not found", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if _, err := s.GetBrand(ctx, "missing"); !errors.Is(err, domain.ErrBrandNotFound) {
			t.Errorf("GetBrand err = %v", err)
		}
		if _, err := s.ListKnowledge(ctx, "missing"); !errors.Is(err, domain.ErrBrandNotFound) {
			t.Errorf("ListKnowledge err = %v", err)
		}
		err := s.AddKnowledge(ctx, &domain.BrandKnowledgeItem{ID: "k-1", BrandID: "missing", Content: "x", CreatedAt: time.Now()})
		if !errors.Is(err, domain.ErrBrandNotFound) {
			t.Errorf("AddKnowledge err = %v", err)
		}
	})

	t.Run("knowledge lifecycle", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		s.CreateBrand(ctx, &domain.Brand{ID: "b-1", Name: "eXp"})
		s.CreateBrand(ctx, &domain.Brand{ID: "b-2", Name: "Acme"})

		items := []*domain.BrandKnowledgeItem{
			{ID: "k-1", BrandID: "b-1", Content: "Revenue share model", CreatedAt: base},
			{ID: "k-2", BrandID: "b-1", Content: "Cloud-based brokerage", CreatedAt: base.Add(time.Hour)},
			{ID: "k-3", BrandID: "b-2", Content: "Other brand", CreatedAt: base},
		}
		for _, item := range items {
			if err := s.AddKnowledge(ctx, item); err != nil {
				t.Fatalf("AddKnowledge(%s) failed: %v", item.ID, err)
			}
		}

		list, err := s.ListKnowledge(ctx, "b-1")
		if err != nil {
			t.Fatalf("ListKnowledge failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != "k-2" || list[1].ID != "k-1" {
			t.Fatalf("unexpected knowledge order: %+v", list)
		}

		if err := s.DeleteKnowledge(ctx, "k-2"); err != nil {
			t.Fatalf("DeleteKnowledge failed: %v", err)
		}
		list, _ = s.ListKnowledge(ctx, "b-1")
		if len(list) != 1 || list[0].ID != "k-1" {
			t.Errorf("after delete: %+v", list)
		}

		if err := s.DeleteKnowledge(ctx, "k-2"); !errors.Is(err, domain.ErrKnowledgeNotFound) {
			t.Errorf("second delete err = %v, want ErrKnowledgeNotFound", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		s := newStore(t)
		if err := s.Ping(context.Background()); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})
}
