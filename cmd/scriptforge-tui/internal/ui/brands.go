package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/pkg/client"
)

// createBrandsPanel creates the brand list and knowledge view.
func (a *App) createBrandsPanel() {
	a.brandsTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.brandsTable.SetBorder(true).SetTitle(" Brands ")
	a.brandsTable.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorDarkCyan))
	a.brandsTable.SetCell(0, 0, tview.NewTableCell("NAME").
		SetTextColor(tcell.ColorYellow).
		SetSelectable(false).
		SetExpansion(1))

	a.knowledgeView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.knowledgeView.SetBorder(true).SetTitle(" Knowledge Base ")

	// Moving the cursor loads the brand in focus; rapid movement only keeps the last answer.
	a.brandsTable.SetSelectionChangedFunc(func(row, column int) {
		if row == 0 {
			return
		}
		id, ok := a.brandsTable.GetCell(row, 0).GetReference().(domain.BrandID)
		if !ok {
			return
		}
		a.showKnowledge(id)
	})

	a.brandsView = tview.NewFlex().
		AddItem(a.brandsTable, 0, 1, true).
		AddItem(a.knowledgeView, 0, 2, false)
}

func (a *App) refreshBrands() {
	ctx, cancel := a.requestContext()
	defer cancel()

	brands, err := client.Guarded(ctx, a.guard, "brands", func(ctx context.Context) ([]*domain.Brand, error) {
		return a.client.ListBrands(ctx)
	})
	if err != nil {
		a.reportError("Load brands", err)
		return
	}

	a.brands.SetBrands(brands)
	a.app.QueueUpdateDraw(a.updateBrandsTable)
}

// updateBrandsTable redraws the brand list. Must run on the UI goroutine.
func (a *App) updateBrandsTable() {
	for row := a.brandsTable.GetRowCount() - 1; row > 0; row-- {
		a.brandsTable.RemoveRow(row)
	}
	for i, b := range a.brands.Brands() {
		a.brandsTable.SetCell(i+1, 0, tview.NewTableCell(b.Name).
			SetExpansion(1).
			SetTextColor(tcell.ColorWhite).
			SetReference(b.ID))
	}
}

// showKnowledge renders cached knowledge and fetches the current list.
func (a *App) showKnowledge(id domain.BrandID) {
	if items, ok := a.brands.Knowledge(id); ok {
		a.knowledgeView.SetText(knowledgeText(items))
	} else {
		a.knowledgeView.SetText("[gray]Loading...")
	}

	go func() {
		ctx, cancel := a.requestContext()
		defer cancel()

		items, err := client.Guarded(ctx, a.guard, "knowledge", func(ctx context.Context) ([]*domain.BrandKnowledgeItem, error) {
			return a.client.ListKnowledge(ctx, id)
		})
		if err != nil {
			if !isStale(err) {
				a.app.QueueUpdateDraw(func() {
					a.knowledgeView.SetText(fmt.Sprintf("[red]%s", tview.Escape(err.Error())))
				})
			}
			return
		}

		a.brands.SetKnowledge(id, items)
		a.app.QueueUpdateDraw(func() {
			a.knowledgeView.SetText(knowledgeText(items))
		})
	}()
}

func knowledgeText(items []*domain.BrandKnowledgeItem) string {
	if len(items) == 0 {
		return "[gray]No knowledge items."
	}

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[yellow]%s[white]\n%s\n", it.CreatedAt.Local().Format("2006-01-02"), tview.Escape(it.Content))
	}
	return b.String()
}

func isStale(err error) bool {
	return errors.Is(err, client.ErrStale) || errors.Is(err, context.Canceled)
}
