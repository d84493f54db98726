package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/pkg/client"
)

// createHistoryPanel creates the history table.
func (a *App) createHistoryPanel() {
	a.historyTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.historyTable.SetBorder(true).SetTitle(" History - Enter to view scripts, 'u' to toggle used ")

	a.historyTable.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorDarkCyan))

	headers := []string{"CREATED", "BRAND", "USED", "SOURCE"}
	for i, h := range headers {
		cell := tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1)
		if i == 3 {
			cell.SetExpansion(3)
		}
		a.historyTable.SetCell(0, i, cell)
	}

	a.historyTable.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		row, _ := a.historyTable.GetSelection()
		if row == 0 {
			return event
		}
		cell := a.historyTable.GetCell(row, 0)
		id, ok := cell.GetReference().(domain.HistoryID)
		if !ok {
			return event
		}

		switch event.Key() {
		case tcell.KeyEnter:
			a.showDetail(id)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'u', 'U', ' ':
				a.toggleUsed(id)
				return nil
			}
		}
		return event
	})
}

// refreshHistory reloads the history. A newer refresh discards an older one.
func (a *App) refreshHistory() {
	ctx, cancel := a.requestContext()
	defer cancel()

	records, err := client.Guarded(ctx, a.guard, "history", func(ctx context.Context) ([]*domain.HistoryRecord, error) {
		return a.client.ListHistory(ctx)
	})
	if err != nil {
		a.reportError("Load history", err)
		return
	}

	a.history.Set(records)
	a.app.QueueUpdateDraw(func() {
		a.updateHistoryTable()
		a.updateDetail()
	})

	used := 0
	for _, rec := range records {
		if rec.IsUsed {
			used++
		}
	}
	a.updateStatusBar(fmt.Sprintf("[green]%d scripts, %d used", len(records), used))
}

// updateHistoryTable redraws the table. Must run on the UI goroutine.
func (a *App) updateHistoryTable() {
	for row := a.historyTable.GetRowCount() - 1; row > 0; row-- {
		a.historyTable.RemoveRow(row)
	}

	for i, rec := range a.history.Records() {
		row := i + 1

		a.historyTable.SetCell(row, 0, tview.NewTableCell(rec.CreatedAt.Local().Format("2006-01-02 15:04")).
			SetExpansion(1).
			SetTextColor(tcell.ColorWhite).
			SetReference(rec.ID))
		a.historyTable.SetCell(row, 1, tview.NewTableCell(rec.Brand).
			SetExpansion(1).
			SetTextColor(tcell.ColorWhite))

		usedColor := tcell.ColorGray
		if rec.IsUsed {
			usedColor = tcell.ColorGreen
		}
		a.historyTable.SetCell(row, 2, tview.NewTableCell(usedLabel(rec.IsUsed)).
			SetExpansion(1).
			SetTextColor(usedColor))

		a.historyTable.SetCell(row, 3, tview.NewTableCell(oneLine(rec.SourceText, 80)).
			SetExpansion(3).
			SetTextColor(tcell.ColorWhite))
	}
}

// toggleUsed flips the flag optimistically and reconciles with the server.
// Only the latest toggle of a record decides its final state.
func (a *App) toggleUsed(id domain.HistoryID) {
	rec, ok := a.history.Get(id)
	if !ok {
		return
	}
	current := rec.IsUsed
	a.history.SetUsed(id, !current)
	a.updateHistoryTable()
	a.updateDetail()

	go func() {
		ctx, cancel := a.requestContext()
		defer cancel()

		updated, err := client.Guarded(ctx, a.guard, "toggle:"+id.String(), func(ctx context.Context) (*domain.HistoryRecord, error) {
			return a.client.Toggle(ctx, id, current)
		})
		if err != nil {
			if isStale(err) {
				return
			}
			a.history.SetUsed(id, current)
			a.app.QueueUpdateDraw(func() {
				a.updateHistoryTable()
				a.updateDetail()
			})
			a.reportError("Toggle", err)
			return
		}

		a.history.SetUsed(id, updated.IsUsed)
		a.app.QueueUpdateDraw(func() {
			a.updateHistoryTable()
			a.updateDetail()
		})
	}()
}

// createDetailPanel creates the script detail view.
func (a *App) createDetailPanel() {
	a.detailView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.detailView.SetBorder(true).SetTitle(" Scripts - 'u' to toggle used ")
	a.detailView.SetText("[gray]Select a history entry and press Enter.")

	a.detailView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && (event.Rune() == 'u' || event.Rune() == 'U') {
			if rec, ok := a.history.Selected(); ok {
				a.toggleUsed(rec.ID)
			}
			return nil
		}
		return event
	})
}

func (a *App) showDetail(id domain.HistoryID) {
	a.history.Select(id)
	a.updateDetail()
	a.detailView.ScrollToBeginning()
	a.switchPanel(PanelDetail)
}

// updateDetail redraws the detail view. Must run on the UI goroutine.
func (a *App) updateDetail() {
	rec, ok := a.history.Selected()
	if !ok {
		return
	}
	a.detailView.SetText(detailText(rec))
}

// detailText renders a record for the detail view.
func detailText(rec domain.HistoryRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[white::b]Brand:[white] %s\n", tview.Escape(rec.Brand))
	fmt.Fprintf(&b, "[white::b]Created:[white] %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	if rec.IsUsed {
		b.WriteString("[green]Used[white]\n")
	} else {
		b.WriteString("[gray]Not used[white]\n")
	}

	b.WriteString("\n[yellow::b]SOURCE[white]\n")
	b.WriteString(tview.Escape(rec.SourceText))
	b.WriteString("\n\n[yellow::b]STRATEGY[white]\n")
	b.WriteString(tview.Escape(rec.Result.StrategyNote))
	b.WriteString("\n\n[yellow::b]LONG FORM[white]\n")
	b.WriteString(tview.Escape(rec.Result.LongFormScript))
	for i, s := range rec.Result.ShortScripts {
		fmt.Fprintf(&b, "\n\n[yellow::b]SHORT %d[white]\n", i+1)
		b.WriteString(tview.Escape(s))
	}
	b.WriteString("\n")

	return b.String()
}

func usedLabel(used bool) string {
	if used {
		return "yes"
	}
	return "no"
}

// oneLine collapses whitespace and cuts s to n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
