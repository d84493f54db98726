// Package ui provides the terminal user interface for scriptforge.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/scriptforge/cmd/scriptforge-tui/internal/config"
	"github.com/iconidentify/scriptforge/pkg/client"
)

// Panel represents a UI panel type.
type Panel int

const (
	PanelHistory Panel = iota
	PanelDetail
	PanelBrands
	PanelHelp
)

// App is the main TUI application.
type App struct {
	app          *tview.Application
	pages        *tview.Pages
	cfg          *config.Config
	client       *client.Client
	guard        *client.Guard
	history      *historyState
	brands       *brandState
	currentPanel Panel
	ctx          context.Context
	cancel       context.CancelFunc

	// UI components
	mainFlex      *tview.Flex
	header        *tview.TextView
	footer        *tview.TextView
	statusBar     *tview.TextView
	historyTable  *tview.Table
	detailView    *tview.TextView
	brandsTable   *tview.Table
	knowledgeView *tview.TextView
	brandsView    *tview.Flex
	helpView      *tview.TextView

	refreshTicker *time.Ticker
}

// NewApp creates a new TUI application.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		cfg:     cfg,
		client:  client.NewClient(cfg.ServerURL, cfg.APIKey),
		guard:   client.NewGuard(),
		history: newHistoryState(),
		brands:  newBrandState(),
		ctx:     ctx,
		cancel:  cancel,
	}

	a.setupUI()
	return a, nil
}

// setupUI initializes all UI components.
func (a *App) setupUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)

	a.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]1[white]:History [yellow]2[white]:Detail [yellow]3[white]:Brands [yellow]?[white]:Help [yellow]r[white]:Refresh [yellow]q[white]:Quit")
	a.footer.SetBackgroundColor(tcell.ColorDarkBlue)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(tcell.ColorDarkGreen)

	a.createHistoryPanel()
	a.createDetailPanel()
	a.createBrandsPanel()
	a.createHelpPanel()

	a.pages.AddPage("history", a.historyTable, true, true)
	a.pages.AddPage("detail", a.detailView, true, false)
	a.pages.AddPage("brands", a.brandsView, true, false)
	a.pages.AddPage("help", a.helpView, true, false)

	a.mainFlex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.app.SetRoot(a.mainFlex, true)
	a.updateHeader()
}

// handleGlobalKeys handles global keyboard shortcuts.
func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case '1':
			a.switchPanel(PanelHistory)
			return nil
		case '2':
			a.switchPanel(PanelDetail)
			return nil
		case '3':
			a.switchPanel(PanelBrands)
			return nil
		case '?':
			a.switchPanel(PanelHelp)
			return nil
		case 'q', 'Q':
			a.Stop()
			return nil
		case 'r', 'R':
			go a.refresh()
			return nil
		}
	case tcell.KeyF1:
		a.switchPanel(PanelHistory)
		return nil
	case tcell.KeyF2:
		a.switchPanel(PanelDetail)
		return nil
	case tcell.KeyF3:
		a.switchPanel(PanelBrands)
		return nil
	case tcell.KeyEscape:
		a.switchPanel(PanelHistory)
		return nil
	}

	return event
}

// switchPanel switches to the specified panel.
func (a *App) switchPanel(panel Panel) {
	a.currentPanel = panel

	switch panel {
	case PanelHistory:
		a.pages.SwitchToPage("history")
		a.app.SetFocus(a.historyTable)
	case PanelDetail:
		a.pages.SwitchToPage("detail")
		a.app.SetFocus(a.detailView)
	case PanelBrands:
		a.pages.SwitchToPage("brands")
		a.app.SetFocus(a.brandsTable)
	case PanelHelp:
		a.pages.SwitchToPage("help")
	}

	a.updateHeader()
}

func (a *App) updateHeader() {
	var panelName string
	switch a.currentPanel {
	case PanelHistory:
		panelName = "History"
	case PanelDetail:
		panelName = "Script Detail"
	case PanelBrands:
		panelName = "Brands"
	case PanelHelp:
		panelName = "Help"
	}

	a.header.SetText(fmt.Sprintf("\n[white::b]ScriptForge[white] - [yellow]%s[white] | Server: [green]%s",
		panelName, a.cfg.ServerURL))
}

// updateStatusBar updates the status bar from any goroutine.
func (a *App) updateStatusBar(msg string) {
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetText(fmt.Sprintf(" %s | %s", msg, time.Now().Format("15:04:05")))
	})
}

// reportError shows err unless it only marks a superseded request.
func (a *App) reportError(what string, err error) {
	if isStale(err) {
		return
	}
	a.updateStatusBar(fmt.Sprintf("[red]%s: %v", what, err))
}

// requestContext bounds a single server call.
func (a *App) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, a.cfg.RequestTimeout)
}

// Run starts the TUI application.
func (a *App) Run() error {
	if a.cfg.Refresh > 0 {
		go a.startBackgroundRefresh()
	}
	go a.refresh()

	return a.app.Run()
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.cancel()
	if a.refreshTicker != nil {
		a.refreshTicker.Stop()
	}
	a.app.Stop()
}

func (a *App) startBackgroundRefresh() {
	a.refreshTicker = time.NewTicker(a.cfg.Refresh)
	defer a.refreshTicker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-a.refreshTicker.C:
			a.refreshHistory()
		}
	}
}

func (a *App) refresh() {
	a.updateStatusBar("Refreshing...")
	a.refreshHistory()
	a.refreshBrands()
}
