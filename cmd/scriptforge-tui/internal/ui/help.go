package ui

import (
	"github.com/rivo/tview"
)

// createHelpPanel creates the help panel.
func (a *App) createHelpPanel() {
	a.helpView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	a.helpView.SetBorder(true).SetTitle(" Help ")

	helpText := `[yellow::b]ScriptForge TUI[white]

Browse generated scripts and brand knowledge on a scriptforge server.

[yellow::b]GLOBAL NAVIGATION[white]
[cyan]1[white] or [cyan]F1[white]     History        - Generated scripts, newest first
[cyan]2[white] or [cyan]F2[white]     Detail         - Scripts of the selected entry
[cyan]3[white] or [cyan]F3[white]     Brands         - Brands and knowledge base
[cyan]?[white]            Help           - This help screen
[cyan]r[white]            Refresh        - Reload history and brands
[cyan]q[white]            Quit           - Exit the application
[cyan]Escape[white]       History        - Return to history

[yellow::b]HISTORY PANEL[white]
[cyan]Enter[white]        View the scripts of the selected entry
[cyan]u[white] or [cyan]Space[white]   Toggle the used flag

[yellow::b]DETAIL PANEL[white]
[cyan]u[white]            Toggle the used flag
Arrow keys and PgUp/PgDn scroll.

[yellow::b]BRANDS PANEL[white]
Moving the cursor loads the knowledge base of the brand in focus.

[yellow::b]ENVIRONMENT[white]
[cyan]SCRIPTFORGE_SERVER[white]        Server URL (default http://localhost:8787)
[cyan]SCRIPTFORGE_API_KEY[white]       API key
[cyan]SCRIPTFORGE_TUI_REFRESH[white]   History poll interval, 0 to disable (default 30s)
[cyan]SCRIPTFORGE_TUI_TIMEOUT[white]   Request timeout (default 30s)
`

	a.helpView.SetText(helpText)
}
