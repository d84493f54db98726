// scriptforge-tui is a terminal browser for a scriptforge server's history
// and brand knowledge base.
package main

import (
	"fmt"
	"os"

	"github.com/iconidentify/scriptforge/cmd/scriptforge-tui/internal/config"
	"github.com/iconidentify/scriptforge/cmd/scriptforge-tui/internal/ui"
)

func main() {
	cfg := config.Load()

	app, err := ui.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing TUI: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
