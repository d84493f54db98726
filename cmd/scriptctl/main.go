// scriptctl is a command-line client for a scriptforge server.
package main

import (
	"fmt"
	"os"

	"github.com/iconidentify/scriptforge/cmd/scriptctl/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.StdIO()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
