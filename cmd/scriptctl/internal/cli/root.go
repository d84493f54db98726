// Package cli implements the scriptctl commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/iconidentify/scriptforge/pkg/client"
	"github.com/iconidentify/scriptforge/pkg/crypto"
)

// IO bundles the streams and terminal hooks a command uses.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// StdinIsTerminal reports whether In is an interactive terminal.
	StdinIsTerminal func() bool
	// ReadPassword prompts for a secret without echo.
	ReadPassword func(prompt string) (string, error)
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		ReadPassword: func(prompt string) (string, error) {
			fmt.Fprint(os.Stderr, prompt)
			pw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", fmt.Errorf("read password: %w", err)
			}
			return string(pw), nil
		},
	}
}

type app struct {
	v       *viper.Viper
	io      IO
	sealer  *crypto.Sealer
	cfgFile string
}

// NewRootCmd builds the command tree.
func NewRootCmd(streams IO) *cobra.Command {
	return newRootCmd(streams, crypto.NewSealer(crypto.DefaultKDFParams))
}

func newRootCmd(streams IO, sealer *crypto.Sealer) *cobra.Command {
	a := &app{v: viper.New(), io: streams, sealer: sealer}

	rootCmd := &cobra.Command{
		Use:   "scriptforge",
		Short: "Generate marketing scripts and research from a scriptforge server",
		Long: `scriptctl talks to a scriptforge server.

Examples:
  # Generate scripts from an article
  scriptctl generate --brand "eXp (Self Employed - Fully Independent)" --source-file article.txt

  # Build a deep research prompt
  scriptctl research prompt "tenant tips" --format Carousel

  # Export history to an encrypted archive
  scriptctl history export --out history.sfar --encrypt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.scriptctl.yaml)")
	flags.String("server", "http://localhost:8787", "scriptforge server URL")
	flags.String("api-key", "", "server API key")
	flags.StringP("output", "o", "text", "output format: text or json")
	flags.String("archive-password", "", "archive password (prompted when empty)")
	a.v.BindPFlag("server", flags.Lookup("server"))
	a.v.BindPFlag("archive_password", flags.Lookup("archive-password"))
	a.v.BindPFlag("api_key", flags.Lookup("api-key"))
	a.v.BindPFlag("output", flags.Lookup("output"))

	// Add subcommands
	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newResearchCmd())
	rootCmd.AddCommand(a.newHistoryCmd())
	rootCmd.AddCommand(a.newBrandsCmd())
	rootCmd.AddCommand(a.newCatalogCmd())

	return rootCmd
}

// initConfig reads the config file and SCRIPTFORGE_* environment variables.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("scriptforge")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".scriptctl")
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	switch a.v.GetString("output") {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format %q", a.v.GetString("output"))
	}
	return nil
}

func (a *app) client() *client.Client {
	return client.NewClient(a.v.GetString("server"), a.v.GetString("api_key"))
}

func (a *app) jsonOutput() bool {
	return a.v.GetString("output") == "json"
}

// print writes v as JSON, or calls text for the text format.
func (a *app) print(v any, text func(w io.Writer)) error {
	if a.jsonOutput() {
		enc := json.NewEncoder(a.io.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(a.io.Out)
	return nil
}
