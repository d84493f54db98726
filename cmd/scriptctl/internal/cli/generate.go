package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iconidentify/scriptforge/internal/domain"
)

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		req        domain.ScriptRequest
		preset     string
		direction  string
		sourceFile string
	)

	cmd := &cobra.Command{
		Use:   "generate [source text]",
		Short: "Generate a strategy note, a long-form script and short scripts",
		Long: `Generate scripts from source material.

The source text is taken from the argument, from --source-file, or from
stdin when stdin is not a terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := a.readSource(args, sourceFile)
			if err != nil {
				return err
			}
			req.SourceText = source
			req.StylePreset = domain.StylePreset(preset)
			req.CreativeDirection = domain.CreativeDirection(direction)

			result, err := a.client().GenerateScripts(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(result, func(w io.Writer) { printScripts(w, result) })
		},
	}

	cmd.Flags().StringVarP(&req.Brand, "brand", "b", "", "brand the scripts are written for")
	cmd.Flags().StringVarP(&preset, "preset", "p", string(domain.PresetEducational), "style preset")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.DirectionCorporate), "creative direction")
	cmd.Flags().StringVarP(&req.SpecialInstructions, "instructions", "i", "", "special instructions")
	cmd.Flags().StringVarP(&sourceFile, "source-file", "f", "", "read source text from a file ('-' for stdin)")

	return cmd
}

// readSource resolves the source text from args, a file, or piped stdin.
func (a *app) readSource(args []string, file string) (string, error) {
	if len(args) == 1 && file != "" {
		return "", fmt.Errorf("pass source text either as an argument or with --source-file")
	}
	if len(args) == 1 {
		return args[0], nil
	}

	var data []byte
	var err error
	switch {
	case file == "-":
		data, err = io.ReadAll(a.io.In)
	case file != "":
		data, err = os.ReadFile(file)
	case a.io.StdinIsTerminal != nil && !a.io.StdinIsTerminal():
		data, err = io.ReadAll(a.io.In)
	default:
		return "", fmt.Errorf("no source text given")
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("source text is empty")
	}
	return string(data), nil
}

func printScripts(w io.Writer, r *domain.ScriptResult) {
	fmt.Fprintln(w, "STRATEGY")
	fmt.Fprintln(w, r.StrategyNote)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LONG FORM")
	fmt.Fprintln(w, r.LongFormScript)
	for i, s := range r.ShortScripts {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "SHORT %d\n", i+1)
		fmt.Fprintln(w, s)
	}
}
