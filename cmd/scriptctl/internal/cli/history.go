package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iconidentify/scriptforge/internal/archive"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/pkg/client"
)

func (a *app) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage generated script history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.client().ListHistory(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(records, func(w io.Writer) { printHistory(w, records) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "used <id> <true|false>",
		Short: "Set the used flag of a history record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			used, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid used value %q", args[1])
			}
			rec, err := a.client().SetUsed(cmd.Context(), domain.HistoryID(args[0]), used)
			if err != nil {
				return err
			}
			return a.printRecord(rec)
		},
	})

	var current bool
	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the used flag of a history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.HistoryID(args[0])
			c := a.client()
			if !cmd.Flags().Changed("current") {
				found, err := findRecord(cmd.Context(), c, id)
				if err != nil {
					return err
				}
				current = found.IsUsed
			}
			rec, err := c.Toggle(cmd.Context(), id, current)
			if err != nil {
				return err
			}
			return a.printRecord(rec)
		},
	}
	toggleCmd.Flags().BoolVar(&current, "current", false, "the used value currently displayed (looked up when omitted)")
	cmd.AddCommand(toggleCmd)

	cmd.AddCommand(a.newExportCmd())
	cmd.AddCommand(a.newImportCheckCmd())

	return cmd
}

func findRecord(ctx context.Context, c *client.Client, id domain.HistoryID) (*domain.HistoryRecord, error) {
	records, err := c.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrHistoryNotFound, id)
}

func (a *app) printRecord(rec *domain.HistoryRecord) error {
	return a.print(rec, func(w io.Writer) {
		fmt.Fprintf(w, "%s used=%t\n", rec.ID, rec.IsUsed)
	})
}

func printHistory(w io.Writer, records []*domain.HistoryRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tBRAND\tUSED\tSOURCE")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n",
			rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Brand, rec.IsUsed, truncate(rec.SourceText, 40))
	}
	tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func (a *app) newExportCmd() *cobra.Command {
	var (
		out     string
		encrypt bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history to an archive file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.client().ListHistory(cmd.Context())
			if err != nil {
				return err
			}

			var password string
			if encrypt {
				if password, err = a.newPassword(); err != nil {
					return err
				}
			}

			data, err := archive.Export(records, a.sealer, password)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0600); err != nil {
				return fmt.Errorf("write archive: %w", err)
			}
			fmt.Fprintf(a.io.Err, "Exported %d records to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "scriptforge-history.json", "archive path")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "seal the archive with a password")

	return cmd
}

func (a *app) newImportCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-check <archive>",
		Short: "Verify an archive and summarise its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read archive: %w", err)
			}

			password := a.v.GetString("archive_password")
			_, summary, err := archive.Read(data, a.sealer, password)
			if errors.Is(err, archive.ErrPasswordRequired) && a.canPrompt() {
				if password, err = a.io.ReadPassword("Archive password: "); err != nil {
					return err
				}
				_, summary, err = archive.Read(data, a.sealer, password)
			}
			if err != nil {
				return err
			}
			return a.print(summary, func(w io.Writer) { printSummary(w, summary) })
		},
	}
}

func printSummary(w io.Writer, s *archive.Summary) {
	fmt.Fprintf(w, "Encrypted: %t\n", s.Encrypted)
	fmt.Fprintf(w, "Records:   %d (%d used)\n", s.Records, s.Used)
	if s.Records > 0 {
		fmt.Fprintf(w, "Range:     %s to %s\n", s.Oldest.Format(time.RFC3339), s.Newest.Format(time.RFC3339))
	}

	brands := make([]string, 0, len(s.Brands))
	for b := range s.Brands {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	for _, b := range brands {
		fmt.Fprintf(w, "  %-40s %d\n", b, s.Brands[b])
	}
}

func (a *app) canPrompt() bool {
	return a.io.ReadPassword != nil && a.io.StdinIsTerminal != nil && a.io.StdinIsTerminal()
}

// newPassword returns the configured archive password or prompts twice for one.
func (a *app) newPassword() (string, error) {
	if pw := a.v.GetString("archive_password"); pw != "" {
		return pw, nil
	}
	if !a.canPrompt() {
		return "", fmt.Errorf("--encrypt needs a terminal or SCRIPTFORGE_ARCHIVE_PASSWORD")
	}

	pw, err := a.io.ReadPassword("Archive password: ")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	confirm, err := a.io.ReadPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pw, nil
}
