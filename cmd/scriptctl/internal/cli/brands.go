package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iconidentify/scriptforge/internal/domain"
)

func (a *app) newBrandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "brands",
		Aliases: []string{"brand"},
		Short:   "Manage brands and their knowledge base",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			brands, err := a.client().ListBrands(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(brands, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME")
				for _, b := range brands {
					fmt.Fprintf(tw, "%s\t%s\n", b.ID, b.Name)
				}
				tw.Flush()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brand, err := a.client().CreateBrand(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(brand, func(w io.Writer) {
				fmt.Fprintf(w, "Created brand %s (%s)\n", brand.Name, brand.ID)
			})
		},
	})

	knowledge := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage a brand's knowledge base",
	}

	knowledge.AddCommand(&cobra.Command{
		Use:   "list <brand-id>",
		Short: "List knowledge items of a brand, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.client().ListKnowledge(cmd.Context(), domain.BrandID(args[0]))
			if err != nil {
				return err
			}
			return a.print(items, func(w io.Writer) {
				for _, it := range items {
					fmt.Fprintf(w, "%s  %s\n", it.ID, truncate(it.Content, 60))
				}
			})
		},
	})

	knowledge.AddCommand(&cobra.Command{
		Use:   "add <brand-id> <content>",
		Short: "Add a knowledge item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := a.client().AddKnowledge(cmd.Context(), domain.BrandID(args[0]), args[1])
			if err != nil {
				return err
			}
			return a.print(item, func(w io.Writer) {
				fmt.Fprintf(w, "Added knowledge item %s\n", item.ID)
			})
		},
	})

	knowledge.AddCommand(&cobra.Command{
		Use:   "delete <knowledge-id>",
		Short: "Delete a knowledge item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().DeleteKnowledge(cmd.Context(), domain.KnowledgeID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(a.io.Err, "Deleted knowledge item %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(knowledge)
	return cmd
}

func (a *app) newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show presets, directions, formats and suggested topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client().Catalog(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(c, func(w io.Writer) {
				section := func(title string, items []string) {
					fmt.Fprintln(w, title)
					for _, it := range items {
						fmt.Fprintf(w, "  %s\n", it)
					}
				}
				section("Presets", stringsOf(c.StylePresets))
				section("Directions", stringsOf(c.CreativeDirections))
				section("Formats", stringsOf(c.ContentFormats))
				section("Topics", c.TopicPresets)
			})
		},
	}
}

func stringsOf[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
