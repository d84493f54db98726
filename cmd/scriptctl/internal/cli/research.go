package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iconidentify/scriptforge/internal/domain"
)

func (a *app) newResearchCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "research",
		Short: "Research content ideas",
	}
	cmd.PersistentFlags().StringVar(&format, "format", string(domain.FormatVideo), "content format: Video, Carousel or Static Post")

	request := func(args []string) domain.ResearchRequest {
		return domain.ResearchRequest{TopicQuery: args[0], ContentFormat: domain.ContentFormat(format)}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prompt <query>",
		Short: "Build a deep research prompt for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client().ResearchPrompt(cmd.Context(), request(args))
			if err != nil {
				return err
			}
			return a.print(result, func(w io.Writer) {
				fmt.Fprintln(w, result.GeneratedPrompt)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "content <query>",
		Short: "Search the web and analyse top performing content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client().ResearchContent(cmd.Context(), request(args))
			if err != nil {
				return err
			}
			return a.print(result, func(w io.Writer) { printAnalysis(w, result) })
		},
	})

	return cmd
}

func printAnalysis(w io.Writer, r *domain.ResearchResult) {
	fmt.Fprintln(w, "MARKET ANALYSIS")
	fmt.Fprintln(w, r.MarketAnalysis)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STRATEGY")
	fmt.Fprintln(w, r.StrategySuggestion)
	if len(r.Candidates) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CANDIDATES")
	for i, c := range r.Candidates {
		fmt.Fprintf(w, "%d. %s [%s]\n", i+1, c.Title, c.Platform)
		fmt.Fprintf(w, "   %s\n", c.Link)
		if c.EngagementSignal != "" {
			fmt.Fprintf(w, "   engagement: %s\n", c.EngagementSignal)
		}
		if c.TransferableTechnique != "" {
			fmt.Fprintf(w, "   technique: %s\n", c.TransferableTechnique)
		}
	}
}
