package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

var partiesSort string

var partiesCmd = &cobra.Command{
	Use:   "parties",
	Short: "Show per-party productivity",
	Long: `Show bill counts, pass rates, finalize rates, and per-capita
productivity grouped by the lead sponsor's party.

Sort keys: bill_count, pass_rate, finalize_rate, per_capita.

Example:
  billwatch parties --sort per_capita`,
	RunE: runParties,
}

func init() {
	partiesCmd.Flags().StringVar(&partiesSort, "sort", string(analysis.SortByBillCount), "sort key")
	rootCmd.AddCommand(partiesCmd)
}

func runParties(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		bills, err := s.ListBills(ctx)
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}
		proposers, err := s.ListProposers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list proposers: %w", err)
		}
		members, err := s.ListMembers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		parties, err := analysis.ByParty(bills, proposers, members)
		if err != nil {
			return fmt.Errorf("party analysis failed: %w", err)
		}
		analysis.SortParties(parties, analysis.SortKey(partiesSort))

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PARTY\tBILLS\tPASSED\tFINALIZED\tPASS RATE\tMEMBERS\tPER CAPITA")
		for _, p := range parties {
			members := "-"
			perCapita := "-"
			if p.PerCapita != nil {
				members = fmt.Sprintf("%d", p.MemberCount)
				perCapita = fmt.Sprintf("%.2f", *p.PerCapita)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
				p.Name, p.BillCount, p.PassCount, p.FinalizedCount,
				formatRate(p.PassRate), members, perCapita)
		}
		w.Flush()

		return nil
	})
}
