package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

var committeesCmd = &cobra.Command{
	Use:   "committees",
	Short: "Show per-committee productivity",
	Long:  `Show bill counts, pass rates, and finalize rates grouped by committee.`,
	RunE:  runCommittees,
}

func init() {
	rootCmd.AddCommand(committeesCmd)
}

func runCommittees(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		bills, err := s.ListBills(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list bills: %w", err)
		}

		groups, err := analysis.ByCommittee(bills)
		if err != nil {
			return fmt.Errorf("committee analysis failed: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "COMMITTEE\tBILLS\tPASSED\tFINALIZED\tPASS RATE\tFINALIZE RATE")
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
				g.Name, g.BillCount, g.PassCount, g.FinalizedCount,
				formatRate(g.PassRate), formatRate(g.FinalizeRate))
		}
		w.Flush()

		return nil
	})
}
