package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

func init() {
	rootCmd.AddCommand(newTopCmd())
}

func newTopCmd() *cobra.Command {
	var (
		criterion string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank members by a statistics criterion",
		Long: `Rank members by proposal count or pass rate.

Criteria: total_bills, total_pass_rate, lead_bills, lead_pass_rate,
co_bills, co_pass_rate. When --by is omitted, an interactive picker is
shown.

Examples:
  billwatch top --by lead_bills --limit 20
  billwatch top`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if criterion == "" {
				picked, err := pickCriterion()
				if err != nil {
					return err
				}
				criterion = picked
			}

			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()

				members, err := s.ListMembers(ctx)
				if err != nil {
					return fmt.Errorf("failed to list members: %w", err)
				}

				all := make([]*analysis.MemberStatistics, 0, len(members))
				for _, m := range members {
					bills, err := s.GetBillsByMember(ctx, m.ID)
					if err != nil {
						return fmt.Errorf("failed to get bills for member %s: %w", m.ID, err)
					}
					all = append(all, analysis.MemberStats(m, bills))
				}

				ranked := analysis.TopMembers(all, analysis.RankCriterion(criterion), limit)

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RANK\tMEMBER\tPARTY\tTOTAL\tPASS RATE\tLEAD\tCO")
				for i, stats := range ranked {
					bs := stats.BillStats
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%d\t%d\n",
						i+1, stats.MemberName, stats.Party,
						bs.TotalCount, formatRate(bs.TotalPassRate),
						bs.LeadCount, bs.CoCount)
				}
				w.Flush()

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&criterion, "by", "", "ranking criterion")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of members to show")

	return cmd
}

func pickCriterion() (string, error) {
	items := make([]string, len(analysis.RankCriteria))
	for i, c := range analysis.RankCriteria {
		items[i] = string(c)
	}

	prompt := promptui.Select{
		Label: "Rank members by",
		Items: items,
	}

	_, result, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			return "", fmt.Errorf("cancelled")
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	return result, nil
}
