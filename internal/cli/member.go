package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

var memberCmd = &cobra.Command{
	Use:   "member <id>",
	Short: "Show statistics for one member",
	Long:  `Show proposal counts, pass rates, and per-committee activity for a member.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runMember,
}

func init() {
	rootCmd.AddCommand(memberCmd)
}

func runMember(cmd *cobra.Command, args []string) error {
	memberID := args[0]

	return withStore(func(s *store.SQLiteStore) error {
		ctx := context.Background()

		member, err := s.GetMember(ctx, memberID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("member '%s' not found", memberID)
			}
			return fmt.Errorf("failed to get member: %w", err)
		}

		bills, err := s.GetBillsByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to get member bills: %w", err)
		}

		stats := analysis.MemberStats(member, bills)

		fmt.Printf("MEMBER: %s (%s)\n", stats.MemberName, stats.MemberID)
		if stats.Party != "" {
			fmt.Printf("PARTY: %s\n", stats.Party)
		}
		fmt.Println()

		bs := stats.BillStats
		fmt.Printf("TOTAL: %d bills, pass rate %s\n", bs.TotalCount, formatRate(bs.TotalPassRate))
		fmt.Printf("LEAD:  %d bills, pass rate %s\n", bs.LeadCount, formatRate(bs.LeadPassRate))
		fmt.Printf("CO:    %d bills, pass rate %s\n", bs.CoCount, formatRate(bs.CoPassRate))

		if len(stats.CommitteeStats) > 0 {
			fmt.Println()
			fmt.Println("COMMITTEE                 TOTAL  LEAD  CO")
			fmt.Println(strings.Repeat("─", 45))
			for _, ca := range stats.CommitteeStats {
				name := ca.ActiveCommittee
				if len(name) > 24 {
					name = name[:21] + "..."
				}
				fmt.Printf("%-24s  %-5d  %-4d  %d\n", name, ca.TotalCount, ca.LeadCount, ca.CoCount)
			}
		}

		return nil
	})
}
