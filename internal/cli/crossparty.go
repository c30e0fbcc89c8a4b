package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

var crossPartyCmd = &cobra.Command{
	Use:   "crossparty",
	Short: "List cross-party co-sponsored bills",
	Long: `List bills whose proposers span more than one party, with the
parties involved and the proposer count per party.`,
	RunE: runCrossParty,
}

func init() {
	rootCmd.AddCommand(crossPartyCmd)
}

func runCrossParty(cmd *cobra.Command, args []string) error {
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

		crossParty := analysis.CrossPartyBills(bills, proposers, members)
		if len(crossParty) == 0 {
			fmt.Println("No cross-party co-sponsored bills.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BILL\tCOMMITTEE\tPARTIES\tPROPOSERS")
		for _, cp := range crossParty {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
				cp.Bill.BillName, cp.Bill.CommitteeName,
				strings.Join(cp.Parties, ", "), len(cp.ProposerIDs))
		}
		w.Flush()

		fmt.Printf("\n%d cross-party bills\n", len(crossParty))
		return nil
	})
}
