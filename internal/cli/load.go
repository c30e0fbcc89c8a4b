package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billwatch/billwatch/internal/ingest"
	"github.com/billwatch/billwatch/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a record snapshot into the database",
	Long: `Load a snapshot directory (bills.json, bill_details.json,
proposer_bills.json, members.json) into the database.

Records failing schema validation are skipped and reported; the rest of
the snapshot loads normally.

Example:
  billwatch load --data-dir ./data/snapshot`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().String("data-dir", "", "snapshot directory (default from config)")
	viper.BindPFlag("data-dir", loadCmd.Flags().Lookup("data-dir"))
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	dataDir := viper.GetString("data-dir")

	return withStore(func(s *store.SQLiteStore) error {
		report, err := ingest.Load(context.Background(), s, dataDir)
		if err != nil {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}

		fmt.Printf("Loaded %d bills, %d details, %d proposers, %d members\n",
			report.Counts.Bills, report.Counts.Details, report.Counts.Proposers, report.Counts.Members)

		if len(report.Violations) > 0 {
			fmt.Printf("\nSkipped %d bills with %d schema violations:\n", report.Skipped, len(report.Violations))
			for _, v := range report.Violations {
				fmt.Printf("  %s\n", v)
			}
		}

		return nil
	})
}
