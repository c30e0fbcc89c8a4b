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

var conversionCmd = &cobra.Command{
	Use:   "conversion",
	Short: "Show stage conversion rates and mean durations",
	Long: `Show, for the non-withdrawn bill population, the fraction of bills
reaching each lifecycle milestone and the mean elapsed days for each
stage transition.`,
	RunE: runConversion,
}

func init() {
	rootCmd.AddCommand(conversionCmd)
}

func runConversion(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		details, err := s.ListBillDetails(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list bill details: %w", err)
		}

		report, err := analysis.Conversion(details)
		if err != nil {
			return fmt.Errorf("conversion analysis failed: %w", err)
		}

		fmt.Printf("POPULATION: %d non-withdrawn bills\n\n", report.Total)

		fmt.Println("MILESTONE                 REACHED  RATE")
		fmt.Println(strings.Repeat("─", 45))
		for _, mr := range report.Rates {
			fmt.Printf("%-24s  %-7d  %.3f\n", mr.Milestone, mr.Reached, mr.Rate)
		}

		fmt.Println()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STAGE\tBILLS\tMEAN DAYS")
		for _, sm := range report.MeanDays {
			mean := "n/a"
			if sm.Count > 0 {
				mean = fmt.Sprintf("%.2f", sm.MeanDays)
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", sm.Stage, sm.Count, mean)
		}
		w.Flush()

		return nil
	})
}
