package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/billwatch/billwatch/internal/analysis"
	"github.com/billwatch/billwatch/internal/store"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the per-bill duration table",
	Long: `Export the per-bill stage duration table in CSV or JSON format.
Gaps the bill never reached are exported as -1.

Examples:
  billwatch export --format csv > durations.csv
  billwatch export --format json > durations.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format (csv or json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("invalid format: must be 'csv' or 'json'")
	}

	return withStore(func(s *store.SQLiteStore) error {
		details, err := s.ListBillDetails(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list bill details: %w", err)
		}

		table := analysis.DurationTable(details)

		if exportFormat == "csv" {
			return exportCSV(table)
		}
		return exportJSON(table)
	})
}

func exportCSV(table []analysis.StageDurations) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := append([]string{"bill_id"}, analysis.StageNames...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, sd := range table {
		row := make([]string, 0, len(header))
		row = append(row, sd.BillID)
		for _, gap := range sd.Gaps() {
			row = append(row, strconv.Itoa(gap.Sentinel()))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

type jsonDuration struct {
	BillID string         `json:"bill_id"`
	Gaps   map[string]int `json:"gaps"`
}

func exportJSON(table []analysis.StageDurations) error {
	out := make([]jsonDuration, len(table))
	for i, sd := range table {
		gaps := make(map[string]int, len(analysis.StageNames))
		for j, gap := range sd.Gaps() {
			gaps[analysis.StageNames[j]] = gap.Sentinel()
		}
		out[i] = jsonDuration{BillID: sd.BillID, Gaps: gaps}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
