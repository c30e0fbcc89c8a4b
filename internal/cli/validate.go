package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billwatch/billwatch/internal/ingest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a snapshot without loading it",
	Long: `Check the bill records in a snapshot directory against the schema
and print every violation found. Nothing is written to the database.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("data-dir", "", "snapshot directory (default from config)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("data-dir")
	}

	path := filepath.Join(dataDir, ingest.BillsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var bills []*ingest.RawBill
	if err := json.Unmarshal(data, &bills); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	valid, violations := ingest.ValidateBills(bills)

	fmt.Printf("%d bills checked, %d valid, %d violations\n", len(bills), len(valid), len(violations))
	for _, v := range violations {
		fmt.Printf("  %s\n", v)
	}

	return nil
}
