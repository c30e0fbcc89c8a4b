package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billwatch/billwatch/internal/server"
	"github.com/billwatch/billwatch/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the statistics HTTP server",
	Long: `Start the billwatch HTTP server.

The server provides:
  - Member and bill statistics endpoints
  - Stage conversion and productivity analysis endpoints
  - Health check endpoint

Example:
  billwatch serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		srv := server.New(s, viper.GetInt("port"))
		return srv.Start()
	})
}
