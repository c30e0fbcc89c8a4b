package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "billwatch",
	Short: "Billwatch - legislative bill statistics from assembly record snapshots",
	Long: `Billwatch computes legislative statistics from a snapshot of assembly
records: bills, lifecycle timestamps, proposers, and members.

Load a snapshot with 'billwatch load', then explore it from the command
line or serve the statistics API with 'billwatch serve'.`,
	SilenceErrors: false,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./billwatch.yaml)")
	rootCmd.PersistentFlags().String("db", "./billwatch.db", "database path")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.SetDefault("port", 8080)
	viper.SetDefault("data-dir", "./data")
}

// initConfig reads in config file and BW_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("billwatch")
	}

	viper.SetEnvPrefix("BW")
	viper.AutomaticEnv()

	// Config file is optional
	_ = viper.ReadInConfig()
}

func dbPath() string {
	return viper.GetString("db")
}
