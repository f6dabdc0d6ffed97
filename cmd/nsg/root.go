package nsg

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	apiBase string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nsg",
	Short: "nsg tracks nutrition, weight, and wellness from your terminal",
	Long:  "nsg is a terminal client for the Nanosingapore wellness backend: log weight and water, review your activity calendar, and keep a calorie and macro plan derived from your profile.",
}

func Execute() {
	// A missing .env is fine; env vars and flags still apply.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to local SQLite store")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api-base", "", "Backend base URL (overrides NSG_API_BASE)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
