package nsg

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	waterMl   int
	waterDate string
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake",
}

var waterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's water intake against the daily goal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			settings, env := client.FetchWaterSettings(cmd.Context())
			if !env.Success {
				return fmt.Errorf("fetch water settings: %s", env.Err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Consumed:   %d ml\n", settings.ConsumedMl)
			fmt.Fprintf(out, "Daily goal: %d ml\n", settings.DailyGoalMl)
			fmt.Fprintf(out, "Glass size: %d ml\n", settings.GlassSizeMl)
			if settings.GlassSizeMl > 0 {
				remaining := settings.DailyGoalMl - settings.ConsumedMl
				if remaining < 0 {
					remaining = 0
				}
				glasses := (remaining + settings.GlassSizeMl - 1) / settings.GlassSizeMl
				fmt.Fprintf(out, "Remaining:  %d ml (%d glasses)\n", remaining, glasses)
			}
			return nil
		})
	},
}

var waterLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log water intake",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(waterDate)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.LogWater(cmd.Context(), waterMl, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d ml on %s\n", waterMl, date)
			return nil
		})
	},
}

func init() {
	waterLogCmd.Flags().IntVar(&waterMl, "ml", 0, "Amount in milliliters")
	waterLogCmd.Flags().StringVar(&waterDate, "date", "", "Entry date as YYYY-MM-DD (default: today)")
	waterLogCmd.MarkFlagRequired("ml")

	waterCmd.AddCommand(waterStatusCmd, waterLogCmd)
	rootCmd.AddCommand(waterCmd)
}
