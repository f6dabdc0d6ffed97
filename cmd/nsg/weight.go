package nsg

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/metrics"
)

var (
	weightKg          float64
	weightDate        string
	chartGranularity  string
	chartWindowOffset int
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log and chart body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a weight entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(weightDate)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.AddWeight(cmd.Context(), weightKg, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f kg on %s\n", weightKg, date)
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.DeleteWeight(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %s\n", args[0])
			return nil
		})
	},
}

var weightChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show a 7-bucket weight chart window",
	Long:  "Shows one chart window of 7 days, months, or years. --offset shifts the window: -1 is the previous window, +1 the next.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		granularity, err := parseGranularity(chartGranularity)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			resp, env := client.FetchWeightLogs(cmd.Context(), string(granularity), chartWindowOffset)
			warnDegraded(cmd, env, "weight logs")

			series := metrics.BuildSeries(resp.Logs, granularity, time.Now(), chartWindowOffset, metrics.SeriesOptions{
				StartDate:      resp.StartDate,
				BackendAverage: resp.Average,
				GoalKg:         resp.GoalKg,
			})
			printSeries(cmd, series)
			return nil
		})
	},
}

func parseGranularity(value string) (metrics.Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "weekly":
		return metrics.GranularityWeekly, nil
	case "monthly":
		return metrics.GranularityMonthly, nil
	case "yearly":
		return metrics.GranularityYearly, nil
	default:
		return "", fmt.Errorf("invalid --granularity %q (expected weekly, monthly, or yearly)", value)
	}
}

func printSeries(cmd *cobra.Command, series metrics.WeightSeries) {
	out := cmd.OutOrStdout()
	for _, p := range series.Points {
		if p.Value > 0 {
			fmt.Fprintf(out, "%-10s %6.1f kg\n", p.Label, p.Value)
		} else {
			fmt.Fprintf(out, "%-10s %6s\n", p.Label, "-")
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Average: %.1f kg\n", series.Average)
	fmt.Fprintf(out, "Current: %s\n", series.Current)
	fmt.Fprintf(out, "Trend:   %s\n", series.Trend)
}

func init() {
	weightAddCmd.Flags().Float64Var(&weightKg, "kg", 0, "Weight in kilograms")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Entry date as YYYY-MM-DD (default: today)")
	weightAddCmd.MarkFlagRequired("kg")

	weightChartCmd.Flags().StringVar(&chartGranularity, "granularity", "weekly", "Chart window: weekly, monthly, or yearly")
	weightChartCmd.Flags().IntVar(&chartWindowOffset, "offset", 0, "Window shift relative to now")

	weightCmd.AddCommand(weightAddCmd, weightDeleteCmd, weightChartCmd)
	rootCmd.AddCommand(weightCmd)
}
