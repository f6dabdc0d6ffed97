package nsg

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/metrics"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

var (
	calendarMonth  string
	calendarFilter string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the monthly activity calendar",
	Long:  "Renders one month of logged activity as a grid plus completion and streak statistics. Cells mark fasting (F), calorie logging (C), and other activity (A).",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		year, month, err := parseMonthFlag(calendarMonth)
		if err != nil {
			return err
		}
		filter, err := parseStatusFilter(calendarFilter)
		if err != nil {
			return err
		}
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			entries, env := client.FetchCalendar(cmd.Context(), year, int(month))
			warnDegraded(cmd, env, "calendar")

			printCalendar(cmd, entries, year, month, filter)
			return nil
		})
	},
}

func parseStatusFilter(value string) ([]model.DayStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return nil, nil
	case "fasting":
		return []model.DayStatus{model.StatusFasting}, nil
	case "logged":
		return []model.DayStatus{model.StatusCalLogged}, nil
	case "activity":
		return []model.DayStatus{model.StatusActivity}, nil
	default:
		return nil, fmt.Errorf("invalid --filter %q (expected fasting, logged, or activity)", value)
	}
}

var statusMarks = map[model.DayStatus]string{
	model.StatusFasting:   "F",
	model.StatusCalLogged: "C",
	model.StatusActivity:  "A",
}

func printCalendar(cmd *cobra.Command, entries []model.CalendarEntry, year int, month time.Month, filter []model.DayStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d\n", month, year)
	fmt.Fprintln(out, "Su     Mo     Tu     We     Th     Fr     Sa")

	grid := metrics.MonthGrid(entries, year, month)
	for i, cell := range grid {
		if i > 0 && i%7 == 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%-7s", cellText(cell))
	}
	fmt.Fprintln(out)

	stats := metrics.Stats(entries, year, month, filter)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Completed days:  %d\n", stats.CompletedDays)
	fmt.Fprintf(out, "Longest streak:  %d\n", stats.LongestStreak)
	fmt.Fprintf(out, "Fasting days:    %d\n", stats.TotalFasts)
	fmt.Fprintf(out, "Logged days:     %d\n", stats.TotalLogged)
	fmt.Fprintf(out, "Activity days:   %d\n", stats.TotalActivities)
	fmt.Fprintf(out, "Avg fast:        %s\n", statOrNA(stats.AverageFastDurationMin, "min"))
	fmt.Fprintf(out, "Avg calories:    %s\n", statOrNA(stats.AverageCalories, "Cal"))
	fmt.Fprintf(out, "Avg activity:    %s\n", statOrNA(stats.ActivityAverageMin, "min"))
}

func cellText(cell model.CalendarDay) string {
	if cell.Day == 0 {
		return ""
	}
	if len(cell.Statuses) == 0 {
		return fmt.Sprintf("%d", cell.Day)
	}
	marks := make([]string, 0, len(cell.Statuses))
	for _, status := range cell.Statuses {
		marks = append(marks, statusMarks[status])
	}
	return fmt.Sprintf("%d%s", cell.Day, strings.Join(marks, ""))
}

func statOrNA(v *float64, unit string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f %s", *v, unit)
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show as YYYY-MM (default: current month)")
	calendarCmd.Flags().StringVar(&calendarFilter, "filter", "", "Count only one status: fasting, logged, or activity")
	rootCmd.AddCommand(calendarCmd)
}
