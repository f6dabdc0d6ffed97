package metrics

import (
	"sort"
	"strings"
	"time"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

// Backend log color codes. Anything else non-empty counts as generic
// activity.
const (
	ColorFasting   = "0xff015724"
	ColorCalLogged = "0xff5EDF7E"
)

// StatusForCode maps a log color code to its day status.
func StatusForCode(code string) (model.DayStatus, bool) {
	switch strings.TrimSpace(code) {
	case "":
		return "", false
	case ColorFasting:
		return model.StatusFasting, true
	case ColorCalLogged:
		return model.StatusCalLogged, true
	default:
		return model.StatusActivity, true
	}
}

// statusOrder keeps the per-day status sets in a stable render order.
var statusOrder = []model.DayStatus{model.StatusFasting, model.StatusCalLogged, model.StatusActivity}

// MonthGrid lays out one month as calendar cells: leading Day=0 placeholders
// up to the first weekday (Sunday-first grid), then one cell per day with
// that day's deduplicated statuses. Entries outside the month are ignored.
func MonthGrid(entries []model.CalendarEntry, year int, month time.Month) []model.CalendarDay {
	statuses := statusesByDay(entries, year, month)

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())

	grid := make([]model.CalendarDay, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		grid = append(grid, model.CalendarDay{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := model.CalendarDay{Day: day}
		if set, ok := statuses[day]; ok {
			for _, status := range statusOrder {
				if set[status] {
					cell.Statuses = append(cell.Statuses, status)
				}
			}
		}
		grid = append(grid, cell)
	}
	return grid
}

func statusesByDay(entries []model.CalendarEntry, year int, month time.Month) map[int]map[model.DayStatus]bool {
	out := map[int]map[model.DayStatus]bool{}
	for _, entry := range entries {
		date, ok := parseEntryDate(entry.Date)
		if !ok || date.Year() != year || date.Month() != month {
			continue
		}
		for _, code := range entry.Log {
			status, ok := StatusForCode(code)
			if !ok {
				continue
			}
			day := date.Day()
			if out[day] == nil {
				out[day] = map[model.DayStatus]bool{}
			}
			out[day][status] = true
		}
	}
	return out
}

func parseEntryDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CalendarStats summarizes one month under an optional status filter.
// The per-status averages are nil until the backend supplies per-entry
// duration and calorie data; they are reported as unavailable rather than
// filled with fabricated constants.
type CalendarStats struct {
	CompletedDays   int
	LongestStreak   int
	TotalFasts      int
	TotalLogged     int
	TotalActivities int

	AverageFastDurationMin *float64
	AverageCalories        *float64
	ActivityAverageMin     *float64
}

// Stats computes completion and streak statistics for the month. An empty
// filter means "all": any day with a non-empty log qualifies. A non-empty
// filter qualifies only days carrying at least one of the filtered statuses.
func Stats(entries []model.CalendarEntry, year int, month time.Month, filter []model.DayStatus) CalendarStats {
	wanted := map[model.DayStatus]bool{}
	for _, status := range filter {
		wanted[status] = true
	}

	statuses := statusesByDay(entries, year, month)

	qualifying := make([]int, 0, len(statuses))
	stats := CalendarStats{}
	for day, set := range statuses {
		if set[model.StatusFasting] {
			stats.TotalFasts++
		}
		if set[model.StatusCalLogged] {
			stats.TotalLogged++
		}
		if set[model.StatusActivity] {
			stats.TotalActivities++
		}

		if len(wanted) == 0 {
			qualifying = append(qualifying, day)
			continue
		}
		for status := range wanted {
			if set[status] {
				qualifying = append(qualifying, day)
				break
			}
		}
	}

	stats.CompletedDays = len(qualifying)
	stats.LongestStreak = longestRun(qualifying)
	return stats
}

// longestRun returns the longest run of consecutive day numbers.
func longestRun(days []int) int {
	if len(days) == 0 {
		return 0
	}
	sort.Ints(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i] == days[i-1] {
			continue
		}
		if days[i] == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
