package metrics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vishva1703/Nanosingapore-sub000/internal/metrics"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

func dayEntry(day int, codes ...string) model.CalendarEntry {
	return model.CalendarEntry{
		Date: fmt.Sprintf("2024-06-%02d", day),
		Log:  codes,
	}
}

func TestMonthGridLayout(t *testing.T) {
	t.Parallel()
	// June 2024 starts on a Saturday: 6 leading placeholders, 30 days.
	grid := metrics.MonthGrid(nil, 2024, time.June)
	if len(grid) != 36 {
		t.Fatalf("expected 36 cells, got %d", len(grid))
	}
	for i := 0; i < 6; i++ {
		if grid[i].Day != 0 {
			t.Fatalf("expected placeholder at cell %d, got day %d", i, grid[i].Day)
		}
	}
	if grid[6].Day != 1 || grid[35].Day != 30 {
		t.Fatalf("unexpected day numbering: first=%d last=%d", grid[6].Day, grid[35].Day)
	}
}

func TestMonthGridStatusesDeduplicated(t *testing.T) {
	t.Parallel()
	entries := []model.CalendarEntry{
		dayEntry(5, metrics.ColorFasting, metrics.ColorFasting, metrics.ColorCalLogged, "0xffAB12CD"),
		// Entry from another month must not leak in.
		{Date: "2024-05-05", Log: []string{metrics.ColorFasting}},
	}
	grid := metrics.MonthGrid(entries, 2024, time.June)

	var day5 model.CalendarDay
	for _, cell := range grid {
		if cell.Day == 5 {
			day5 = cell
		}
	}
	want := []model.DayStatus{model.StatusFasting, model.StatusCalLogged, model.StatusActivity}
	if diff := cmp.Diff(want, day5.Statuses); diff != "" {
		t.Fatalf("day 5 statuses mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsEmptyMonth(t *testing.T) {
	t.Parallel()
	stats := metrics.Stats(nil, 2024, time.June, nil)
	if stats.CompletedDays != 0 || stats.LongestStreak != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestStatsLongestStreak(t *testing.T) {
	t.Parallel()
	// Days 5,6,7 consecutive, then a gap before day 9: streak is 3.
	entries := []model.CalendarEntry{
		dayEntry(5, metrics.ColorCalLogged),
		dayEntry(6, metrics.ColorCalLogged),
		dayEntry(7, metrics.ColorCalLogged),
		dayEntry(9, metrics.ColorCalLogged),
	}
	stats := metrics.Stats(entries, 2024, time.June, nil)
	if stats.CompletedDays != 4 {
		t.Fatalf("expected 4 completed days, got %d", stats.CompletedDays)
	}
	if stats.LongestStreak != 3 {
		t.Fatalf("expected streak 3, got %d", stats.LongestStreak)
	}
}

func TestStatsStatusFilter(t *testing.T) {
	t.Parallel()
	entries := []model.CalendarEntry{
		dayEntry(1, metrics.ColorFasting),
		dayEntry(2, metrics.ColorCalLogged),
		dayEntry(3, metrics.ColorFasting),
		dayEntry(4, "0xff123456"),
	}

	all := metrics.Stats(entries, 2024, time.June, nil)
	if all.CompletedDays != 4 {
		t.Fatalf("all-filter: expected 4 days, got %d", all.CompletedDays)
	}
	if all.TotalFasts != 2 || all.TotalLogged != 1 || all.TotalActivities != 1 {
		t.Fatalf("unexpected per-status totals: %+v", all)
	}

	fasting := metrics.Stats(entries, 2024, time.June, []model.DayStatus{model.StatusFasting})
	if fasting.CompletedDays != 2 {
		t.Fatalf("fasting filter: expected 2 days, got %d", fasting.CompletedDays)
	}
	// Days 1 and 3 are not consecutive.
	if fasting.LongestStreak != 1 {
		t.Fatalf("fasting filter: expected streak 1, got %d", fasting.LongestStreak)
	}
}

func TestStatsAveragesUnavailable(t *testing.T) {
	t.Parallel()
	entries := []model.CalendarEntry{dayEntry(1, metrics.ColorFasting)}
	stats := metrics.Stats(entries, 2024, time.June, nil)
	if stats.AverageFastDurationMin != nil || stats.AverageCalories != nil || stats.ActivityAverageMin != nil {
		t.Fatalf("averages must stay unavailable without backend data: %+v", stats)
	}
}

func TestStatusForCode(t *testing.T) {
	t.Parallel()
	if status, ok := metrics.StatusForCode(metrics.ColorFasting); !ok || status != model.StatusFasting {
		t.Fatalf("fasting code mapped to %v ok=%v", status, ok)
	}
	if status, ok := metrics.StatusForCode("0xffBEEF00"); !ok || status != model.StatusActivity {
		t.Fatalf("unknown code should map to activity, got %v ok=%v", status, ok)
	}
	if _, ok := metrics.StatusForCode("  "); ok {
		t.Fatalf("blank code must not map to a status")
	}
}
