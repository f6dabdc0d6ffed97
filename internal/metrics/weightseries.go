package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

type Granularity string

const (
	GranularityWeekly  Granularity = "Weekly"
	GranularityMonthly Granularity = "Monthly"
	GranularityYearly  Granularity = "Yearly"
)

// Key-name variants seen across backend versions. Weight may also sit in a
// nested object under "weight" with a kg/value field.
var (
	weightKeys = []string{"weight", "value", "kg", "weight_kg", "weightValue"}
	dateKeys   = []string{"date", "createdAt", "timestamp", "logDate", "created_at", "time", "log_date"}
)

// SeriesOptions carries backend-supplied context for one chart window.
type SeriesOptions struct {
	// StartDate anchors bare day-of-month date values to a real month.
	StartDate string
	// BackendAverage, when positive, overrides the locally computed mean.
	BackendAverage float64
	// GoalKg is copied onto every point for goal-line rendering.
	GoalKg float64
}

// WeightSeries is one fully derived chart window.
type WeightSeries struct {
	Points  []model.WeightSeriesPoint
	Average float64
	Current string
	Trend   string
}

// BuildSeries turns raw weight-log entries into exactly 7 buckets covering a
// contiguous day/month/year window around the reference date, shifted by
// offset windows. Buckets without data stay at zero; duplicate entries in a
// bucket keep the maximum value.
func BuildSeries(raw []map[string]any, g Granularity, reference time.Time, offset int, opts SeriesOptions) WeightSeries {
	points := emptyBuckets(g, reference, offset, opts.GoalKg)

	index := map[string]int{}
	for i, p := range points {
		index[bucketKey(p.Date, g)] = i
	}

	for _, entry := range raw {
		weight, ok := resolveWeight(entry)
		if !ok || weight <= 0 {
			continue
		}
		date, ok := resolveDate(entry, opts.StartDate)
		if !ok {
			continue
		}
		if i, ok := index[bucketKey(date, g)]; ok && weight > points[i].Value {
			points[i].Value = weight
		}
	}

	return WeightSeries{
		Points:  points,
		Average: seriesAverage(points, opts.BackendAverage),
		Current: currentLabel(points),
		Trend:   trendLabel(points, g),
	}
}

func emptyBuckets(g Granularity, reference time.Time, offset int, goalKg float64) []model.WeightSeriesPoint {
	points := make([]model.WeightSeriesPoint, 7)
	for i := range points {
		var date time.Time
		var label string
		switch g {
		case GranularityMonthly:
			start := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC)
			date = start.AddDate(0, offset*7+i, 0)
			label = date.Format("Jan 2006")
		case GranularityYearly:
			start := time.Date(reference.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
			date = start.AddDate(offset*7+i, 0, 0)
			label = date.Format("Jan 2006")
		default:
			date = beginningOfWeek(reference).AddDate(0, 0, offset*7+i)
			label = date.Format("02 Jan")
		}
		points[i] = model.WeightSeriesPoint{Date: date, Label: label, Goal: goalKg}
	}
	return points
}

// beginningOfWeek returns the Monday of t's week at midnight UTC.
func beginningOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}

func bucketKey(date time.Time, g Granularity) string {
	switch g {
	case GranularityMonthly:
		return date.Format("2006-01")
	case GranularityYearly:
		return date.Format("2006")
	default:
		return date.Format("2006-01-02")
	}
}

func resolveWeight(entry map[string]any) (float64, bool) {
	for _, key := range weightKeys {
		raw, ok := entry[key]
		if !ok {
			continue
		}
		if nested, ok := raw.(map[string]any); ok {
			for _, inner := range []string{"kg", "value"} {
				if v, ok := coerceFloat(nested[inner]); ok {
					return v, true
				}
			}
			continue
		}
		if v, ok := coerceFloat(raw); ok {
			return v, true
		}
	}
	return 0, false
}

func coerceFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func resolveDate(entry map[string]any, startDate string) (time.Time, bool) {
	for _, key := range dateKeys {
		raw, ok := entry[key]
		if !ok {
			continue
		}
		switch t := raw.(type) {
		case string:
			if date, ok := parseLogDate(t, startDate); ok {
				return date, true
			}
		case float64:
			// Unix timestamp; values past the year ~33658 must be millis.
			secs := int64(t)
			if secs > 1e12 {
				secs /= 1000
			}
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

func parseLogDate(raw, startDate string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// Bare 1-2 digit day-of-month: reconstruct from the window's startDate
	// anchor.
	if len(raw) <= 2 {
		day, err := strconv.Atoi(raw)
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, false
		}
		anchor, ok := parseFullDate(startDate)
		if !ok {
			return time.Time{}, false
		}
		return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC), true
	}

	return parseFullDate(raw)
}

func parseFullDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006/01/02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func seriesAverage(points []model.WeightSeriesPoint, backendAverage float64) float64 {
	if backendAverage > 0 {
		return backendAverage
	}
	sum, n := 0.0, 0
	for _, p := range points {
		if p.Value > 0 {
			sum += p.Value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func currentLabel(points []model.WeightSeriesPoint) string {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].Value > 0 {
			return formatKg(points[i].Value) + "kg"
		}
	}
	return "0kg"
}

// trendLabel reports last-minus-first non-zero value with an explicit sign
// and a granularity suffix; fewer than two non-zero points reads as zero.
func trendLabel(points []model.WeightSeriesPoint, g Granularity) string {
	nonZero := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Value > 0 {
			nonZero = append(nonZero, p.Value)
		}
	}
	delta := 0.0
	if len(nonZero) >= 2 {
		delta = nonZero[len(nonZero)-1] - nonZero[0]
	}

	suffix := "/week"
	switch g {
	case GranularityMonthly:
		suffix = "/month"
	case GranularityYearly:
		suffix = "/year"
	}

	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return sign + formatKg(delta) + "kg" + suffix
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
