package model

import "time"

// UnitSystem selects how the backend reports weight and height.
type UnitSystem string

const (
	UnitMetric   UnitSystem = "Metric"
	UnitImperial UnitSystem = "Imperial"
)

type Weight struct {
	Kg  float64 `json:"kg"`
	Lbs float64 `json:"lbs"`
}

type Height struct {
	Cm     float64 `json:"cm"`
	Feet   float64 `json:"feet"`
	Inches float64 `json:"inches"`
}

// OnboardingProfile is captured once during onboarding and is read-only
// calculation input from then on.
type OnboardingProfile struct {
	UnitSystem    UnitSystem `json:"unitSystem"`
	Weight        Weight     `json:"weight"`
	Height        Height     `json:"height"`
	DateOfBirth   string     `json:"dateOfBirth"`
	Gender        string     `json:"gender"`
	ActivityLevel string     `json:"activityLevel"`
	Goal          string     `json:"goal"`
}

// Macro is one tracked nutrient with its current value and daily goal.
type Macro struct {
	Value float64 `json:"value"`
	Goal  float64 `json:"goal"`
	Unit  string  `json:"unit"`
}

type MacroGoal struct {
	Calories Macro `json:"calories"`
	Protein  Macro `json:"protein"`
	Carbs    Macro `json:"carbs"`
	Fats     Macro `json:"fats"`
}

// CalendarEntry is the backend's per-day activity record: a date plus the
// color codes of everything logged that day.
type CalendarEntry struct {
	Date string   `json:"date"`
	Log  []string `json:"log"`
}

type DayStatus string

const (
	StatusFasting   DayStatus = "fasting"
	StatusCalLogged DayStatus = "calLogged"
	StatusActivity  DayStatus = "activity"
)

// CalendarDay is one cell of a month grid. Day 0 marks a leading placeholder
// before the first of the month.
type CalendarDay struct {
	Day      int
	Statuses []DayStatus
}

// WeightSeriesPoint is one period bucket of a 7-bucket weight chart window.
type WeightSeriesPoint struct {
	Value float64
	Label string
	Date  time.Time
	Goal  float64
}

type WaterSettings struct {
	DailyGoalMl int `json:"dailyGoal"`
	GlassSizeMl int `json:"glassSize"`
	ConsumedMl  int `json:"consumed"`
}

// ScanResult is the backend's food recognition verdict for an uploaded photo
// or nutrition label.
type ScanResult struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fats"`
}
