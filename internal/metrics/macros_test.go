package metrics_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vishva1703/Nanosingapore-sub000/internal/metrics"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func metricProfile() model.OnboardingProfile {
	return model.OnboardingProfile{
		UnitSystem:    model.UnitMetric,
		Weight:        model.Weight{Kg: 80},
		Height:        model.Height{Cm: 175},
		DateOfBirth:   "1990-01-01",
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
	}
}

func TestCalculateMacrosReferenceProfile(t *testing.T) {
	t.Parallel()
	// BMR = 10*80 + 6.25*175 - 5*34 + 5 = 1728.75
	// TDEE = 1728.75 * 1.55 = 2679.5625, lose => 2179.5625 => 2180
	goal := metrics.CalculateMacros(metricProfile(), fixedNow)
	if goal == nil {
		t.Fatalf("expected macro goal, got nil")
	}
	if goal.Calories.Goal != 2180 {
		t.Fatalf("expected 2180 calories, got %v", goal.Calories.Goal)
	}
	if goal.Protein.Goal != 164 {
		t.Fatalf("expected 164g protein, got %v", goal.Protein.Goal)
	}
	if goal.Fats.Goal != 61 {
		t.Fatalf("expected 61g fat, got %v", goal.Fats.Goal)
	}
	if goal.Carbs.Goal != 245 {
		t.Fatalf("expected 245g carbs, got %v", goal.Carbs.Goal)
	}
}

func TestCalculateMacrosIdempotent(t *testing.T) {
	t.Parallel()
	profile := metricProfile()
	first := metrics.CalculateMacros(profile, fixedNow)
	second := metrics.CalculateMacros(profile, fixedNow)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical results (-first +second):\n%s", diff)
	}
}

func TestCalculateMacrosInvalidProfile(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*model.OnboardingProfile)
	}{
		{"zero weight", func(p *model.OnboardingProfile) { p.Weight = model.Weight{} }},
		{"zero height", func(p *model.OnboardingProfile) { p.Height = model.Height{} }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			profile := metricProfile()
			tc.mutate(&profile)
			if got := metrics.CalculateMacros(profile, fixedNow); got != nil {
				t.Fatalf("expected nil for %s, got %+v", tc.name, got)
			}
		})
	}
}

func TestCalculateMacrosEnergySplit(t *testing.T) {
	t.Parallel()
	profiles := []model.OnboardingProfile{
		metricProfile(),
		{
			UnitSystem:    model.UnitImperial,
			Weight:        model.Weight{Lbs: 180},
			Height:        model.Height{Feet: 5, Inches: 9},
			DateOfBirth:   "1985-09-20",
			Gender:        "female",
			ActivityLevel: "very_active",
			Goal:          "gain",
		},
	}
	for _, profile := range profiles {
		goal := metrics.CalculateMacros(profile, fixedNow)
		if goal == nil {
			t.Fatalf("expected macro goal for %+v", profile)
		}
		energy := goal.Protein.Goal*4 + goal.Fats.Goal*9 + goal.Carbs.Goal*4
		if math.Abs(energy-goal.Calories.Goal) > 3 {
			t.Fatalf("macro energy %v too far from calorie goal %v", energy, goal.Calories.Goal)
		}
	}
}

func TestCalculateMacrosActivityAliases(t *testing.T) {
	t.Parallel()
	aliased := metricProfile()
	aliased.ActivityLevel = "moderately_active"
	canonical := metricProfile()
	canonical.ActivityLevel = "moderate"

	if diff := cmp.Diff(metrics.CalculateMacros(canonical, fixedNow), metrics.CalculateMacros(aliased, fixedNow)); diff != "" {
		t.Fatalf("alias should resolve to canonical level (-canonical +aliased):\n%s", diff)
	}

	unknown := metricProfile()
	unknown.ActivityLevel = "couch_potato"
	if diff := cmp.Diff(metrics.CalculateMacros(canonical, fixedNow), metrics.CalculateMacros(unknown, fixedNow)); diff != "" {
		t.Fatalf("unknown level should default to moderate:\n%s", diff)
	}
}

func TestAgeDecrementsBeforeBirthday(t *testing.T) {
	t.Parallel()
	// Birthday 1990-08-15 has not occurred by 2024-06-01: age 33, not 34.
	young := metricProfile()
	young.DateOfBirth = "1990-08-15"
	old := metricProfile()
	old.DateOfBirth = "1990-01-01"

	youngGoal := metrics.CalculateMacros(young, fixedNow)
	oldGoal := metrics.CalculateMacros(old, fixedNow)
	if youngGoal == nil || oldGoal == nil {
		t.Fatalf("expected goals for both profiles")
	}
	// One fewer year of age raises BMR by 5, TDEE by 5*1.55.
	if youngGoal.Calories.Goal <= oldGoal.Calories.Goal {
		t.Fatalf("expected younger profile to get more calories: %v vs %v",
			youngGoal.Calories.Goal, oldGoal.Calories.Goal)
	}
}

func TestDefaultMacroGoal(t *testing.T) {
	t.Parallel()
	goal := metrics.DefaultMacroGoal()
	if goal.Calories.Goal != 2000 || goal.Protein.Goal != 150 || goal.Carbs.Goal != 200 || goal.Fats.Goal != 65 {
		t.Fatalf("unexpected defaults: %+v", goal)
	}
}
