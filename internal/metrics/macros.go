// Package metrics holds the pure derivation layer: macro goals from the
// onboarding profile, calendar aggregation, and weight-chart bucketing.
// Nothing here touches the network or the local store.
package metrics

import (
	"math"
	"strings"
	"time"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

// activityMultipliers maps canonical activity levels to their TDEE
// multiplier. Single source of truth for valid levels.
var activityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// activityAliases folds legacy level names from older app versions into
// their canonical form.
var activityAliases = map[string]string{
	"moderately_active": "moderate",
	"very_active":       "veryActive",
}

const (
	lbsToKg    = 0.453592
	feetToCm   = 30.48
	inchesToCm = 2.54
)

// CalculateMacros derives the daily macro goal from the onboarding profile
// via Mifflin-St Jeor BMR and an activity-scaled TDEE, evaluated at now.
// Returns nil when the resolved weight or height is not positive; callers
// substitute DefaultMacroGoal rather than propagate the nil. Goal calories
// are not clamped, so an extreme "lose" adjustment on a very low TDEE can
// go negative.
func CalculateMacros(p model.OnboardingProfile, now time.Time) *model.MacroGoal {
	kg := resolveWeightKg(p)
	cm := resolveHeightCm(p)
	if kg <= 0 || cm <= 0 {
		return nil
	}

	age := ageInYears(p.DateOfBirth, now)

	bmr := 10*kg + 6.25*cm - 5*float64(age)
	if strings.EqualFold(strings.TrimSpace(p.Gender), "male") {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultipliers[normalizeActivityLevel(p.ActivityLevel)]

	switch strings.ToLower(strings.TrimSpace(p.Goal)) {
	case "lose":
		tdee -= 500
	case "gain":
		tdee += 500
	}

	calories := math.Round(tdee)
	return &model.MacroGoal{
		Calories: model.Macro{Goal: calories, Unit: "Cal"},
		Protein:  model.Macro{Goal: math.Round(calories * 0.30 / 4), Unit: "g"},
		Fats:     model.Macro{Goal: math.Round(calories * 0.25 / 9), Unit: "g"},
		Carbs:    model.Macro{Goal: math.Round(calories * 0.45 / 4), Unit: "g"},
	}
}

// DefaultMacroGoal is the fallback plan shown when profile data is missing
// or invalid.
func DefaultMacroGoal() model.MacroGoal {
	return model.MacroGoal{
		Calories: model.Macro{Goal: 2000, Unit: "Cal"},
		Protein:  model.Macro{Goal: 150, Unit: "g"},
		Carbs:    model.Macro{Goal: 200, Unit: "g"},
		Fats:     model.Macro{Goal: 65, Unit: "g"},
	}
}

func resolveWeightKg(p model.OnboardingProfile) float64 {
	if p.UnitSystem == model.UnitImperial && p.Weight.Lbs > 0 {
		return p.Weight.Lbs * lbsToKg
	}
	if p.Weight.Kg > 0 {
		return p.Weight.Kg
	}
	return p.Weight.Lbs * lbsToKg
}

func resolveHeightCm(p model.OnboardingProfile) float64 {
	if p.UnitSystem == model.UnitImperial && (p.Height.Feet > 0 || p.Height.Inches > 0) {
		return p.Height.Feet*feetToCm + p.Height.Inches*inchesToCm
	}
	if p.Height.Cm > 0 {
		return p.Height.Cm
	}
	return p.Height.Feet*feetToCm + p.Height.Inches*inchesToCm
}

// ageInYears returns whole years from dateOfBirth to now, decremented when
// the birthday has not yet occurred this year. Unparseable dates yield 0,
// which still produces a usable (if generous) BMR.
func ageInYears(dateOfBirth string, now time.Time) int {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(dateOfBirth))
	if err != nil {
		return 0
	}
	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func normalizeActivityLevel(level string) string {
	level = strings.TrimSpace(level)
	if canonical, ok := activityAliases[strings.ToLower(level)]; ok {
		return canonical
	}
	if _, ok := activityMultipliers[level]; ok {
		return level
	}
	return "moderate"
}
