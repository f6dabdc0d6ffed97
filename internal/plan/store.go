// Package plan persists the locally controlled inputs of the macro plan:
// manual goal adjustments and the last successfully fetched profile. Manual
// adjustments survive plan refreshes; recalculation only replaces them when
// explicitly requested.
package plan

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

func SaveAdjustment(db *sql.DB, goal model.MacroGoal) error {
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"calories", goal.Calories.Goal},
		{"protein", goal.Protein.Goal},
		{"carbs", goal.Carbs.Goal},
		{"fat", goal.Fats.Goal},
	} {
		if m.value < 0 {
			return fmt.Errorf("%s must be >= 0", m.name)
		}
	}
	_, err := db.Exec(`
INSERT INTO macro_adjustments(calories, protein_g, carbs_g, fat_g)
VALUES(?, ?, ?, ?)
`, goal.Calories.Goal, goal.Protein.Goal, goal.Carbs.Goal, goal.Fats.Goal)
	if err != nil {
		return fmt.Errorf("save macro adjustment: %w", err)
	}
	return nil
}

// LatestAdjustment returns the most recent manual goal, or nil when the user
// never adjusted the plan.
func LatestAdjustment(db *sql.DB) (*model.MacroGoal, error) {
	var calories, protein, carbs, fat float64
	err := db.QueryRow(`
SELECT calories, protein_g, carbs_g, fat_g
FROM macro_adjustments
ORDER BY id DESC
LIMIT 1
`).Scan(&calories, &protein, &carbs, &fat)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load macro adjustment: %w", err)
	}
	return &model.MacroGoal{
		Calories: model.Macro{Goal: calories, Unit: "Cal"},
		Protein:  model.Macro{Goal: protein, Unit: "g"},
		Carbs:    model.Macro{Goal: carbs, Unit: "g"},
		Fats:     model.Macro{Goal: fat, Unit: "g"},
	}, nil
}

func ClearAdjustments(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM macro_adjustments`); err != nil {
		return fmt.Errorf("clear macro adjustments: %w", err)
	}
	return nil
}

// CacheProfile stores the last good profile fetch so plan and profile
// commands keep working offline.
func CacheProfile(db *sql.DB, profile model.OnboardingProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile cache: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO profile_cache(id, payload, fetched_at)
VALUES(1, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET payload=excluded.payload, fetched_at=excluded.fetched_at
`, string(payload))
	if err != nil {
		return fmt.Errorf("store profile cache: %w", err)
	}
	return nil
}

func CachedProfile(db *sql.DB) (*model.OnboardingProfile, error) {
	var payload string
	err := db.QueryRow(`SELECT payload FROM profile_cache WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile cache: %w", err)
	}
	var profile model.OnboardingProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("decode profile cache: %w", err)
	}
	return &profile, nil
}
