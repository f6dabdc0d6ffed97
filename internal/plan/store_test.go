package plan_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vishva1703/Nanosingapore-sub000/internal/db"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
	"github.com/vishva1703/Nanosingapore-sub000/internal/plan"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "nsg.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func TestAdjustmentLifecycle(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	got, err := plan.LatestAdjustment(sqldb)
	if err != nil {
		t.Fatalf("latest adjustment: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no adjustment initially, got %+v", got)
	}

	first := model.MacroGoal{
		Calories: model.Macro{Goal: 2100, Unit: "Cal"},
		Protein:  model.Macro{Goal: 160, Unit: "g"},
		Carbs:    model.Macro{Goal: 220, Unit: "g"},
		Fats:     model.Macro{Goal: 60, Unit: "g"},
	}
	if err := plan.SaveAdjustment(sqldb, first); err != nil {
		t.Fatalf("save adjustment: %v", err)
	}
	second := first
	second.Calories.Goal = 2250
	if err := plan.SaveAdjustment(sqldb, second); err != nil {
		t.Fatalf("save second adjustment: %v", err)
	}

	got, err = plan.LatestAdjustment(sqldb)
	if err != nil {
		t.Fatalf("latest adjustment: %v", err)
	}
	if diff := cmp.Diff(&second, got); diff != "" {
		t.Fatalf("latest adjustment mismatch (-want +got):\n%s", diff)
	}

	if err := plan.ClearAdjustments(sqldb); err != nil {
		t.Fatalf("clear adjustments: %v", err)
	}
	got, err = plan.LatestAdjustment(sqldb)
	if err != nil || got != nil {
		t.Fatalf("expected cleared adjustments, got %+v err=%v", got, err)
	}
}

func TestSaveAdjustmentRejectsNegative(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	bad := model.MacroGoal{Calories: model.Macro{Goal: -1}}
	if err := plan.SaveAdjustment(sqldb, bad); err == nil {
		t.Fatalf("expected error for negative goal")
	}
}

func TestProfileCacheRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	cached, err := plan.CachedProfile(sqldb)
	if err != nil || cached != nil {
		t.Fatalf("expected empty cache, got %+v err=%v", cached, err)
	}

	profile := model.OnboardingProfile{
		UnitSystem:    model.UnitMetric,
		Weight:        model.Weight{Kg: 80},
		Height:        model.Height{Cm: 175},
		DateOfBirth:   "1990-01-01",
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
	}
	if err := plan.CacheProfile(sqldb, profile); err != nil {
		t.Fatalf("cache profile: %v", err)
	}
	cached, err = plan.CachedProfile(sqldb)
	if err != nil {
		t.Fatalf("load cached profile: %v", err)
	}
	if diff := cmp.Diff(&profile, cached); diff != "" {
		t.Fatalf("cached profile mismatch (-want +got):\n%s", diff)
	}
}
