package nsg

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/metrics"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
	"github.com/vishva1703/Nanosingapore-sub000/internal/plan"
)

var planRecalculate bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Daily calorie and macro plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current macro plan",
	Long:  "Shows the active macro plan. A manual adjustment takes precedence until --recalculate derives a fresh plan from the profile.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			if planRecalculate {
				// Discard the manual plan up front: the user asked for it to
				// go, even if recalculation then degrades to defaults.
				if err := plan.ClearAdjustments(sqldb); err != nil {
					return err
				}
			} else {
				adjusted, err := plan.LatestAdjustment(sqldb)
				if err != nil {
					return err
				}
				if adjusted != nil {
					printPlan(cmd, *adjusted, "manual adjustment")
					return nil
				}
			}

			client := newClient(sqldb)
			profile, env := client.FetchProfile(cmd.Context())
			if env.Success {
				if err := plan.CacheProfile(sqldb, profile); err != nil {
					return err
				}
			} else {
				cached, err := plan.CachedProfile(sqldb)
				if err != nil {
					return err
				}
				if cached == nil {
					warnDegraded(cmd, env, "profile")
					printPlan(cmd, metrics.DefaultMacroGoal(), "defaults")
					return nil
				}
				warnDegraded(cmd, env, "profile")
				profile = *cached
			}

			goal := metrics.CalculateMacros(profile, time.Now())
			if goal == nil {
				printPlan(cmd, metrics.DefaultMacroGoal(), "defaults")
				return nil
			}
			printPlan(cmd, *goal, "profile")
			return nil
		})
	},
}

var (
	adjustCalories float64
	adjustProtein  float64
	adjustCarbs    float64
	adjustFat      float64
)

var planAdjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Override the macro plan manually",
	Long:  "Stores a manual macro plan that wins over the derived one until `plan show --recalculate` clears it.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			goal := model.MacroGoal{
				Calories: model.Macro{Goal: adjustCalories, Unit: "Cal"},
				Protein:  model.Macro{Goal: adjustProtein, Unit: "g"},
				Carbs:    model.Macro{Goal: adjustCarbs, Unit: "g"},
				Fats:     model.Macro{Goal: adjustFat, Unit: "g"},
			}
			if err := plan.SaveAdjustment(sqldb, goal); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan adjusted. Run `nsg plan show --recalculate` to go back to the derived plan.")
			return nil
		})
	},
}

func printPlan(cmd *cobra.Command, goal model.MacroGoal, source string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Daily plan (%s)\n", source)
	fmt.Fprintf(out, "  Calories: %.0f %s\n", goal.Calories.Goal, goal.Calories.Unit)
	fmt.Fprintf(out, "  Protein:  %.0f %s\n", goal.Protein.Goal, goal.Protein.Unit)
	fmt.Fprintf(out, "  Carbs:    %.0f %s\n", goal.Carbs.Goal, goal.Carbs.Unit)
	fmt.Fprintf(out, "  Fats:     %.0f %s\n", goal.Fats.Goal, goal.Fats.Unit)
}

func init() {
	planShowCmd.Flags().BoolVar(&planRecalculate, "recalculate", false, "Derive a fresh plan from the profile, clearing manual adjustments")

	planAdjustCmd.Flags().Float64Var(&adjustCalories, "calories", 0, "Daily calorie goal")
	planAdjustCmd.Flags().Float64Var(&adjustProtein, "protein", 0, "Daily protein goal in grams")
	planAdjustCmd.Flags().Float64Var(&adjustCarbs, "carbs", 0, "Daily carb goal in grams")
	planAdjustCmd.Flags().Float64Var(&adjustFat, "fat", 0, "Daily fat goal in grams")
	planAdjustCmd.MarkFlagRequired("calories")

	planCmd.AddCommand(planShowCmd, planAdjustCmd)
	rootCmd.AddCommand(planCmd)
}
