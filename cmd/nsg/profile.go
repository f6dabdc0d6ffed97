package nsg

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
	"github.com/vishva1703/Nanosingapore-sub000/internal/plan"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit the onboarding profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the onboarding profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			profile, env := client.FetchProfile(cmd.Context())
			if env.Success {
				if err := plan.CacheProfile(sqldb, profile); err != nil {
					return err
				}
				printProfile(cmd, profile)
				return nil
			}

			cached, err := plan.CachedProfile(sqldb)
			if err != nil {
				return err
			}
			if cached == nil {
				return fmt.Errorf("fetch profile: %s", env.Err)
			}
			warnDegraded(cmd, env, "profile")
			printProfile(cmd, *cached)
			return nil
		})
	},
}

var (
	setUnit     string
	setKg       float64
	setLbs      float64
	setCm       float64
	setFeet     float64
	setInches   float64
	setDOB      string
	setGender   string
	setActivity string
	setGoal     string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit onboarding profile fields",
	Long:  "Updates the given profile fields on the backend, starting from the current profile. Unset flags leave their fields untouched.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			base, env := client.FetchProfile(cmd.Context())
			if !env.Success {
				cached, err := plan.CachedProfile(sqldb)
				if err != nil {
					return err
				}
				if cached != nil {
					base = *cached
				}
			}

			if err := applyProfileFlags(cmd, &base); err != nil {
				return err
			}

			updated, err := client.UpdateProfile(cmd.Context(), base)
			if err != nil {
				return err
			}
			if err := plan.CacheProfile(sqldb, updated); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			printProfile(cmd, updated)
			return nil
		})
	},
}

func applyProfileFlags(cmd *cobra.Command, p *model.OnboardingProfile) error {
	flags := cmd.Flags()
	if flags.Changed("unit") {
		switch strings.ToLower(strings.TrimSpace(setUnit)) {
		case "metric":
			p.UnitSystem = model.UnitMetric
		case "imperial":
			p.UnitSystem = model.UnitImperial
		default:
			return fmt.Errorf("invalid --unit %q (expected Metric or Imperial)", setUnit)
		}
	}
	if flags.Changed("kg") {
		p.Weight.Kg = setKg
	}
	if flags.Changed("lbs") {
		p.Weight.Lbs = setLbs
	}
	if flags.Changed("cm") {
		p.Height.Cm = setCm
	}
	if flags.Changed("feet") {
		p.Height.Feet = setFeet
	}
	if flags.Changed("inches") {
		p.Height.Inches = setInches
	}
	if flags.Changed("dob") {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(setDOB)); err != nil {
			return fmt.Errorf("invalid --dob %q (expected YYYY-MM-DD)", setDOB)
		}
		p.DateOfBirth = strings.TrimSpace(setDOB)
	}
	if flags.Changed("gender") {
		p.Gender = setGender
	}
	if flags.Changed("activity") {
		p.ActivityLevel = setActivity
	}
	if flags.Changed("goal") {
		p.Goal = setGoal
	}
	return nil
}

func printProfile(cmd *cobra.Command, p model.OnboardingProfile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Units:     %s\n", p.UnitSystem)
	if p.UnitSystem == model.UnitImperial {
		fmt.Fprintf(out, "Weight:    %.1f lbs\n", p.Weight.Lbs)
		fmt.Fprintf(out, "Height:    %.0f ft %.0f in\n", p.Height.Feet, p.Height.Inches)
	} else {
		fmt.Fprintf(out, "Weight:    %.1f kg\n", p.Weight.Kg)
		fmt.Fprintf(out, "Height:    %.0f cm\n", p.Height.Cm)
	}
	fmt.Fprintf(out, "Born:      %s\n", p.DateOfBirth)
	fmt.Fprintf(out, "Gender:    %s\n", p.Gender)
	fmt.Fprintf(out, "Activity:  %s\n", p.ActivityLevel)
	fmt.Fprintf(out, "Goal:      %s\n", p.Goal)
}

func init() {
	profileSetCmd.Flags().StringVar(&setUnit, "unit", "", "Unit system: Metric or Imperial")
	profileSetCmd.Flags().Float64Var(&setKg, "kg", 0, "Weight in kilograms")
	profileSetCmd.Flags().Float64Var(&setLbs, "lbs", 0, "Weight in pounds")
	profileSetCmd.Flags().Float64Var(&setCm, "cm", 0, "Height in centimeters")
	profileSetCmd.Flags().Float64Var(&setFeet, "feet", 0, "Height, feet component")
	profileSetCmd.Flags().Float64Var(&setInches, "inches", 0, "Height, inches component")
	profileSetCmd.Flags().StringVar(&setDOB, "dob", "", "Date of birth as YYYY-MM-DD")
	profileSetCmd.Flags().StringVar(&setGender, "gender", "", "Gender used for BMR calculation")
	profileSetCmd.Flags().StringVar(&setActivity, "activity", "", "Activity level: sedentary, light, moderate, active, veryActive")
	profileSetCmd.Flags().StringVar(&setGoal, "goal", "", "Weight goal: lose, maintain, or gain")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}
