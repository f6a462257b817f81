package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/utils"
	"github.com/spf13/cobra"
)

var (
	showPlanID int64  // Plan to show; the primary plan when zero.
	dayFilter  string // Optional day filter.
)

var showPlanCmd = &cobra.Command{
	Use:   "show-plan",
	Short: "Display a workout plan (the primary one by default), optionally a single day",
	RunE: func(cmd *cobra.Command, args []string) error {
		var day models.Weekday
		if dayFilter != "" {
			var err error
			if day, err = models.ParseWeekday(dayFilter); err != nil {
				return err
			}
		}

		loc, err := utils.LoadLocation(cfg.Timezone)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		var plan *models.Plan
		if showPlanID == 0 {
			plan, err = st.PrimaryPlan(ctx)
		} else {
			plan, err = st.GetPlan(ctx, showPlanID)
		}
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}
		if plan == nil {
			fmt.Println("No workout plan selected")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("\n%s\n", green(strings.ToUpper(plan.Name)))
		fmt.Printf("%s: %s\n", cyan("Created At"), utils.FormatIn(plan.CreatedAt, loc))
		fmt.Println(strings.Repeat("=", 60))

		for _, d := range plan.Days {
			if dayFilter != "" && d.Label != day.Label() {
				continue
			}

			fmt.Printf("\n%s: %s\n", yellow(d.Label), d.MuscleGroup)
			fmt.Println(strings.Repeat("-", 60))

			if len(d.Exercises) == 0 {
				fmt.Println("   (no exercises)")
				continue
			}
			for i, ex := range d.Exercises {
				fmt.Printf("%d. %s\n", i+1, ex.Name)
				fmt.Printf("   %s: %d x %d\n", cyan("Target"), ex.Sets, ex.Reps)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showPlanCmd)
	showPlanCmd.Flags().Int64VarP(&showPlanID, "plan", "p", 0, "Plan ID (default: primary plan)")
	showPlanCmd.Flags().StringVarP(&dayFilter, "day", "d", "", "Filter by day (e.g. Monday)")
}
