package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/spf13/cobra"
)

var createPlanCmd = &cobra.Command{
	Use:   "create-plan [file]",
	Short: "Create a workout plan from a TOML file and make it the primary plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		e := editor.New(st)
		if err := e.LoadPlanFile(file); err != nil {
			return fmt.Errorf("invalid plan file: %w", err)
		}

		res := e.Submit(cmd.Context())
		if !res.OK {
			return errors.New(res.Message)
		}

		fmt.Printf("✅ %s: plan %d is now your primary plan\n", res.Message, res.PlanID)
		return nil
	},
}

var listPlansCmd = &cobra.Command{
	Use:   "list-plans",
	Short: "List all workout plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.CurrentUser(ctx)
		if err != nil {
			return err
		}
		plans, err := st.ListPlans(ctx, u.ID)
		if err != nil {
			return err
		}

		if len(plans) == 0 {
			fmt.Println("No workout plans yet")
			return nil
		}

		star := color.New(color.FgYellow).SprintFunc()
		for _, p := range plans {
			mark := " "
			if p.ID == u.PrimaryWorkoutPlanID {
				mark = star("★")
			}
			fmt.Printf("%s %d - %s\n", mark, p.ID, p.Name)
		}
		return nil
	},
}

var setPrimaryCmd = &cobra.Command{
	Use:   "set-primary [plan-id]",
	Short: "Select the primary workout plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parsePlanID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if err := st.UpdateUserPrimaryWorkoutPlan(ctx, u.ID, planID); err != nil {
			return fmt.Errorf("failed to set primary plan: %w", err)
		}

		fmt.Printf("✅ Plan %d is now your primary plan\n", planID)
		return nil
	},
}

var deletePlanCmd = &cobra.Command{
	Use:   "delete-plan [plan-id]",
	Short: "Delete a workout plan with its days and exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parsePlanID(args[0])
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeletePlan(cmd.Context(), planID); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}

		fmt.Printf("✅ Plan %d deleted successfully\n", planID)
		return nil
	},
}

func parsePlanID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid plan id %q. Must be a positive integer", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(createPlanCmd)
	rootCmd.AddCommand(listPlansCmd)
	rootCmd.AddCommand(setPrimaryCmd)
	rootCmd.AddCommand(deletePlanCmd)
}
