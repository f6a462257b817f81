package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/myfitlist/internal/editor"
	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/spf13/cobra"
)

var (
	userName   string
	userAge    string
	userWeight string
)

var showUserCmd = &cobra.Command{
	Use:   "show-user",
	Short: "Display your personal data",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		printUser(u)
		return nil
	},
}

var editUserCmd = &cobra.Command{
	Use:   "edit-user",
	Short: "Update your name, age or weight",
	Long: `Update your personal data. Only the given flags are changed.
Pass an empty value (e.g. --age "") to clear age or weight.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := editor.NewProfileEditor(ctx, st)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			if err := p.SetName(userName); err != nil {
				return err
			}
		}
		if flags.Changed("age") {
			if err := p.SetAge(userAge); err != nil {
				return err
			}
		}
		if flags.Changed("weight") {
			if err := p.SetWeight(userWeight); err != nil {
				return err
			}
		}

		u, err := p.Save(ctx)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Println("✅ Saved successfully")
		printUser(u)
		return nil
	},
}

func printUser(u models.User) {
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%s: %s\n", cyan("Name"), u.Name)
	if u.HasAge() {
		fmt.Printf("%s: %d\n", cyan("Age"), u.Age)
	} else {
		fmt.Printf("%s: -\n", cyan("Age"))
	}
	if u.HasWeight() {
		fmt.Printf("%s: %.1f kg\n", cyan("Weight"), u.Weight)
	} else {
		fmt.Printf("%s: -\n", cyan("Weight"))
	}
	if u.PrimaryWorkoutPlanID != 0 {
		fmt.Printf("%s: %d\n", cyan("Primary plan"), u.PrimaryWorkoutPlanID)
	}
}

func init() {
	rootCmd.AddCommand(showUserCmd)
	rootCmd.AddCommand(editUserCmd)

	editUserCmd.Flags().StringVarP(&userName, "name", "n", "", "Your name (letters and spaces)")
	editUserCmd.Flags().StringVarP(&userAge, "age", "a", "", "Your age in years")
	editUserCmd.Flags().StringVarP(&userWeight, "weight", "w", "", "Your weight in kg")
}
