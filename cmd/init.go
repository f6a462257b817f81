package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and the local user",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := st.CurrentUser(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read user: %w", err)
		}
		fmt.Printf("✅ Database initialized (user %d)\n", u.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
