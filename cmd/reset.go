package cmd

import (
	"fmt"

	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all locally stored user data",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.ClearUserData(); err != nil {
			return fmt.Errorf("clear user data: %w", err)
		}
		fmt.Println("Local user data cleared.")
		return nil
	},
}
