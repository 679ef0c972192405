package cmd

import (
	"fmt"

	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
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

		if err := st.ClearAuthToken(); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}
