package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		if err := sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}
