package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillsprint/skillsprint/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check whether a newer release is available",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker("skillsprint", "skillsprint")
		result, err := checker.Check(cmd.Context(), version)
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Development build; update checks are only available for releases.")
			return nil
		}
		if err != nil {
			return err
		}

		if !result.UpdateAvailable {
			fmt.Printf("You're up to date (%s).\n", result.CurrentVersion)
			return nil
		}
		fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
		fmt.Println("Download:", result.ReleaseURL)
		return nil
	},
}
