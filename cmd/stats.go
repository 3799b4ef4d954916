package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the 30-day analytics summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sessions, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		if !sessions.Current().Active() {
			return fmt.Errorf("not logged in; run skillsprint and sign in first")
		}

		summary, err := client.AnalyticsSummary(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Last 30 days")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-20s %d\n", "Attempted", summary.TotalAttempted)
		fmt.Printf("%-20s %d\n", "Correct", summary.TotalCorrect)
		fmt.Printf("%-20s %.1f%%\n", "Accuracy", summary.Accuracy)
		fmt.Printf("%-20s %d\n", "Active days", summary.ActiveDays)
		fmt.Printf("%-20s %d (best %d)\n", "Streak", summary.CurrentStreak, summary.LongestStreak)
		fmt.Printf("%-20s %.0f\n", "Productivity", summary.ProductivityScore)

		if len(summary.Weekly) > 0 {
			fmt.Println()
			fmt.Printf("%-10s %10s %10s %10s\n", "Week", "Attempted", "Correct", "Accuracy")
			fmt.Println(strings.Repeat("─", 44))
			for _, w := range summary.Weekly {
				fmt.Printf("%-10s %10d %10d %9.1f%%\n", w.Week, w.Attempted, w.Correct, w.Accuracy)
			}
		}
		return nil
	},
}
