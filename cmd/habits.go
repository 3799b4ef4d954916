package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "List your habits and today's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sessions, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		if !sessions.Current().Active() {
			return fmt.Errorf("not logged in; run skillsprint and sign in first")
		}

		habits, err := client.ListHabits(cmd.Context())
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("No habits yet.")
			return nil
		}

		fmt.Printf("%-6s %-30s %-8s %s\n", "Today", "Habit", "Freq", "Streak")
		fmt.Println(strings.Repeat("─", 54))
		for _, h := range habits {
			done := " "
			if h.DoneToday {
				done = "✓"
			}
			fmt.Printf("  %-4s %-30s %-8s %d\n", done, h.Name, h.Frequency, h.Streak)
		}
		return nil
	},
}
