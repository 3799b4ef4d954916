package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillsprint/skillsprint/internal/sprint"
)

var goalCmd = &cobra.Command{
	Use:   "goal <topic> <difficulty> [questions-per-day]",
	Short: "Set the learning goal that drives daily practice",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, sessions, _, err := newClient(cmd)
		if err != nil {
			return err
		}
		if !sessions.Current().Active() {
			return fmt.Errorf("not logged in; run skillsprint and sign in first")
		}

		topic, difficulty := args[0], args[1]
		if !validDifficulty(difficulty) {
			return fmt.Errorf("difficulty must be one of: %s", strings.Join(sprint.Difficulties, ", "))
		}

		count := 5
		if len(args) == 3 {
			count, err = strconv.Atoi(args[2])
			if err != nil || count < 1 {
				return fmt.Errorf("questions-per-day must be a positive number")
			}
		}

		goal, err := client.SetGoal(cmd.Context(), topic, difficulty, count)
		if err != nil {
			return err
		}
		fmt.Printf("Goal set: %s (%s), %d questions per day\n",
			goal.Topic, goal.Difficulty, goal.DailyQuestionCount)
		return nil
	},
}

func validDifficulty(d string) bool {
	for _, v := range sprint.Difficulties {
		if v == d {
			return true
		}
	}
	return false
}
