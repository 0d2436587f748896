package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/app/gamification"
	"github.com/missionhq/missionhq/internal/daemon"
)

func init() {
	goalsCmd.Flags().IntVar(&goalTasks, "tasks", 0, "Daily task goal")
	goalsCmd.Flags().IntVar(&goalFocus, "focus", 0, "Daily focus-session goal")
	goalsCmd.Flags().IntVar(&goalSocial, "social", 0, "Daily social-engagement goal")
	rootCmd.AddCommand(goalsCmd)
}

var (
	goalTasks  int
	goalFocus  int
	goalSocial int
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show or update personal daily goals",
	Long: `Without flags, prints the current goals. With flags, updates the
named goals; targets must be positive.`,
	RunE: runGoals,
}

func runGoals(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if goalTasks > 0 || goalFocus > 0 || goalSocial > 0 {
		patch := gamification.GoalsPatch{}
		if goalTasks > 0 {
			patch.Tasks = &goalTasks
		}
		if goalFocus > 0 {
			patch.FocusSessions = &goalFocus
		}
		if goalSocial > 0 {
			patch.SocialEngagements = &goalSocial
		}
		if err := d.Engine.UpdatePersonalGoals(patch); err != nil {
			return err
		}
	}

	p := d.Engine.Profile()
	fmt.Printf("Daily goals: %d tasks, %d focus sessions, %d social engagements\n",
		p.PersonalGoals.Tasks, p.PersonalGoals.FocusSessions,
		p.PersonalGoals.SocialEngagements)
	fmt.Printf("Today so far: %d tasks, %d focus, %d social\n",
		p.DailyTasksCompleted, p.DailyFocusSessions, p.DailySocialEngagements)
	return nil
}
