package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"status"},
	Short:   "Show the current gamification profile",
	RunE:    runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine.Profile()
	mult := d.Engine.Multiplier()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Level\t%d (%d/%d XP)\n", p.Level, p.XP, p.XPToNextLevel)
	fmt.Fprintf(w, "Weekly XP\t%d\n", p.WeeklyXP)
	fmt.Fprintf(w, "Streak\t%d day(s)\n", p.Streak)
	fmt.Fprintf(w, "Freezes\t%d\n", p.StreakFreezes)
	fmt.Fprintf(w, "Combo\t%d\n", p.ComboCount)
	fmt.Fprintf(w, "Multiplier\t×%.2f\n", mult)
	fmt.Fprintf(w, "Today\t%d tasks, %d focus, %d shoutouts, %d social\n",
		p.DailyTasksCompleted, p.DailyFocusSessions,
		p.DailyShoutoutsGiven, p.DailySocialEngagements)
	fmt.Fprintf(w, "Goals\t%d tasks, %d focus, %d social\n",
		p.PersonalGoals.Tasks, p.PersonalGoals.FocusSessions,
		p.PersonalGoals.SocialEngagements)
	if p.LastCompletedTask != "" {
		fmt.Fprintf(w, "Last task\t%s\n", p.LastCompletedTask)
	}
	return w.Flush()
}
