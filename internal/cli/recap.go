package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
)

func init() {
	recapCmd.Flags().BoolVar(&recapDismiss, "dismiss", false, "Acknowledge and clear pending recaps")
	rootCmd.AddCommand(recapCmd)
}

var recapDismiss bool

var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Show the pending weekly recap and monthly wrapped report",
	RunE:  runRecap,
}

func runRecap(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine.Profile()

	if p.WeeklyRecap == nil && p.MonthlyStats == nil {
		fmt.Println("Nothing pending.")
		return nil
	}

	if r := p.WeeklyRecap; r != nil {
		fmt.Printf("Week of %s\n", r.WeekStart)
		fmt.Printf("  XP earned:       %d\n", r.XPEarned)
		fmt.Printf("  Tasks completed: %d\n", r.TasksCompleted)
		fmt.Printf("  Focus sessions:  %d\n", r.FocusSessions)
		fmt.Printf("  Shoutouts given: %d\n", r.ShoutoutsGiven)
		fmt.Printf("  Streak:          %d day(s)\n", r.StreakDays)
	}

	if m := p.MonthlyStats; m != nil {
		fmt.Printf("Month %s wrapped\n", m.Month)
		fmt.Printf("  Tasks completed:    %d\n", m.TasksCompleted)
		fmt.Printf("  Focus minutes:      %d\n", m.FocusMinutes)
		fmt.Printf("  Shoutouts given:    %d\n", m.ShoutoutsGiven)
		fmt.Printf("  Shoutouts received: %d\n", m.ShoutoutsReceived)
		fmt.Printf("  Most productive:    %s\n", m.MostProductiveDay)
		fmt.Printf("  Top streak:         %d day(s)\n", m.TopStreak)
		fmt.Printf("  Total XP:           %d\n", m.TotalXP)
	}

	if recapDismiss {
		d.Engine.DismissWeeklyRecap()
		d.Engine.DismissMonthlyWrapped()
		fmt.Println("Dismissed.")
	}
	return nil
}
