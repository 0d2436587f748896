package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
	"github.com/missionhq/missionhq/internal/domain"
)

func init() {
	rootCmd.AddCommand(checkinCmd)
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record the daily check-in",
	Long:  `Check in for today. The first check-in of the day awards bonus XP.`,
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	before := d.Engine.Profile()
	alreadyDone := before.LastCheckinDate == domain.DateKey(domain.SystemClock{}.Now())

	p := d.Engine.MarkCheckedIn()

	if alreadyDone {
		fmt.Println("Already checked in today.")
	} else {
		fmt.Printf("Checked in. Streak: %d day(s), Level %d (%d/%d XP)\n",
			p.Streak, p.Level, p.XP, p.XPToNextLevel)
	}
	return nil
}
