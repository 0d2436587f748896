package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
	"github.com/missionhq/missionhq/internal/domain"
)

func init() {
	rootCmd.AddCommand(actionCmd)
}

var actionCmd = &cobra.Command{
	Use:   "action <task|focus|shoutout|social>",
	Short: "Record a daily action",
	Long: `Record one daily action against today's counters. Recording an action
does not award XP by itself; pair it with 'missionhq award'.`,
	Args: cobra.ExactArgs(1),
	RunE: runAction,
}

func runAction(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.RecordDailyAction(domain.ActionKind(args[0])); err != nil {
		return err
	}

	p := d.Engine.Profile()
	fmt.Printf("Recorded. Today: %d tasks, %d focus, %d shoutouts, %d social\n",
		p.DailyTasksCompleted, p.DailyFocusSessions,
		p.DailyShoutoutsGiven, p.DailySocialEngagements)
	return nil
}
