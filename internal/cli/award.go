package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
)

func init() {
	awardCmd.Flags().StringVar(&awardSource, "source", "", "Label for the XP source (shown in bonus notifications)")
	awardCmd.Flags().StringVar(&awardTask, "task", "", "Name of the completed task to remember")
	rootCmd.AddCommand(awardCmd)
}

var (
	awardSource string
	awardTask   string
)

var awardCmd = &cobra.Command{
	Use:   "award <amount>",
	Short: "Award XP through the engine pipeline",
	Long: `Award base XP. The engine applies the streak, combo, and early-bird
multipliers, then handles level-ups, theme unlocks, and freeze milestones.`,
	Args: cobra.ExactArgs(1),
	RunE: runAward,
}

func runAward(cmd *cobra.Command, args []string) error {
	amount, err := strconv.Atoi(args[0])
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive integer, got %q", args[0])
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if awardTask != "" {
		d.Engine.SetLastCompletedTask(awardTask)
	}

	before := d.Engine.Profile()
	p := d.Engine.AddXP(amount, awardSource)

	fmt.Printf("Awarded %d base XP (×%.2f applied)\n", amount, d.Engine.Multiplier())
	fmt.Printf("Level %d: %d/%d XP, streak %d day(s)\n",
		p.Level, p.XP, p.XPToNextLevel, p.Streak)
	if p.Level > before.Level {
		fmt.Printf("Level up! %d -> %d\n", before.Level, p.Level)
	}
	return nil
}
