package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/missionhq/missionhq/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.AddCommand(achievementsUnlockCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"badges"},
	Short:   "List achievements and their progress",
	RunE:    runAchievements,
}

var achievementsUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock an achievement directly",
	Args:  cobra.ExactArgs(1),
	RunE:  runAchievementsUnlock,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine.Profile()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPROGRESS")
	for _, a := range p.Achievements {
		status := "locked"
		if a.Earned {
			status = "earned"
			if a.EarnedAt != nil {
				status = "earned " + a.EarnedAt.Format("2006-01-02")
			}
		}
		progress := "-"
		if a.Target > 0 {
			progress = fmt.Sprintf("%d/%d", a.Current, a.Target)
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n", a.ID, a.Icon, a.Title, status, progress)
	}
	return w.Flush()
}

func runAchievementsUnlock(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Engine.UnlockAchievement(args[0]); err != nil {
		return err
	}
	fmt.Printf("Unlocked %s\n", args[0])
	return nil
}
