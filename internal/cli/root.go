// Package cli implements the Mission HQ command-line interface using Cobra.
// Each subcommand maps to an engine operation (award, action, checkin, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "missionhq",
	Short: "Mission HQ: local gamification engine",
	Long: `Mission HQ is a local-first gamification daemon.
It tracks XP, levels, streaks, and achievements for your daily work,
and serves them over a local REST API for dashboard consumers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
