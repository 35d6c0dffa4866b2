package main

import (
	"fmt"

	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/spf13/cobra"
)

var precheckCmd = &cobra.Command{
	Use:   "precheck",
	Short: "Check whether an attendance list can field a team",
	Long: `Reports the gender split and any field position nobody attending can play.
Exits non-zero when fielding cannot be generated.`,
	RunE: runPrecheck,
}

var (
	precheckRoster string
	precheckAttend string
)

func init() {
	rootCmd.AddCommand(precheckCmd)

	precheckCmd.Flags().StringVarP(&precheckRoster, "roster", "r", "", "Path to the roster JSON file (required)")
	precheckCmd.Flags().StringVarP(&precheckAttend, "attend", "a", "", "Comma-separated names of attending players (default: everyone)")

	if err := precheckCmd.MarkFlagRequired("roster"); err != nil {
		panic(fmt.Sprintf("failed to mark roster flag as required: %v", err))
	}
}

func runPrecheck(cmd *cobra.Command, _ []string) error {
	_, roster, err := loadRoster(precheckRoster)
	if err != nil {
		return err
	}

	attendees, issues := lineup.ResolveAttendance(roster, parseAttendance(precheckAttend, roster))
	pre := lineup.CheckCoverage(attendees)
	if err := renderPrecheck(cmd.OutOrStdout(), pre, issues); err != nil {
		return err
	}
	return pre.Err()
}
