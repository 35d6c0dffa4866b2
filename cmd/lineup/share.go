package main

import (
	"fmt"
	"strings"

	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Load a plan from a share link and validate it",
	Long: `Decodes the query string of a share link against the roster, then re-runs
every batting, pitching and fielding check on the result.`,
	RunE: runShare,
}

var (
	shareRoster string
	shareQuery  string
)

func init() {
	rootCmd.AddCommand(shareCmd)

	shareCmd.Flags().StringVarP(&shareRoster, "roster", "r", "", "Path to the roster JSON file (required)")
	shareCmd.Flags().StringVarP(&shareQuery, "query", "q", "", "Share link or its query string (required)")

	for _, name := range []string{"roster", "query"} {
		if err := shareCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

func runShare(cmd *cobra.Command, _ []string) error {
	_, roster, err := loadRoster(shareRoster)
	if err != nil {
		return err
	}
	cfg, err := config.LoadLineup()
	if err != nil {
		return err
	}

	raw := shareQuery
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}

	plan, issues, err := lineup.DecodeShareQuery(raw, roster)
	if err != nil {
		return err
	}
	log := newLogger(cmd)
	for _, issue := range issues {
		log.WithField("kind", issue.Kind).Warn(issue.Message)
	}

	attendees, _ := lineup.ResolveAttendance(roster, plan.Attendance)
	report := lineup.ValidatePlan(plan, attendees, cfg.Options)

	out := cmd.OutOrStdout()
	if err := renderPlan(out, plan, attendees, report, nil); err != nil {
		return err
	}
	if report.Valid {
		fmt.Fprintln(out, "\nPlan is valid.")
	}
	return nil
}
