package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/dom/softball-lineup/internal/service"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a roster file into a running server and generate a plan",
	Long: `Registers a coach, creates the team from a roster file, adds every player and
generates a first game plan over the HTTP API. Prints the team ID, plan ID
and share link so the web client can be pointed at them.`,
	RunE: runSeed,
}

var (
	seedServer   string
	seedRoster   string
	seedCoach    string
	seedPassword string
	seedAttend   string
	seedSeed     uint64
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedServer, "server", "http://localhost:8080", "Lineup server base URL")
	seedCmd.Flags().StringVarP(&seedRoster, "roster", "r", "", "Path to the roster JSON file (required)")
	seedCmd.Flags().StringVar(&seedCoach, "coach", "", "Coach display name (default: generated)")
	seedCmd.Flags().StringVar(&seedPassword, "password", "testpassword123", "Coach password")
	seedCmd.Flags().StringVarP(&seedAttend, "attend", "a", "", "Comma-separated names of attending players (default: everyone)")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0, "Random seed for the first plan (0 lets the server pick)")

	if err := seedCmd.MarkFlagRequired("roster"); err != nil {
		panic(fmt.Sprintf("failed to mark roster flag as required: %v", err))
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	file, roster, err := loadRoster(seedRoster)
	if err != nil {
		return err
	}
	teamName := file.Team
	if teamName == "" {
		teamName = "Seeded Team"
	}

	coachName := seedCoach
	if coachName == "" {
		coachName = fmt.Sprintf("coach_%d", time.Now().UnixNano()%100000)
	}

	out := cmd.OutOrStdout()
	server := strings.TrimSuffix(seedServer, "/")
	client := NewAPIClient(server)

	coach, token, err := client.Register(coachName, seedPassword)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Registered coach %s (%s)\n", coach.DisplayName, coach.ID)

	team, err := client.CreateTeam(token, teamName)
	if err != nil {
		return err
	}
	for _, input := range file.Players {
		if _, err := client.AddPlayer(token, team.ID, input); err != nil {
			return err
		}
	}
	team, err = client.GetTeam(team.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created team %s (%s) with %d players\n", team.Name, team.ID, len(team.Players))

	session, err := client.GeneratePlan(team.ID, service.GenerateInput{
		Attendance: parseAttendance(seedAttend, roster),
		Seed:       seedSeed,
	})
	if err != nil {
		return err
	}
	query, err := client.ShareQuery(session.ID.String())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generated plan %s (seed %d, expires %s)\n\n", session.ID, session.Seed, session.ExpiresAt.Format(time.RFC3339))
	attendees, _ := lineup.ResolveAttendance(roster, session.Plan.Attendance)
	if err := renderPlan(out, session.Plan, attendees, session.Report, session.Diagnostics); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nShare: %s/api/v1/teams/%s/shared?%s\n", server, team.ID, query)
	return nil
}
