package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a game plan for tonight's attendance",
	Long: `Builds a batting order, pitching rotation and fielding plan from a roster
file. Attendance defaults to the whole roster; unknown names are reported and
skipped. Reuse --seed to reproduce a plan exactly.`,
	RunE: runGenerate,
}

var (
	generateRoster   string
	generateAttend   string
	generateSeed     uint64
	generateInnings  int
	generateMinWomen int
	generateJSON     bool
	generateShare    bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateRoster, "roster", "r", "", "Path to the roster JSON file (required)")
	generateCmd.Flags().StringVarP(&generateAttend, "attend", "a", "", "Comma-separated names of attending players (default: everyone)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Random seed (0 uses LINEUP_SEED or a fresh seed)")
	generateCmd.Flags().IntVar(&generateInnings, "innings", 0, "Innings to field (0 uses LINEUP_INNINGS)")
	generateCmd.Flags().IntVar(&generateMinWomen, "min-women", -1, "Minimum women on the field (-1 uses LINEUP_MIN_WOMEN_ON_FIELD)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the plan and report as JSON")
	generateCmd.Flags().BoolVar(&generateShare, "share", false, "Print the share query for the plan")

	if err := generateCmd.MarkFlagRequired("roster"); err != nil {
		panic(fmt.Sprintf("failed to mark roster flag as required: %v", err))
	}
}

// generateOutput is the --json shape
type generateOutput struct {
	Team        string            `json:"team,omitempty"`
	Seed        uint64            `json:"seed"`
	Options     lineup.Options    `json:"options"`
	Plan        *domain.GamePlan  `json:"plan"`
	Precheck    lineup.Precheck   `json:"precheck"`
	Report      lineup.PlanReport `json:"report"`
	Diagnostics []lineup.Issue    `json:"diagnostics"`
	Share       string            `json:"share,omitempty"`
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	file, roster, err := loadRoster(generateRoster)
	if err != nil {
		return err
	}

	cfg, err := config.LoadLineup()
	if err != nil {
		return err
	}
	opts := cfg.Options
	if generateInnings > 0 {
		opts.Innings = generateInnings
	}
	if generateMinWomen >= 0 {
		opts.MinWomenOnField = generateMinWomen
	}

	seed := generateSeed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	team := file.Team
	log := newLogger(cmd).WithFields(logrus.Fields{"team": team, "seed": seed})
	gen := lineup.NewGenerator(lineup.NewRand(seed), opts, log)
	result, err := gen.Generate(roster, parseAttendance(generateAttend, roster))
	if err != nil {
		return err
	}

	var share string
	if generateShare {
		values, err := lineup.EncodeShare(result.Plan)
		if err != nil {
			return fmt.Errorf("failed to encode share link: %w", err)
		}
		share = values.Encode()
	}

	out := cmd.OutOrStdout()
	if generateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{
			Team:        team,
			Seed:        seed,
			Options:     opts,
			Plan:        result.Plan,
			Precheck:    result.Precheck,
			Report:      result.Report,
			Diagnostics: result.Diagnostics,
			Share:       share,
		})
	}

	if team != "" {
		fmt.Fprintf(out, "%s, seed %d\n\n", team, seed)
	} else {
		fmt.Fprintf(out, "Seed %d\n\n", seed)
	}
	if !result.Precheck.OK() {
		if err := renderPrecheck(out, result.Precheck, nil); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	if err := renderPlan(out, result.Plan, result.Attendees, result.Report, result.Diagnostics); err != nil {
		return err
	}
	if share != "" {
		fmt.Fprintf(out, "\nShare: ?%s\n", share)
	}
	return nil
}
