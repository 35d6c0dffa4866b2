package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderPrecheck(w io.Writer, pre lineup.Precheck, issues []lineup.Issue) error {
	fmt.Fprintf(w, "Attending: %d (%d M / %d F)\n", pre.Attendees, pre.Males, pre.Females)
	for _, issue := range issues {
		fmt.Fprintf(w, "  ! %s\n", issue)
	}
	if err := pre.Err(); err != nil {
		fmt.Fprintf(w, "Fielding cannot be generated: %v\n", err)
		return nil
	}
	fmt.Fprintln(w, "Ready to generate a full game plan.")
	return nil
}

// renderPlan prints batting, pitching, fielding and the fairness report
func renderPlan(w io.Writer, plan *domain.GamePlan, attendees []domain.Player, report lineup.PlanReport, diagnostics []lineup.Issue) error {
	genders := make(map[string]domain.Gender, len(attendees))
	for _, p := range attendees {
		genders[p.Name] = p.Gender
	}

	fmt.Fprintln(w, "Batting order")
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tBatter\t\tPitcher")
	for i, name := range plan.BattingOrder {
		pitcher := ""
		if i < len(plan.Pitching) {
			pitcher = plan.Pitching[i].Label()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, name, genders[name].Short(), pitcher)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(plan.Fielding) > 0 {
		fmt.Fprintln(w, "\nFielding")
		if err := renderFielding(w, plan.Fielding); err != nil {
			return err
		}
		fmt.Fprintln(w, "\nPlaying time")
		if err := renderStats(w, report.Fielding); err != nil {
			return err
		}
	}

	issues := report.Issues()
	if len(diagnostics) > 0 {
		issues = diagnostics
	}
	if len(issues) > 0 {
		fmt.Fprintln(w, "\nIssues")
		for _, issue := range issues {
			fmt.Fprintf(w, "  ! %s\n", issue)
		}
	}
	return nil
}

func renderFielding(w io.Writer, fielding domain.FieldingPlan) error {
	tw := newTable(w)
	header := []string{"Position"}
	for i := range fielding {
		header = append(header, fmt.Sprintf("Inn %d", i+1))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, pos := range domain.FieldPositions {
		row := []string{pos.String()}
		for _, inning := range fielding {
			row = append(row, inning.Positions[pos])
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	benchRows := 0
	for _, inning := range fielding {
		benchRows = max(benchRows, len(inning.Bench))
	}
	for b := range benchRows {
		row := []string{fmt.Sprintf("Bench %d", b+1)}
		for _, inning := range fielding {
			name := ""
			if b < len(inning.Bench) {
				name = inning.Bench[b]
			}
			row = append(row, name)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func renderStats(w io.Writer, report lineup.Report) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "Player\tPlayed\tBench\tPreferred")
	for _, s := range report.Stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Name, s.PlayingTurns, s.BenchTurns, s.PreferredTurns)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	balanced := "yes"
	if !report.Balance.Balanced {
		balanced = fmt.Sprintf("no (worst deviation %.2f)", report.Balance.WorstDeviation)
	}
	fmt.Fprintf(w, "Bench gender balance: %s\n", balanced)
	return nil
}
