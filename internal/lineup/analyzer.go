package lineup

import (
	"math"
	"slices"
	"strings"

	"github.com/dom/softball-lineup/internal/domain"
)

// balanceTolerance is the largest per-inning deviation from the team gender
// ratio still considered balanced
const balanceTolerance = 0.5

// PlayerStat is one player's totals across a fielding plan
type PlayerStat struct {
	Name           string        `json:"name"`
	Gender         domain.Gender `json:"gender"`
	BenchTurns     int           `json:"benchTurns"`
	PlayingTurns   int           `json:"playingTurns"`
	PreferredTurns int           `json:"preferredTurns"`
}

// InningBalance is the gender breakdown of one inning's bench
type InningBalance struct {
	Inning         int     `json:"inning"`
	MalesOnBench   int     `json:"malesOnBench"`
	FemalesOnBench int     `json:"femalesOnBench"`
	WomenOnField   int     `json:"womenOnField"`
	Deviation      float64 `json:"deviation"`
	// Measured is false for benches too small to carry a ratio
	Measured bool `json:"measured"`
}

// GenderBalance compares each bench to the team-wide gender ratio
type GenderBalance struct {
	TeamMaleRatio   float64         `json:"teamMaleRatio"`
	TeamFemaleRatio float64         `json:"teamFemaleRatio"`
	Innings         []InningBalance `json:"innings"`
	WorstDeviation  float64         `json:"worstDeviation"`
	Balanced        bool            `json:"balanced"`
}

// Report is the fairness analysis of a fielding plan
type Report struct {
	Stats   []PlayerStat  `json:"stats"`
	Balance GenderBalance `json:"balance"`
	Issues  []Issue       `json:"issues"`
	Valid   bool          `json:"valid"`
}

// Analyze computes per-player stats, bench gender balance and every rule the
// plan breaks. It never modifies the plan.
func Analyze(plan domain.FieldingPlan, attendees []domain.Player, opts Options) Report {
	byName := indexByName(attendees)
	stats := make(map[string]*PlayerStat, len(attendees))
	females := 0
	for _, p := range attendees {
		stats[p.Name] = &PlayerStat{Name: p.Name, Gender: p.Gender}
		if p.IsFemale() {
			females++
		}
	}
	males := len(attendees) - females
	minWomen := opts.minWomenFor(females)

	balance := GenderBalance{Innings: make([]InningBalance, 0, len(plan))}
	if len(attendees) > 0 {
		balance.TeamMaleRatio = float64(males) / float64(len(attendees))
		balance.TeamFemaleRatio = float64(females) / float64(len(attendees))
	}

	var issues []Issue
	for i, inning := range plan {
		n := i + 1
		issues = append(issues, coverageIssues(n, inning, attendees, byName)...)

		womenOnField := 0
		for _, pos := range domain.FieldPositions {
			name := inning.Positions[pos]
			if name == "" {
				issue := newIssue(IssueUnfilledPosition, n, "Inning %d: %s is empty", n, pos)
				issue.Position = pos
				issues = append(issues, issue)
				continue
			}
			p, ok := byName[name]
			if !ok {
				continue
			}
			st := stats[name]
			st.PlayingTurns++
			if IsPreferred(p, pos) {
				st.PreferredTurns++
			}
			if p.IsFemale() {
				womenOnField++
			}
			if !CanPlay(p, pos) {
				issue := newIssue(IssueIneligible, n, "Inning %d: %s is not eligible for %s", n, name, pos)
				issue.Position = pos
				issue.Player = name
				issues = append(issues, issue)
			}
		}

		ib := InningBalance{Inning: n, WomenOnField: womenOnField}
		var benchPlayers []domain.Player
		for _, name := range inning.Bench {
			p, ok := byName[name]
			if !ok {
				continue
			}
			stats[name].BenchTurns++
			benchPlayers = append(benchPlayers, *p)
			if p.IsFemale() {
				ib.FemalesOnBench++
			} else {
				ib.MalesOnBench++
			}
		}

		if size := ib.MalesOnBench + ib.FemalesOnBench; size >= 2 {
			ib.Measured = true
			ib.Deviation = math.Abs(float64(ib.MalesOnBench)/float64(size)-balance.TeamMaleRatio) +
				math.Abs(float64(ib.FemalesOnBench)/float64(size)-balance.TeamFemaleRatio)
			balance.WorstDeviation = max(balance.WorstDeviation, ib.Deviation)
		}
		balance.Innings = append(balance.Innings, ib)

		if len(benchPlayers) > 1 && males > 0 && females > 0 && singleGender(benchPlayers) {
			issues = append(issues, newIssue(IssueSingleGenderBench, n, "Inning %d: bench is all %s",
				n, strings.ToLower(string(benchPlayers[0].Gender))))
		}
		if womenOnField < minWomen {
			issues = append(issues, newIssue(IssueWomenOnField, n, "Inning %d: %d women on field, need %d",
				n, womenOnField, minWomen))
		}
	}

	balance.Balanced = balance.WorstDeviation < balanceTolerance
	if !balance.Balanced {
		issues = append(issues, newIssue(IssueGenderImbalance, 0,
			"Bench gender mix deviates from the team ratio by %.2f", balance.WorstDeviation))
	}

	out := make([]PlayerStat, 0, len(attendees))
	for _, p := range attendees {
		out = append(out, *stats[p.Name])
	}
	if len(plan) > 0 && len(out) > 0 {
		minBench := slices.MinFunc(out, func(a, b PlayerStat) int { return a.BenchTurns - b.BenchTurns })
		maxBench := slices.MaxFunc(out, func(a, b PlayerStat) int { return a.BenchTurns - b.BenchTurns })
		if maxBench.BenchTurns-minBench.BenchTurns > 1 {
			issues = append(issues, newIssue(IssueUnevenBench, 0, "Bench turns range from %d (%s) to %d (%s)",
				minBench.BenchTurns, minBench.Name, maxBench.BenchTurns, maxBench.Name))
		}
	}

	return Report{
		Stats:   out,
		Balance: balance,
		Issues:  issues,
		Valid:   len(issues) == 0,
	}
}

// coverageIssues checks that every attendee appears exactly once in the inning
// and that nobody else does
func coverageIssues(n int, inning domain.InningAssignment, attendees []domain.Player, byName map[string]*domain.Player) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(attendees))
	for _, name := range inning.Names() {
		seen[name]++
		if _, ok := byName[name]; !ok && seen[name] == 1 {
			issue := newIssue(IssueUnknownPlayer, n, "Inning %d: %s is not attending", n, name)
			issue.Player = name
			issues = append(issues, issue)
		}
	}
	for _, p := range attendees {
		switch c := seen[p.Name]; {
		case c == 0:
			issue := newIssue(IssueCoverage, n, "Inning %d: %s is missing", n, p.Name)
			issue.Player = p.Name
			issues = append(issues, issue)
		case c > 1:
			issue := newIssue(IssueCoverage, n, "Inning %d: %s appears %d times", n, p.Name, c)
			issue.Player = p.Name
			issues = append(issues, issue)
		}
	}
	return issues
}

// PlanReport combines the fielding analysis with batting and pitching checks
type PlanReport struct {
	Fielding Report  `json:"fielding"`
	Batting  []Issue `json:"batting"`
	Pitching []Issue `json:"pitching"`
	Valid    bool    `json:"valid"`
}

// Issues returns every issue in batting, pitching, fielding order
func (r PlanReport) Issues() []Issue {
	all := make([]Issue, 0, len(r.Batting)+len(r.Pitching)+len(r.Fielding.Issues))
	all = append(all, r.Batting...)
	all = append(all, r.Pitching...)
	return append(all, r.Fielding.Issues...)
}

// ValidatePlan re-runs every check over a complete game plan. A plan without
// fielding (attendance failed the precheck) reports the precheck failure instead.
func ValidatePlan(plan *domain.GamePlan, attendees []domain.Player, opts Options) PlanReport {
	report := PlanReport{
		Batting:  BattingIssues(plan.BattingOrder, attendees),
		Pitching: PitchingIssues(plan.BattingOrder, plan.Pitching, opts.PitcherWindow),
	}

	if len(plan.Fielding) > 0 {
		report.Fielding = Analyze(plan.Fielding, attendees, opts)
	} else {
		report.Fielding = Report{Stats: []PlayerStat{}, Balance: GenderBalance{Balanced: true}}
		if pre := CheckCoverage(attendees); !pre.OK() {
			report.Fielding.Issues = append(report.Fielding.Issues, newIssue(IssueCoverage, 0, "%s", pre.Err()))
		}
		report.Fielding.Valid = len(report.Fielding.Issues) == 0
	}

	report.Valid = len(report.Batting) == 0 && len(report.Pitching) == 0 && report.Fielding.Valid
	return report
}
