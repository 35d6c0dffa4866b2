package lineup

import (
	"cmp"
	"slices"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/sirupsen/logrus"
)

// PitchingSchedule assigns a pitcher to every batting slot. A pitcher is
// unavailable for the slot they bat in and the PitcherWindow slots after it.
// Among available pitchers the lowest priority number wins, ties going to
// whoever has pitched the fewest slots so far. When nobody is available the
// primary pitcher is used and the assignment is flagged as an emergency.
func (g *Generator) PitchingSchedule(order domain.BattingOrder, attendees []domain.Player) ([]domain.PitchingAssignment, []Issue) {
	return pitchingSchedule(order, attendees, g.opts.PitcherWindow, g.log)
}

func pitchingSchedule(order domain.BattingOrder, attendees []domain.Player, window int, log logrus.FieldLogger) ([]domain.PitchingAssignment, []Issue) {
	n := len(order)
	schedule := make([]domain.PitchingAssignment, n)
	var issues []Issue

	pool := pitchingPool(attendees)
	usage := make(map[string]int, len(pool))

	for i, batter := range order {
		a := domain.PitchingAssignment{BattingPosition: i + 1, Batter: batter}

		if len(pool) == 0 {
			a.Pitcher = domain.NoPitcherAvailable
			schedule[i] = a
			continue
		}

		var chosen *domain.Player
		for j := range pool {
			p := &pool[j]
			if !pitcherAvailable(order.IndexOf(p.Name), i, n, window) {
				continue
			}
			if chosen == nil || p.PitchingPriority < chosen.PitchingPriority ||
				(p.PitchingPriority == chosen.PitchingPriority && usage[p.Name] < usage[chosen.Name]) {
				chosen = p
			}
		}

		if chosen == nil {
			chosen = &pool[0]
			a.Emergency = true
			issue := newIssue(IssueEmergencyPitcher, 0, "Batting slot %d: %s pitches while due to bat", i+1, chosen.Name)
			issue.Player = chosen.Name
			issues = append(issues, issue)
			log.WithFields(logrus.Fields{
				"slot":    i + 1,
				"batter":  batter,
				"pitcher": chosen.Name,
				"kind":    IssueEmergencyPitcher,
			}).Warn("no pitcher available, using emergency assignment")
		}

		a.Pitcher = chosen.Name
		usage[chosen.Name]++
		schedule[i] = a
	}

	if len(pool) == 0 && n > 0 {
		issues = append(issues, newIssue(IssueNoPitcher, 0, "No attending player can pitch"))
		log.WithField("kind", IssueNoPitcher).Warn("no pitchers in attendance")
	}
	return schedule, issues
}

// pitchingPool returns attending pitchers ordered by priority, roster order breaking ties
func pitchingPool(attendees []domain.Player) []domain.Player {
	var pool []domain.Player
	for _, p := range attendees {
		if p.IsPitcher() {
			pool = append(pool, p)
		}
	}
	slices.SortStableFunc(pool, func(a, b domain.Player) int {
		return cmp.Compare(a.PitchingPriority, b.PitchingPriority)
	})
	return pool
}

// pitcherAvailable reports whether a pitcher batting at index p may pitch slot i.
// A pitcher who does not bat (p < 0) is always available.
func pitcherAvailable(p, i, n, window int) bool {
	if p < 0 || n == 0 {
		return true
	}
	return (i-p+n)%n > window
}

// PitchingIssues re-checks a schedule against the batting order, flagging
// emergencies, missing pitchers and assignments inside a pitcher's batting window.
func PitchingIssues(order domain.BattingOrder, schedule []domain.PitchingAssignment, window int) []Issue {
	var issues []Issue
	n := len(order)
	for _, a := range schedule {
		switch {
		case !a.HasPitcher():
			issues = append(issues, newIssue(IssueNoPitcher, 0, "Batting slot %d: no pitcher available", a.BattingPosition))
		case a.Emergency:
			issue := newIssue(IssueEmergencyPitcher, 0, "Batting slot %d: %s pitches while due to bat", a.BattingPosition, a.Pitcher)
			issue.Player = a.Pitcher
			issues = append(issues, issue)
		case !pitcherAvailable(order.IndexOf(a.Pitcher), a.BattingPosition-1, n, window):
			issue := newIssue(IssueEmergencyPitcher, 0, "Batting slot %d: %s is due to bat", a.BattingPosition, a.Pitcher)
			issue.Player = a.Pitcher
			issues = append(issues, issue)
		}
	}
	return issues
}
