package lineup

import (
	"cmp"
	"maps"
	"slices"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/sirupsen/logrus"
)

// PlayerCounters is the running fairness state for one player
type PlayerCounters struct {
	BenchTurns      int `json:"benchTurns"`
	PlayingTurns    int `json:"playingTurns"`
	PreferredTurns  int `json:"preferredTurns"`
	LastBenchInning int `json:"lastBenchInning"` // 0-based, -1 when never benched
}

// Counters is the state carried from one inning to the next, keyed by player name
type Counters map[string]PlayerCounters

// NewCounters returns zeroed counters for every attendee
func NewCounters(attendees []domain.Player) Counters {
	c := make(Counters, len(attendees))
	for _, p := range attendees {
		c[p.Name] = PlayerCounters{LastBenchInning: -1}
	}
	return c
}

// Clone returns an independent copy
func (c Counters) Clone() Counters {
	return maps.Clone(c)
}

// inningsSinceBench counts innings since the player last sat, treating never as
// one more than the innings played so far.
func (pc PlayerCounters) inningsSinceBench(inning int) int {
	return inning - pc.LastBenchInning
}

// InningResult is the output of one fold step
type InningResult struct {
	Assignment domain.InningAssignment
	Counters   Counters
	Issues     []Issue
}

// Fielding assigns positions for every inning. Attendance must pass the coverage
// precheck; otherwise the precheck error is returned and nothing is generated.
func (g *Generator) Fielding(attendees []domain.Player) (domain.FieldingPlan, []Issue, error) {
	if pre := CheckCoverage(attendees); !pre.OK() {
		return nil, nil, pre.Err()
	}

	plan := make(domain.FieldingPlan, 0, g.opts.Innings)
	var issues []Issue
	counters := NewCounters(attendees)
	for inning := range g.opts.Innings {
		step := g.FieldInning(inning, attendees, counters)
		plan = append(plan, step.Assignment)
		issues = append(issues, step.Issues...)
		counters = step.Counters
	}

	g.log.WithFields(logrus.Fields{
		"innings":   len(plan),
		"attendees": len(attendees),
		"issues":    len(issues),
	}).Debug("fielding plan generated")
	return plan, issues, nil
}

// FieldInning produces one inning (0-based) from the counters accumulated so far
// and returns the updated counters. The input counters are not modified.
func (g *Generator) FieldInning(inning int, attendees []domain.Player, counters Counters) InningResult {
	bench := g.selectBench(inning, attendees, counters)
	benched := make(map[string]bool, len(bench))
	for _, p := range bench {
		benched[p.Name] = true
	}

	var playing []domain.Player
	for _, p := range attendees {
		if !benched[p.Name] {
			playing = append(playing, p)
		}
	}

	f := &inningFill{
		inning:     inning,
		assignment: domain.NewInningAssignment(),
		byName:     indexByName(playing),
		placed:     make(map[string]domain.Position, len(playing)),
	}
	g.assignPreferred(f, playing, counters)
	g.fillEligible(f, playing, counters)
	g.forceRemaining(f, playing)

	for _, p := range bench {
		f.assignment.Bench = append(f.assignment.Bench, p.Name)
	}

	next := counters.Clone()
	for _, p := range playing {
		pc := next[p.Name]
		pc.PlayingTurns++
		if pos, ok := f.placed[p.Name]; ok && IsPreferred(&p, pos) {
			pc.PreferredTurns++
		}
		next[p.Name] = pc
	}
	for _, p := range bench {
		pc := next[p.Name]
		pc.BenchTurns++
		pc.LastBenchInning = inning
		next[p.Name] = pc
	}

	return InningResult{Assignment: f.assignment, Counters: next, Issues: f.issues}
}

// selectBench picks who sits this inning. Players with the fewest bench turns sit
// first, then whoever has gone longest without sitting. Women are skipped once
// benching another would drop the field below the women-on-field floor.
func (g *Generator) selectBench(inning int, attendees []domain.Player, counters Counters) []domain.Player {
	need := max(0, len(attendees)-FieldSize)
	if need == 0 {
		return nil
	}

	females := 0
	for i := range attendees {
		if attendees[i].IsFemale() {
			females++
		}
	}
	males := len(attendees) - females
	maxFemalesOnBench := females - g.opts.minWomenFor(females)

	womenFirst := g.womenBehindOnBench(inning, need, maxFemalesOnBench, attendees, counters)

	priority := slices.Clone(attendees)
	g.shuffle(priority)
	slices.SortStableFunc(priority, func(a, b domain.Player) int {
		ca, cb := counters[a.Name], counters[b.Name]
		if c := cmp.Compare(ca.BenchTurns, cb.BenchTurns); c != 0 {
			return c
		}
		if c := cmp.Compare(cb.inningsSinceBench(inning), ca.inningsSinceBench(inning)); c != 0 || !womenFirst {
			return c
		}
		return cmp.Compare(maleRank(a), maleRank(b))
	})

	bench := make([]domain.Player, 0, need)
	onBench := make(map[string]bool, need)
	femalesOnBench := 0
	for _, p := range priority {
		if len(bench) == need {
			break
		}
		if p.IsFemale() {
			if femalesOnBench >= maxFemalesOnBench {
				continue
			}
			femalesOnBench++
		}
		bench = append(bench, p)
		onBench[p.Name] = true
	}

	if len(bench) > 1 && males > 0 && females > 0 && singleGender(bench) {
		benchIsFemale := bench[0].IsFemale()
		out := bench[len(bench)-1]
		for _, p := range priority {
			if p.IsFemale() == benchIsFemale || onBench[p.Name] {
				continue
			}
			// bringing a woman in must leave the floor intact, and nobody may
			// sit ahead of someone with fewer bench turns
			if p.IsFemale() && femalesOnBench >= maxFemalesOnBench {
				break
			}
			if counters[p.Name].BenchTurns > counters[out.Name].BenchTurns {
				break
			}
			bench[len(bench)-1] = p
			g.log.WithFields(logrus.Fields{
				"inning": inning + 1,
				"out":    out.Name,
				"in":     p.Name,
			}).Debug("swapped bench member to mix genders")
			break
		}
	}
	return bench
}

// womenBehindOnBench reports whether the turns women still owe toward an even
// bench share outnumber the seats the on-field floor leaves them after this
// inning. Once it does, women win the remaining ties for a bench seat.
func (g *Generator) womenBehindOnBench(inning, need, maxFemalesOnBench int, attendees []domain.Player, counters Counters) bool {
	share := need * g.opts.Innings / len(attendees)
	owed := 0
	for i := range attendees {
		if attendees[i].IsFemale() {
			owed += max(0, share-counters[attendees[i].Name].BenchTurns)
		}
	}
	return owed > (g.opts.Innings-inning-1)*maxFemalesOnBench
}

func maleRank(p domain.Player) int {
	if p.IsFemale() {
		return 0
	}
	return 1
}

func singleGender(players []domain.Player) bool {
	for i := 1; i < len(players); i++ {
		if players[i].Gender != players[0].Gender {
			return false
		}
	}
	return true
}

// inningFill is the working state while one inning's positions are filled
type inningFill struct {
	inning     int
	assignment domain.InningAssignment
	byName     map[string]*domain.Player
	placed     map[string]domain.Position
	issues     []Issue
}

func (f *inningFill) put(name string, pos domain.Position) {
	f.assignment.Positions[pos] = name
	f.placed[name] = pos
}

func (f *inningFill) open(pos domain.Position) bool {
	return f.assignment.Positions[pos] == ""
}

func (f *inningFill) unplaced(playing []domain.Player) []domain.Player {
	var out []domain.Player
	for _, p := range playing {
		if _, ok := f.placed[p.Name]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// assignPreferred gives players their preferred position while it is open,
// serving those with the fewest preferred-position turns first.
func (g *Generator) assignPreferred(f *inningFill, playing []domain.Player, counters Counters) {
	order := slices.Clone(playing)
	g.shuffle(order)
	slices.SortStableFunc(order, func(a, b domain.Player) int {
		return cmp.Compare(counters[a.Name].PreferredTurns, counters[b.Name].PreferredTurns)
	})
	for i := range order {
		p := &order[i]
		if !p.HasPreferredPosition() || !f.open(p.PreferredPosition) || !CanPlay(p, p.PreferredPosition) {
			continue
		}
		f.put(p.Name, p.PreferredPosition)
	}
}

// fillEligible covers each open position with the eligible unplaced player who
// has played the fewest innings, repairing with swaps when nobody unplaced fits.
func (g *Generator) fillEligible(f *inningFill, playing []domain.Player, counters Counters) {
	for _, pos := range domain.FieldPositions {
		if !f.open(pos) {
			continue
		}
		candidates := EligiblePlayers(f.unplaced(playing), pos)
		if len(candidates) > 0 {
			g.shuffle(candidates)
			best := candidates[0]
			for _, c := range candidates[1:] {
				if counters[c.Name].PlayingTurns < counters[best.Name].PlayingTurns {
					best = c
				}
			}
			f.put(best.Name, pos)
			continue
		}
		if g.directSwap(f, playing, pos) || g.twoHopSwap(f, playing, pos) {
			continue
		}
	}
}

// directSwap moves a placed player who can cover pos into it and gives their
// old spot to an unplaced player who can cover that.
func (g *Generator) directSwap(f *inningFill, playing []domain.Player, pos domain.Position) bool {
	free := f.unplaced(playing)
	for _, q := range domain.FieldPositions {
		a := f.byName[f.assignment.Positions[q]]
		if a == nil || !CanPlay(a, pos) {
			continue
		}
		for i := range free {
			if CanPlay(&free[i], q) {
				f.put(a.Name, pos)
				f.put(free[i].Name, q)
				g.logRepair(f.inning, pos, "direct swap", a.Name, free[i].Name)
				return true
			}
		}
	}
	return false
}

// twoHopSwap chains two placed players: a moves into pos, b moves into a's
// spot and an unplaced player takes b's spot.
func (g *Generator) twoHopSwap(f *inningFill, playing []domain.Player, pos domain.Position) bool {
	free := f.unplaced(playing)
	for _, q := range domain.FieldPositions {
		a := f.byName[f.assignment.Positions[q]]
		if a == nil || !CanPlay(a, pos) {
			continue
		}
		for _, r := range domain.FieldPositions {
			b := f.byName[f.assignment.Positions[r]]
			if r == q || b == nil || !CanPlay(b, q) {
				continue
			}
			for i := range free {
				if CanPlay(&free[i], r) {
					f.put(a.Name, pos)
					f.put(b.Name, q)
					f.put(free[i].Name, r)
					g.logRepair(f.inning, pos, "two-hop swap", a.Name, b.Name, free[i].Name)
					return true
				}
			}
		}
	}
	return false
}

func (g *Generator) logRepair(inning int, pos domain.Position, how string, players ...string) {
	g.log.WithFields(logrus.Fields{
		"inning":   inning + 1,
		"position": pos,
		"players":  players,
	}).Debugf("filled position with %s", how)
}

// forceRemaining puts leftover players into leftover positions regardless of
// eligibility. Every such placement is reported.
func (g *Generator) forceRemaining(f *inningFill, playing []domain.Player) {
	free := f.unplaced(playing)
	for _, pos := range domain.FieldPositions {
		if !f.open(pos) {
			continue
		}
		if len(free) == 0 {
			issue := newIssue(IssueUnfilledPosition, f.inning+1, "Inning %d: %s left empty", f.inning+1, pos)
			issue.Position = pos
			f.issues = append(f.issues, issue)
			continue
		}
		p := free[0]
		free = free[1:]
		f.put(p.Name, pos)

		issue := newIssue(IssueForcedAssignment, f.inning+1, "Inning %d: %s forced into %s without eligibility", f.inning+1, p.Name, pos)
		issue.Position = pos
		issue.Player = p.Name
		f.issues = append(f.issues, issue)
		g.log.WithFields(logrus.Fields{
			"inning":   f.inning + 1,
			"position": pos,
			"player":   p.Name,
			"kind":     IssueForcedAssignment,
		}).Warn("forced ineligible assignment")
	}
}
