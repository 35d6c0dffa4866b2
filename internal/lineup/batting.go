package lineup

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/sirupsen/logrus"
)

// BattingResult is the generated order plus the ring violations it still carries
type BattingResult struct {
	Order    domain.BattingOrder `json:"order"`
	Issues   []Issue             `json:"issues,omitempty"`
	Attempts int                 `json:"attempts"`
}

// BattingOrder builds a cyclic batting order with no back-to-back women and no
// run of three men, counting the wrap from the last batter to the first. When the
// attendance makes that impossible the least-violating candidate found within
// the attempt budget is returned.
func (g *Generator) BattingOrder(attendees []domain.Player) BattingResult {
	if len(attendees) == 0 {
		return BattingResult{Order: domain.BattingOrder{}}
	}

	var males, females []domain.Player
	for _, p := range attendees {
		if p.IsFemale() {
			females = append(females, p)
		} else {
			males = append(males, p)
		}
	}

	if len(males) == 0 || len(females) == 0 {
		only := slices.Clone(attendees)
		g.shuffle(only)
		order := namesOf(only)
		result := BattingResult{Order: order, Issues: BattingIssues(order, attendees), Attempts: 1}
		g.logBattingResult(result, len(males), len(females))
		return result
	}

	var best []domain.Player
	bestScore := -1
	attempts := 0
	for attempts < g.opts.BattingAttempts {
		attempts++

		m := slices.Clone(males)
		f := slices.Clone(females)
		g.shuffle(m)
		g.shuffle(f)

		candidate := buildBattingOrder(m, f, g.rng.IntN(3))
		score := ringScore(gendersOf(candidate))
		if score > 0 {
			candidate, score = repairWraparound(candidate, score)
		}

		if bestScore < 0 || score < bestScore {
			best, bestScore = candidate, score
		}
		if bestScore == 0 {
			break
		}
	}

	order := namesOf(best)
	result := BattingResult{Order: order, Issues: BattingIssues(order, attendees), Attempts: attempts}
	g.logBattingResult(result, len(males), len(females))
	return result
}

func (g *Generator) logBattingResult(result BattingResult, males, females int) {
	fields := logrus.Fields{
		"batters":  len(result.Order),
		"males":    males,
		"females":  females,
		"attempts": result.Attempts,
		"issues":   len(result.Issues),
	}
	if len(result.Issues) > 0 {
		g.log.WithFields(fields).Warn("batting order has unavoidable adjacency violations")
		return
	}
	g.log.WithFields(fields).Debug("batting order generated")
}

// battingState tracks the shape of a partially built order
type battingState struct {
	remM, remF  int
	placed      int
	last        domain.Gender
	tailRun     int // males at the end of the placed prefix
	leadRun     int // males before the first female
	sawFemale   bool
	firstFemale bool
}

func (s battingState) remaining(g domain.Gender) int {
	if g == domain.GenderFemale {
		return s.remF
	}
	return s.remM
}

func (s battingState) place(g domain.Gender) battingState {
	if s.placed == 0 {
		s.firstFemale = g == domain.GenderFemale
	}
	s.placed++
	if g == domain.GenderFemale {
		s.remF--
		s.tailRun = 0
		s.sawFemale = true
	} else {
		s.remM--
		s.tailRun++
		if !s.sawFemale {
			s.leadRun++
		}
	}
	s.last = g
	return s
}

// completable reports whether the unplaced players can still finish the ring
// without a violation. The remaining women split the remaining men into segments:
// inner segments need one or two men, the first segment continues the current
// tail and the last one wraps into the leading run.
func (s battingState) completable() bool {
	if s.remM < 0 || s.remF < 0 || s.tailRun > 2 {
		return false
	}

	if !s.sawFemale {
		if s.remF == 0 {
			return s.placed+s.remM <= 2
		}
		lo := s.remF - 1
		hi := 2*(s.remF-1) + (2 - s.tailRun)
		return lo <= s.remM && s.remM <= hi
	}

	if s.leadRun > 2 {
		return false
	}

	if s.remF == 0 {
		if s.remM == 0 && s.last == domain.GenderFemale && s.firstFemale && s.placed > 1 {
			return false
		}
		return s.tailRun+s.remM+s.leadRun <= 2
	}

	lo0, hi0 := 0, 2-s.tailRun
	if s.last == domain.GenderFemale {
		lo0 = 1
	}
	loL, hiL := 0, 2-s.leadRun
	if s.firstFemale {
		loL = 1
	}
	if hi0 < lo0 || hiL < loL {
		return false
	}
	lo := lo0 + loL + (s.remF - 1)
	hi := hi0 + hiL + 2*(s.remF-1)
	return lo <= s.remM && s.remM <= hi
}

// preferred picks the gender the cadence rules ask for next, first match wins
func (s battingState) preferred(slot, phase int) domain.Gender {
	switch {
	case s.remF == 0:
		return domain.GenderMale
	case s.remM == 0:
		return domain.GenderFemale
	case s.last == domain.GenderFemale && s.remF-s.remM < skewThreshold:
		// never two women in a row unless the women heavily outnumber the men left
		return domain.GenderMale
	case s.tailRun >= 2:
		return domain.GenderFemale
	case s.remF-s.remM >= skewThreshold:
		return domain.GenderFemale
	case s.remM-s.remF >= skewThreshold:
		// drain the larger group now so it does not stack up at the end
		return domain.GenderMale
	case (slot+phase)%3 == 2:
		return domain.GenderFemale
	default:
		return domain.GenderMale
	}
}

// buildBattingOrder places players one at a time following the cadence rules.
// The preferred gender is only used when the rest of the order can still be
// completed cleanly; this keeps men in reserve to separate the women still to come.
func buildBattingOrder(males, females []domain.Player, phase int) []domain.Player {
	n := len(males) + len(females)
	order := make([]domain.Player, 0, n)
	state := battingState{remM: len(males), remF: len(females)}
	mi, fi := 0, 0

	for len(order) < n {
		next := state.preferred(len(order), phase)
		if !state.place(next).completable() {
			other := opposite(next)
			if state.remaining(other) > 0 && state.place(other).completable() {
				next = other
			}
		}

		if next == domain.GenderFemale {
			order = append(order, females[fi])
			fi++
		} else {
			order = append(order, males[mi])
			mi++
		}
		state = state.place(next)
	}
	return order
}

// repairWraparound swaps men into the slots on either side of the wrap boundary,
// keeping a swap only when it lowers the violation score.
func repairWraparound(order []domain.Player, score int) ([]domain.Player, int) {
	n := len(order)
	if n < 3 {
		return order, score
	}
	out := slices.Clone(order)

	for _, boundary := range []int{n - 1, 0} {
		if !out[boundary].IsFemale() {
			continue
		}
		for j := 1; j < n-1; j++ {
			if out[j].IsFemale() {
				continue
			}
			out[boundary], out[j] = out[j], out[boundary]
			if candidate := ringScore(gendersOf(out)); candidate < score {
				score = candidate
				break
			}
			out[boundary], out[j] = out[j], out[boundary]
		}
	}
	return out, score
}

type ringViolation struct {
	kind  IssueKind
	slots []int
}

// checkRing finds back-to-back women and runs of three or more men, treating
// the sequence as a ring. Unknown genders break runs and never pair.
func checkRing(genders []domain.Gender) []ringViolation {
	n := len(genders)
	if n < 2 {
		return nil
	}
	var out []ringViolation

	pairs := n
	if n == 2 {
		pairs = 1
	}
	for i := 0; i < pairs; i++ {
		j := (i + 1) % n
		if genders[i] == domain.GenderFemale && genders[j] == domain.GenderFemale {
			out = append(out, ringViolation{kind: IssueBackToBackFemales, slots: []int{i, j}})
		}
	}

	start := slices.IndexFunc(genders, func(g domain.Gender) bool { return g != domain.GenderMale })
	if start == -1 {
		if n >= 3 {
			all := make([]int, n)
			for i := range all {
				all[i] = i
			}
			out = append(out, ringViolation{kind: IssueMaleRun, slots: all})
		}
		return out
	}

	var run []int
	for k := 1; k <= n; k++ {
		i := (start + k) % n
		if genders[i] == domain.GenderMale {
			run = append(run, i)
			continue
		}
		if len(run) >= 3 {
			out = append(out, ringViolation{kind: IssueMaleRun, slots: run})
		}
		run = nil
	}
	return out
}

// ringScore weighs each back-to-back pair as one and each man beyond two in a run as one
func ringScore(genders []domain.Gender) int {
	score := 0
	for _, v := range checkRing(genders) {
		if v.kind == IssueMaleRun {
			score += len(v.slots) - 2
		} else {
			score++
		}
	}
	return score
}

// BattingIssues reports the ring violations of an order. Names missing from
// attendees are reported as unknown.
func BattingIssues(order domain.BattingOrder, attendees []domain.Player) []Issue {
	byName := indexByName(attendees)
	var issues []Issue
	genders := make([]domain.Gender, len(order))
	for i, name := range order {
		p, ok := byName[name]
		if !ok {
			issue := newIssue(IssueUnknownPlayer, 0, "Batting slot %d: %s is not attending", i+1, name)
			issue.Player = name
			issues = append(issues, issue)
			continue
		}
		genders[i] = p.Gender
	}

	for _, v := range checkRing(genders) {
		slots := make([]string, len(v.slots))
		names := make([]string, len(v.slots))
		for i, s := range v.slots {
			slots[i] = fmt.Sprint(s + 1)
			names[i] = order[s]
		}
		switch v.kind {
		case IssueBackToBackFemales:
			issues = append(issues, newIssue(v.kind, 0, "Batting slots %s: back-to-back women (%s)",
				strings.Join(slots, " and "), strings.Join(names, ", ")))
		case IssueMaleRun:
			issues = append(issues, newIssue(v.kind, 0, "Batting slots %s: %d men in a row (%s)",
				strings.Join(slots, ", "), len(v.slots), strings.Join(names, ", ")))
		}
	}
	return issues
}

func opposite(g domain.Gender) domain.Gender {
	if g == domain.GenderFemale {
		return domain.GenderMale
	}
	return domain.GenderFemale
}

func gendersOf(players []domain.Player) []domain.Gender {
	out := make([]domain.Gender, len(players))
	for i, p := range players {
		out[i] = p.Gender
	}
	return out
}

func namesOf(players []domain.Player) domain.BattingOrder {
	out := make(domain.BattingOrder, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func indexByName(players []domain.Player) map[string]*domain.Player {
	out := make(map[string]*domain.Player, len(players))
	for i := range players {
		out[players[i].Name] = &players[i]
	}
	return out
}
