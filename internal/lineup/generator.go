package lineup

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/sirupsen/logrus"
)

// Generator produces game plans. All randomness comes from the injected source,
// so a generator built from the same seed replays the same plans. A Generator
// is not safe for concurrent use; build one per request.
type Generator struct {
	rng  *rand.Rand
	opts Options
	log  logrus.FieldLogger
}

// NewRand returns a seeded source suitable for NewGenerator
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// NewGenerator creates a generator. A nil rng is seeded randomly and a nil
// logger discards output.
func NewGenerator(rng *rand.Rand, opts Options, log logrus.FieldLogger) *Generator {
	if rng == nil {
		rng = NewRand(rand.Uint64())
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Generator{rng: rng, opts: opts, log: log}
}

// Options returns the generator's configuration
func (g *Generator) Options() Options {
	return g.opts
}

func (g *Generator) shuffle(players []domain.Player) {
	g.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
}

// Result is everything produced by one generation request
type Result struct {
	Plan      *domain.GamePlan `json:"plan"`
	Attendees []domain.Player  `json:"-"`
	Precheck  Precheck         `json:"precheck"`
	Report    PlanReport       `json:"report"`
	// Diagnostics are the soft violations hit while generating, plus attendance problems
	Diagnostics     []Issue `json:"diagnostics"`
	BattingAttempts int     `json:"battingAttempts"`
}

// ResolveAttendance maps attendance names onto roster players, in roster order.
// Unknown names are reported and skipped; repeats collapse to one entry.
func ResolveAttendance(roster []domain.Player, names []string) ([]domain.Player, []Issue) {
	want := make(map[string]bool, len(names))
	var issues []Issue
	byName := indexByName(roster)
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			issue := newIssue(IssueUnknownPlayer, 0, "%s is not on the roster", name)
			issue.Player = name
			issues = append(issues, issue)
			continue
		}
		want[name] = true
	}

	attendees := make([]domain.Player, 0, len(want))
	for _, p := range roster {
		if want[p.Name] {
			attendees = append(attendees, p)
		}
	}
	return attendees, issues
}

// Generate builds a complete game plan for the attending players. Fielding is
// only generated when the coverage precheck passes; otherwise the plan carries
// batting and pitching only and Precheck explains why.
func (g *Generator) Generate(roster []domain.Player, attendance []string) (*Result, error) {
	if err := g.opts.Validate(); err != nil {
		return nil, err
	}

	attendees, diagnostics := ResolveAttendance(roster, attendance)
	for _, issue := range diagnostics {
		g.log.WithField("player", issue.Player).Warn("attendance name is not on the roster")
	}
	if len(attendees) == 0 {
		return nil, fmt.Errorf("%w: none of %d names are on the roster", domain.ErrNoAttendees, len(attendance))
	}

	plan := &domain.GamePlan{Attendance: make([]string, len(attendees))}
	for i, p := range attendees {
		plan.Attendance[i] = p.Name
	}

	batting := g.BattingOrder(attendees)
	plan.BattingOrder = batting.Order
	diagnostics = append(diagnostics, batting.Issues...)

	pitching, pitchingIssues := g.PitchingSchedule(batting.Order, attendees)
	plan.Pitching = pitching
	diagnostics = append(diagnostics, pitchingIssues...)

	precheck := CheckCoverage(attendees)
	if precheck.OK() {
		fielding, fieldingIssues, err := g.Fielding(attendees)
		if err != nil {
			return nil, err
		}
		plan.Fielding = fielding
		diagnostics = append(diagnostics, fieldingIssues...)
	} else {
		g.log.WithError(precheck.Err()).WithField("attendees", len(attendees)).Warn("skipping fielding generation")
	}

	report := ValidatePlan(plan, attendees, g.opts)

	g.log.WithFields(logrus.Fields{
		"attendees":   len(attendees),
		"innings":     len(plan.Fielding),
		"attempts":    batting.Attempts,
		"diagnostics": len(diagnostics),
		"valid":       report.Valid,
	}).Info("game plan generated")

	return &Result{
		Plan:            plan,
		Attendees:       attendees,
		Precheck:        precheck,
		Report:          report,
		Diagnostics:     diagnostics,
		BattingAttempts: batting.Attempts,
	}, nil
}
