package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/dom/softball-lineup/internal/metrics"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

// LineupService generates game plans for a team's attendance and keeps them
// editable in memory.
type LineupService struct {
	teamRepo repository.TeamRepository
	store    *PlanStore
	cfg      config.LineupConfig
	metrics  *metrics.Recorder
	log      logrus.FieldLogger
}

func NewLineupService(teamRepo repository.TeamRepository, cfg config.LineupConfig, ttl time.Duration, recorder *metrics.Recorder, log logrus.FieldLogger) *LineupService {
	store := NewPlanStore(ttl)
	go store.Run(sweepInterval)

	return &LineupService{
		teamRepo: teamRepo,
		store:    store,
		cfg:      cfg,
		metrics:  recorder,
		log:      log,
	}
}

// Close stops the plan sweeper
func (s *LineupService) Close() {
	s.store.Close()
}

type AttendanceInput struct {
	Attendance []string `json:"attendance" validate:"required,min=1,dive,required"`
}

type GenerateInput struct {
	Attendance []string `json:"attendance" validate:"required,min=1,dive,required"`
	// Seed replays a previous plan; zero uses the configured seed or a random one
	Seed            uint64 `json:"seed,omitempty"`
	Innings         int    `json:"innings,omitempty" validate:"omitempty,min=1,max=12"`
	MinWomenOnField *int   `json:"minWomenOnField,omitempty" validate:"omitempty,min=0,max=9"`
}

// PrecheckResult is the coverage report for an attendance list
type PrecheckResult struct {
	Precheck lineup.Precheck `json:"precheck"`
	Issues   []lineup.Issue  `json:"issues"`
	OK       bool            `json:"ok"`
}

// SharedPlan is a plan rebuilt from a share link, with its validation
type SharedPlan struct {
	Plan   *domain.GamePlan  `json:"plan"`
	Report lineup.PlanReport `json:"report"`
	Issues []lineup.Issue    `json:"issues"`
}

func (s *LineupService) Precheck(ctx context.Context, teamID uuid.UUID, input AttendanceInput) (*PrecheckResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	attendees, issues := lineup.ResolveAttendance(team.Players, input.Attendance)
	pre := lineup.CheckCoverage(attendees)
	return &PrecheckResult{Precheck: pre, Issues: issues, OK: pre.OK()}, nil
}

func (s *LineupService) Generate(ctx context.Context, teamID uuid.UUID, input GenerateInput) (*PlanSession, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	opts := s.cfg.Options
	if input.Innings > 0 {
		opts.Innings = input.Innings
	}
	if input.MinWomenOnField != nil {
		opts.MinWomenOnField = *input.MinWomenOnField
	}
	seed := s.seedFor(input.Seed)

	log := s.log.WithFields(logrus.Fields{"team": teamID, "seed": seed})
	gen := lineup.NewGenerator(lineup.NewRand(seed), opts, log)

	start := time.Now()
	result, err := gen.Generate(team.Players, input.Attendance)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGeneration(result, time.Since(start))

	return s.store.Put(&PlanSession{
		TeamID:      teamID,
		Seed:        seed,
		Options:     opts,
		Plan:        result.Plan,
		Precheck:    result.Precheck,
		Report:      result.Report,
		Diagnostics: result.Diagnostics,
		attendees:   result.Attendees,
	}), nil
}

func (s *LineupService) GetPlan(_ context.Context, planID uuid.UUID) (*PlanSession, error) {
	return s.store.Get(planID)
}

// MoveBatter moves the batter at 1-based slot from to slot to and rebuilds the
// pitching schedule
func (s *LineupService) MoveBatter(_ context.Context, planID uuid.UUID, from, to int) (*PlanSession, error) {
	session, err := s.store.Update(planID, func(session *PlanSession) error {
		gen := lineup.NewGenerator(nil, session.Options, s.log)
		plan, err := gen.MoveBatter(session.Plan, session.attendees, from-1, to-1)
		if err != nil {
			return err
		}
		session.Plan = plan
		session.Report = lineup.ValidatePlan(plan, session.attendees, session.Options)
		return nil
	})
	s.metrics.RecordEdit("move_batter", err)
	return session, err
}

// SwapFielding exchanges two slots of one inning and re-runs the fairness checks
func (s *LineupService) SwapFielding(_ context.Context, planID uuid.UUID, src, dst lineup.Slot) (*PlanSession, error) {
	session, err := s.store.Update(planID, func(session *PlanSession) error {
		gen := lineup.NewGenerator(nil, session.Options, s.log)
		plan, err := gen.SwapFielding(session.Plan, src, dst)
		if err != nil {
			return err
		}
		session.Plan = plan
		session.Report = lineup.ValidatePlan(plan, session.attendees, session.Options)
		return nil
	})
	s.metrics.RecordEdit("swap_fielding", err)
	return session, err
}

// ShareQuery returns the query string that reproduces a stored plan
func (s *LineupService) ShareQuery(_ context.Context, planID uuid.UUID) (string, error) {
	session, err := s.store.Get(planID)
	if err != nil {
		return "", err
	}
	values, err := lineup.EncodeShare(session.Plan)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// DecodeShared rebuilds a plan from a share query against the team's current roster
func (s *LineupService) DecodeShared(ctx context.Context, teamID uuid.UUID, rawQuery string) (*SharedPlan, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	plan, issues, err := lineup.DecodeShareQuery(rawQuery, team.Players)
	s.metrics.RecordShareDecode(err)
	if err != nil {
		s.log.WithError(err).WithField("team", teamID).Warn("rejected share link")
		return nil, err
	}
	for _, issue := range issues {
		s.log.WithFields(logrus.Fields{"team": teamID, "kind": issue.Kind}).Warn(issue.Message)
	}

	attendees, _ := lineup.ResolveAttendance(team.Players, plan.Attendance)
	return &SharedPlan{
		Plan:   plan,
		Report: lineup.ValidatePlan(plan, attendees, s.cfg.Options),
		Issues: issues,
	}, nil
}

func (s *LineupService) seedFor(requested uint64) uint64 {
	switch {
	case requested != 0:
		return requested
	case s.cfg.Seed != 0:
		return s.cfg.Seed
	default:
		return rand.Uint64()
	}
}
