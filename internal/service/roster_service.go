package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var ErrInvalidTeamName = errors.New("team name is required")

// RosterService manages teams and their players. Reads are public; changes are
// limited to the coach who owns the team.
type RosterService struct {
	teamRepo   repository.TeamRepository
	playerRepo repository.PlayerRepository
	log        logrus.FieldLogger
}

func NewRosterService(teamRepo repository.TeamRepository, playerRepo repository.PlayerRepository, log logrus.FieldLogger) *RosterService {
	return &RosterService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		log:        log,
	}
}

type TeamInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// PlayerInput is the wire form of a roster entry. Positions may use either the
// enum spelling (FIRST_BASE) or the display label (1B).
type PlayerInput struct {
	Name              string   `json:"name" validate:"required,max=100"`
	Gender            string   `json:"gender" validate:"required"`
	PreferredPosition string   `json:"preferredPosition"`
	PlayablePositions []string `json:"playablePositions"`
	PitchingPriority  int      `json:"pitchingPriority" validate:"min=0"`
}

// ToPlayer validates the input and converts it into a roster player
func (in PlayerInput) ToPlayer() (domain.Player, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	gender, err := domain.ParseGender(in.Gender)
	if err != nil {
		return domain.Player{}, err
	}
	preferred, err := domain.NormalizePosition(in.PreferredPosition)
	if err != nil {
		return domain.Player{}, err
	}

	playable := make([]domain.Position, 0, len(in.PlayablePositions))
	for _, raw := range in.PlayablePositions {
		pos, err := domain.NormalizePosition(raw)
		if err != nil {
			return domain.Player{}, err
		}
		if pos == domain.PositionNone || slices.Contains(playable, pos) {
			continue
		}
		playable = append(playable, pos)
	}

	player := domain.Player{
		Name:              strings.TrimSpace(in.Name),
		Gender:            gender,
		PreferredPosition: preferred,
		PlayablePositions: datatypes.NewJSONSlice(playable),
		PitchingPriority:  in.PitchingPriority,
	}
	if err := player.Validate(); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

func (s *RosterService) CreateTeam(ctx context.Context, coachID uuid.UUID, input TeamInput) (*domain.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return nil, ErrInvalidTeamName
	}

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      input.Name,
		CoachID:   coachID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"team": team.ID, "coach": coachID}).Info("team created")
	return team, nil
}

// GetTeam returns a team with its roster in creation order
func (s *RosterService) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, teamID)
}

func (s *RosterService) ListTeams(ctx context.Context, coachID uuid.UUID) ([]*domain.Team, error) {
	return s.teamRepo.GetByCoachID(ctx, coachID)
}

func (s *RosterService) DeleteTeam(ctx context.Context, coachID, teamID uuid.UUID) error {
	if _, err := s.ownedTeam(ctx, coachID, teamID); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *RosterService) AddPlayer(ctx context.Context, coachID, teamID uuid.UUID, input PlayerInput) (*domain.Player, error) {
	team, err := s.ownedTeam(ctx, coachID, teamID)
	if err != nil {
		return nil, err
	}

	player, err := input.ToPlayer()
	if err != nil {
		return nil, err
	}
	if _, taken := team.FindPlayer(player.Name); taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlayer, player.Name)
	}

	player.ID = uuid.New()
	player.TeamID = teamID
	player.CreatedAt = time.Now()
	player.UpdatedAt = time.Now()
	if err := s.playerRepo.Create(ctx, &player); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"team": teamID, "player": player.Name}).Info("player added")
	return &player, nil
}

func (s *RosterService) UpdatePlayer(ctx context.Context, coachID, teamID, playerID uuid.UUID, input PlayerInput) (*domain.Player, error) {
	team, err := s.ownedTeam(ctx, coachID, teamID)
	if err != nil {
		return nil, err
	}

	existing, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if existing.TeamID != teamID {
		return nil, domain.ErrPlayerNotFound
	}

	updated, err := input.ToPlayer()
	if err != nil {
		return nil, err
	}
	if other, taken := team.FindPlayer(updated.Name); taken && other.ID != playerID {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicatePlayer, updated.Name)
	}

	updated.ID = existing.ID
	updated.TeamID = existing.TeamID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	if err := s.playerRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RosterService) RemovePlayer(ctx context.Context, coachID, teamID, playerID uuid.UUID) error {
	if _, err := s.ownedTeam(ctx, coachID, teamID); err != nil {
		return err
	}

	existing, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if existing.TeamID != teamID {
		return domain.ErrPlayerNotFound
	}

	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"team": teamID, "player": existing.Name}).Info("player removed")
	return nil
}

func (s *RosterService) ownedTeam(ctx context.Context, coachID, teamID uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.CoachID != coachID {
		return nil, domain.ErrNotTeamCoach
	}
	return team, nil
}
