package repository

import (
	"context"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/google/uuid"
)

type CoachRepository interface {
	Create(ctx context.Context, coach *domain.Coach) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.Coach, error)
	Update(ctx context.Context, coach *domain.Coach) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.CoachSession) error
	GetByCoachID(ctx context.Context, coachID uuid.UUID) (*domain.CoachSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCoachID(ctx context.Context, coachID uuid.UUID) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	// GetByID returns the team with its roster in creation order
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	GetByCoachID(ctx context.Context, coachID uuid.UUID) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	Coach   CoachRepository
	Session SessionRepository
	Team    TeamRepository
	Player  PlayerRepository
}
