package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewMemoryRepositories returns repositories backed by process memory. They
// report the same errors as the postgres implementations, which lets handler
// and service tests run without a database.
func NewMemoryRepositories() *repository.Repositories {
	store := &memoryStore{
		coaches:  make(map[uuid.UUID]domain.Coach),
		sessions: make(map[uuid.UUID]domain.CoachSession),
		teams:    make(map[uuid.UUID]domain.Team),
		players:  make(map[uuid.UUID]domain.Player),
	}
	return &repository.Repositories{
		Coach:   &memoryCoachRepo{store},
		Session: &memorySessionRepo{store},
		Team:    &memoryTeamRepo{store},
		Player:  &memoryPlayerRepo{store},
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	coaches  map[uuid.UUID]domain.Coach
	sessions map[uuid.UUID]domain.CoachSession
	teams    map[uuid.UUID]domain.Team
	players  map[uuid.UUID]domain.Player
	seq      int
}

// stamp keeps creation order stable even when timestamps collide
func (s *memoryStore) stamp() time.Time {
	s.seq++
	return time.Unix(0, 0).Add(time.Duration(s.seq) * time.Millisecond)
}

type memoryCoachRepo struct{ s *memoryStore }

func (r *memoryCoachRepo) Create(_ context.Context, coach *domain.Coach) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.coaches {
		if c.DisplayName == coach.DisplayName {
			return gorm.ErrDuplicatedKey
		}
	}
	if coach.ID == uuid.Nil {
		coach.ID = uuid.New()
	}
	r.s.coaches[coach.ID] = *coach
	return nil
}

func (r *memoryCoachRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Coach, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.coaches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memoryCoachRepo) GetByDisplayName(_ context.Context, displayName string) (*domain.Coach, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.coaches {
		if c.DisplayName == displayName {
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryCoachRepo) Update(_ context.Context, coach *domain.Coach) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.coaches[coach.ID] = *coach
	return nil
}

type memorySessionRepo struct{ s *memoryStore }

func (r *memorySessionRepo) Create(_ context.Context, session *domain.CoachSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *memorySessionRepo) GetByCoachID(_ context.Context, coachID uuid.UUID) (*domain.CoachSession, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var newest *domain.CoachSession
	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.CoachID != coachID || !sess.ExpiresAt.After(now) {
			continue
		}
		if newest == nil || sess.CreatedAt.After(newest.CreatedAt) {
			newest = &sess
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return newest, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *memorySessionRepo) DeleteByCoachID(_ context.Context, coachID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, sess := range r.s.sessions {
		if sess.CoachID == coachID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

type memoryTeamRepo struct{ s *memoryStore }

func (r *memoryTeamRepo) Create(_ context.Context, team *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	stored := *team
	stored.Players = nil
	r.s.teams[team.ID] = stored
	return nil
}

func (r *memoryTeamRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	t.Players = r.s.roster(id)
	return &t, nil
}

func (r *memoryTeamRepo) GetByCoachID(_ context.Context, coachID uuid.UUID) ([]*domain.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var teams []*domain.Team
	for _, t := range r.s.teams {
		if t.CoachID == coachID {
			teams = append(teams, &t)
		}
	}
	slices.SortFunc(teams, func(a, b *domain.Team) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return teams, nil
}

func (r *memoryTeamRepo) Update(_ context.Context, team *domain.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[team.ID]; !ok {
		return domain.ErrTeamNotFound
	}
	stored := *team
	stored.Players = nil
	r.s.teams[team.ID] = stored
	return nil
}

func (r *memoryTeamRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for pid, p := range r.s.players {
		if p.TeamID == id {
			delete(r.s.players, pid)
		}
	}
	delete(r.s.teams, id)
	return nil
}

type memoryPlayerRepo struct{ s *memoryStore }

func (r *memoryPlayerRepo) Create(_ context.Context, player *domain.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.nameTaken(player) {
		return domain.ErrDuplicatePlayer
	}
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	player.CreatedAt = r.s.stamp()
	r.s.players[player.ID] = *player
	return nil
}

func (r *memoryPlayerRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.players[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *memoryPlayerRepo) GetByTeamID(_ context.Context, teamID uuid.UUID) ([]domain.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.roster(teamID), nil
}

func (r *memoryPlayerRepo) Update(_ context.Context, player *domain.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[player.ID]; !ok {
		return domain.ErrPlayerNotFound
	}
	if r.s.nameTaken(player) {
		return domain.ErrDuplicatePlayer
	}
	r.s.players[player.ID] = *player
	return nil
}

func (r *memoryPlayerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return domain.ErrPlayerNotFound
	}
	delete(r.s.players, id)
	return nil
}

func (s *memoryStore) nameTaken(player *domain.Player) bool {
	for _, p := range s.players {
		if p.TeamID == player.TeamID && p.Name == player.Name && p.ID != player.ID {
			return true
		}
	}
	return false
}

func (s *memoryStore) roster(teamID uuid.UUID) []domain.Player {
	var out []domain.Player
	for _, p := range s.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Player) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}
