package service

import (
	"sync"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/google/uuid"
)

// PlanSession is a generated plan kept in memory so a coach can edit and share it
type PlanSession struct {
	ID          uuid.UUID         `json:"id"`
	TeamID      uuid.UUID         `json:"teamId"`
	Seed        uint64            `json:"seed"`
	Options     lineup.Options    `json:"options"`
	Plan        *domain.GamePlan  `json:"plan"`
	Precheck    lineup.Precheck   `json:"precheck"`
	Report      lineup.PlanReport `json:"report"`
	Diagnostics []lineup.Issue    `json:"diagnostics"`
	CreatedAt   time.Time         `json:"createdAt"`
	ExpiresAt   time.Time         `json:"expiresAt"`

	attendees []domain.Player
}

func (s *PlanSession) clone() *PlanSession {
	out := *s
	out.Plan = s.Plan.Clone()
	return &out
}

// PlanStore holds plan sessions until they expire. Nothing is persisted.
type PlanStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*PlanSession
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewPlanStore(ttl time.Duration) *PlanStore {
	return &PlanStore{
		sessions: make(map[uuid.UUID]*PlanSession),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Run sweeps expired sessions every interval until Close is called
func (s *PlanStore) Run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *PlanStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Put stores a session, stamping its id and lifetime
func (s *PlanStore) Put(session *PlanSession) *PlanSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session.ID = uuid.New()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.ttl)
	s.sessions[session.ID] = session
	return session.clone()
}

func (s *PlanStore) Get(id uuid.UUID) (*PlanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.live(id)
	if err != nil {
		return nil, err
	}
	return session.clone(), nil
}

// Update applies fn to a live session under the store lock. A successful edit
// extends the session's lifetime.
func (s *PlanStore) Update(id uuid.UUID, fn func(*PlanSession) error) (*PlanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.live(id)
	if err != nil {
		return nil, err
	}

	edited := session.clone()
	if err := fn(edited); err != nil {
		return nil, err
	}
	edited.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[id] = edited
	return edited.clone(), nil
}

func (s *PlanStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *PlanStore) live(id uuid.UUID) (*PlanSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	if !s.now().Before(session.ExpiresAt) {
		delete(s.sessions, id)
		return nil, domain.ErrPlanNotFound
	}
	return session, nil
}

func (s *PlanStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}
