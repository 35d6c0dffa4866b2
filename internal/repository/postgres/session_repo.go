package postgres

import (
	"context"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.CoachSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetByCoachID returns the coach's newest unexpired session
func (r *sessionRepository) GetByCoachID(ctx context.Context, coachID uuid.UUID) (*domain.CoachSession, error) {
	var session domain.CoachSession
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND expires_at > ?", coachID, time.Now()).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CoachSession{}, "id = ?", id).Error
}

// DeleteByCoachID ends every session of a coach
func (r *sessionRepository) DeleteByCoachID(ctx context.Context, coachID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CoachSession{}, "coach_id = ?", coachID).Error
}
