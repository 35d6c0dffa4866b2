package postgres

import (
	"context"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) *coachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(ctx context.Context, coach *domain.Coach) error {
	return r.db.WithContext(ctx).Create(coach).Error
}

func (r *coachRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *coachRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.Coach, error) {
	var coach domain.Coach
	err := r.db.WithContext(ctx).First(&coach, "display_name = ?", displayName).Error
	if err != nil {
		return nil, err
	}
	return &coach, nil
}

func (r *coachRepository) Update(ctx context.Context, coach *domain.Coach) error {
	return r.db.WithContext(ctx).Save(coach).Error
}
