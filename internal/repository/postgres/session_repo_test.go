package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository/postgres"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionRepository_GetByCoachID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	coachID := uuid.New()
	expired := &domain.CoachSession{
		ID:               uuid.New(),
		CoachID:          coachID,
		RefreshTokenHash: "old",
		ExpiresAt:        time.Now().Add(-time.Hour),
		CreatedAt:        time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, expired))

	_, err := repo.GetByCoachID(ctx, coachID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	live := &domain.CoachSession{
		ID:               uuid.New(),
		CoachID:          coachID,
		RefreshTokenHash: "new",
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}
	require.NoError(t, repo.Create(ctx, live))

	got, err := repo.GetByCoachID(ctx, coachID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)

	require.NoError(t, repo.DeleteByCoachID(ctx, coachID))
	_, err = repo.GetByCoachID(ctx, coachID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
