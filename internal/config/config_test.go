package config_test

import (
	"testing"
	"time"

	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()

		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := config.Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, lineup.DefaultOptions(), cfg.Lineup.Options)
		assert.Zero(t, cfg.Lineup.Seed)
		assert.Equal(t, 4*time.Hour, cfg.PlanTTL)
	})
}

func TestLoadLineup(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("LINEUP_INNINGS", "6")
		t.Setenv("LINEUP_MIN_WOMEN_ON_FIELD", "4")
		t.Setenv("LINEUP_SEED", "42")

		cfg, err := config.LoadLineup()

		require.NoError(t, err)
		assert.Equal(t, 6, cfg.Options.Innings)
		assert.Equal(t, 4, cfg.Options.MinWomenOnField)
		assert.Equal(t, uint64(42), cfg.Seed)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		t.Setenv("LINEUP_INNINGS", "0")

		_, err := config.LoadLineup()

		assert.ErrorContains(t, err, "invalid lineup options")
	})
}
