package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository/postgres"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTeamRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, repos)

	t.Run("roster in creation order", func(t *testing.T) {
		got, err := repos.Team.GetByID(ctx, team.ID)

		require.NoError(t, err)
		assert.Equal(t, "Sunday Sluggers", got.Name)
		assert.Equal(t, testutil.Names(testutil.SampleRoster()), got.PlayerNames())

		first := got.Players[0]
		assert.NotEmpty(t, first.PlayablePositions)
	})

	t.Run("missing team", func(t *testing.T) {
		_, err := repos.Team.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrTeamNotFound)
	})
}

func TestTeamRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().Build(t, repos)

	require.NoError(t, repos.Team.Delete(ctx, team.ID))

	_, err := repos.Team.GetByID(ctx, team.ID)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
	players, err := repos.Player.GetByTeamID(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestPlayerRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().WithPlayers(nil).Build(t, repos)
	other := testutil.NewTeamBuilder().WithName("Other").WithPlayers(nil).Build(t, repos)

	tests := []struct {
		name    string
		player  domain.Player
		wantErr error
	}{
		{
			name: "successful creation",
			player: testutil.NewPlayerBuilder("Casey").
				Female().
				WithPreferred(domain.PositionShortstop).
				WithPlayable(domain.PositionShortstop, domain.PositionSecondBase).
				WithPitchingPriority(1).
				WithTeam(team.ID).
				Build(),
		},
		{
			name:    "duplicate name on the same team",
			player:  testutil.NewPlayerBuilder("Casey").WithTeam(team.ID).Build(),
			wantErr: domain.ErrDuplicatePlayer,
		},
		{
			name:   "same name on another team",
			player: testutil.NewPlayerBuilder("Casey").WithTeam(other.ID).Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repos.Player.Create(ctx, &tt.player)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			stored, err := repos.Player.GetByID(ctx, tt.player.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.player.Gender, stored.Gender)
			assert.Equal(t, tt.player.PreferredPosition, stored.PreferredPosition)
			assert.Equal(t, []domain.Position(tt.player.PlayablePositions), []domain.Position(stored.PlayablePositions))
			assert.Equal(t, tt.player.PitchingPriority, stored.PitchingPriority)
		})
	}
}

func TestPlayerRepository_UpdateAndDelete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().WithPlayers([]domain.Player{
		testutil.NewPlayerBuilder("Avery").Build(),
		testutil.NewPlayerBuilder("Blair").Female().Build(),
	}).Build(t, repos)
	avery := team.Players[0]

	avery.PlayablePositions = datatypes.NewJSONSlice([]domain.Position{domain.PositionCatcher})
	avery.PitchingPriority = 2
	require.NoError(t, repos.Player.Update(ctx, &avery))

	stored, err := repos.Player.GetByID(ctx, avery.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Position{domain.PositionCatcher}, []domain.Position(stored.PlayablePositions))
	assert.Equal(t, 2, stored.PitchingPriority)

	avery.Name = "Blair"
	assert.ErrorIs(t, repos.Player.Update(ctx, &avery), domain.ErrDuplicatePlayer)

	require.NoError(t, repos.Player.Delete(ctx, avery.ID))
	assert.ErrorIs(t, repos.Player.Delete(ctx, avery.ID), domain.ErrPlayerNotFound)
	_, err = repos.Player.GetByID(ctx, avery.ID)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}
