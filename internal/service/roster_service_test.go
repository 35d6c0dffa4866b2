package service_test

import (
	"context"
	"testing"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/service"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerInput_ToPlayer(t *testing.T) {
	tests := []struct {
		name    string
		input   service.PlayerInput
		want    domain.Player
		wantErr error
	}{
		{
			name: "enum spellings are normalized",
			input: service.PlayerInput{
				Name:              " Rosa Delgado ",
				Gender:            "female",
				PreferredPosition: "SHORTSTOP",
				PlayablePositions: []string{"FIRST_BASE", "1B", "left field", "none"},
				PitchingPriority:  2,
			},
			want: domain.Player{
				Name:              "Rosa Delgado",
				Gender:            domain.GenderFemale,
				PreferredPosition: domain.PositionShortstop,
				PlayablePositions: []domain.Position{domain.PositionFirstBase, domain.PositionLeftField},
				PitchingPriority:  2,
			},
		},
		{
			name:    "unknown position",
			input:   service.PlayerInput{Name: "Kim", Gender: "M", PlayablePositions: []string{"DH"}},
			wantErr: domain.ErrInvalidPosition,
		},
		{
			name:    "unknown gender",
			input:   service.PlayerInput{Name: "Kim", Gender: "X"},
			wantErr: domain.ErrInvalidGender,
		},
		{
			name:    "negative pitching priority",
			input:   service.PlayerInput{Name: "Kim", Gender: "M", PitchingPriority: -1},
			wantErr: service.ErrInvalidInput,
		},
		{
			name:    "missing name",
			input:   service.PlayerInput{Gender: "M"},
			wantErr: service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.ToPlayer()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Gender, got.Gender)
			assert.Equal(t, tt.want.PreferredPosition, got.PreferredPosition)
			assert.Equal(t, tt.want.PlayablePositions, []domain.Position(got.PlayablePositions))
			assert.Equal(t, tt.want.PitchingPriority, got.PitchingPriority)
		})
	}
}

func TestRosterService_Teams(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	roster := service.NewRosterService(repos.Team, repos.Player, testutil.TestLogger())
	ctx := context.Background()
	coach, _ := testutil.NewCoachBuilder().Build(t, repos)

	_, err := roster.CreateTeam(ctx, coach.ID, service.TeamInput{Name: "   "})
	assert.ErrorIs(t, err, service.ErrInvalidTeamName)

	team, err := roster.CreateTeam(ctx, coach.ID, service.TeamInput{Name: "Mudcats"})
	require.NoError(t, err)

	teams, err := roster.ListTeams(ctx, coach.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Mudcats", teams[0].Name)

	_, err = roster.GetTeam(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)

	assert.ErrorIs(t, roster.DeleteTeam(ctx, uuid.New(), team.ID), domain.ErrNotTeamCoach)
	require.NoError(t, roster.DeleteTeam(ctx, coach.ID, team.ID))
	_, err = roster.GetTeam(ctx, team.ID)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestRosterService_Players(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	roster := service.NewRosterService(repos.Team, repos.Player, testutil.TestLogger())
	ctx := context.Background()
	coach, _ := testutil.NewCoachBuilder().Build(t, repos)
	team := testutil.NewTeamBuilder().WithCoach(coach).WithPlayers(nil).Build(t, repos)

	alice, err := roster.AddPlayer(ctx, coach.ID, team.ID, service.PlayerInput{
		Name: "Alice", Gender: "F", PreferredPosition: "Catcher", PlayablePositions: []string{"1B"},
	})
	require.NoError(t, err)
	_, err = roster.AddPlayer(ctx, coach.ID, team.ID, service.PlayerInput{Name: "Bo", Gender: "M"})
	require.NoError(t, err)

	t.Run("roster keeps insertion order", func(t *testing.T) {
		got, err := roster.GetTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "Bo"}, got.PlayerNames())
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := roster.AddPlayer(ctx, coach.ID, team.ID, service.PlayerInput{Name: "Alice", Gender: "F"})
		assert.ErrorIs(t, err, domain.ErrDuplicatePlayer)
	})

	t.Run("only the coach may edit", func(t *testing.T) {
		_, err := roster.AddPlayer(ctx, uuid.New(), team.ID, service.PlayerInput{Name: "Cy", Gender: "M"})
		assert.ErrorIs(t, err, domain.ErrNotTeamCoach)
	})

	t.Run("update keeps identity", func(t *testing.T) {
		updated, err := roster.UpdatePlayer(ctx, coach.ID, team.ID, alice.ID, service.PlayerInput{
			Name: "Alice", Gender: "F", PreferredPosition: "P", PitchingPriority: 1,
		})
		require.Error(t, err, "P is not a field position")

		updated, err = roster.UpdatePlayer(ctx, coach.ID, team.ID, alice.ID, service.PlayerInput{
			Name: "Alice", Gender: "F", PreferredPosition: "SS", PitchingPriority: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, alice.ID, updated.ID)
		assert.Equal(t, domain.PositionShortstop, updated.PreferredPosition)
		assert.True(t, updated.IsPitcher())
	})

	t.Run("rename onto another player rejected", func(t *testing.T) {
		_, err := roster.UpdatePlayer(ctx, coach.ID, team.ID, alice.ID, service.PlayerInput{Name: "Bo", Gender: "F"})
		assert.ErrorIs(t, err, domain.ErrDuplicatePlayer)
	})

	t.Run("player from another team", func(t *testing.T) {
		other := testutil.NewTeamBuilder().WithCoach(coach).Build(t, repos)
		err := roster.RemovePlayer(ctx, coach.ID, team.ID, other.Players[0].ID)
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, roster.RemovePlayer(ctx, coach.ID, team.ID, alice.ID))
		got, err := roster.GetTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bo"}, got.PlayerNames())
	})
}
