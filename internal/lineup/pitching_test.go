package lineup_test

import (
	"testing"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pitchers(schedule []domain.PitchingAssignment) []string {
	out := make([]string, len(schedule))
	for i, a := range schedule {
		out[i] = a.Pitcher
	}
	return out
}

func TestPitchingSchedule_AvoidsBattingWindow(t *testing.T) {
	roster := []domain.Player{
		testutil.NewPlayerBuilder("Ace").WithPitchingPriority(1).Build(),
		testutil.NewPlayerBuilder("B1").Build(),
		testutil.NewPlayerBuilder("B2").Build(),
		testutil.NewPlayerBuilder("B3").Build(),
		testutil.NewPlayerBuilder("Relief").WithPitchingPriority(2).Build(),
		testutil.NewPlayerBuilder("B4").Build(),
		testutil.NewPlayerBuilder("B5").Build(),
		testutil.NewPlayerBuilder("B6").Build(),
		testutil.NewPlayerBuilder("B7").Build(),
	}
	order := domain.BattingOrder(testutil.Names(roster))

	schedule, issues := newGenerator(1).PitchingSchedule(order, roster)

	require.Len(t, schedule, 9)
	assert.Empty(t, issues)
	assert.Equal(t, []string{
		"Relief", "Relief", "Relief", "Relief",
		"Ace", "Ace", "Ace", "Ace", "Ace",
	}, pitchers(schedule))
	for i, a := range schedule {
		assert.Equal(t, i+1, a.BattingPosition)
		assert.Equal(t, order[i], a.Batter)
		assert.False(t, a.Emergency)
	}
}

func TestPitchingSchedule_BalancesEqualPriority(t *testing.T) {
	roster := []domain.Player{
		testutil.NewPlayerBuilder("A").WithPitchingPriority(1).Build(),
		testutil.NewPlayerBuilder("B").WithPitchingPriority(1).Build(),
	}
	// neither pitcher is in this order, so both are always available
	order := domain.BattingOrder{"X1", "X2", "X3", "X4"}

	schedule, issues := newGenerator(1).PitchingSchedule(order, roster)

	assert.Empty(t, issues)
	assert.Equal(t, []string{"A", "B", "A", "B"}, pitchers(schedule))
}

func TestPitchingSchedule_Emergency(t *testing.T) {
	roster := []domain.Player{
		testutil.NewPlayerBuilder("Solo").WithPitchingPriority(2).Build(),
		testutil.NewPlayerBuilder("B1").Build(),
		testutil.NewPlayerBuilder("B2").Build(),
	}
	order := domain.BattingOrder{"Solo", "B1", "B2"}

	schedule, issues := newGenerator(1).PitchingSchedule(order, roster)

	require.Len(t, schedule, 3)
	for _, a := range schedule {
		assert.Equal(t, "Solo", a.Pitcher)
		assert.True(t, a.Emergency)
		assert.Equal(t, "Solo"+domain.EmergencySuffix, a.Label())
	}
	assert.Equal(t, 3, lineup.CountByKind(issues)[lineup.IssueEmergencyPitcher])
}

func TestPitchingSchedule_NoPitchers(t *testing.T) {
	roster := testutil.MixedRoster(0, 3)
	order := domain.BattingOrder(testutil.Names(roster))

	schedule, issues := newGenerator(1).PitchingSchedule(order, roster)

	require.Len(t, schedule, 3)
	for _, a := range schedule {
		assert.Equal(t, domain.NoPitcherAvailable, a.Pitcher)
		assert.False(t, a.HasPitcher())
	}
	assert.Equal(t, 1, lineup.CountByKind(issues)[lineup.IssueNoPitcher])
}

func TestPitchingSchedule_AvailabilityProperty(t *testing.T) {
	roster := testutil.SampleRoster()
	window := lineup.DefaultPitcherWindow

	for seed := uint64(1); seed <= 50; seed++ {
		result, err := newGenerator(seed).Generate(roster, testutil.Names(roster))
		require.NoError(t, err)

		order := result.Plan.BattingOrder
		n := len(order)
		emergencies := 0
		for _, a := range result.Plan.Pitching {
			if a.Emergency {
				emergencies++
				continue
			}
			p := order.IndexOf(a.Pitcher)
			require.GreaterOrEqual(t, p, 0)
			slot := a.BattingPosition - 1
			assert.Greater(t, (slot-p+n)%n, window, "seed %d: %s pitches slot %d", seed, a.Pitcher, a.BattingPosition)
		}
		assert.Len(t, lineup.PitchingIssues(order, result.Plan.Pitching, window), emergencies)
	}
}
