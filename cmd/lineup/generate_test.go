package main

import (
	"encoding/json"
	"testing"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_Text(t *testing.T) {
	out, err := executeCommand(t, "generate", "--roster", testRoster, "--seed", "42")
	require.NoError(t, err)

	assert.Contains(t, out, "Rusty Cleats, seed 42")
	assert.Contains(t, out, "Batting order")
	assert.Contains(t, out, "Inn 7")
	assert.Contains(t, out, "Bench 3")
	assert.Contains(t, out, "Playing time")
	assert.NotContains(t, out, "Share:")

	again, err := executeCommand(t, "generate", "--roster", testRoster, "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerateCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "generate", "--roster", testRoster, "--seed", "9",
		"--innings", "5", "--min-women", "2", "--json", "--share")
	require.NoError(t, err)

	var got struct {
		Team    string            `json:"team"`
		Seed    uint64            `json:"seed"`
		Options lineup.Options    `json:"options"`
		Plan    domain.GamePlan   `json:"plan"`
		Report  lineup.PlanReport `json:"report"`
		Share   string            `json:"share"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "Rusty Cleats", got.Team)
	assert.Equal(t, uint64(9), got.Seed)
	assert.Equal(t, 5, got.Options.Innings)
	assert.Equal(t, 2, got.Options.MinWomenOnField)
	assert.Len(t, got.Plan.Fielding, 5)
	assert.Len(t, got.Plan.BattingOrder, 12)
	assert.Len(t, got.Plan.Pitching, 12)
	require.NotEmpty(t, got.Share)

	_, roster, err := loadRoster(testRoster)
	require.NoError(t, err)
	decoded, issues, err := lineup.DecodeShareQuery(got.Share, roster)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, got.Plan.BattingOrder, decoded.BattingOrder)
	assert.Equal(t, got.Plan.Fielding, decoded.Fielding)
}

func TestGenerateCommand_ShortAttendance(t *testing.T) {
	out, err := executeCommand(t, "generate", "--roster", testRoster, "--seed", "1",
		"--attend", "Alex Moreno, Priya Shah,Ghost")
	require.NoError(t, err)

	assert.Contains(t, out, "Attending: 2 (1 M / 1 F)")
	assert.Contains(t, out, "Fielding cannot be generated")
	assert.Contains(t, out, "Ghost is not on the roster")
	assert.NotContains(t, out, "Inn 1")
}

func TestGenerateCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		errText string
	}{
		{
			name:    "roster flag required",
			args:    []string{"generate"},
			errText: `required flag(s) "roster" not set`,
		},
		{
			name:    "missing roster file",
			args:    []string{"generate", "--roster", "testdata/missing.json"},
			errText: "failed to read roster",
		},
		{
			name:    "duplicate player names",
			args:    []string{"generate", "--roster", "testdata/duplicate.json"},
			wantErr: domain.ErrDuplicatePlayer,
		},
		{
			name:    "nobody attending",
			args:    []string{"generate", "--roster", testRoster, "--attend", "Ghost"},
			wantErr: domain.ErrNoAttendees,
		},
		{
			name:    "innings out of range",
			args:    []string{"generate", "--roster", testRoster, "--innings", "20"},
			errText: "invalid lineup options",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errText != "" {
				assert.ErrorContains(t, err, tt.errText)
			}
		})
	}
}

func TestParseAttendance(t *testing.T) {
	roster := []domain.Player{{Name: "A"}, {Name: "B"}}

	assert.Equal(t, []string{"A", "B"}, parseAttendance("", roster))
	assert.Equal(t, []string{"A", "B"}, parseAttendance(" , ", roster))
	assert.Equal(t, []string{"B", "Zed"}, parseAttendance("B, Zed", roster))
}
