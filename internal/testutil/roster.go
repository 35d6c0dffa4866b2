package testutil

import (
	"fmt"
	"slices"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlayerBuilder creates roster players with a builder pattern
type PlayerBuilder struct {
	player domain.Player
}

// NewPlayerBuilder creates a male player who can play every position
func NewPlayerBuilder(name string) *PlayerBuilder {
	return &PlayerBuilder{player: domain.Player{
		ID:                uuid.New(),
		Name:              name,
		Gender:            domain.GenderMale,
		PlayablePositions: datatypes.NewJSONSlice(slices.Clone(domain.FieldPositions)),
	}}
}

// Female marks the player as female
func (b *PlayerBuilder) Female() *PlayerBuilder {
	b.player.Gender = domain.GenderFemale
	return b
}

// WithGender sets the gender
func (b *PlayerBuilder) WithGender(g domain.Gender) *PlayerBuilder {
	b.player.Gender = g
	return b
}

// WithPreferred sets the preferred position
func (b *PlayerBuilder) WithPreferred(pos domain.Position) *PlayerBuilder {
	b.player.PreferredPosition = pos
	return b
}

// WithPlayable replaces the playable position set
func (b *PlayerBuilder) WithPlayable(positions ...domain.Position) *PlayerBuilder {
	b.player.PlayablePositions = datatypes.NewJSONSlice(positions)
	return b
}

// WithPitchingPriority puts the player in the pitching pool (0 removes them)
func (b *PlayerBuilder) WithPitchingPriority(priority int) *PlayerBuilder {
	b.player.PitchingPriority = priority
	return b
}

// WithTeam sets the owning team
func (b *PlayerBuilder) WithTeam(teamID uuid.UUID) *PlayerBuilder {
	b.player.TeamID = teamID
	return b
}

// Build returns the player
func (b *PlayerBuilder) Build() domain.Player {
	return b.player
}

// MixedRoster returns males M1..Mn followed by females F1..Fn, all able to play
// every position. M1, F1 and M2 pitch with priorities 1, 2 and 3 when present.
func MixedRoster(males, females int) []domain.Player {
	roster := make([]domain.Player, 0, males+females)
	for i := 1; i <= males; i++ {
		b := NewPlayerBuilder(fmt.Sprintf("M%d", i))
		switch i {
		case 1:
			b.WithPitchingPriority(1)
		case 2:
			b.WithPitchingPriority(3)
		}
		roster = append(roster, b.Build())
	}
	for i := 1; i <= females; i++ {
		b := NewPlayerBuilder(fmt.Sprintf("F%d", i)).Female()
		if i == 1 {
			b.WithPitchingPriority(2)
		}
		roster = append(roster, b.Build())
	}
	return roster
}

// SampleRoster is a realistic fourteen-player team with preferred positions,
// restricted playable sets and three pitchers
func SampleRoster() []domain.Player {
	p := domain.FieldPositions
	c, b1, b2, b3, rv, ss, rf, cf, lf := p[0], p[1], p[2], p[3], p[4], p[5], p[6], p[7], p[8]
	return []domain.Player{
		NewPlayerBuilder("Marcus Webb").WithPreferred(ss).WithPlayable(ss, b2, b3, rv).WithPitchingPriority(1).Build(),
		NewPlayerBuilder("Tyler Brandt").WithPreferred(cf).WithPlayable(cf, lf, rf, rv).Build(),
		NewPlayerBuilder("Devon Okafor").WithPreferred(b1).WithPlayable(b1, c, b3).WithPitchingPriority(2).Build(),
		NewPlayerBuilder("Luis Ferreira").WithPreferred(b3).WithPlayable(b3, ss, b2).Build(),
		NewPlayerBuilder("Grant Holloway").WithPreferred(lf).WithPlayable(lf, cf, rf).Build(),
		NewPlayerBuilder("Shane Kowalski").WithPreferred(rv).WithPlayable(rv, cf, lf, b2).Build(),
		NewPlayerBuilder("Andre Lindqvist").WithPreferred(c).WithPlayable(c, b1, rf).Build(),
		NewPlayerBuilder("Owen Pratt").WithPlayable(rf, lf, b1, c).Build(),
		NewPlayerBuilder("Priya Natarajan").Female().WithPreferred(b2).WithPlayable(b2, ss, b1).WithPitchingPriority(3).Build(),
		NewPlayerBuilder("Hannah Ross").Female().WithPreferred(rf).WithPlayable(rf, lf, cf).Build(),
		NewPlayerBuilder("Carmen Ibarra").Female().WithPreferred(c).WithPlayable(c, b1, rf).Build(),
		NewPlayerBuilder("Jess Whitaker").Female().WithPreferred(lf).WithPlayable(lf, rf, b2).Build(),
		NewPlayerBuilder("Naomi Sato").Female().WithPlayable(b1, b2, b3, rf, c).Build(),
		NewPlayerBuilder("Bree Callahan").Female().WithPreferred(cf).WithPlayable(cf, rv, lf).Build(),
	}
}

// Names returns the player names in order
func Names(players []domain.Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
