package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Gender is used for batting cadence and field/bench balance
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// ParseGender accepts the roster spellings of a gender
func ParseGender(raw string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MALE", "M":
		return GenderMale, nil
	case "FEMALE", "F":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, raw)
}

// IsValid checks if a gender is valid
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Short returns the single-letter form used in batting order displays
func (g Gender) Short() string {
	if g == GenderFemale {
		return "F"
	}
	return "M"
}

// Player is a roster entry. Names are unique within a team and act as the key
// for attendance, batting orders and inning assignments.
type Player struct {
	ID                uuid.UUID                     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TeamID            uuid.UUID                     `json:"teamId" gorm:"type:uuid;not null;uniqueIndex:idx_players_team_name"`
	Name              string                        `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_players_team_name"`
	Gender            Gender                        `json:"gender" gorm:"type:varchar(10);not null"`
	PreferredPosition Position                      `json:"preferredPosition" gorm:"type:varchar(10)"`
	PlayablePositions datatypes.JSONSlice[Position] `json:"playablePositions" gorm:"type:jsonb"`
	PitchingPriority  int                           `json:"pitchingPriority" gorm:"not null;default:0"`
	CreatedAt         time.Time                     `json:"createdAt"`
	UpdatedAt         time.Time                     `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (Player) TableName() string {
	return "players"
}

// IsFemale reports whether the player counts toward the women-on-field floor
func (p *Player) IsFemale() bool {
	return p.Gender == GenderFemale
}

// IsPitcher reports whether the player is in the pitching pool
func (p *Player) IsPitcher() bool {
	return p.PitchingPriority > 0
}

// HasPreferredPosition reports whether the player declared a preferred position
func (p *Player) HasPreferredPosition() bool {
	return p.PreferredPosition != PositionNone
}

// PlaysPosition reports whether pos is in the playable set
func (p *Player) PlaysPosition(pos Position) bool {
	return slices.Contains(p.PlayablePositions, pos)
}

// Validate checks if the player has valid values
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidPlayerName
	}
	if !p.Gender.IsValid() {
		return ErrInvalidGender
	}
	if p.PreferredPosition != PositionNone && !p.PreferredPosition.IsValid() {
		return ErrInvalidPosition
	}
	for _, pos := range p.PlayablePositions {
		if !pos.IsValid() {
			return ErrInvalidPosition
		}
	}
	if p.PitchingPriority < 0 {
		return ErrInvalidPitchingPriority
	}
	return nil
}

// PitchingRole returns the display label for a pitching priority
func PitchingRole(priority int) string {
	switch priority {
	case 0:
		return "None"
	case 1:
		return "Primary"
	case 2:
		return "Secondary"
	case 3:
		return "Tertiary"
	default:
		return fmt.Sprintf("Reserve %d", priority)
	}
}
