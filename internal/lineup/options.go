// Package lineup builds softball game plans: batting order, pitching rotation and
// per-inning fielding assignments, plus the fairness checks run over them.
package lineup

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultInnings         = 7
	DefaultMinWomenOnField = 3
	DefaultBattingAttempts = 100
	DefaultPitcherWindow   = 3

	// FieldSize is the number of field positions filled every inning
	FieldSize = 9

	// skewThreshold is how far one gender's remaining count must lead the other's
	// before the batting builder stops alternating and drains the larger group.
	skewThreshold = 3
)

// Options tunes the generators. The zero value is not usable; start from DefaultOptions.
type Options struct {
	Innings         int `json:"innings" validate:"min=1,max=12"`
	MinWomenOnField int `json:"minWomenOnField" validate:"min=0,max=9"`
	BattingAttempts int `json:"battingAttempts" validate:"min=1,max=10000"`
	// PitcherWindow is how many slots after their own at-bat a pitcher stays unavailable
	PitcherWindow int `json:"pitcherWindow" validate:"min=0,max=20"`
}

// DefaultOptions returns the standard 7-inning, 3-women configuration
func DefaultOptions() Options {
	return Options{
		Innings:         DefaultInnings,
		MinWomenOnField: DefaultMinWomenOnField,
		BattingAttempts: DefaultBattingAttempts,
		PitcherWindow:   DefaultPitcherWindow,
	}
}

var validate = validator.New()

// Validate checks option ranges
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid lineup options: %w", err)
	}
	return nil
}

// minWomenFor caps the women-on-field floor at the number of women attending
func (o Options) minWomenFor(femaleCount int) int {
	return min(o.MinWomenOnField, femaleCount)
}
