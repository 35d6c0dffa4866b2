package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Position represents one of the nine softball field positions
type Position string

const (
	PositionCatcher     Position = "Catcher"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionRover       Position = "Rover"
	PositionShortstop   Position = "SS"
	PositionRightField  Position = "RF"
	PositionCenterField Position = "CF"
	PositionLeftField   Position = "LF"
)

// PositionNone marks a player without a preferred position
const PositionNone Position = ""

// FieldPositions contains all field positions in fill order
var FieldPositions = []Position{
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionRover,
	PositionShortstop,
	PositionRightField,
	PositionCenterField,
	PositionLeftField,
}

// positionAliases maps every accepted spelling (lower-cased) to its canonical position.
// Roster data arrives either as enum tags (FIRST_BASE) or as display labels (1B).
var positionAliases = map[string]Position{
	"catcher":      PositionCatcher,
	"c":            PositionCatcher,
	"first_base":   PositionFirstBase,
	"first base":   PositionFirstBase,
	"1b":           PositionFirstBase,
	"second_base":  PositionSecondBase,
	"second base":  PositionSecondBase,
	"2b":           PositionSecondBase,
	"third_base":   PositionThirdBase,
	"third base":   PositionThirdBase,
	"3b":           PositionThirdBase,
	"rover":        PositionRover,
	"shortstop":    PositionShortstop,
	"ss":           PositionShortstop,
	"right_field":  PositionRightField,
	"right field":  PositionRightField,
	"rf":           PositionRightField,
	"center_field": PositionCenterField,
	"center field": PositionCenterField,
	"cf":           PositionCenterField,
	"left_field":   PositionLeftField,
	"left field":   PositionLeftField,
	"lf":           PositionLeftField,
}

// NormalizePosition converts a raw position string into its canonical form.
// "none" and the empty string normalize to PositionNone.
func NormalizePosition(raw string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" || key == "none" {
		return PositionNone, nil
	}
	if pos, ok := positionAliases[key]; ok {
		return pos, nil
	}
	return PositionNone, fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
}

// IsValid checks if a position is one of the nine field positions
func (p Position) IsValid() bool {
	switch p {
	case PositionCatcher, PositionFirstBase, PositionSecondBase, PositionThirdBase, PositionRover,
		PositionShortstop, PositionRightField, PositionCenterField, PositionLeftField:
		return true
	}
	return false
}

// String returns the string representation of the position
func (p Position) String() string {
	if p == PositionNone {
		return "none"
	}
	return string(p)
}

// UnmarshalJSON normalizes either representation into the canonical position
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pos, err := NormalizePosition(raw)
	if err != nil {
		return err
	}
	*p = pos
	return nil
}
