package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// NoPitcherAvailable is the placeholder pitcher when nobody attending can pitch
const NoPitcherAvailable = "No pitcher available"

// EmergencySuffix tags a pitcher assigned outside their availability window
const EmergencySuffix = " (Emergency)"

// BattingOrder is a cyclic sequence of attending player names; the last
// batter is followed by the first.
type BattingOrder []string

// IndexOf returns the 0-based slot of a batter, or -1
func (o BattingOrder) IndexOf(name string) int {
	return slices.Index(o, name)
}

// PitchingAssignment is the pitcher covering one batting-order slot
type PitchingAssignment struct {
	BattingPosition int    `json:"battingPosition"` // 1-based
	Batter          string `json:"batter"`
	Pitcher         string `json:"pitcher"`
	Emergency       bool   `json:"emergency,omitempty"`
}

// Label returns the pitcher name with the emergency tag when set
func (a PitchingAssignment) Label() string {
	if a.Emergency {
		return a.Pitcher + EmergencySuffix
	}
	return a.Pitcher
}

// HasPitcher reports whether a real pitcher was assigned
func (a PitchingAssignment) HasPitcher() bool {
	return a.Pitcher != "" && a.Pitcher != NoPitcherAvailable
}

// InningAssignment maps each field position to a player, plus everyone on the bench.
// It marshals to the flat shape {"Catcher": "...", ..., "bench": [...]}.
type InningAssignment struct {
	Positions map[Position]string
	Bench     []string
}

// NewInningAssignment returns an empty assignment ready to fill
func NewInningAssignment() InningAssignment {
	return InningAssignment{
		Positions: make(map[Position]string, len(FieldPositions)),
		Bench:     []string{},
	}
}

// Clone returns a deep copy
func (a InningAssignment) Clone() InningAssignment {
	out := InningAssignment{
		Positions: make(map[Position]string, len(a.Positions)),
		Bench:     slices.Clone(a.Bench),
	}
	if out.Bench == nil {
		out.Bench = []string{}
	}
	for pos, name := range a.Positions {
		out.Positions[pos] = name
	}
	return out
}

// PositionOf returns the field position a player occupies this inning
func (a InningAssignment) PositionOf(name string) (Position, bool) {
	for _, pos := range FieldPositions {
		if a.Positions[pos] == name {
			return pos, true
		}
	}
	return PositionNone, false
}

// Names returns every player in the inning, field positions first, then the bench
func (a InningAssignment) Names() []string {
	names := make([]string, 0, len(a.Positions)+len(a.Bench))
	for _, pos := range FieldPositions {
		if name, ok := a.Positions[pos]; ok && name != "" {
			names = append(names, name)
		}
	}
	return append(names, a.Bench...)
}

func (a InningAssignment) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(a.Positions)+1)
	for pos, name := range a.Positions {
		flat[string(pos)] = name
	}
	bench := a.Bench
	if bench == nil {
		bench = []string{}
	}
	flat["bench"] = bench
	return json.Marshal(flat)
}

func (a *InningAssignment) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	out := NewInningAssignment()
	for key, raw := range flat {
		if key == "bench" {
			if err := json.Unmarshal(raw, &out.Bench); err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			continue
		}
		pos, err := NormalizePosition(key)
		if err != nil || pos == PositionNone {
			return fmt.Errorf("%w: %q", ErrInvalidPosition, key)
		}
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		out.Positions[pos] = name
	}
	if out.Bench == nil {
		out.Bench = []string{}
	}
	*a = out
	return nil
}

// FieldingPlan holds one InningAssignment per inning
type FieldingPlan []InningAssignment

// Clone returns a deep copy
func (p FieldingPlan) Clone() FieldingPlan {
	if p == nil {
		return nil
	}
	out := make(FieldingPlan, len(p))
	for i, inning := range p {
		out[i] = inning.Clone()
	}
	return out
}

// GamePlan is the complete output of a generation request
type GamePlan struct {
	Attendance   []string             `json:"attendance"`
	BattingOrder BattingOrder         `json:"battingOrder"`
	Pitching     []PitchingAssignment `json:"pitching"`
	Fielding     FieldingPlan         `json:"fielding"`
}

// Clone returns a deep copy
func (p *GamePlan) Clone() *GamePlan {
	return &GamePlan{
		Attendance:   slices.Clone(p.Attendance),
		BattingOrder: slices.Clone(p.BattingOrder),
		Pitching:     slices.Clone(p.Pitching),
		Fielding:     p.Fielding.Clone(),
	}
}
