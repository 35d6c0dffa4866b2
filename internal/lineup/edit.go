package lineup

import (
	"fmt"
	"slices"

	"github.com/dom/softball-lineup/internal/domain"
)

// SlotKind says whether a slot is a field position or a bench entry
type SlotKind string

const (
	SlotPosition SlotKind = "position"
	SlotBench    SlotKind = "bench"
)

// Slot addresses one place in a fielding plan
type Slot struct {
	Inning     int             `json:"inning" validate:"min=1"` // 1-based
	Kind       SlotKind        `json:"kind" validate:"required,oneof=position bench"`
	Position   domain.Position `json:"position,omitempty"`
	BenchIndex int             `json:"benchIndex,omitempty" validate:"min=0"`
}

func (s Slot) String() string {
	if s.Kind == SlotBench {
		return fmt.Sprintf("inning %d bench #%d", s.Inning, s.BenchIndex+1)
	}
	return fmt.Sprintf("inning %d %s", s.Inning, s.Position)
}

// SwapFielding exchanges the players in two slots of the same inning and returns
// the edited copy. Swapping across innings would leave a player twice in one
// inning and missing from the other, so it is rejected.
func SwapFielding(plan domain.FieldingPlan, src, dst Slot) (domain.FieldingPlan, error) {
	if src.Inning != dst.Inning {
		return nil, fmt.Errorf("%w: %s and %s are in different innings", domain.ErrInvalidSlot, src, dst)
	}
	if src.Inning < 1 || src.Inning > len(plan) {
		return nil, fmt.Errorf("%w: inning %d out of range 1-%d", domain.ErrInvalidSlot, src.Inning, len(plan))
	}

	out := plan.Clone()
	inning := &out[src.Inning-1]

	a, err := slotValue(*inning, src)
	if err != nil {
		return nil, err
	}
	b, err := slotValue(*inning, dst)
	if err != nil {
		return nil, err
	}
	if (a == "" && dst.Kind == SlotBench) || (b == "" && src.Kind == SlotBench) {
		return nil, fmt.Errorf("%w: cannot move an empty position onto the bench", domain.ErrInvalidSlot)
	}

	setSlot(inning, src, b)
	setSlot(inning, dst, a)
	return out, nil
}

func slotValue(inning domain.InningAssignment, s Slot) (string, error) {
	switch s.Kind {
	case SlotPosition:
		if !s.Position.IsValid() {
			return "", fmt.Errorf("%w: unknown position %q", domain.ErrInvalidSlot, s.Position)
		}
		return inning.Positions[s.Position], nil
	case SlotBench:
		if s.BenchIndex < 0 || s.BenchIndex >= len(inning.Bench) {
			return "", fmt.Errorf("%w: bench index %d out of range", domain.ErrInvalidSlot, s.BenchIndex)
		}
		return inning.Bench[s.BenchIndex], nil
	}
	return "", fmt.Errorf("%w: unknown slot kind %q", domain.ErrInvalidSlot, s.Kind)
}

func setSlot(inning *domain.InningAssignment, s Slot, name string) {
	if s.Kind == SlotBench {
		inning.Bench[s.BenchIndex] = name
		return
	}
	if name == "" {
		delete(inning.Positions, s.Position)
		return
	}
	inning.Positions[s.Position] = name
}

// MoveBatter removes the batter at from and reinserts them at to (both 0-based),
// shifting the batters in between.
func MoveBatter(order domain.BattingOrder, from, to int) (domain.BattingOrder, error) {
	n := len(order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d to %d in an order of %d", domain.ErrInvalidBattingSlot, from+1, to+1, n)
	}
	out := slices.Clone(order)
	name := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, name), nil
}

// MoveBatter applies a batting move to a plan and rebuilds its pitching schedule,
// since pitcher availability depends on the order.
func (g *Generator) MoveBatter(plan *domain.GamePlan, attendees []domain.Player, from, to int) (*domain.GamePlan, error) {
	order, err := MoveBatter(plan.BattingOrder, from, to)
	if err != nil {
		return nil, err
	}
	out := plan.Clone()
	out.BattingOrder = order
	out.Pitching, _ = g.PitchingSchedule(order, attendees)
	return out, nil
}

// SwapFielding applies a fielding swap to a plan
func (g *Generator) SwapFielding(plan *domain.GamePlan, src, dst Slot) (*domain.GamePlan, error) {
	if err := validate.Struct(src); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}
	if err := validate.Struct(dst); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}
	fielding, err := SwapFielding(plan.Fielding, src, dst)
	if err != nil {
		return nil, err
	}
	out := plan.Clone()
	out.Fielding = fielding
	g.log.WithField("source", src.String()).WithField("target", dst.String()).Debug("fielding swap applied")
	return out, nil
}
