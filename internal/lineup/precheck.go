package lineup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dom/softball-lineup/internal/domain"
)

// Precheck reports whether fielding generation can be attempted for an attendance
type Precheck struct {
	Attendees           int               `json:"attendees"`
	Females             int               `json:"females"`
	Males               int               `json:"males"`
	InsufficientPlayers bool              `json:"insufficientPlayers"`
	Uncoverable         []domain.Position `json:"uncoverable,omitempty"`
}

// CheckCoverage counts attendees and finds positions nobody attending can play
func CheckCoverage(attendees []domain.Player) Precheck {
	report := Precheck{Attendees: len(attendees)}
	for i := range attendees {
		if attendees[i].IsFemale() {
			report.Females++
		} else {
			report.Males++
		}
	}
	report.InsufficientPlayers = len(attendees) < FieldSize

	for _, pos := range domain.FieldPositions {
		if len(EligiblePlayers(attendees, pos)) == 0 {
			report.Uncoverable = append(report.Uncoverable, pos)
		}
	}
	return report
}

// OK reports whether fielding generation may proceed
func (p Precheck) OK() bool {
	return !p.InsufficientPlayers && len(p.Uncoverable) == 0
}

// Err converts a failed precheck into wrapped sentinel errors
func (p Precheck) Err() error {
	var errs []error
	if p.InsufficientPlayers {
		errs = append(errs, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientPlayers, p.Attendees, FieldSize))
	}
	if len(p.Uncoverable) > 0 {
		names := make([]string, len(p.Uncoverable))
		for i, pos := range p.Uncoverable {
			names[i] = pos.String()
		}
		errs = append(errs, fmt.Errorf("%w: %s", domain.ErrUncoverablePosition, strings.Join(names, ", ")))
	}
	return errors.Join(errs...)
}
