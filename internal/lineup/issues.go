package lineup

import (
	"fmt"

	"github.com/dom/softball-lineup/internal/domain"
)

// IssueKind classifies a soft constraint violation
type IssueKind string

const (
	IssueBackToBackFemales  IssueKind = "back_to_back_females"
	IssueMaleRun            IssueKind = "male_run"
	IssueEmergencyPitcher   IssueKind = "emergency_pitcher"
	IssueNoPitcher          IssueKind = "no_pitcher"
	IssueUnevenBench        IssueKind = "uneven_bench"
	IssueGenderImbalance    IssueKind = "gender_imbalance"
	IssueSingleGenderBench  IssueKind = "single_gender_bench"
	IssueWomenOnField       IssueKind = "women_on_field"
	IssueIneligible         IssueKind = "ineligible"
	IssueForcedAssignment   IssueKind = "forced_assignment"
	IssueUnfilledPosition   IssueKind = "unfilled_position"
	IssueCoverage           IssueKind = "coverage"
	IssueUnknownPlayer      IssueKind = "unknown_player"
	IssueMalformedShareData IssueKind = "malformed_share_data"
)

// Issue is one realized deviation from a preference or rule. Issues never stop
// generation; they are collected for display and logging.
type Issue struct {
	Kind     IssueKind       `json:"kind"`
	Inning   int             `json:"inning,omitempty"` // 1-based, 0 when not inning specific
	Position domain.Position `json:"position,omitempty"`
	Player   string          `json:"player,omitempty"`
	Message  string          `json:"message"`
}

func (i Issue) String() string {
	return i.Message
}

func newIssue(kind IssueKind, inning int, format string, args ...any) Issue {
	return Issue{Kind: kind, Inning: inning, Message: fmt.Sprintf(format, args...)}
}

// CountByKind tallies issues per kind
func CountByKind(issues []Issue) map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	return counts
}
