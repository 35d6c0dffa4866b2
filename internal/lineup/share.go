package lineup

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dom/softball-lineup/internal/domain"
)

// Share link query keys
const (
	ShareAttendance = "attendance"
	ShareBatting    = "batting"
	SharePitching   = "pitching"
	SharePositions  = "positions"
)

// EncodeShare serializes a plan into share-link query values, one JSON document per key
func EncodeShare(plan *domain.GamePlan) (url.Values, error) {
	values := url.Values{}
	fields := []struct {
		key string
		v   any
	}{
		{ShareAttendance, plan.Attendance},
		{ShareBatting, plan.BattingOrder},
		{SharePitching, plan.Pitching},
		{SharePositions, plan.Fielding},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f.key, err)
		}
		values.Set(f.key, string(data))
	}
	return values, nil
}

// DecodeShareQuery parses a raw share-link query string
func DecodeShareQuery(rawQuery string, roster []domain.Player) (*domain.GamePlan, []Issue, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedSharedState, err)
	}
	return DecodeShare(values, roster)
}

// DecodeShare rebuilds a plan from share-link values. Each field is decoded on
// its own: unparseable fields and names that are not on the roster are dropped
// and reported. If no attendance survives, the whole link is rejected.
func DecodeShare(values url.Values, roster []domain.Player) (*domain.GamePlan, []Issue, error) {
	var issues []Issue
	malformed := func(format string, args ...any) {
		issues = append(issues, newIssue(IssueMalformedShareData, 0, format, args...))
	}

	known := indexByName(roster)
	var rawAttendance []string
	if err := decodeShareField(values, ShareAttendance, &rawAttendance); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedSharedState, err)
	}

	plan := &domain.GamePlan{Attendance: []string{}}
	attending := make(map[string]bool, len(rawAttendance))
	for _, name := range rawAttendance {
		if _, ok := known[name]; !ok {
			malformed("Attendance: %s is not on the roster", name)
			continue
		}
		if attending[name] {
			continue
		}
		attending[name] = true
		plan.Attendance = append(plan.Attendance, name)
	}
	if len(plan.Attendance) == 0 {
		return nil, issues, fmt.Errorf("%w: no known players in attendance", domain.ErrMalformedSharedState)
	}

	var rawBatting []string
	if err := decodeShareField(values, ShareBatting, &rawBatting); err != nil {
		malformed("Batting order: %v", err)
	}
	plan.BattingOrder = domain.BattingOrder{}
	for _, name := range rawBatting {
		if !attending[name] || slices.Contains(plan.BattingOrder, name) {
			malformed("Batting order: dropped %s", name)
			continue
		}
		plan.BattingOrder = append(plan.BattingOrder, name)
	}

	var rawPitching []domain.PitchingAssignment
	if err := decodeShareField(values, SharePitching, &rawPitching); err != nil {
		malformed("Pitching: %v", err)
	}
	plan.Pitching = []domain.PitchingAssignment{}
	for _, a := range rawPitching {
		if name, ok := strings.CutSuffix(a.Pitcher, domain.EmergencySuffix); ok {
			a.Pitcher = name
			a.Emergency = true
		}
		if !attending[a.Batter] || (!attending[a.Pitcher] && a.Pitcher != domain.NoPitcherAvailable) {
			malformed("Pitching: dropped slot %d", a.BattingPosition)
			continue
		}
		plan.Pitching = append(plan.Pitching, a)
	}

	var rawFielding domain.FieldingPlan
	if err := decodeShareField(values, SharePositions, &rawFielding); err != nil {
		malformed("Positions: %v", err)
		rawFielding = nil
	}
	for i, inning := range rawFielding {
		clean := domain.NewInningAssignment()
		for pos, name := range inning.Positions {
			if !attending[name] {
				malformed("Inning %d: dropped %s from %s", i+1, name, pos)
				continue
			}
			clean.Positions[pos] = name
		}
		for _, name := range inning.Bench {
			if !attending[name] {
				malformed("Inning %d: dropped %s from the bench", i+1, name)
				continue
			}
			clean.Bench = append(clean.Bench, name)
		}
		plan.Fielding = append(plan.Fielding, clean)
	}

	return plan, issues, nil
}

// decodeShareField unmarshals one JSON value. A missing key leaves dst untouched.
// Values still percent-encoded from older links are unescaped once more.
func decodeShareField(values url.Values, key string, dst any) error {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "%") {
		if unescaped, err := url.QueryUnescape(raw); err == nil {
			raw = unescaped
		}
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
