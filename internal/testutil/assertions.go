package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertCompletePlan checks that every attendee bats once and every inning
// fills all nine positions with the remaining attendees on the bench
func AssertCompletePlan(t *testing.T, plan *domain.GamePlan, innings int) {
	t.Helper()

	assert.ElementsMatch(t, plan.Attendance, []string(plan.BattingOrder), "batting order is not a permutation of attendance")
	assert.Len(t, plan.Pitching, len(plan.BattingOrder), "one pitching assignment per batting slot")
	require.Len(t, plan.Fielding, innings)

	for i, inning := range plan.Fielding {
		for _, pos := range domain.FieldPositions {
			assert.NotEmpty(t, inning.Positions[pos], "inning %d: %s unfilled", i+1, pos)
		}
		assert.ElementsMatch(t, plan.Attendance, inning.Names(), "inning %d does not place every attendee once", i+1)
	}
}
