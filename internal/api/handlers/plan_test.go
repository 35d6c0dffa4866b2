package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dom/softball-lineup/internal/api/handlers"
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/dom/softball-lineup/internal/service"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatePlan(t *testing.T, ts *testutil.TestServer, team *domain.Team, attendance []string) handlers.PlanResponse {
	t.Helper()
	resp := doRequest(t, http.MethodPost, ts.APIURL("/teams/"+team.ID.String()+"/plans"),
		map[string]interface{}{"attendance": attendance}, "")
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var plan handlers.PlanResponse
	testutil.AssertJSONResponse(t, resp, &plan)
	return plan
}

func TestPlanHandler_Precheck(t *testing.T) {
	ts := testutil.NewTestServer(t)
	team := testutil.NewTeamBuilder().Build(t, ts.Repos)
	url := ts.APIURL("/teams/" + team.ID.String() + "/precheck")

	tests := []struct {
		name           string
		attendance     []string
		expectedStatus int
		wantOK         bool
	}{
		{name: "enough players", attendance: team.PlayerNames(), expectedStatus: http.StatusOK, wantOK: true},
		{name: "too few", attendance: team.PlayerNames()[:5], expectedStatus: http.StatusOK},
		{name: "empty", attendance: []string{}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, http.MethodPost, url, map[string]interface{}{"attendance": tt.attendance}, "")
			require.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result service.PrecheckResult
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Equal(t, tt.wantOK, result.OK)
			assert.Equal(t, len(tt.attendance), result.Precheck.Attendees)
		})
	}
}

func TestPlanHandler_GenerateAndEdit(t *testing.T) {
	ts := testutil.NewTestServer(t)
	team := testutil.NewTeamBuilder().Build(t, ts.Repos)

	plan := generatePlan(t, ts, team, team.PlayerNames())
	testutil.AssertCompletePlan(t, plan.Plan, lineup.DefaultInnings)
	assert.Len(t, plan.PitchingLabels, len(team.Players))
	assert.Len(t, plan.Report.Fielding.Stats, len(team.Players))
	planURL := ts.APIURL("/plans/" + plan.ID.String())

	t.Run("get", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, planURL, nil, "")
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var got handlers.PlanResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, plan.Plan.BattingOrder, got.Plan.BattingOrder)
	})

	t.Run("move batter", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, planURL+"/batting/move", handlers.MoveBatterRequest{From: 2, To: 1}, "")
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var got handlers.PlanResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, plan.Plan.BattingOrder[1], got.Plan.BattingOrder[0])
		assert.Equal(t, plan.Plan.BattingOrder[0], got.Plan.BattingOrder[1])
	})

	t.Run("move out of range", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, planURL+"/batting/move", handlers.MoveBatterRequest{From: 1, To: 99}, "")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid batting order slot")
	})

	t.Run("swap fielding", func(t *testing.T) {
		body := map[string]interface{}{
			"source": map[string]interface{}{"inning": 2, "kind": "position", "position": "SHORTSTOP"},
			"target": map[string]interface{}{"inning": 2, "kind": "position", "position": "CATCHER"},
		}
		resp := doRequest(t, http.MethodPost, planURL+"/fielding/swap", body, "")
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var got handlers.PlanResponse
		testutil.AssertJSONResponse(t, resp, &got)

		before := plan.Plan.Fielding[1].Positions
		after := got.Plan.Fielding[1].Positions
		assert.Equal(t, before[domain.PositionShortstop], after[domain.PositionCatcher])
		assert.Equal(t, before[domain.PositionCatcher], after[domain.PositionShortstop])
	})

	t.Run("swap across innings", func(t *testing.T) {
		body := map[string]interface{}{
			"source": map[string]interface{}{"inning": 1, "kind": "bench", "benchIndex": 0},
			"target": map[string]interface{}{"inning": 3, "kind": "bench", "benchIndex": 0},
		}
		resp := doRequest(t, http.MethodPost, planURL+"/fielding/swap", body, "")
		testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid assignment slot")
	})

	t.Run("unknown plan", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/plans/"+uuid.NewString()), nil, "")
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestPlanHandler_NoAttendees(t *testing.T) {
	ts := testutil.NewTestServer(t)
	team := testutil.NewTeamBuilder().Build(t, ts.Repos)

	resp := doRequest(t, http.MethodPost, ts.APIURL("/teams/"+team.ID.String()+"/plans"),
		map[string]interface{}{"attendance": []string{"Nobody Here"}}, "")

	testutil.AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "no attending players")
}

func TestPlanHandler_ShareRoundTrip(t *testing.T) {
	ts := testutil.NewTestServer(t)
	team := testutil.NewTeamBuilder().Build(t, ts.Repos)
	plan := generatePlan(t, ts, team, team.PlayerNames()[:11])

	resp := doRequest(t, http.MethodGet, ts.APIURL("/plans/"+plan.ID.String()+"/share"), nil, "")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var share handlers.ShareResponse
	testutil.AssertJSONResponse(t, resp, &share)
	require.True(t, strings.Contains(share.Query, "attendance="))

	resp = doRequest(t, http.MethodGet, ts.APIURL("/teams/"+team.ID.String()+"/shared?"+share.Query), nil, "")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var shared service.SharedPlan
	testutil.AssertJSONResponse(t, resp, &shared)
	assert.Equal(t, plan.Plan, shared.Plan)
	assert.Empty(t, shared.Issues)

	t.Run("malformed link", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/teams/"+team.ID.String()+"/shared?batting=%5B%5D"), nil, "")
		testutil.AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "malformed shared game state")
	})
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.BaseURL()+"/health", nil, "")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	team := testutil.NewTeamBuilder().Build(t, ts.Repos)
	generatePlan(t, ts, team, team.PlayerNames())

	resp = doRequest(t, http.MethodGet, ts.BaseURL()+"/metrics", nil, "")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `softball_lineup_plans_generated_total{outcome="complete"} 1`)
	assert.Contains(t, string(body), `route="/api/v1/teams/{teamID}/plans"`)
}
