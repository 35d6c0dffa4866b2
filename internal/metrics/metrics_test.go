package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordGeneration(t *testing.T) {
	rec := NewRecorder()
	result := &lineup.Result{
		Plan: &domain.GamePlan{Fielding: domain.FieldingPlan{domain.NewInningAssignment()}},
		Diagnostics: []lineup.Issue{
			{Kind: lineup.IssueForcedAssignment},
			{Kind: lineup.IssueForcedAssignment},
			{Kind: lineup.IssueEmergencyPitcher},
		},
		BattingAttempts: 3,
	}

	rec.RecordGeneration(result, 2*time.Millisecond)
	rec.RecordGeneration(&lineup.Result{Plan: &domain.GamePlan{}, BattingAttempts: 1}, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.plans.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.plans.WithLabelValues("batting_only")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.issues.WithLabelValues(string(lineup.IssueForcedAssignment))))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.issues.WithLabelValues(string(lineup.IssueEmergencyPitcher))))
}

func TestRecorder_EditsAndShares(t *testing.T) {
	rec := NewRecorder()
	rec.RecordEdit("swap", nil)
	rec.RecordEdit("swap", errors.New("bad slot"))
	rec.RecordShareDecode(domain.ErrMalformedSharedState)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.edits.WithLabelValues("swap", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.edits.WithLabelValues("swap", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.shareDecodes.WithLabelValues("error")))
}

func TestRecorder_Handler(t *testing.T) {
	rec := NewRecorder()
	rec.RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `softball_lineup_http_requests_total{method="GET",route="/health",status="200"} 1`), body)
}

func TestRecorder_NilIsSafe(t *testing.T) {
	var rec *Recorder

	assert.NotPanics(t, func() {
		rec.RecordGeneration(&lineup.Result{Plan: &domain.GamePlan{}}, time.Second)
		rec.RecordEdit("move", nil)
		rec.RecordShareDecode(nil)
		rec.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Second)
	})

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
