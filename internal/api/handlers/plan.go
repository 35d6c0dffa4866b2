package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/softball-lineup/internal/lineup"
	"github.com/dom/softball-lineup/internal/service"
)

type PlanHandler struct {
	lineupService *service.LineupService
}

func NewPlanHandler(lineupService *service.LineupService) *PlanHandler {
	return &PlanHandler{lineupService: lineupService}
}

// PlanResponse is a stored plan plus display labels for the pitching column
type PlanResponse struct {
	*service.PlanSession
	PitchingLabels []string `json:"pitchingLabels"`
}

type MoveBatterRequest struct {
	From int `json:"from"` // 1-based
	To   int `json:"to"`
}

type SwapFieldingRequest struct {
	Source lineup.Slot `json:"source"`
	Target lineup.Slot `json:"target"`
}

type ShareResponse struct {
	Query string `json:"query"`
}

func newPlanResponse(session *service.PlanSession) PlanResponse {
	labels := make([]string, len(session.Plan.Pitching))
	for i, a := range session.Plan.Pitching {
		labels[i] = a.Label()
	}
	return PlanResponse{PlanSession: session, PitchingLabels: labels}
}

func (h *PlanHandler) Precheck(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	var req service.AttendanceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.lineupService.Precheck(r.Context(), teamID, req)
	if err != nil {
		writeError(w, "handlers.Precheck", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	var req service.GenerateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.lineupService.Generate(r.Context(), teamID, req)
	if err != nil {
		writeError(w, "handlers.Generate", err)
		return
	}

	writeJSON(w, http.StatusCreated, newPlanResponse(session))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	planID, ok := uuidParam(w, r, "planID")
	if !ok {
		return
	}

	session, err := h.lineupService.GetPlan(r.Context(), planID)
	if err != nil {
		writeError(w, "handlers.GetPlan", err)
		return
	}

	writeJSON(w, http.StatusOK, newPlanResponse(session))
}

func (h *PlanHandler) MoveBatter(w http.ResponseWriter, r *http.Request) {
	planID, ok := uuidParam(w, r, "planID")
	if !ok {
		return
	}

	var req MoveBatterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.lineupService.MoveBatter(r.Context(), planID, req.From, req.To)
	if err != nil {
		writeError(w, "handlers.MoveBatter", err)
		return
	}

	writeJSON(w, http.StatusOK, newPlanResponse(session))
}

func (h *PlanHandler) SwapFielding(w http.ResponseWriter, r *http.Request) {
	planID, ok := uuidParam(w, r, "planID")
	if !ok {
		return
	}

	var req SwapFieldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.lineupService.SwapFielding(r.Context(), planID, req.Source, req.Target)
	if err != nil {
		writeError(w, "handlers.SwapFielding", err)
		return
	}

	writeJSON(w, http.StatusOK, newPlanResponse(session))
}

func (h *PlanHandler) Share(w http.ResponseWriter, r *http.Request) {
	planID, ok := uuidParam(w, r, "planID")
	if !ok {
		return
	}

	query, err := h.lineupService.ShareQuery(r.Context(), planID)
	if err != nil {
		writeError(w, "handlers.Share", err)
		return
	}

	writeJSON(w, http.StatusOK, ShareResponse{Query: query})
}

func (h *PlanHandler) Shared(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	shared, err := h.lineupService.DecodeShared(r.Context(), teamID, r.URL.RawQuery)
	if err != nil {
		writeError(w, "handlers.Shared", err)
		return
	}

	writeJSON(w, http.StatusOK, shared)
}
