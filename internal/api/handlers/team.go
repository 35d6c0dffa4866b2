package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/softball-lineup/internal/api/middleware"
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/service"
)

type TeamHandler struct {
	rosterService *service.RosterService
}

func NewTeamHandler(rosterService *service.RosterService) *TeamHandler {
	return &TeamHandler{rosterService: rosterService}
}

type TeamResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	CoachID string           `json:"coachId"`
	Players []PlayerResponse `json:"players"`
}

type PlayerResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Gender            domain.Gender     `json:"gender"`
	PreferredPosition domain.Position   `json:"preferredPosition,omitempty"`
	PlayablePositions []domain.Position `json:"playablePositions"`
	PitchingPriority  int               `json:"pitchingPriority"`
	PitchingRole      string            `json:"pitchingRole"`
}

func newTeamResponse(team *domain.Team) TeamResponse {
	resp := TeamResponse{
		ID:      team.ID.String(),
		Name:    team.Name,
		CoachID: team.CoachID.String(),
		Players: make([]PlayerResponse, 0, len(team.Players)),
	}
	for i := range team.Players {
		resp.Players = append(resp.Players, newPlayerResponse(&team.Players[i]))
	}
	return resp
}

func newPlayerResponse(p *domain.Player) PlayerResponse {
	playable := []domain.Position(p.PlayablePositions)
	if playable == nil {
		playable = []domain.Position{}
	}
	return PlayerResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Gender:            p.Gender,
		PreferredPosition: p.PreferredPosition,
		PlayablePositions: playable,
		PitchingPriority:  p.PitchingPriority,
		PitchingRole:      domain.PitchingRole(p.PitchingPriority),
	}
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.TeamInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	team, err := h.rosterService.CreateTeam(r.Context(), coachID, req)
	if err != nil {
		writeError(w, "handlers.CreateTeam", err)
		return
	}

	writeJSON(w, http.StatusCreated, newTeamResponse(team))
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teams, err := h.rosterService.ListTeams(r.Context(), coachID)
	if err != nil {
		writeError(w, "handlers.ListTeams", err)
		return
	}

	resp := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		resp = append(resp, newTeamResponse(team))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.rosterService.GetTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, "handlers.GetTeam", err)
		return
	}

	writeJSON(w, http.StatusOK, newTeamResponse(team))
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	if err := h.rosterService.DeleteTeam(r.Context(), coachID, teamID); err != nil {
		writeError(w, "handlers.DeleteTeam", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}

	var req service.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	player, err := h.rosterService.AddPlayer(r.Context(), coachID, teamID, req)
	if err != nil {
		writeError(w, "handlers.AddPlayer", err)
		return
	}

	writeJSON(w, http.StatusCreated, newPlayerResponse(player))
}

func (h *TeamHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}
	playerID, ok := uuidParam(w, r, "playerID")
	if !ok {
		return
	}

	var req service.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	player, err := h.rosterService.UpdatePlayer(r.Context(), coachID, teamID, playerID, req)
	if err != nil {
		writeError(w, "handlers.UpdatePlayer", err)
		return
	}

	writeJSON(w, http.StatusOK, newPlayerResponse(player))
}

func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.GetCoachID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	teamID, ok := uuidParam(w, r, "teamID")
	if !ok {
		return
	}
	playerID, ok := uuidParam(w, r, "playerID")
	if !ok {
		return
	}

	if err := h.rosterService.RemovePlayer(r.Context(), coachID, teamID, playerID); err != nil {
		writeError(w, "handlers.RemovePlayer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
