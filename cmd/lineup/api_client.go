package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dom/softball-lineup/internal/service"
)

// APIClient handles HTTP communication with the lineup server
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching the server

type Coach struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	Coach        Coach  `json:"coach"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	CoachID string   `json:"coachId"`
	Players []Player `json:"players"`
}

type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	PitchingRole string `json:"pitchingRole"`
}

type ShareResponse struct {
	Query string `json:"query"`
}

// Register creates a coach account and returns its access token
func (c *APIClient) Register(displayName, password string) (*Coach, string, error) {
	body := map[string]string{
		"displayName": displayName,
		"password":    password,
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusOK, &result); err != nil {
		return nil, "", fmt.Errorf("register failed: %w", err)
	}
	return &result.Coach, result.AccessToken, nil
}

// CreateTeam creates an empty team owned by the token's coach
func (c *APIClient) CreateTeam(token, name string) (*Team, error) {
	var team Team
	if err := c.do(http.MethodPost, "/teams", service.TeamInput{Name: name}, token, http.StatusCreated, &team); err != nil {
		return nil, fmt.Errorf("create team failed: %w", err)
	}
	return &team, nil
}

// AddPlayer adds one roster entry to a team
func (c *APIClient) AddPlayer(token, teamID string, input service.PlayerInput) (*Player, error) {
	var player Player
	if err := c.do(http.MethodPost, "/teams/"+teamID+"/players", input, token, http.StatusCreated, &player); err != nil {
		return nil, fmt.Errorf("add player %s failed: %w", input.Name, err)
	}
	return &player, nil
}

// GetTeam fetches a team with its roster
func (c *APIClient) GetTeam(teamID string) (*Team, error) {
	var team Team
	if err := c.do(http.MethodGet, "/teams/"+teamID, nil, "", http.StatusOK, &team); err != nil {
		return nil, fmt.Errorf("get team failed: %w", err)
	}
	return &team, nil
}

// GeneratePlan asks the server for a new game plan
func (c *APIClient) GeneratePlan(teamID string, input service.GenerateInput) (*service.PlanSession, error) {
	var session service.PlanSession
	if err := c.do(http.MethodPost, "/teams/"+teamID+"/plans", input, "", http.StatusCreated, &session); err != nil {
		return nil, fmt.Errorf("generate plan failed: %w", err)
	}
	return &session, nil
}

// ShareQuery fetches the share query of a stored plan
func (c *APIClient) ShareQuery(planID string) (string, error) {
	var share ShareResponse
	if err := c.do(http.MethodGet, "/plans/"+planID+"/share", nil, "", http.StatusOK, &share); err != nil {
		return "", fmt.Errorf("share plan failed: %w", err)
	}
	return share.Query, nil
}

func (c *APIClient) do(method, path string, body any, token string, want int, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
