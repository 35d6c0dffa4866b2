package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CoachBuilder creates test coaches with a builder pattern
type CoachBuilder struct {
	displayName string
	password    string
}

// NewCoachBuilder creates a new CoachBuilder with default values
func NewCoachBuilder() *CoachBuilder {
	return &CoachBuilder{
		displayName: fmt.Sprintf("coach_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *CoachBuilder) WithDisplayName(name string) *CoachBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *CoachBuilder) WithPassword(password string) *CoachBuilder {
	b.password = password
	return b
}

// Build stores the coach and returns it with the raw password
func (b *CoachBuilder) Build(t *testing.T, repos *repository.Repositories) (*domain.Coach, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	coach := &domain.Coach{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repos.Coach.Create(context.Background(), coach); err != nil {
		t.Fatalf("failed to create coach: %v", err)
	}

	return coach, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Coach struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"coach"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate registers the coach via the API and returns the coach and access token
func (b *CoachBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Coach, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register coach: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	coachID, _ := uuid.Parse(authResp.Coach.ID)
	coach := &domain.Coach{
		ID:          coachID,
		DisplayName: authResp.Coach.DisplayName,
	}

	return coach, authResp.AccessToken
}

// TeamBuilder creates test teams with a builder pattern
type TeamBuilder struct {
	name    string
	coach   *domain.Coach
	players []domain.Player
}

// NewTeamBuilder creates a team builder with the sample roster
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		name:    "Sunday Sluggers",
		players: SampleRoster(),
	}
}

// WithName sets the team name
func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

// WithCoach sets the owning coach
func (b *TeamBuilder) WithCoach(coach *domain.Coach) *TeamBuilder {
	b.coach = coach
	return b
}

// WithPlayers replaces the roster
func (b *TeamBuilder) WithPlayers(players []domain.Player) *TeamBuilder {
	b.players = players
	return b
}

// Build stores the team and its roster, creating a coach when none was given
func (b *TeamBuilder) Build(t *testing.T, repos *repository.Repositories) *domain.Team {
	t.Helper()
	ctx := context.Background()

	if b.coach == nil {
		b.coach, _ = NewCoachBuilder().Build(t, repos)
	}

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      b.name,
		CoachID:   b.coach.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repos.Team.Create(ctx, team); err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	for _, p := range b.players {
		p.ID = uuid.New()
		p.TeamID = team.ID
		if err := repos.Player.Create(ctx, &p); err != nil {
			t.Fatalf("failed to create player %s: %v", p.Name, err)
		}
	}

	stored, err := repos.Team.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("failed to reload team: %v", err)
	}
	return stored
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
