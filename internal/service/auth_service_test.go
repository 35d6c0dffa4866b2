package service_test

import (
	"context"
	"testing"

	"github.com/dom/softball-lineup/internal/service"
	"github.com/dom/softball-lineup/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	testutil.NewCoachBuilder().WithDisplayName("existingcoach").Build(t, repos)

	tests := []struct {
		name    string
		input   service.RegisterInput
		wantErr error
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				DisplayName: "newcoach",
				Password:    "password123",
			},
		},
		{
			name: "duplicate display name",
			input: service.RegisterInput{
				DisplayName: "existingcoach",
				Password:    "password123",
			},
			wantErr: service.ErrDisplayNameExists,
		},
		{
			name: "short password",
			input: service.RegisterInput{
				DisplayName: "shortpass",
				Password:    "abc",
			},
			wantErr: service.ErrInvalidInput,
		},
		{
			name: "missing display name",
			input: service.RegisterInput{
				Password: "password123",
			},
			wantErr: service.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.DisplayName, result.Coach.DisplayName)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	coach, rawPassword := testutil.NewCoachBuilder().
		WithDisplayName("logincoach").
		WithPassword("correctpassword").
		Build(t, repos)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name:  "successful login",
			input: service.LoginInput{DisplayName: coach.DisplayName, Password: rawPassword},
		},
		{
			name:    "wrong password",
			input:   service.LoginInput{DisplayName: coach.DisplayName, Password: "wrongpassword"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "non-existent coach",
			input:   service.LoginInput{DisplayName: "nonexistent", Password: "anypassword"},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name:    "empty input",
			input:   service.LoginInput{},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, coach.ID, result.Coach.ID)
			assert.NotEmpty(t, result.AccessToken)

			session, err := repos.Session.GetByCoachID(ctx, coach.ID)
			require.NoError(t, err)
			assert.Equal(t, coach.ID, session.CoachID)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())

	result, err := authService.Register(context.Background(), service.RegisterInput{
		DisplayName: "tokencoach",
		Password:    "password123",
	})
	require.NoError(t, err)

	otherCfg := testutil.TestConfig()
	otherCfg.JWTSecret = "a-different-secret"
	foreign, err := service.NewAuthService(repos.Coach, repos.Session, otherCfg).
		Register(context.Background(), service.RegisterInput{DisplayName: "foreigncoach", Password: "password123"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid token", token: result.AccessToken},
		{name: "signed with another secret", token: foreign.AccessToken, wantErr: true},
		{name: "invalid token", token: "invalid.token.here", wantErr: true},
		{name: "malformed token", token: "notavalidjwt", wantErr: true},
		{name: "empty token", token: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := authService.ValidateToken(tt.token)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, result.Coach.ID.String(), (*claims)["sub"])
		})
	}
}

func TestAuthService_GetCoachByID(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	coach, _ := testutil.NewCoachBuilder().Build(t, repos)

	got, err := authService.GetCoachByID(ctx, coach.ID)
	require.NoError(t, err)
	assert.Equal(t, coach.DisplayName, got.DisplayName)

	_, err = authService.GetCoachByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrCoachNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "logoutcoach",
		Password:    "password123",
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, result.Coach.ID))
	_, err = repos.Session.GetByCoachID(ctx, result.Coach.ID)
	assert.Error(t, err)

	// Logging out twice is harmless
	require.NoError(t, authService.Logout(ctx, result.Coach.ID))
}

func TestAuthService_Authenticate(t *testing.T) {
	repos := testutil.NewMemoryRepositories()
	authService := service.NewAuthService(repos.Coach, repos.Session, testutil.TestConfig())
	ctx := context.Background()

	result, err := authService.Register(ctx, service.RegisterInput{
		DisplayName: "authcoach",
		Password:    "password123",
	})
	require.NoError(t, err)

	coach, err := authService.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.Coach.ID, coach.ID)

	_, err = authService.Authenticate(ctx, "notavalidjwt")
	assert.Error(t, err)

	// A token from another store names a coach this one has never seen
	otherRepos := testutil.NewMemoryRepositories()
	other := service.NewAuthService(otherRepos.Coach, otherRepos.Session, testutil.TestConfig())
	foreign, err := other.Register(ctx, service.RegisterInput{DisplayName: "foreigncoach", Password: "password123"})
	require.NoError(t, err)
	_, err = authService.Authenticate(ctx, foreign.AccessToken)
	assert.ErrorIs(t, err, service.ErrCoachNotFound)

	require.NoError(t, authService.Logout(ctx, result.Coach.ID))
	_, err = authService.Authenticate(ctx, result.AccessToken)
	assert.ErrorIs(t, err, service.ErrSessionEnded)
}
