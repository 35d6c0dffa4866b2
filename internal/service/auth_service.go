package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dom/softball-lineup/internal/config"
	"github.com/dom/softball-lineup/internal/domain"
	"github.com/dom/softball-lineup/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisplayNameExists  = errors.New("display name already exists")
	ErrCoachNotFound      = errors.New("coach not found")
	ErrSessionEnded       = errors.New("coach is logged out")
	ErrInvalidInput       = errors.New("invalid input")
)

const sessionLifetime = 7 * 24 * time.Hour

type AuthService struct {
	coachRepo   repository.CoachRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
}

func NewAuthService(coachRepo repository.CoachRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		coachRepo:   coachRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

type RegisterInput struct {
	DisplayName string `validate:"required,min=3,max=50"`
	Password    string `validate:"required,min=8,max=72"`
}

type LoginInput struct {
	DisplayName string `validate:"required"`
	Password    string `validate:"required"`
}

type AuthResult struct {
	Coach        *domain.Coach
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.coachRepo.GetByDisplayName(ctx, input.DisplayName)
	if err == nil && existing != nil {
		return nil, ErrDisplayNameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	coach := &domain.Coach{
		ID:           uuid.New(),
		PasswordHash: string(hashedPassword),
		DisplayName:  input.DisplayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.coachRepo.Create(ctx, coach); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDisplayNameExists
		}
		return nil, err
	}

	return s.generateTokens(ctx, coach)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, ErrInvalidCredentials
	}

	coach, err := s.coachRepo.GetByDisplayName(ctx, input.DisplayName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, coach)
}

func (s *AuthService) generateTokens(ctx context.Context, coach *domain.Coach) (*AuthResult, error) {
	accessToken, err := s.generateAccessToken(coach)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	hashedRefresh, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// One live session per coach
	_ = s.sessionRepo.DeleteByCoachID(ctx, coach.ID)

	session := &domain.CoachSession{
		ID:               uuid.New(),
		CoachID:          coach.ID,
		RefreshTokenHash: string(hashedRefresh),
		ExpiresAt:        time.Now().Add(sessionLifetime),
		CreatedAt:        time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		Coach:        coach,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) generateAccessToken(coach *domain.Coach) (string, error) {
	claims := jwt.MapClaims{
		"sub":  coach.ID.String(),
		"name": coach.DisplayName,
		"exp":  time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, errors.New("invalid token")
}

// Authenticate resolves an access token to its coach. Tokens for coaches that
// were removed or have logged out are rejected even before they expire.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.Coach, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	sub, ok := (*claims)["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	coachID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid coach id in token: %w", err)
	}

	coach, err := s.GetCoachByID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessionRepo.GetByCoachID(ctx, coachID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionEnded
		}
		return nil, err
	}
	return coach, nil
}

func (s *AuthService) GetCoachByID(ctx context.Context, id uuid.UUID) (*domain.Coach, error) {
	coach, err := s.coachRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

func (s *AuthService) Logout(ctx context.Context, coachID uuid.UUID) error {
	return s.sessionRepo.DeleteByCoachID(ctx, coachID)
}
